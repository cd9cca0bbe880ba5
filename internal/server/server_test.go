package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/clozeit/internal/analysis"
	"github.com/abhisek/clozeit/internal/config"
	"github.com/abhisek/clozeit/internal/llm"
	"github.com/abhisek/clozeit/internal/passage"
)

type fakeGenerator struct {
	text  string
	err   error
	input passage.Input
}

func (f *fakeGenerator) Generate(_ context.Context, in passage.Input) (*passage.Passage, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &passage.Passage{Text: f.text, Topic: in.Topic, Difficulty: in.Difficulty}, nil
}

func newTestServer(t *testing.T, opts Options) (http.Handler, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&logs)
	opts.Logger = logger
	opts.Config = config.ServerConfig{Host: "localhost", Port: 0, CORSOrigins: []string{"https://example.com"}}
	return New(opts).Handler(), &logs
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthz(t *testing.T) {
	h, logs := newTestServer(t, Options{})
	rec := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Contains(t, logs.String(), "path=/healthz")
}

func TestGenerateCloze(t *testing.T) {
	gen := &fakeGenerator{text: "A passage."}
	h, _ := newTestServer(t, Options{Generator: gen})

	rec := do(t, h, http.MethodPost, "/api/generate-cloze", `{"topic":"science","difficulty":"Advanced"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "A passage.", decodeBody[generateResponse](t, rec).Text)
	assert.Equal(t, passage.TopicScience, gen.input.Topic)
	assert.Equal(t, passage.DifficultyAdvanced, gen.input.Difficulty)
}

func TestGenerateCloze_AcceptsWordsToBlank(t *testing.T) {
	gen := &fakeGenerator{text: "A passage."}
	h, _ := newTestServer(t, Options{Generator: gen})

	rec := do(t, h, http.MethodPost, "/api/generate-cloze",
		`{"topic":"Technology","difficulty":"Beginner","wordsToBlank":6}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "A passage.", decodeBody[generateResponse](t, rec).Text)
	assert.Equal(t, passage.TopicTechnology, gen.input.Topic)
}

func TestGenerateCloze_Failure(t *testing.T) {
	gen := &fakeGenerator{err: &passage.GenerationError{Err: errors.New("upstream down")}}
	h, logs := newTestServer(t, Options{Generator: gen})

	rec := do(t, h, http.MethodPost, "/api/generate-cloze", `{"topic":"Arts","difficulty":"beginner"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "Failed to generate cloze test", decodeBody[errorResponse](t, rec).Error)
	assert.Contains(t, logs.String(), "upstream down")
}

func TestGenerateCloze_BadInput(t *testing.T) {
	h, _ := newTestServer(t, Options{Generator: &fakeGenerator{}})

	tests := []struct {
		name string
		body string
	}{
		{"unknown topic", `{"topic":"Cooking","difficulty":"beginner"}`},
		{"unknown difficulty", `{"topic":"Arts","difficulty":"expert"}`},
		{"malformed", `{"topic":`},
		{"unknown field", `{"topic":"Arts","difficulty":"beginner","extra":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/generate-cloze", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAIRoutes_NotConfigured(t *testing.T) {
	h, _ := newTestServer(t, Options{})
	for _, path := range []string{"/api/generate-cloze", "/api/analyze-text"} {
		rec := do(t, h, http.MethodPost, path, `{}`)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, path)
	}
}

func TestAnalyzeText(t *testing.T) {
	reply := "CLOZE_WORDS\nriver|basic|noun\n---\nMETRICS\nreadabilityScore|70\n"
	mock := llm.NewMockProvider(llm.MockText(reply))
	h, _ := newTestServer(t, Options{Analyzer: analysis.New(mock, analysis.DefaultConfig())})

	rec := do(t, h, http.MethodPost, "/api/analyze-text", `{"text":"The river runs."}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body["clozeWords"], 1)
	assert.Equal(t, []any{}, body["vocabulary"])
	assert.Equal(t, 70.0, body["metrics"].(map[string]any)["readabilityScore"])
}

func TestAnalyzeText_Failure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("timeout")})
	h, _ := newTestServer(t, Options{Analyzer: analysis.New(mock, analysis.DefaultConfig())})

	rec := do(t, h, http.MethodPost, "/api/analyze-text", `{"text":"The river runs."}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "Failed to analyze text", decodeBody[errorResponse](t, rec).Error)
}

func TestCreateExercise(t *testing.T) {
	h, _ := newTestServer(t, Options{})

	rec := do(t, h, http.MethodPost, "/api/exercises",
		`{"text":"Rivers carry goods. Bridges shape cities.","type":"ctest","gapFrequency":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	view := decodeBody[exerciseView](t, rec)
	assert.NotEmpty(t, view.ID)
	assert.Equal(t, "ctest", string(view.Type))
	assert.Equal(t, 1, view.GapFrequency)
	require.Len(t, view.Blanks, 3)
	assert.Equal(t, blankView{Length: 7, Revealed: "Brid"}, view.Blanks[0])

	require.Len(t, view.Paragraphs, 1)
	var rebuilt strings.Builder
	for _, tok := range view.Paragraphs[0] {
		if tok.Blank != nil {
			rebuilt.WriteString("_")
			continue
		}
		rebuilt.WriteString(tok.Text)
	}
	assert.Equal(t, "Rivers carry goods. _ _ _.", rebuilt.String())
}

func TestCreateExercise_Validation(t *testing.T) {
	h, _ := newTestServer(t, Options{})

	for _, body := range []string{
		`{"text":""}`,
		`{"text":"x","type":"dictation"}`,
		`{"text":"x","gapFrequency":11}`,
	} {
		rec := do(t, h, http.MethodPost, "/api/exercises", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestGradeExercise(t *testing.T) {
	h, _ := newTestServer(t, Options{})

	rec := do(t, h, http.MethodPost, "/api/exercises/grade",
		`{"text":"Rivers carry goods.","type":"cloze","gapFrequency":1,"answers":["RIVERS","carry","food"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeBody[gradeResponse](t, rec)
	assert.Equal(t, 2, got.Correct)
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 67, got.Percentage)
	assert.Equal(t, []bool{true, true, false}, got.Results)
}

func TestGradeExercise_TooManyAnswers(t *testing.T) {
	h, _ := newTestServer(t, Options{})
	rec := do(t, h, http.MethodPost, "/api/exercises/grade",
		`{"text":"Rivers carry goods.","type":"cloze","gapFrequency":1,"answers":["a","b","c","d"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	h, _ := newTestServer(t, Options{})
	rec := do(t, h, http.MethodGet, "/api/exercises", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	h, _ := newTestServer(t, Options{})
	req := httptest.NewRequest(http.MethodOptions, "/api/exercises", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
