package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/samber/lo"

	"github.com/abhisek/clozeit/internal/exercise"
	"github.com/abhisek/clozeit/internal/passage"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

type generateRequest struct {
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
	// WordsToBlank is still sent by web clients. Generation ignores it;
	// gaps are chosen later by gap frequency.
	WordsToBlank int `json:"wordsToBlank"`
}

type generateResponse struct {
	Text string `json:"text"`
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type exerciseRequest struct {
	Text         string `json:"text"`
	Type         string `json:"type"`
	GapFrequency int    `json:"gapFrequency"`
}

type gradeRequest struct {
	exerciseRequest
	Answers []string `json:"answers"`
}

type gradeResponse struct {
	exercise.Score
	Percentage int    `json:"percentage"`
	Results    []bool `json:"results"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

func (s *Server) handleGenerateCloze(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil {
		writeError(w, http.StatusServiceUnavailable, "LLM provider not configured")
		return
	}
	var req generateRequest
	if !s.decode(w, r, &req) {
		return
	}
	topic, err := passage.ParseTopic(req.Topic)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	difficulty, err := passage.ParseDifficulty(req.Difficulty)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := s.generator.Generate(r.Context(), passage.Input{Topic: topic, Difficulty: difficulty})
	if err != nil {
		s.logger.WithError(err).WithField("topic", topic).Error("passage generation failed")
		writeError(w, http.StatusBadGateway, "Failed to generate cloze test")
		return
	}
	writeJSON(w, http.StatusOK, generateResponse{Text: p.Text})
}

func (s *Server) handleAnalyzeText(w http.ResponseWriter, r *http.Request) {
	if s.analyzer == nil {
		writeError(w, http.StatusServiceUnavailable, "LLM provider not configured")
		return
	}
	var req analyzeRequest
	if !s.decode(w, r, &req) {
		return
	}

	a, err := s.analyzer.Analyze(r.Context(), req.Text)
	if err != nil {
		s.logger.WithError(err).Error("text analysis failed")
		writeError(w, http.StatusBadGateway, "Failed to analyze text")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	var req exerciseRequest
	if !s.decode(w, r, &req) {
		return
	}
	ex, ok := buildExercise(w, req)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newExerciseView(ex))
}

func (s *Server) handleGradeExercise(w http.ResponseWriter, r *http.Request) {
	var req gradeRequest
	if !s.decode(w, r, &req) {
		return
	}
	ex, ok := buildExercise(w, req.exerciseRequest)
	if !ok {
		return
	}
	if len(req.Answers) > ex.BlankCount() {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("got %d answers for %d blanks", len(req.Answers), ex.BlankCount()))
		return
	}

	score, results := ex.Grade(req.Answers)
	writeJSON(w, http.StatusOK, gradeResponse{
		Score:      score,
		Percentage: score.Percentage(),
		Results:    results,
	})
}

// buildExercise validates req and builds the exercise. Building is
// deterministic, so grading rebuilds from the same text and options.
func buildExercise(w http.ResponseWriter, req exerciseRequest) (*exercise.Exercise, bool) {
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return nil, false
	}
	mode := exercise.ModeCTest
	if req.Type != "" {
		m, err := exercise.ParseMode(req.Type)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return nil, false
		}
		mode = m
	}
	if g := req.GapFrequency; g < 0 || g > exercise.MaxGapFrequency {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("gapFrequency must be between %d and %d", exercise.MinGapFrequency, exercise.MaxGapFrequency))
		return nil, false
	}
	return exercise.Build(req.Text, exercise.Options{Mode: mode, GapFrequency: req.GapFrequency}), true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

type exerciseView struct {
	ID           string        `json:"id"`
	Type         exercise.Mode `json:"type"`
	GapFrequency int           `json:"gapFrequency"`
	Paragraphs   [][]tokenView `json:"paragraphs"`
	Blanks       []blankView   `json:"blanks"`
}

// tokenView is either plain text or a reference to a blank.
type tokenView struct {
	Text  string `json:"text,omitempty"`
	Blank *int   `json:"blank,omitempty"`
}

type blankView struct {
	Length   int    `json:"length"`
	Revealed string `json:"revealed"`
}

func newExerciseView(ex *exercise.Exercise) exerciseView {
	blanks := ex.NewBlanks()
	return exerciseView{
		ID:           ex.ID,
		Type:         ex.Mode,
		GapFrequency: ex.GapFrequency,
		Paragraphs: lo.Map(ex.Paragraphs, func(p exercise.Paragraph, _ int) []tokenView {
			var out []tokenView
			for _, seg := range p.Segments {
				for _, t := range seg.Tokens {
					if t.BlankIndex < 0 {
						out = append(out, tokenView{Text: t.Text})
						continue
					}
					idx := t.BlankIndex
					out = append(out, tokenView{Blank: &idx})
				}
			}
			return out
		}),
		Blanks: lo.Map(blanks, func(b *exercise.Blank, _ int) blankView {
			return blankView{Length: b.Len(), Revealed: string([]rune(b.Word())[:b.Revealed()])}
		}),
	}
}
