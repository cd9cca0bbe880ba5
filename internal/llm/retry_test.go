package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2,
	}
}

var okPassage = MockResponse{Content: json.RawMessage(`{"passage_text":"ok"}`)}

func down() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
}

func badShape() MockResponse {
	return MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`bad`), Err: errors.New("bad")}}
}

func TestRetryAttempts(t *testing.T) {
	tests := []struct {
		name      string
		responses []MockResponse
		wantCalls int
		wantErr   bool
	}{
		{"first attempt succeeds", []MockResponse{okPassage}, 1, false},
		{"outage then success", []MockResponse{down(), okPassage}, 2, false},
		{"outage on every attempt", []MockResponse{down(), down(), down()}, 3, true},
		{"rate limit honors retry-after", []MockResponse{
			{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}},
			okPassage,
		}, 2, false},
		{"truncation is final", []MockResponse{
			{Err: &ErrMaxTokensExceeded{Content: json.RawMessage(`{}`)}},
			okPassage,
		}, 1, true},
		{"invalid response retried once", []MockResponse{badShape(), badShape(), okPassage}, 2, true},
		{"invalid response then outage", []MockResponse{badShape(), down(), okPassage}, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			resp, err := WithRetry(mock, fastRetry(), nil).Generate(context.Background(), Request{})

			assert.Equal(t, tt.wantCalls, mock.CallCount())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, `{"passage_text":"ok"}`, string(resp.Content))
		})
	}
}

func TestRetryKeepsErrorType(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrMaxTokensExceeded{}})
	_, err := WithRetry(mock, fastRetry(), nil).Generate(context.Background(), Request{})

	var maxTok *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &maxTok)
}

func TestRetryStopsOnCancel(t *testing.T) {
	mock := NewMockProvider(down(), down(), okPassage)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WithRetry(mock, fastRetry(), nil).Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetryDelay(t *testing.T) {
	r := &retryProvider{cfg: RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: 300 * time.Millisecond, Multiplier: 2}}
	plain := errors.New("boom")

	for attempt, base := range []time.Duration{100, 200, 300, 300} {
		base *= time.Millisecond
		d := r.delay(attempt, plain)
		assert.GreaterOrEqual(t, d, base*8/10, "attempt %d", attempt)
		assert.LessOrEqual(t, d, base*12/10, "attempt %d", attempt)
	}

	rl := &ErrRateLimit{RetryAfter: 7 * time.Second}
	assert.Equal(t, 7*time.Second, r.delay(0, rl))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, retryNever, classify(context.DeadlineExceeded))
	assert.Equal(t, retryNever, classify(&ErrMaxTokensExceeded{}))
	assert.Equal(t, retryOnce, classify(&ErrInvalidResponse{Err: errors.New("x")}))
	assert.Equal(t, retryAlways, classify(&ErrRateLimit{Err: errors.New("429")}))
	assert.Equal(t, retryAlways, classify(errors.New("connection reset")))
}

func TestRetryModelID(t *testing.T) {
	assert.Equal(t, "mock", WithRetry(NewMockProvider(), fastRetry(), nil).ModelID())
}
