package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"
)

// retryPolicy says how often a failure may be retried within one call.
type retryPolicy int

const (
	retryNever retryPolicy = iota
	retryOnce
	retryAlways
)

// classify maps an error to its retry policy. Cancellation and truncation
// are final, a schema mismatch gets one more try, and anything else
// (rate limits, outages, network errors) is treated as transient.
func classify(err error) retryPolicy {
	var (
		maxTok  *ErrMaxTokensExceeded
		invalid *ErrInvalidResponse
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return retryNever
	case errors.As(err, &maxTok):
		return retryNever
	case errors.As(err, &invalid):
		return retryOnce
	}
	return retryAlways
}

type retryProvider struct {
	inner  Provider
	cfg    RetryConfig
	logger logrus.FieldLogger
}

// WithRetry retries transient failures of p with exponential backoff and
// ±20% jitter, honoring a rate limit's RetryAfter. logger may be nil.
func WithRetry(p Provider, cfg RetryConfig, logger logrus.FieldLogger) Provider {
	return &retryProvider{inner: p, cfg: cfg, logger: orDiscard(logger)}
}

func (r *retryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var (
		err       error
		usedRetry bool
	)
	attempts := max(r.cfg.MaxAttempts, 1)
	for attempt := range attempts {
		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		switch classify(err) {
		case retryNever:
			return nil, err
		case retryOnce:
			if usedRetry {
				return nil, err
			}
			usedRetry = true
		}

		if attempt == attempts-1 {
			break
		}
		wait := r.delay(attempt, err)
		r.logger.WithFields(logrus.Fields{
			"attempt": attempt + 1,
			"wait":    wait,
		}).WithError(err).Debug("retrying LLM request")

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	return nil, err
}

func (r *retryProvider) ModelID() string { return r.inner.ModelID() }

// delay returns how long to wait before the attempt after attempt.
func (r *retryProvider) delay(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	base := math.Min(
		float64(r.cfg.InitialWait)*math.Pow(r.cfg.Multiplier, float64(attempt)),
		float64(r.cfg.MaxWait),
	)
	jittered := base * (0.8 + 0.4*rand.Float64())
	return time.Duration(math.Max(jittered, 0))
}
