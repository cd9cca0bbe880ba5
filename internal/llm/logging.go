package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/clozeit/internal/store"
)

type auditProvider struct {
	inner    Provider
	provider string
	events   store.EventRepo
	logger   logrus.FieldLogger
}

// WithLogging writes a log line for every request and appends it to the
// request log in repo. repo and logger may be nil.
func WithLogging(p Provider, providerName string, repo store.EventRepo, logger logrus.FieldLogger) Provider {
	return &auditProvider{inner: p, provider: providerName, events: repo, logger: orDiscard(logger)}
}

func orDiscard(logger logrus.FieldLogger) logrus.FieldLogger {
	if logger != nil {
		return logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func (a *auditProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := a.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:    a.provider,
		Model:       a.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	entry := a.logger.WithFields(logrus.Fields{
		"provider":   ev.Provider,
		"model":      ev.Model,
		"purpose":    ev.Purpose,
		"latency_ms": ev.LatencyMs,
		"tokens_in":  ev.InputTokens,
		"tokens_out": ev.OutputTokens,
	})
	if err != nil {
		entry.WithError(err).Warn("llm request failed")
	} else {
		entry.Debug("llm request")
	}

	// The request outcome stands even when the audit write fails.
	if a.events != nil {
		if werr := a.events.AppendLLMRequest(ctx, ev); werr != nil {
			a.logger.WithError(werr).Warn("could not record llm request")
		}
	}
	return resp, err
}

func (a *auditProvider) ModelID() string {
	return a.inner.ModelID()
}

// transcript renders req as tagged sections for the request log.
func transcript(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
