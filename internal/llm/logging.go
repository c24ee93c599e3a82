package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/nookclass/internal/store"
)

// RequestRecorder persists one row per LLM call.
type RequestRecorder interface {
	RecordLLMRequest(ctx context.Context, req store.LLMRequest) error
}

// LoggingProvider is a decorator that logs every LLM request and records
// it with a RequestRecorder.
type LoggingProvider struct {
	inner    Provider
	provider string
	rec      RequestRecorder
	logger   logrus.FieldLogger
}

// WithLogging wraps a Provider with request logging. rec may be nil.
func WithLogging(p Provider, provider string, rec RequestRecorder, logger logrus.FieldLogger) Provider {
	return &LoggingProvider{inner: p, provider: provider, rec: rec, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	latency := time.Since(start)

	row := store.LLMRequest{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   latency.Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
		CreatedAt:   start,
	}
	if resp != nil {
		row.InputTokens = resp.Usage.InputTokens
		row.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			row.Model = resp.Model
		}
		row.ResponseBody = string(resp.Content)
	}
	if err != nil {
		row.ErrorMessage = err.Error()
	}

	entry := l.logger.WithFields(logrus.Fields{
		"provider":      row.Provider,
		"model":         row.Model,
		"purpose":       row.Purpose,
		"latency":       latency,
		"input_tokens":  row.InputTokens,
		"output_tokens": row.OutputTokens,
	})
	if err != nil {
		entry.WithError(err).Warn("llm request failed")
	} else {
		entry.Debug("llm request")
	}

	// A failed write never fails the request.
	if l.rec != nil {
		if recErr := l.rec.RecordLLMRequest(ctx, row); recErr != nil {
			l.logger.WithError(recErr).Warn("failed to record llm request")
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
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
