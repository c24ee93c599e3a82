package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// LLMRequest captures a single LLM API call.
type LLMRequest struct {
	ID           string    `sql:"id"`
	Provider     string    `sql:"provider"`
	Model        string    `sql:"model"`
	Purpose      string    `sql:"purpose"`
	InputTokens  int       `sql:"input_tokens"`
	OutputTokens int       `sql:"output_tokens"`
	LatencyMs    int64     `sql:"latency_ms"`
	Success      bool      `sql:"success"`
	ErrorMessage string    `sql:"error_message"`
	RequestBody  string    `sql:"-"`
	ResponseBody string    `sql:"-"`
	CreatedAt    time.Time `sql:"-"`
}

type llmRequestRow struct {
	LLMRequest
	CreatedAtMs int64 `sql:"created_at"`
}

// LLMUsage aggregates requests per model.
type LLMUsage struct {
	Model        string `sql:"model"`
	Requests     int    `sql:"requests"`
	Failures     int    `sql:"failures"`
	InputTokens  int    `sql:"input_tokens"`
	OutputTokens int    `sql:"output_tokens"`
}

// LLMRequestRepo is the append-only log of LLM calls.
type LLMRequestRepo struct {
	drv *entsql.Driver
}

// RecordLLMRequest appends req. A missing ID or timestamp is filled in.
func (r *LLMRequestRepo) RecordLLMRequest(ctx context.Context, req LLMRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}

	q := builder.Insert(tableLLMRequests).
		Columns("id", "provider", "model", "purpose",
			"input_tokens", "output_tokens", "latency_ms",
			"success", "error_message",
			"request_body", "response_body", "created_at").
		Values(req.ID, req.Provider, req.Model, req.Purpose,
			req.InputTokens, req.OutputTokens, req.LatencyMs,
			req.Success, req.ErrorMessage,
			req.RequestBody, req.ResponseBody, req.CreatedAt.UnixMilli())
	if _, err := exec(ctx, r.drv, q); err != nil {
		return fmt.Errorf("save LLM request: %w", err)
	}
	return nil
}

// Recent returns up to limit requests, newest first. Bodies are omitted.
func (r *LLMRequestRepo) Recent(ctx context.Context, limit int) ([]LLMRequest, error) {
	var rows []llmRequestRow
	q := builder.Select("id", "provider", "model", "purpose",
		"input_tokens", "output_tokens", "latency_ms",
		"success", "error_message", "created_at").
		From(builder.Table(tableLLMRequests)).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("rowid")).
		Limit(limit)
	if err := query(ctx, r.drv, q, &rows); err != nil {
		return nil, fmt.Errorf("recent LLM requests: %w", err)
	}

	out := make([]LLMRequest, len(rows))
	for i, row := range rows {
		out[i] = row.LLMRequest
		out[i].CreatedAt = time.UnixMilli(row.CreatedAtMs)
	}
	return out, nil
}

// Usage sums token counts per model, most used first.
func (r *LLMRequestRepo) Usage(ctx context.Context) ([]LLMUsage, error) {
	var rows []LLMUsage
	q := builder.Select(
		"model",
		entsql.As(entsql.Count("*"), "requests"),
		entsql.As("SUM(1 - success)", "failures"),
		entsql.As(entsql.Sum("input_tokens"), "input_tokens"),
		entsql.As(entsql.Sum("output_tokens"), "output_tokens"),
	).
		From(builder.Table(tableLLMRequests)).
		GroupBy("model").
		OrderBy(entsql.Desc("requests"), "model")
	if err := query(ctx, r.drv, q, &rows); err != nil {
		return nil, fmt.Errorf("LLM usage: %w", err)
	}
	return rows, nil
}
