package store

import (
	"context"
	"fmt"
)

const (
	tableVocab       = "vocab_entries"
	tableLookupCache = "lookup_cache"
	tableLLMRequests = "llm_requests"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS vocab_entries (
		position INTEGER PRIMARY KEY AUTOINCREMENT,
		word TEXT NOT NULL UNIQUE,
		part_of_speech TEXT NOT NULL DEFAULT '',
		ipa TEXT NOT NULL DEFAULT '',
		definition_en TEXT NOT NULL DEFAULT '',
		definition_zh TEXT NOT NULL DEFAULT '',
		example_en TEXT NOT NULL DEFAULT '',
		example_zh TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS lookup_cache (
		word TEXT PRIMARY KEY,
		entry TEXT NOT NULL,
		fetched_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS llm_requests (
		id TEXT PRIMARY KEY,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS llm_requests_created_at ON llm_requests (created_at)`,
}

// migrate creates any missing tables. Every statement is idempotent.
func (s *Store) migrate(ctx context.Context) error {
	for _, m := range migrations {
		if _, err := s.db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(m), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
