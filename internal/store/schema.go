package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const llmEventsTable = "llm_request_events"

// Column names of llmEventsTable.
const (
	colID           = "id"
	colSequence     = "sequence"
	colRequestID    = "request_id"
	colProvider     = "provider"
	colModel        = "model"
	colPurpose      = "purpose"
	colInputTokens  = "input_tokens"
	colOutputTokens = "output_tokens"
	colLatencyMs    = "latency_ms"
	colSuccess      = "success"
	colErrorMessage = "error_message"
	colRequestBody  = "request_body"
	colResponseBody = "response_body"
	colTimestamp    = "timestamp"
)

// sqlite returns a statement builder bound to the SQLite dialect.
func sqlite() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// llmEventsDDL creates the ledger table.
const llmEventsDDL = `CREATE TABLE IF NOT EXISTS ` + llmEventsTable + ` (
	` + colID + ` INTEGER PRIMARY KEY AUTOINCREMENT,
	` + colSequence + ` INTEGER NOT NULL,
	` + colRequestID + ` TEXT NOT NULL DEFAULT '',
	` + colProvider + ` TEXT NOT NULL,
	` + colModel + ` TEXT NOT NULL,
	` + colPurpose + ` TEXT NOT NULL,
	` + colInputTokens + ` INTEGER NOT NULL DEFAULT 0,
	` + colOutputTokens + ` INTEGER NOT NULL DEFAULT 0,
	` + colLatencyMs + ` INTEGER NOT NULL DEFAULT 0,
	` + colSuccess + ` INTEGER NOT NULL,
	` + colErrorMessage + ` TEXT NOT NULL DEFAULT '',
	` + colRequestBody + ` TEXT NOT NULL DEFAULT '',
	` + colResponseBody + ` TEXT NOT NULL DEFAULT '',
	` + colTimestamp + ` INTEGER NOT NULL
)`

var llmEventsIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_llm_events_sequence ON ` + llmEventsTable + ` (` + colSequence + `)`,
	`CREATE INDEX IF NOT EXISTS idx_llm_events_purpose ON ` + llmEventsTable + ` (` + colPurpose + `)`,
}

// migrate creates the ledger tables if they do not exist yet.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	for _, stmt := range append([]string{llmEventsDDL}, llmEventsIndexes...) {
		if err := drv.Exec(ctx, stmt, []any{}, nil); err != nil {
			return fmt.Errorf("migrate %s: %w", llmEventsTable, err)
		}
	}
	return nil
}
