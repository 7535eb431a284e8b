// Package postgres provides the PostgreSQL-backed implementation of
// [memory.Store]: chat history, per-conversation settings, append-only
// analysis records, and pgvector-based associative recall.
//
// All concerns share a single [pgxpool.Pool]. The pgvector extension must be
// available in the target database; [Migrate] installs it automatically via
// CREATE EXTENSION IF NOT EXISTS.
//
// Usage:
//
//	store, err := postgres.NewStore(ctx, dsn, 1536)
//	if err != nil { … }
//	defer store.Close()
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const ddlMessages = `
CREATE TABLE IF NOT EXISTS messages (
    id              TEXT         PRIMARY KEY,
    conversation_id TEXT         NOT NULL,
    role            TEXT         NOT NULL,
    content         TEXT         NOT NULL,
    created_at      TIMESTAMPTZ  NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_messages_conversation_created
    ON messages (conversation_id, created_at);
`

const ddlSettings = `
CREATE TABLE IF NOT EXISTS conversation_settings (
    conversation_id TEXT         PRIMARY KEY,
    temperatures    JSONB        NOT NULL,
    updated_at      TIMESTAMPTZ  NOT NULL DEFAULT now()
);
`

// ddlAnalysisRecords returns the analysis_records DDL with the embedding
// dimension substituted. The vector dimension is baked into the column type
// at schema creation time.
func ddlAnalysisRecords(embeddingDimensions int) string {
	return fmt.Sprintf(`
CREATE EXTENSION IF NOT EXISTS vector;

CREATE TABLE IF NOT EXISTS analysis_records (
    id              TEXT         PRIMARY KEY,
    conversation_id TEXT         NOT NULL,
    user_input      TEXT         NOT NULL,
    stage_outputs   JSONB        NOT NULL DEFAULT '{}',
    reply           TEXT         NOT NULL,
    measurements    JSONB        NOT NULL DEFAULT '[]',
    temperatures    JSONB        NOT NULL,
    embedding       vector(%d),
    created_at      TIMESTAMPTZ  NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_analysis_records_conversation_created
    ON analysis_records (conversation_id, created_at);

CREATE INDEX IF NOT EXISTS idx_analysis_records_embedding
    ON analysis_records USING hnsw (embedding vector_cosine_ops);
`, embeddingDimensions)
}

// Migrate creates or ensures all required tables, indexes, and extensions
// exist. It is idempotent and safe to call on every application start.
//
// embeddingDimensions must match the configured embeddings model (e.g. 1536
// for OpenAI text-embedding-3-small). Changing it after the first migration
// requires a manual schema update.
func Migrate(ctx context.Context, pool *pgxpool.Pool, embeddingDimensions int) error {
	statements := []string{
		ddlMessages,
		ddlSettings,
		ddlAnalysisRecords(embeddingDimensions),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres migrate: %w", err)
		}
	}
	return nil
}
