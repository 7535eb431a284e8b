package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"
	pgxvec "github.com/pgvector/pgvector-go/pgx"

	"github.com/mindweave/sevenmind/pkg/memory"
	"github.com/mindweave/sevenmind/pkg/mind"
)

// Store is the PostgreSQL-backed [memory.Store]. All operations are safe for
// concurrent use.
type Store struct {
	pool *pgxpool.Pool
}

var _ memory.Store = (*Store)(nil)

// NewStore creates a Store, establishes a connection pool to the PostgreSQL
// database at dsn, registers pgvector types on every connection, and runs
// [Migrate] to ensure all required tables and extensions exist.
func NewStore(ctx context.Context, dsn string, embeddingDimensions int) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres store: parse dsn: %w", err)
	}

	// Register pgvector types on every new connection so that the embedding
	// column can be scanned into and inserted from pgvector.Vector values.
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvec.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres store: create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres store: ping: %w", err)
	}

	if err := Migrate(ctx, pool, embeddingDimensions); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres store: migrate: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close releases all connections held by the underlying pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Ping verifies database connectivity, for readiness checks.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// RecentMessages implements memory.HistoryStore.
func (s *Store) RecentMessages(ctx context.Context, conversationID string, limit int) ([]memory.Message, error) {
	const q = `
		SELECT id, conversation_id, role, content, created_at
		FROM   (SELECT id, conversation_id, role, content, created_at
		        FROM   messages
		        WHERE  conversation_id = $1
		        ORDER  BY created_at DESC
		        LIMIT  $2) latest
		ORDER  BY created_at`

	rows, err := s.pool.Query(ctx, q, conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres store: recent messages: %w", err)
	}
	defer rows.Close()

	var out []memory.Message
	for rows.Next() {
		var m memory.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres store: scan message: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres store: recent messages: %w", err)
	}
	return out, nil
}

// AppendMessage implements memory.HistoryStore.
func (s *Store) AppendMessage(ctx context.Context, msg memory.Message) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	const q = `
		INSERT INTO messages (id, conversation_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := s.pool.Exec(ctx, q, msg.ID, msg.ConversationID, msg.Role, msg.Content, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("postgres store: append message: %w", err)
	}
	return nil
}

// AppendAnalysisRecord implements memory.HistoryStore.
func (s *Store) AppendAnalysisRecord(ctx context.Context, rec memory.AnalysisRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	stageOutputs, err := json.Marshal(rec.StageOutputs)
	if err != nil {
		return fmt.Errorf("postgres store: marshal stage outputs: %w", err)
	}
	measurements, err := json.Marshal(rec.Measurements)
	if err != nil {
		return fmt.Errorf("postgres store: marshal measurements: %w", err)
	}
	temperatures, err := json.Marshal(rec.Temperatures)
	if err != nil {
		return fmt.Errorf("postgres store: marshal temperatures: %w", err)
	}

	var embedding any
	if len(rec.Embedding) > 0 {
		embedding = pgvector.NewVector(rec.Embedding)
	}

	const q = `
		INSERT INTO analysis_records
		    (id, conversation_id, user_input, stage_outputs, reply, measurements, temperatures, embedding, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = s.pool.Exec(ctx, q,
		rec.ID,
		rec.ConversationID,
		rec.UserInput,
		stageOutputs,
		rec.Reply,
		measurements,
		temperatures,
		embedding,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres store: append analysis record: %w", err)
	}
	return nil
}

// Records implements memory.HistoryStore.
func (s *Store) Records(ctx context.Context, conversationID string, limit int) ([]memory.AnalysisRecord, error) {
	const q = `
		SELECT id, conversation_id, user_input, stage_outputs, reply, measurements, temperatures, created_at
		FROM   analysis_records
		WHERE  conversation_id = $1
		ORDER  BY created_at DESC
		LIMIT  $2`

	rows, err := s.pool.Query(ctx, q, conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres store: records: %w", err)
	}
	defer rows.Close()

	var out []memory.AnalysisRecord
	for rows.Next() {
		var (
			rec          memory.AnalysisRecord
			stageOutputs []byte
			measurements []byte
			temperatures []byte
		)
		if err := rows.Scan(&rec.ID, &rec.ConversationID, &rec.UserInput,
			&stageOutputs, &rec.Reply, &measurements, &temperatures, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres store: scan record: %w", err)
		}
		if err := json.Unmarshal(stageOutputs, &rec.StageOutputs); err != nil {
			return nil, fmt.Errorf("postgres store: unmarshal stage outputs: %w", err)
		}
		if err := json.Unmarshal(measurements, &rec.Measurements); err != nil {
			return nil, fmt.Errorf("postgres store: unmarshal measurements: %w", err)
		}
		if err := json.Unmarshal(temperatures, &rec.Temperatures); err != nil {
			return nil, fmt.Errorf("postgres store: unmarshal temperatures: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres store: records: %w", err)
	}
	return out, nil
}

// DeleteConversation implements memory.HistoryStore. Messages, analysis
// records, and settings are removed in one transaction so a conversation is
// never left half-deleted.
func (s *Store) DeleteConversation(ctx context.Context, conversationID string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres store: delete conversation: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, q := range []string{
		`DELETE FROM messages WHERE conversation_id = $1`,
		`DELETE FROM analysis_records WHERE conversation_id = $1`,
		`DELETE FROM conversation_settings WHERE conversation_id = $1`,
	} {
		if _, err := tx.Exec(ctx, q, conversationID); err != nil {
			return fmt.Errorf("postgres store: delete conversation: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres store: delete conversation: commit: %w", err)
	}
	return nil
}

// Temperatures implements memory.SettingsStore. An unknown conversation
// returns the baseline vector.
func (s *Store) Temperatures(ctx context.Context, conversationID string) (mind.TemperatureVector, error) {
	const q = `SELECT temperatures FROM conversation_settings WHERE conversation_id = $1`

	var raw []byte
	err := s.pool.QueryRow(ctx, q, conversationID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return mind.Baseline(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("postgres store: temperatures: %w", err)
	}

	var v mind.TemperatureVector
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("postgres store: unmarshal temperatures: %w", err)
	}
	return v, nil
}

// SaveTemperatures implements memory.SettingsStore.
func (s *Store) SaveTemperatures(ctx context.Context, conversationID string, v mind.TemperatureVector) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("postgres store: marshal temperatures: %w", err)
	}

	const q = `
		INSERT INTO conversation_settings (conversation_id, temperatures, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (conversation_id) DO UPDATE SET
		    temperatures = EXCLUDED.temperatures,
		    updated_at   = now()`

	if _, err := s.pool.Exec(ctx, q, conversationID, raw); err != nil {
		return fmt.Errorf("postgres store: save temperatures: %w", err)
	}
	return nil
}

// SimilarExchanges implements memory.RecallIndex using pgvector cosine
// distance over the analysis_records embedding column.
func (s *Store) SimilarExchanges(ctx context.Context, conversationID string, embedding []float32, k int) ([]memory.Exchange, error) {
	const q = `
		SELECT user_input, reply, created_at
		FROM   analysis_records
		WHERE  conversation_id = $1
		  AND  embedding IS NOT NULL
		ORDER  BY embedding <=> $2
		LIMIT  $3`

	rows, err := s.pool.Query(ctx, q, conversationID, pgvector.NewVector(embedding), k)
	if err != nil {
		return nil, fmt.Errorf("postgres store: similar exchanges: %w", err)
	}
	defer rows.Close()

	var out []memory.Exchange
	for rows.Next() {
		var ex memory.Exchange
		if err := rows.Scan(&ex.UserInput, &ex.Reply, &ex.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres store: scan exchange: %w", err)
		}
		out = append(out, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres store: similar exchanges: %w", err)
	}
	return out, nil
}
