package memory

import (
	"context"

	"github.com/mindweave/sevenmind/pkg/mind"
)

// HistoryStore holds the chat history and analysis records of conversations.
//
// Implementations must be safe for concurrent use. Records are append-only:
// there is no update operation, and deletion happens only through
// [HistoryStore.DeleteConversation].
type HistoryStore interface {
	// RecentMessages returns up to limit most recent messages of the
	// conversation, oldest first. An unknown conversation returns an empty
	// slice, not an error.
	RecentMessages(ctx context.Context, conversationID string, limit int) ([]Message, error)

	// AppendMessage appends one chat message to the conversation.
	AppendMessage(ctx context.Context, msg Message) error

	// AppendAnalysisRecord appends the completed turn's analysis record.
	AppendAnalysisRecord(ctx context.Context, rec AnalysisRecord) error

	// Records returns up to limit most recent analysis records of the
	// conversation, newest first.
	Records(ctx context.Context, conversationID string, limit int) ([]AnalysisRecord, error)

	// DeleteConversation removes the conversation's messages, records, and
	// settings. Deleting an unknown conversation is a no-op.
	DeleteConversation(ctx context.Context, conversationID string) error
}

// SettingsStore holds the per-conversation temperature vector. It is read
// once at turn start and written once at turn end by the single active turn.
type SettingsStore interface {
	// Temperatures returns the conversation's current vector, or the
	// baseline vector when none has been saved yet.
	Temperatures(ctx context.Context, conversationID string) (mind.TemperatureVector, error)

	// SaveTemperatures stores the conversation's next-turn vector.
	SaveTemperatures(ctx context.Context, conversationID string, v mind.TemperatureVector) error
}

// RecallIndex retrieves prior exchanges semantically similar to an embedding
// vector. Implementations without vector support may return an empty slice.
type RecallIndex interface {
	// SimilarExchanges returns up to k prior exchanges of the conversation
	// ranked by similarity to embedding, most similar first.
	SimilarExchanges(ctx context.Context, conversationID string, embedding []float32, k int) ([]Exchange, error)
}

// Store combines all persistence concerns of a conversation.
type Store interface {
	HistoryStore
	SettingsStore
	RecallIndex
}
