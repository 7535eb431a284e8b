// Package memory defines the persistence interfaces and record types for
// sevenmind conversations: the chat history, the per-conversation settings
// (temperature vector), and the analysis record written at the end of every
// successful turn.
package memory

import (
	"time"

	"github.com/mindweave/sevenmind/pkg/mind"
	"github.com/mindweave/sevenmind/pkg/mind/emotion"
)

// Message roles as stored in the chat history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of a conversation's chat history.
type Message struct {
	// ID uniquely identifies the message.
	ID string

	// ConversationID identifies the owning conversation.
	ConversationID string

	// Role is [RoleUser] or [RoleAssistant].
	Role string

	// Content is the message text. Assistant messages may carry an appended
	// state annotation; the pipeline strips it when rebuilding context.
	Content string

	// CreatedAt is the message timestamp.
	CreatedAt time.Time
}

// AnalysisRecord is the persisted artifact of one completed turn. It is
// created only when the whole pipeline succeeded, never mutated afterwards,
// and deleted only together with its owning conversation.
type AnalysisRecord struct {
	// ID uniquely identifies the record.
	ID string

	// ConversationID identifies the owning conversation.
	ConversationID string

	// UserInput is the user message that drove the turn, verbatim.
	UserInput string

	// StageOutputs holds every agent's raw output text, keyed by role.
	StageOutputs map[mind.Role]string

	// Reply is the integrated reply returned to the caller (without any
	// presentation-layer annotation).
	Reply string

	// Measurements is the parsed emotional self-analysis.
	Measurements []emotion.Measurement

	// Temperatures is the next-turn vector blended from Measurements.
	Temperatures mind.TemperatureVector

	// Embedding is the vector of UserInput+Reply used for associative
	// recall. Nil when no embeddings provider is configured.
	Embedding []float32

	// CreatedAt is the record timestamp.
	CreatedAt time.Time
}

// Exchange is a prior (user input, reply) pair surfaced by associative
// recall.
type Exchange struct {
	UserInput string
	Reply     string
	CreatedAt time.Time
}
