package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mindweave/sevenmind/internal/pipeline"
	"github.com/mindweave/sevenmind/pkg/memory"
)

// ErrConversationBusy is returned by RunTurn when a turn is already in
// flight for the conversation.
var ErrConversationBusy = errors.New("app: conversation has a turn in flight")

// turnLocks tracks which conversations currently have a turn in flight.
// Turns within one conversation are strictly sequential; a second request
// is rejected rather than queued.
type turnLocks struct {
	mu   sync.Mutex
	busy map[string]struct{}
}

// tryAcquire reports whether the conversation was free and is now held.
func (l *turnLocks) tryAcquire(conversationID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, inFlight := l.busy[conversationID]; inFlight {
		return false
	}
	l.busy[conversationID] = struct{}{}
	return true
}

func (l *turnLocks) release(conversationID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.busy, conversationID)
}

// RunTurn processes one user message through the full pipeline and returns
// the integrated reply. It loads the conversation's current temperature
// vector, runs the orchestrator, and appends the user and assistant messages
// to the history once the turn has succeeded.
//
// The chat history must not contain the current user message while the turn
// runs, so both messages are appended after ProcessTurn returns.
func (a *App) RunTurn(ctx context.Context, conversationID, userInput string) (*pipeline.Result, error) {
	if !a.turns.tryAcquire(conversationID) {
		return nil, ErrConversationBusy
	}
	defer a.turns.release(conversationID)

	temps, err := a.store.Temperatures(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("app: load temperatures: %w", err)
	}

	res, err := a.orchestratorFor(conversationID).ProcessTurn(ctx, pipeline.Turn{
		ConversationID: conversationID,
		UserInput:      userInput,
		Temperatures:   temps,
	})
	if err != nil {
		return nil, err
	}

	// The analysis record and next temperatures are already persisted by
	// the orchestrator; only the chat messages remain.
	userMsg := memory.Message{
		ConversationID: conversationID,
		Role:           memory.RoleUser,
		Content:        userInput,
	}
	if err := a.store.AppendMessage(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("app: append user message: %w", err)
	}
	assistantMsg := memory.Message{
		ConversationID: conversationID,
		Role:           memory.RoleAssistant,
		Content:        res.Reply,
	}
	if err := a.store.AppendMessage(ctx, assistantMsg); err != nil {
		return nil, fmt.Errorf("app: append assistant message: %w", err)
	}

	return res, nil
}

// orchestratorFor builds the per-turn orchestrator. A fresh instance per
// turn lets the progress callback carry the conversation ID into the broker.
func (a *App) orchestratorFor(conversationID string) *pipeline.Orchestrator {
	opts := make([]pipeline.Option, 0, len(a.pipeOpts)+2)
	opts = append(opts,
		pipeline.WithProgress(func(p pipeline.Phase) {
			a.progress.Publish(conversationID, p)
		}),
	)
	if a.recaller != nil {
		opts = append(opts, pipeline.WithRecaller(a.recaller))
	}
	opts = append(opts, a.pipeOpts...)
	return pipeline.New(a.providers.LLM, a.store, a.store, opts...)
}
