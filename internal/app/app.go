// Package app wires all sevenmind subsystems into a running application.
//
// The App struct owns the full lifecycle: New creates and connects all
// subsystems, RunTurn drives one conversation turn through the pipeline,
// and Shutdown tears everything down in order.
//
// For testing, inject mock implementations via functional options
// (WithStore, WithOrchestratorOptions). When an option is not provided,
// New creates real implementations from the config.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mindweave/sevenmind/internal/config"
	"github.com/mindweave/sevenmind/internal/pipeline"
	"github.com/mindweave/sevenmind/pkg/memory"
	"github.com/mindweave/sevenmind/pkg/memory/memstore"
	"github.com/mindweave/sevenmind/pkg/memory/postgres"
	"github.com/mindweave/sevenmind/pkg/provider/embeddings"
	"github.com/mindweave/sevenmind/pkg/provider/llm"
)

// Providers holds one interface value per provider slot. Nil means the
// provider is not configured. Populated by main.go from the config.
type Providers struct {
	LLM        llm.Provider
	Embeddings embeddings.Provider
}

// App owns all subsystem lifetimes and serialises turn processing per
// conversation.
type App struct {
	cfg       *config.Config
	providers *Providers

	store    memory.Store
	recaller pipeline.Recaller
	progress *ProgressBroker

	// pipeOpts are the config-derived orchestrator options, shared by every
	// per-turn orchestrator.
	pipeOpts []pipeline.Option

	// turns guards against concurrent turns within one conversation.
	turns turnLocks

	// closers are called in order during Shutdown.
	closers []func() error

	// stopOnce guards the Shutdown path.
	stopOnce sync.Once
}

// Option is a functional option for New. Use these to inject test doubles.
type Option func(*App)

// WithStore injects a conversation store instead of creating one from config.
func WithStore(s memory.Store) Option {
	return func(a *App) { a.store = s }
}

// WithOrchestratorOptions appends extra options to every per-turn
// orchestrator, after the config-derived ones.
func WithOrchestratorOptions(opts ...pipeline.Option) Option {
	return func(a *App) { a.pipeOpts = append(a.pipeOpts, opts...) }
}

// ─── New ─────────────────────────────────────────────────────────────────────

// New creates an App by wiring all subsystems together. The providers struct
// comes from main.go. Use Option functions to inject test doubles.
func New(ctx context.Context, cfg *config.Config, providers *Providers, opts ...Option) (*App, error) {
	if providers == nil || providers.LLM == nil {
		return nil, fmt.Errorf("app: an LLM provider is required")
	}

	a := &App{
		cfg:       cfg,
		providers: providers,
		progress:  NewProgressBroker(),
		turns:     turnLocks{busy: make(map[string]struct{})},
	}

	// Config-derived orchestrator options come first so injected test
	// options can override them.
	a.pipeOpts = a.orchestratorOptions()

	for _, o := range opts {
		o(a)
	}

	// ── 1. Conversation store ────────────────────────────────────────────
	if err := a.initStore(ctx); err != nil {
		return nil, fmt.Errorf("app: init store: %w", err)
	}

	// ── 2. Associative recall ────────────────────────────────────────────
	a.initRecall()

	return a, nil
}

// ─── Init helpers ────────────────────────────────────────────────────────────

// initStore sets up the PostgreSQL store, or the in-process store when no
// DSN is configured.
func (a *App) initStore(ctx context.Context) error {
	if a.store != nil {
		return nil // injected
	}

	dsn := a.cfg.Memory.PostgresDSN
	if dsn == "" {
		slog.Info("no postgres_dsn configured, conversations live in process memory")
		a.store = memstore.New()
		return nil
	}

	dims := a.cfg.Memory.EmbeddingDimensions
	if dims == 0 {
		dims = 1536 // matches OpenAI text-embedding-3-small
	}

	store, err := postgres.NewStore(ctx, dsn, dims)
	if err != nil {
		return err
	}
	a.store = store
	a.closers = append(a.closers, func() error {
		store.Close()
		return nil
	})
	return nil
}

// initRecall wires the embeddings provider and the store's recall index into
// a pipeline.Recaller when associative recall is enabled.
func (a *App) initRecall() {
	if !a.cfg.Pipeline.AssociativeRecall {
		return
	}
	if a.providers.Embeddings == nil {
		slog.Warn("associative_recall enabled but no embeddings provider configured")
		return
	}
	a.recaller = NewAssociator(a.providers.Embeddings, a.store)
	slog.Info("associative recall enabled", "model", a.providers.Embeddings.ModelID())
}

// orchestratorOptions translates the pipeline config into orchestrator
// options shared by every turn.
func (a *App) orchestratorOptions() []pipeline.Option {
	var opts []pipeline.Option
	pc := a.cfg.Pipeline
	if pc.Model != "" {
		opts = append(opts, pipeline.WithModel(pc.Model))
	}
	if pc.MaxTokens > 0 {
		opts = append(opts, pipeline.WithMaxTokens(pc.MaxTokens))
	}
	switch {
	case pc.CallTimeoutSeconds < 0:
		opts = append(opts, pipeline.WithCallTimeout(0))
	case pc.CallTimeoutSeconds > 0:
		opts = append(opts, pipeline.WithCallTimeout(time.Duration(pc.CallTimeoutSeconds)*time.Second))
	}
	if pc.AnnotateReplies {
		opts = append(opts, pipeline.WithReplyAnnotation())
	}
	return opts
}

// ─── Accessors ───────────────────────────────────────────────────────────────

// Store returns the conversation store. The server uses it for record
// listing and conversation deletion.
func (a *App) Store() memory.Store { return a.store }

// Progress returns the broker streaming per-conversation pipeline phases.
func (a *App) Progress() *ProgressBroker { return a.progress }

// ─── Shutdown ────────────────────────────────────────────────────────────────

// Shutdown tears down all subsystems in reverse-init order. It respects the
// context deadline: if ctx expires before all closers finish, remaining
// closers are skipped and the context error is returned.
func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error
	a.stopOnce.Do(func() {
		slog.Info("shutting down", "closers", len(a.closers))

		a.progress.Close()

		for i, closer := range a.closers {
			select {
			case <-ctx.Done():
				slog.Warn("shutdown deadline exceeded", "remaining", len(a.closers)-i)
				shutdownErr = ctx.Err()
				return
			default:
			}
			if err := closer(); err != nil {
				slog.Warn("closer error", "index", i, "err", err)
			}
		}

		slog.Info("shutdown complete")
	})
	return shutdownErr
}
