// Package pipeline drives one conversation turn through the seven cognitive
// stages, the integration call, and the emotional self-analysis that feeds
// the next turn's temperature vector.
//
// The chain is strictly sequential; each stage's prompt depends on earlier
// output, so nothing runs concurrently within a turn. The orchestrator
// persists exactly one analysis record and one temperature save per
// successful turn, and persists nothing when any completion call fails.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mindweave/sevenmind/internal/observe"
	"github.com/mindweave/sevenmind/pkg/memory"
	"github.com/mindweave/sevenmind/pkg/mind"
	"github.com/mindweave/sevenmind/pkg/mind/emotion"
	"github.com/mindweave/sevenmind/pkg/provider/llm"
)

const (
	// historyWindow is the maximum number of prior messages (3 exchanges)
	// included in stage context.
	historyWindow = 6

	// recallLimit caps how many similar prior exchanges feed the DayDream
	// stage.
	recallLimit = 3

	// defaultCallTimeout bounds each individual completion call.
	defaultCallTimeout = 60 * time.Second
)

// Recaller supplies associative memory: semantically similar prior
// exchanges for the DayDream stage, and the embedding stored on each
// analysis record. Both operations are best-effort; the pipeline degrades
// to plain history context when they fail.
type Recaller interface {
	// Similar returns up to k prior exchanges semantically close to text.
	Similar(ctx context.Context, conversationID, text string, k int) ([]memory.Exchange, error)

	// Embed returns the embedding vector for text.
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Turn is the input to one ProcessTurn call. Temperatures is the current
// vector loaded by the caller; the orchestrator never reads it from the
// settings store itself.
type Turn struct {
	ConversationID string
	UserInput      string
	Temperatures   mind.TemperatureVector
}

// Result is the outcome of a successful turn.
type Result struct {
	// Reply is the integrated reply text, with the state annotation
	// appended when annotation is enabled.
	Reply string

	// Record is the persisted analysis record for this turn.
	Record memory.AnalysisRecord

	// NextTemperatures is the vector blended from the self-analysis, already
	// saved to the settings store.
	NextTemperatures mind.TemperatureVector
}

// Orchestrator runs turns. Create instances with [New]; the zero value is
// not usable. Safe for concurrent use across conversations; the caller must
// serialise turns within one conversation.
type Orchestrator struct {
	provider llm.Provider
	history  memory.HistoryStore
	settings memory.SettingsStore

	model       string
	maxTokens   int
	callTimeout time.Duration
	annotate    bool
	progress    ProgressFunc
	recaller    Recaller
	metrics     *observe.Metrics
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithModel selects the completion model for all calls. Unrecognised names
// resolve to the default model.
func WithModel(model string) Option {
	return func(o *Orchestrator) { o.model = llm.ResolveModel(model) }
}

// WithMaxTokens caps the length of each completion. Zero means provider
// default.
func WithMaxTokens(n int) Option {
	return func(o *Orchestrator) { o.maxTokens = n }
}

// WithCallTimeout bounds each individual completion call. Zero disables the
// per-call timeout.
func WithCallTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.callTimeout = d }
}

// WithProgress registers a per-phase progress callback. See [ProgressFunc]
// for the blocking contract.
func WithProgress(fn ProgressFunc) Option {
	return func(o *Orchestrator) { o.progress = fn }
}

// WithRecaller enables associative recall for the DayDream stage and
// embedding persistence on analysis records.
func WithRecaller(r Recaller) Option {
	return func(o *Orchestrator) { o.recaller = r }
}

// WithReplyAnnotation appends the measured state and next temperatures to
// every reply.
func WithReplyAnnotation() Option {
	return func(o *Orchestrator) { o.annotate = true }
}

// WithMetrics overrides the metrics instance, mainly for tests.
func WithMetrics(m *observe.Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// New creates an Orchestrator backed by the given completion provider and
// stores.
func New(provider llm.Provider, history memory.HistoryStore, settings memory.SettingsStore, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		provider:    provider,
		history:     history,
		settings:    settings,
		callTimeout: defaultCallTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.metrics == nil {
		o.metrics = observe.DefaultMetrics()
	}
	return o
}

// ProcessTurn runs the full stage chain for one user message and returns the
// reply, the persisted analysis record, and the next-turn temperature
// vector.
//
// Failure semantics: any completion call failing aborts the turn with a
// *StageError; no record is appended and no temperatures are saved, so the
// conversation's stored vector is unchanged.
func (o *Orchestrator) ProcessTurn(ctx context.Context, turn Turn) (*Result, error) {
	ctx, span := observe.StartSpan(ctx, "pipeline.process_turn")
	defer span.End()
	log := observe.Logger(ctx).With("conversation_id", turn.ConversationID)

	if err := turn.Temperatures.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline: current temperatures: %w", err)
	}

	start := time.Now()
	status := "error"
	o.metrics.ActiveTurns.Add(ctx, 1)
	defer func() {
		o.metrics.ActiveTurns.Add(ctx, -1)
		o.metrics.RecordTurn(ctx, status, time.Since(start).Seconds())
	}()
	defer o.report(PhaseIdle)

	messages, err := o.history.RecentMessages(ctx, turn.ConversationID, historyWindow)
	if err != nil {
		return nil, fmt.Errorf("pipeline: load history: %w", err)
	}

	c := &turnContext{
		UserInput: turn.UserInput,
		History:   historyContext(messages),
		Outputs:   make(map[mind.Role]string, len(mind.Roles)),
	}

	if o.recaller != nil {
		exchanges, err := o.recaller.Similar(ctx, turn.ConversationID, turn.UserInput, recallLimit)
		if err != nil {
			log.Warn("associative recall failed, continuing without", "error", err)
		} else {
			c.Recall = recallContext(exchanges)
		}
	}

	for _, st := range stages {
		o.report(st.Phase)
		out, err := o.complete(ctx, st.Prompt(c), turn.Temperatures[st.Role], st.Role.String())
		if err != nil {
			return nil, &StageError{Role: st.Role, Err: err}
		}
		c.Outputs[st.Role] = out
	}

	o.report(PhaseIntegrating)
	reply, err := o.complete(ctx, integrationPrompt(c), integrationTemperature, "integration")
	if err != nil {
		return nil, &StageError{Call: "integration", Err: err}
	}

	analysisText, err := o.complete(ctx, selfAnalysisPrompt(c), selfAnalysisTemperature, "self-analysis")
	if err != nil {
		return nil, &StageError{Call: "self-analysis", Err: err}
	}

	measurements := emotion.Parse(analysisText)
	next := emotion.Blend(measurements)
	if n := countUnmatched(measurements); n > 0 {
		o.metrics.UnmatchedLabels.Add(ctx, int64(n))
	}

	var embedding []float32
	if o.recaller != nil {
		embStart := time.Now()
		embedding, err = o.recaller.Embed(ctx, turn.UserInput+"\n"+reply)
		o.metrics.EmbeddingDuration.Record(ctx, time.Since(embStart).Seconds())
		if err != nil {
			log.Warn("embedding failed, record stored without", "error", err)
			embedding = nil
		}
	}

	record := memory.AnalysisRecord{
		ConversationID: turn.ConversationID,
		UserInput:      turn.UserInput,
		StageOutputs:   c.Outputs,
		Reply:          reply,
		Measurements:   measurements,
		Temperatures:   next,
		Embedding:      embedding,
		CreatedAt:      time.Now(),
	}
	if err := o.history.AppendAnalysisRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("pipeline: append analysis record: %w", err)
	}
	if err := o.settings.SaveTemperatures(ctx, turn.ConversationID, next); err != nil {
		return nil, fmt.Errorf("pipeline: save temperatures: %w", err)
	}

	if o.annotate {
		reply = annotate(reply, measurements, next)
	}

	status = "ok"
	log.Info("turn processed",
		"measurements", len(measurements),
		"next_temperatures", next.String(),
		"duration", time.Since(start),
	)

	return &Result{
		Reply:            reply,
		Record:           record,
		NextTemperatures: next,
	}, nil
}

// complete issues one completion call under the per-call timeout and records
// its latency and outcome.
func (o *Orchestrator) complete(ctx context.Context, prompt string, temperature float64, kind string) (string, error) {
	if o.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.callTimeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := o.provider.Complete(ctx, llm.CompletionRequest{
		Messages:    []llm.Message{{Role: "user", Content: prompt}},
		Temperature: temperature,
		MaxTokens:   o.maxTokens,
		Model:       o.model,
	})
	o.metrics.RecordStageDuration(ctx, kind, time.Since(start).Seconds())
	if err != nil {
		o.metrics.RecordProviderError(ctx, o.provider.Name(), "llm")
		o.metrics.RecordProviderRequest(ctx, o.provider.Name(), "llm", "error")
		return "", err
	}
	o.metrics.RecordProviderRequest(ctx, o.provider.Name(), "llm", "ok")
	return resp.Content, nil
}

// report invokes the progress callback when one is registered.
func (o *Orchestrator) report(p Phase) {
	if o.progress != nil {
		o.progress(p)
	}
}

// countUnmatched counts measurements whose label resolves to no table
// keyword.
func countUnmatched(measurements []emotion.Measurement) int {
	n := 0
	for _, m := range measurements {
		label := strings.ToLower(m.Label)
		matched := false
		for _, entry := range emotion.Table {
			if strings.Contains(label, entry.Keyword) {
				matched = true
				break
			}
		}
		if !matched {
			n++
		}
	}
	return n
}
