package resilience

import (
	"context"

	"github.com/mindweave/sevenmind/pkg/provider/llm"
)

// LLMFallback implements [llm.Provider] with automatic failover across
// multiple completion backends. Each backend has its own circuit breaker;
// when the primary fails or its breaker is open, the next healthy fallback
// is tried.
//
// Stage calls inside a turn go through the same group, so a mid-turn
// failover means later stages may be answered by a different backend. The
// turn still either completes fully or fails as one unit.
type LLMFallback struct {
	group *FallbackGroup[llm.Provider]
}

var _ llm.Provider = (*LLMFallback)(nil)

// NewLLMFallback creates an [LLMFallback] with primary as the preferred
// backend.
func NewLLMFallback(primary llm.Provider, primaryName string, cfg FallbackConfig) *LLMFallback {
	return &LLMFallback{
		group: NewFallbackGroup(primary, primaryName, cfg),
	}
}

// AddFallback registers an additional completion provider as a fallback.
func (f *LLMFallback) AddFallback(name string, provider llm.Provider) {
	f.group.AddFallback(name, provider)
}

// Complete sends the request to the first healthy provider and returns its
// response. If the primary fails, subsequent fallbacks are tried.
func (f *LLMFallback) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return ExecuteWithResult(f.group, func(p llm.Provider) (*llm.CompletionResponse, error) {
		return p.Complete(ctx, req)
	})
}

// CountTokens delegates to the first healthy provider's token counter.
func (f *LLMFallback) CountTokens(messages []llm.Message) (int, error) {
	return ExecuteWithResult(f.group, func(p llm.Provider) (int, error) {
		return p.CountTokens(messages)
	})
}

// Name returns the primary provider's name. Metrics attribution stays with
// the primary even when a fallback served the call.
func (f *LLMFallback) Name() string {
	if len(f.group.entries) > 0 {
		return f.group.entries[0].value.Name()
	}
	return "fallback"
}
