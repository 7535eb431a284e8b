package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mindweave/sevenmind/pkg/provider/llm"
	llmmock "github.com/mindweave/sevenmind/pkg/provider/llm/mock"
)

func TestLLMFallback_PrimarySuccess(t *testing.T) {
	primary := &llmmock.Provider{Responses: []string{"from primary"}, ProviderName: "openai"}
	secondary := &llmmock.Provider{Responses: []string{"from secondary"}}

	fb := NewLLMFallback(primary, "primary", FallbackConfig{
		CircuitBreaker: CircuitBreakerConfig{MaxFailures: 3},
	})
	fb.AddFallback("secondary", secondary)

	resp, err := fb.Complete(context.Background(), llm.CompletionRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "from primary" {
		t.Errorf("content = %q, want from primary", resp.Content)
	}
	if secondary.CallCount() != 0 {
		t.Errorf("secondary called %d times, want 0", secondary.CallCount())
	}
	if fb.Name() != "openai" {
		t.Errorf("Name() = %q, want openai", fb.Name())
	}
}

func TestLLMFallback_Failover(t *testing.T) {
	primary := &llmmock.Provider{Err: errors.New("primary down")}
	secondary := &llmmock.Provider{Responses: []string{"from secondary"}}

	fb := NewLLMFallback(primary, "primary", FallbackConfig{
		CircuitBreaker: CircuitBreakerConfig{MaxFailures: 3},
	})
	fb.AddFallback("secondary", secondary)

	resp, err := fb.Complete(context.Background(), llm.CompletionRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "from secondary" {
		t.Errorf("content = %q, want from secondary", resp.Content)
	}
	if primary.CallCount() != 1 {
		t.Errorf("primary called %d times, want 1", primary.CallCount())
	}
}

func TestLLMFallback_AllFail(t *testing.T) {
	primary := &llmmock.Provider{Err: errors.New("primary down")}
	secondary := &llmmock.Provider{Err: errors.New("secondary down")}

	fb := NewLLMFallback(primary, "primary", FallbackConfig{})
	fb.AddFallback("secondary", secondary)

	_, err := fb.Complete(context.Background(), llm.CompletionRequest{})
	if !errors.Is(err, ErrAllFailed) {
		t.Fatalf("err = %v, want ErrAllFailed", err)
	}
}

func TestLLMFallback_OpenBreakerSkipsPrimary(t *testing.T) {
	primary := &llmmock.Provider{Err: errors.New("primary down")}
	secondary := &llmmock.Provider{Responses: []string{"a", "b"}}

	fb := NewLLMFallback(primary, "primary", FallbackConfig{
		CircuitBreaker: CircuitBreakerConfig{
			MaxFailures:  1,
			ResetTimeout: time.Hour,
		},
	})
	fb.AddFallback("secondary", secondary)

	// First call trips the primary's breaker and lands on the fallback.
	if _, err := fb.Complete(context.Background(), llm.CompletionRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Second call must not touch the primary at all.
	if _, err := fb.Complete(context.Background(), llm.CompletionRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if primary.CallCount() != 1 {
		t.Errorf("primary called %d times, want 1", primary.CallCount())
	}
	if secondary.CallCount() != 2 {
		t.Errorf("secondary called %d times, want 2", secondary.CallCount())
	}
}

func TestLLMFallback_CountTokens(t *testing.T) {
	primary := &llmmock.Provider{TokenCount: 42}

	fb := NewLLMFallback(primary, "primary", FallbackConfig{})
	n, err := fb.CountTokens([]llm.Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 42 {
		t.Errorf("tokens = %d, want 42", n)
	}
}
