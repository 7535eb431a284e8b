// Package mock provides a test double for the llm.Provider interface.
//
// Use Provider in unit tests to verify the prompts and temperatures the
// pipeline sends, and to feed controlled stage outputs without a live
// backend. Responses are consumed in FIFO order, which suits the pipeline's
// strictly sequential stage calls.
//
// Example:
//
//	p := &mock.Provider{Responses: []string{"cortex out", "seer out"}}
//	resp, err := p.Complete(ctx, req)
package mock

import (
	"context"
	"sync"

	"github.com/mindweave/sevenmind/pkg/provider/llm"
)

// CompleteCall records a single invocation of Complete.
type CompleteCall struct {
	// Req is the CompletionRequest passed to Complete.
	Req llm.CompletionRequest
}

// Provider is a mock implementation of llm.Provider.
// The zero value returns empty responses and nil errors.
type Provider struct {
	mu sync.Mutex

	// Responses is the FIFO queue of reply texts returned by successive
	// Complete calls. After the queue is exhausted, Complete returns the
	// empty string.
	Responses []string

	// Err, if non-nil, is returned by every Complete call instead of a
	// response.
	Err error

	// FailAtCall, when > 0 and Err is set, makes only the Nth Complete call
	// (1-based) fail; other calls succeed from the queue.
	FailAtCall int

	// TokenCount is returned by CountTokens.
	TokenCount int

	// ProviderName is returned by Name. Defaults to "mock".
	ProviderName string

	// Calls records every invocation of Complete in order.
	Calls []CompleteCall

	next int
}

var _ llm.Provider = (*Provider)(nil)

// Complete implements llm.Provider.
func (p *Provider) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Calls = append(p.Calls, CompleteCall{Req: req})
	call := len(p.Calls)

	if p.Err != nil && (p.FailAtCall == 0 || p.FailAtCall == call) {
		return nil, p.Err
	}

	content := ""
	if p.next < len(p.Responses) {
		content = p.Responses[p.next]
		p.next++
	}
	return &llm.CompletionResponse{Content: content}, nil
}

// CountTokens implements llm.Provider.
func (p *Provider) CountTokens(_ []llm.Message) (int, error) {
	return p.TokenCount, nil
}

// Name implements llm.Provider.
func (p *Provider) Name() string {
	if p.ProviderName == "" {
		return "mock"
	}
	return p.ProviderName
}

// CallCount returns how many times Complete has been invoked.
func (p *Provider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Calls)
}
