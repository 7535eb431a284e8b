// Package mock provides a test double for the embeddings.Provider interface.
//
// Use Provider to return pre-canned vectors without a live model and to
// verify which texts were submitted for embedding.
package mock

import (
	"context"
	"sync"

	"github.com/mindweave/sevenmind/pkg/provider/embeddings"
)

// Provider is a mock implementation of embeddings.Provider.
type Provider struct {
	mu sync.Mutex

	// EmbedResult is returned by Embed. If nil, a zero-length slice is
	// returned.
	EmbedResult []float32

	// EmbedErr, if non-nil, is returned as the error from Embed.
	EmbedErr error

	// DimensionsValue is returned by Dimensions.
	DimensionsValue int

	// ModelIDValue is returned by ModelID. Defaults to "mock-embed".
	ModelIDValue string

	// Texts records every string passed to Embed, in order.
	Texts []string
}

var _ embeddings.Provider = (*Provider)(nil)

// Embed implements embeddings.Provider.
func (p *Provider) Embed(_ context.Context, text string) ([]float32, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Texts = append(p.Texts, text)
	if p.EmbedErr != nil {
		return nil, p.EmbedErr
	}
	if p.EmbedResult == nil {
		return []float32{}, nil
	}
	out := make([]float32, len(p.EmbedResult))
	copy(out, p.EmbedResult)
	return out, nil
}

// Dimensions implements embeddings.Provider.
func (p *Provider) Dimensions() int { return p.DimensionsValue }

// ModelID implements embeddings.Provider.
func (p *Provider) ModelID() string {
	if p.ModelIDValue == "" {
		return "mock-embed"
	}
	return p.ModelIDValue
}
