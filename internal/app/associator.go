package app

import (
	"context"
	"fmt"

	"github.com/mindweave/sevenmind/internal/pipeline"
	"github.com/mindweave/sevenmind/pkg/memory"
	"github.com/mindweave/sevenmind/pkg/provider/embeddings"
)

// Associator joins an embeddings provider with the store's recall index so
// the DayDream stage can surface semantically similar past exchanges.
type Associator struct {
	provider embeddings.Provider
	index    memory.RecallIndex
}

var _ pipeline.Recaller = (*Associator)(nil)

// NewAssociator creates an Associator over the given provider and index.
func NewAssociator(provider embeddings.Provider, index memory.RecallIndex) *Associator {
	return &Associator{provider: provider, index: index}
}

// Similar implements pipeline.Recaller. It embeds text and queries the
// recall index for the k closest prior exchanges of the conversation.
func (as *Associator) Similar(ctx context.Context, conversationID, text string, k int) ([]memory.Exchange, error) {
	vec, err := as.provider.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("app: embed recall query: %w", err)
	}
	exchanges, err := as.index.SimilarExchanges(ctx, conversationID, vec, k)
	if err != nil {
		return nil, fmt.Errorf("app: similar exchanges: %w", err)
	}
	return exchanges, nil
}

// Embed implements pipeline.Recaller.
func (as *Associator) Embed(ctx context.Context, text string) ([]float32, error) {
	return as.provider.Embed(ctx, text)
}
