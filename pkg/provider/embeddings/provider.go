// Package embeddings defines the Provider interface for vector embedding
// backends.
//
// The pipeline embeds each completed exchange (user input + integrated reply)
// and stores the vector alongside the analysis record; the DayDream stage
// later retrieves semantically similar past exchanges as associative context.
//
// Implementations must be safe for concurrent use.
package embeddings

import "context"

// Provider is the abstraction over any text-embedding backend.
//
// All vectors returned by one Provider instance share the dimensionality
// reported by Dimensions. Vectors from different instances must not be mixed
// in the same similarity computation unless model and space are known to
// match.
type Provider interface {
	// Embed computes the embedding vector for a single text string. Returns a
	// float32 slice of length Dimensions() or an error if the request fails
	// or ctx is cancelled.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the fixed length of every vector produced by this
	// provider, constant for the instance's lifetime.
	Dimensions() int

	// ModelID returns the provider-specific model identifier
	// (e.g. "text-embedding-3-small"), for logging and consistency checks.
	ModelID() string
}
