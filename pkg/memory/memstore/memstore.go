// Package memstore provides an in-memory implementation of memory.Store.
//
// It backs tests and the storage-less dev mode (no postgres_dsn configured).
// All data is lost on process exit.
package memstore

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mindweave/sevenmind/pkg/memory"
	"github.com/mindweave/sevenmind/pkg/mind"
)

// Store is an in-memory memory.Store. The zero value is not usable; create
// instances with [New]. All methods are safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	messages map[string][]memory.Message        // conversation → ordered messages
	records  map[string][]memory.AnalysisRecord // conversation → ordered records
	settings map[string]mind.TemperatureVector
}

var _ memory.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		messages: make(map[string][]memory.Message),
		records:  make(map[string][]memory.AnalysisRecord),
		settings: make(map[string]mind.TemperatureVector),
	}
}

// RecentMessages implements memory.HistoryStore.
func (s *Store) RecentMessages(_ context.Context, conversationID string, limit int) ([]memory.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.messages[conversationID]
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]memory.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

// AppendMessage implements memory.HistoryStore.
func (s *Store) AppendMessage(_ context.Context, msg memory.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	s.messages[msg.ConversationID] = append(s.messages[msg.ConversationID], msg)
	return nil
}

// AppendAnalysisRecord implements memory.HistoryStore.
func (s *Store) AppendAnalysisRecord(_ context.Context, rec memory.AnalysisRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	s.records[rec.ConversationID] = append(s.records[rec.ConversationID], rec)
	return nil
}

// Records implements memory.HistoryStore.
func (s *Store) Records(_ context.Context, conversationID string, limit int) ([]memory.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := s.records[conversationID]
	out := make([]memory.AnalysisRecord, 0, len(recs))
	// Newest first.
	for i := len(recs) - 1; i >= 0; i-- {
		out = append(out, recs[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// DeleteConversation implements memory.HistoryStore.
func (s *Store) DeleteConversation(_ context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.messages, conversationID)
	delete(s.records, conversationID)
	delete(s.settings, conversationID)
	return nil
}

// Temperatures implements memory.SettingsStore.
func (s *Store) Temperatures(_ context.Context, conversationID string) (mind.TemperatureVector, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if v, ok := s.settings[conversationID]; ok {
		return v.Clone(), nil
	}
	return mind.Baseline(), nil
}

// SaveTemperatures implements memory.SettingsStore.
func (s *Store) SaveTemperatures(_ context.Context, conversationID string, v mind.TemperatureVector) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings[conversationID] = v.Clone()
	return nil
}

// SimilarExchanges implements memory.RecallIndex using exact cosine
// similarity over the conversation's stored record embeddings.
func (s *Store) SimilarExchanges(_ context.Context, conversationID string, embedding []float32, k int) ([]memory.Exchange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		ex    memory.Exchange
		score float64
	}

	var candidates []scored
	for _, rec := range s.records[conversationID] {
		if len(rec.Embedding) == 0 || len(rec.Embedding) != len(embedding) {
			continue
		}
		candidates = append(candidates, scored{
			ex: memory.Exchange{
				UserInput: rec.UserInput,
				Reply:     rec.Reply,
				CreatedAt: rec.CreatedAt,
			},
			score: cosine(embedding, rec.Embedding),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if k > 0 && len(candidates) > k {
		candidates = candidates[:k]
	}

	out := make([]memory.Exchange, len(candidates))
	for i, c := range candidates {
		out[i] = c.ex
	}
	return out, nil
}

// cosine returns the cosine similarity of two equal-length vectors.
func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
