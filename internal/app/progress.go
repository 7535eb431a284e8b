package app

import (
	"context"
	"sync"
	"time"

	"github.com/mindweave/sevenmind/internal/observe"
	"github.com/mindweave/sevenmind/internal/pipeline"
)

// subscriberBuffer sizes each subscriber channel. A full turn emits nine
// phase events; a lagging reader drops events rather than stalling the turn.
const subscriberBuffer = 16

// ProgressEvent is one pipeline phase transition of a conversation's turn.
type ProgressEvent struct {
	ConversationID string    `json:"conversation_id"`
	Phase          string    `json:"phase"`
	Time           time.Time `json:"time"`
}

// ProgressBroker fans pipeline phase events out to per-conversation
// subscribers. Publishing never blocks: events to slow subscribers are
// dropped. Safe for concurrent use.
type ProgressBroker struct {
	mu      sync.Mutex
	subs    map[string]map[chan ProgressEvent]struct{}
	closed  bool
	metrics *observe.Metrics
}

// NewProgressBroker creates an empty broker.
func NewProgressBroker() *ProgressBroker {
	return &ProgressBroker{
		subs:    make(map[string]map[chan ProgressEvent]struct{}),
		metrics: observe.DefaultMetrics(),
	}
}

// Subscribe registers for the conversation's phase events. The returned
// cancel func unregisters and closes the channel; it is safe to call more
// than once.
func (b *ProgressBroker) Subscribe(conversationID string) (<-chan ProgressEvent, func()) {
	ch := make(chan ProgressEvent, subscriberBuffer)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	set, ok := b.subs[conversationID]
	if !ok {
		set = make(map[chan ProgressEvent]struct{})
		b.subs[conversationID] = set
	}
	set[ch] = struct{}{}
	b.mu.Unlock()

	b.metrics.ProgressSubscribers.Add(context.Background(), 1)

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			if set, ok := b.subs[conversationID]; ok {
				if _, member := set[ch]; member {
					delete(set, ch)
					close(ch)
					if len(set) == 0 {
						delete(b.subs, conversationID)
					}
				}
			}
			b.mu.Unlock()
			b.metrics.ProgressSubscribers.Add(context.Background(), -1)
		})
	}
	return ch, cancel
}

// Publish delivers the phase to every subscriber of the conversation,
// dropping the event for subscribers whose buffer is full.
func (b *ProgressBroker) Publish(conversationID string, phase pipeline.Phase) {
	ev := ProgressEvent{
		ConversationID: conversationID,
		Phase:          phase.String(),
		Time:           time.Now(),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for ch := range b.subs[conversationID] {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Close shuts the broker down and closes all subscriber channels. Publish
// and Subscribe become no-ops afterwards.
func (b *ProgressBroker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, set := range b.subs {
		for ch := range set {
			close(ch)
		}
	}
	b.subs = nil
}
