package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/mindweave/sevenmind/pkg/memory"
	"github.com/mindweave/sevenmind/pkg/mind"
)

func TestMessagesRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()

	for i, content := range []string{"one", "two", "three", "four"} {
		err := s.AppendMessage(ctx, memory.Message{
			ConversationID: "c1",
			Role:           memory.RoleUser,
			Content:        content,
			CreatedAt:      time.Date(2026, 1, 1, 0, i, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	msgs, err := s.RecentMessages(ctx, "c1", 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	// Oldest first within the window.
	if msgs[0].Content != "three" || msgs[1].Content != "four" {
		t.Errorf("window = [%s, %s], want [three, four]", msgs[0].Content, msgs[1].Content)
	}
	if msgs[0].ID == "" {
		t.Error("expected generated message ID")
	}

	other, err := s.RecentMessages(ctx, "unknown", 10)
	if err != nil {
		t.Fatalf("recent unknown: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("unknown conversation returned %d messages", len(other))
	}
}

func TestTemperaturesDefaultToBaseline(t *testing.T) {
	ctx := context.Background()
	s := New()

	v, err := s.Temperatures(ctx, "fresh")
	if err != nil {
		t.Fatalf("temperatures: %v", err)
	}
	baseline := mind.Baseline()
	for _, r := range mind.Roles {
		if v[r] != baseline[r] {
			t.Errorf("role %q = %.2f, want baseline %.2f", r, v[r], baseline[r])
		}
	}

	next := baseline.Clone()
	next[mind.RoleCortex] = 0.9
	if err := s.SaveTemperatures(ctx, "fresh", next); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Mutating the saved vector afterwards must not leak into the store.
	next[mind.RoleCortex] = 0.1

	got, err := s.Temperatures(ctx, "fresh")
	if err != nil {
		t.Fatalf("temperatures: %v", err)
	}
	if got[mind.RoleCortex] != 0.9 {
		t.Errorf("cortex = %.2f, want 0.90", got[mind.RoleCortex])
	}
}

func TestRecordsNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := New()

	for i, input := range []string{"a", "b", "c"} {
		err := s.AppendAnalysisRecord(ctx, memory.AnalysisRecord{
			ConversationID: "c1",
			UserInput:      input,
			Temperatures:   mind.Baseline(),
			CreatedAt:      time.Date(2026, 1, 1, 0, i, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("append record: %v", err)
		}
	}

	recs, err := s.Records(ctx, "c1", 2)
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].UserInput != "c" || recs[1].UserInput != "b" {
		t.Errorf("order = [%s, %s], want [c, b]", recs[0].UserInput, recs[1].UserInput)
	}
}

func TestDeleteConversation(t *testing.T) {
	ctx := context.Background()
	s := New()

	_ = s.AppendMessage(ctx, memory.Message{ConversationID: "c1", Role: memory.RoleUser, Content: "hi"})
	_ = s.AppendAnalysisRecord(ctx, memory.AnalysisRecord{ConversationID: "c1", Temperatures: mind.Baseline()})
	_ = s.SaveTemperatures(ctx, "c1", mind.Baseline())

	if err := s.DeleteConversation(ctx, "c1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	msgs, _ := s.RecentMessages(ctx, "c1", 10)
	if len(msgs) != 0 {
		t.Error("messages survived deletion")
	}
	recs, _ := s.Records(ctx, "c1", 10)
	if len(recs) != 0 {
		t.Error("records survived deletion")
	}

	// Deleting again is a no-op.
	if err := s.DeleteConversation(ctx, "c1"); err != nil {
		t.Errorf("second delete: %v", err)
	}
}

func TestSimilarExchanges(t *testing.T) {
	ctx := context.Background()
	s := New()

	exchanges := []struct {
		input     string
		embedding []float32
	}{
		{"about cats", []float32{1, 0, 0}},
		{"about dogs", []float32{0.9, 0.1, 0}},
		{"about tax law", []float32{0, 0, 1}},
	}
	for _, e := range exchanges {
		_ = s.AppendAnalysisRecord(ctx, memory.AnalysisRecord{
			ConversationID: "c1",
			UserInput:      e.input,
			Reply:          "reply to " + e.input,
			Temperatures:   mind.Baseline(),
			Embedding:      e.embedding,
		})
	}

	got, err := s.SimilarExchanges(ctx, "c1", []float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("similar: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 exchanges, got %d", len(got))
	}
	if got[0].UserInput != "about cats" {
		t.Errorf("closest = %q, want %q", got[0].UserInput, "about cats")
	}
	if got[1].UserInput != "about dogs" {
		t.Errorf("second = %q, want %q", got[1].UserInput, "about dogs")
	}

	// Mismatched dimensionality is skipped, not an error.
	got, err = s.SimilarExchanges(ctx, "c1", []float32{1, 0}, 5)
	if err != nil {
		t.Fatalf("similar mismatched: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no candidates for mismatched dimensions, got %d", len(got))
	}
}
