package app_test

import (
	"context"
	"testing"

	"github.com/mindweave/sevenmind/internal/app"
	"github.com/mindweave/sevenmind/internal/pipeline"
	llmmock "github.com/mindweave/sevenmind/pkg/provider/llm/mock"
)

func TestProgressBroker_PublishAndSubscribe(t *testing.T) {
	t.Parallel()

	b := app.NewProgressBroker()
	defer b.Close()

	ch, cancel := b.Subscribe("conv-1")
	defer cancel()

	b.Publish("conv-1", pipeline.PhaseAnalyzing)
	b.Publish("conv-2", pipeline.PhaseScanning) // different conversation

	ev := <-ch
	if ev.ConversationID != "conv-1" {
		t.Errorf("ConversationID = %q, want %q", ev.ConversationID, "conv-1")
	}
	if ev.Phase != "analyzing" {
		t.Errorf("Phase = %q, want %q", ev.Phase, "analyzing")
	}
	if ev.Time.IsZero() {
		t.Error("Time is zero")
	}

	select {
	case ev := <-ch:
		t.Errorf("received event for another conversation: %+v", ev)
	default:
	}
}

func TestProgressBroker_SlowSubscriberDropsEvents(t *testing.T) {
	t.Parallel()

	b := app.NewProgressBroker()
	defer b.Close()

	ch, cancel := b.Subscribe("conv-1")
	defer cancel()

	// Publish far past the buffer without reading; Publish must not block.
	for range 100 {
		b.Publish("conv-1", pipeline.PhaseAnalyzing)
	}

	var received int
	for {
		select {
		case <-ch:
			received++
		default:
			if received == 0 || received > 100 {
				t.Errorf("received = %d events, want between 1 and 100", received)
			}
			return
		}
	}
}

func TestProgressBroker_CancelIsIdempotent(t *testing.T) {
	t.Parallel()

	b := app.NewProgressBroker()
	defer b.Close()

	ch, cancel := b.Subscribe("conv-1")
	cancel()
	cancel()

	if _, ok := <-ch; ok {
		t.Error("cancelled subscription delivered an event")
	}

	// Publishing to a conversation without subscribers is a no-op.
	b.Publish("conv-1", pipeline.PhaseAnalyzing)
}

func TestProgressBroker_Close(t *testing.T) {
	t.Parallel()

	b := app.NewProgressBroker()
	ch, cancel := b.Subscribe("conv-1")
	defer cancel()

	b.Close()
	b.Close() // idempotent

	if _, ok := <-ch; ok {
		t.Error("subscription channel still open after Close")
	}

	late, lateCancel := b.Subscribe("conv-1")
	defer lateCancel()
	if _, ok := <-late; ok {
		t.Error("subscription after Close delivered an event")
	}
}

func TestRunTurn_PublishesProgress(t *testing.T) {
	t.Parallel()

	provider := &llmmock.Provider{Responses: turnResponses("reply", "50% Calm")}
	a := newTestApp(t, provider)

	ch, cancel := a.Progress().Subscribe("conv-1")
	defer cancel()

	if _, err := a.RunTurn(context.Background(), "conv-1", "hi"); err != nil {
		t.Fatalf("RunTurn() returned error: %v", err)
	}

	// Progress callbacks run synchronously inside RunTurn, so all events
	// are buffered by the time it returns.
	var phases []string
	for {
		select {
		case ev := <-ch:
			phases = append(phases, ev.Phase)
		default:
			want := []string{
				"analyzing", "scanning", "evaluating", "considering",
				"assessing", "exploring", "weighing", "integrating", "idle",
			}
			if len(phases) != len(want) {
				t.Fatalf("phases = %v, want %v", phases, want)
			}
			for i := range want {
				if phases[i] != want[i] {
					t.Errorf("phase[%d] = %q, want %q", i, phases[i], want[i])
				}
			}
			return
		}
	}
}
