package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mindweave/sevenmind/internal/app"
	"github.com/mindweave/sevenmind/internal/config"
	"github.com/mindweave/sevenmind/pkg/memory"
	"github.com/mindweave/sevenmind/pkg/memory/memstore"
	embmock "github.com/mindweave/sevenmind/pkg/provider/embeddings/mock"
	llmmock "github.com/mindweave/sevenmind/pkg/provider/llm/mock"
)

func TestAssociator_Similar(t *testing.T) {
	t.Parallel()

	store := memstore.New()
	seed := memory.AnalysisRecord{
		ConversationID: "conv-1",
		UserInput:      "tell me about lighthouses",
		Reply:          "they guide ships at night",
		Embedding:      []float32{1, 0, 0},
	}
	if err := store.AppendAnalysisRecord(context.Background(), seed); err != nil {
		t.Fatalf("AppendAnalysisRecord() returned error: %v", err)
	}

	provider := &embmock.Provider{EmbedResult: []float32{1, 0, 0}, DimensionsValue: 3}
	as := app.NewAssociator(provider, store)

	got, err := as.Similar(context.Background(), "conv-1", "lighthouses again", 3)
	if err != nil {
		t.Fatalf("Similar() returned error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("exchange count = %d, want 1", len(got))
	}
	if got[0].UserInput != seed.UserInput || got[0].Reply != seed.Reply {
		t.Errorf("exchange = %+v, want seeded record", got[0])
	}
	if len(provider.Texts) != 1 || provider.Texts[0] != "lighthouses again" {
		t.Errorf("embedded texts = %v, want the query text", provider.Texts)
	}
}

func TestAssociator_EmbedError(t *testing.T) {
	t.Parallel()

	embErr := errors.New("quota exceeded")
	provider := &embmock.Provider{EmbedErr: embErr}
	as := app.NewAssociator(provider, memstore.New())

	if _, err := as.Similar(context.Background(), "conv-1", "anything", 3); !errors.Is(err, embErr) {
		t.Errorf("Similar() error = %v, want wrapped %v", err, embErr)
	}
	if _, err := as.Embed(context.Background(), "anything"); !errors.Is(err, embErr) {
		t.Errorf("Embed() error = %v, want %v", err, embErr)
	}
}

func TestRunTurn_AssociativeRecall(t *testing.T) {
	t.Parallel()

	store := memstore.New()
	seed := memory.AnalysisRecord{
		ConversationID: "conv-1",
		UserInput:      "the moon was bright last night",
		Reply:          "a good night for stargazing",
		Embedding:      []float32{1, 0, 0},
	}
	if err := store.AppendAnalysisRecord(context.Background(), seed); err != nil {
		t.Fatalf("AppendAnalysisRecord() returned error: %v", err)
	}

	cfg := testConfig()
	cfg.Pipeline.AssociativeRecall = true

	llmProvider := &llmmock.Provider{Responses: turnResponses("reply", "50% Calm")}
	embProvider := &embmock.Provider{EmbedResult: []float32{1, 0, 0}, DimensionsValue: 3}

	a, err := app.New(
		context.Background(),
		cfg,
		&app.Providers{LLM: llmProvider, Embeddings: embProvider},
		app.WithStore(store),
	)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	if _, err := a.RunTurn(context.Background(), "conv-1", "stars tonight?"); err != nil {
		t.Fatalf("RunTurn() returned error: %v", err)
	}

	// The DayDream stage is the sixth completion call and the only one that
	// sees recalled exchanges.
	dayDream := llmProvider.Calls[5].Req.Messages[0].Content
	if !strings.Contains(dayDream, "the moon was bright last night") {
		t.Error("daydream prompt does not contain the recalled exchange")
	}
	cortex := llmProvider.Calls[0].Req.Messages[0].Content
	if strings.Contains(cortex, "the moon was bright last night") {
		t.Error("cortex prompt contains the recalled exchange")
	}

	// Two embeddings per turn: the recall query and the stored exchange.
	if len(embProvider.Texts) != 2 {
		t.Errorf("embed call count = %d, want 2", len(embProvider.Texts))
	}

	recs, err := store.Records(context.Background(), "conv-1", 10)
	if err != nil {
		t.Fatalf("Records() returned error: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("record count = %d, want 2", len(recs))
	}
	if len(recs[0].Embedding) != 3 {
		t.Errorf("new record embedding length = %d, want 3", len(recs[0].Embedding))
	}
}

func TestNew_RecallWithoutEmbeddingsProvider(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.Pipeline.AssociativeRecall = true

	// Enabled recall without an embeddings provider degrades to plain
	// history context rather than failing.
	provider := &llmmock.Provider{Responses: turnResponses("reply", "50% Calm")}
	a, err := app.New(context.Background(), cfg, &app.Providers{LLM: provider})
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	if _, err := a.RunTurn(context.Background(), "conv-1", "hi"); err != nil {
		t.Fatalf("RunTurn() returned error: %v", err)
	}
}
