package anyllm

import (
	"strings"
	"testing"

	anyllmlib "github.com/mozilla-ai/any-llm-go"

	"github.com/mindweave/sevenmind/pkg/provider/llm"
)

func TestNew_Validation(t *testing.T) {
	if _, err := New("", "some-model"); err == nil {
		t.Error("New with empty providerName succeeded, want error")
	}
	if _, err := New("ollama", ""); err == nil {
		t.Error("New with empty defaultModel succeeded, want error")
	}
}

func TestCreateBackend_Unsupported(t *testing.T) {
	_, err := createBackend("watson")
	if err == nil {
		t.Fatal("createBackend(watson) succeeded, want error")
	}
	if !strings.Contains(err.Error(), "watson") {
		t.Errorf("error %q does not name the provider", err)
	}
}

// TestBuildParams_SystemPrompt checks that the system prompt becomes the
// leading system message.
func TestBuildParams_SystemPrompt(t *testing.T) {
	p := &Provider{providerName: "ollama", defaultModel: "llama3.1"}

	params := p.buildParams(llm.CompletionRequest{
		SystemPrompt: "You are terse.",
		Messages: []llm.Message{
			{Role: "user", Content: "question"},
			{Role: "assistant", Content: "answer"},
		},
	})
	if len(params.Messages) != 3 {
		t.Fatalf("message count = %d, want 3", len(params.Messages))
	}
	if params.Messages[0].Role != anyllmlib.RoleSystem {
		t.Errorf("first role = %q, want system", params.Messages[0].Role)
	}
	if params.Messages[1].Role != "user" || params.Messages[2].Role != "assistant" {
		t.Errorf("roles = %q/%q, want user/assistant",
			params.Messages[1].Role, params.Messages[2].Role)
	}
}

// TestBuildParams_Defaults checks model fallback and optional parameters.
func TestBuildParams_Defaults(t *testing.T) {
	p := &Provider{providerName: "ollama", defaultModel: "llama3.1"}

	params := p.buildParams(llm.CompletionRequest{
		Messages: []llm.Message{{Role: "user", Content: "hi"}},
	})
	if params.Model != "llama3.1" {
		t.Errorf("model = %q, want llama3.1", params.Model)
	}
	if params.Temperature != nil {
		t.Error("temperature set despite zero request value")
	}
	if params.MaxTokens != nil {
		t.Error("max tokens set despite zero request value")
	}

	params = p.buildParams(llm.CompletionRequest{
		Model:       "mistral-nemo",
		Messages:    []llm.Message{{Role: "user", Content: "hi"}},
		Temperature: 0.4,
		MaxTokens:   256,
	})
	if params.Model != "mistral-nemo" {
		t.Errorf("model = %q, want mistral-nemo", params.Model)
	}
	if params.Temperature == nil || *params.Temperature != 0.4 {
		t.Errorf("temperature = %v, want 0.4", params.Temperature)
	}
	if params.MaxTokens == nil || *params.MaxTokens != 256 {
		t.Errorf("max tokens = %v, want 256", params.MaxTokens)
	}
}

func TestName_Lowercased(t *testing.T) {
	p := &Provider{providerName: strings.ToLower("Ollama")}
	if p.Name() != "ollama" {
		t.Errorf("Name() = %q, want ollama", p.Name())
	}
}
