package pipeline

import (
	"strings"
	"testing"

	"github.com/mindweave/sevenmind/pkg/memory"
	"github.com/mindweave/sevenmind/pkg/mind"
	"github.com/mindweave/sevenmind/pkg/mind/emotion"
)

func TestStripAnnotation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "no annotation",
			content: "a plain reply",
			want:    "a plain reply",
		},
		{
			name:    "with annotation",
			content: "a reply\n\n[state: 100% Joy | cortex=0.80]",
			want:    "a reply",
		},
		{
			name:    "trailing whitespace after annotation",
			content: "a reply\n\n[state: 100% Joy | cortex=0.80]\n",
			want:    "a reply",
		},
		{
			name:    "bracket text mid-reply is kept",
			content: "see\n\n[state: of the art] techniques are discussed here",
			want:    "see\n\n[state: of the art] techniques are discussed here",
		},
		{
			name:    "empty",
			content: "",
			want:    "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripAnnotation(tc.content); got != tc.want {
				t.Errorf("stripAnnotation(%q) = %q, want %q", tc.content, got, tc.want)
			}
		})
	}
}

func TestAnnotateRoundTrip(t *testing.T) {
	measurements := []emotion.Measurement{
		{Label: "Analytical", Percentage: 70},
		{Label: "Joy", Percentage: 30},
	}
	annotated := annotate("the reply", measurements, mind.Baseline())

	if !strings.Contains(annotated, "70% Analytical, 30% Joy") {
		t.Errorf("annotation missing measurements: %q", annotated)
	}
	if !strings.Contains(annotated, "cortex=0.70") {
		t.Errorf("annotation missing temperatures: %q", annotated)
	}
	if got := stripAnnotation(annotated); got != "the reply" {
		t.Errorf("strip(annotate(...)) = %q, want %q", got, "the reply")
	}
}

func TestAnnotateNoMeasurements(t *testing.T) {
	annotated := annotate("the reply", nil, mind.Baseline())
	if !strings.Contains(annotated, "[state: baseline") {
		t.Errorf("annotation = %q, want baseline marker", annotated)
	}
	if got := stripAnnotation(annotated); got != "the reply" {
		t.Errorf("strip = %q", got)
	}
}

func TestHistoryContext(t *testing.T) {
	msgs := []memory.Message{
		{Role: memory.RoleUser, Content: "first question"},
		{Role: memory.RoleAssistant, Content: "first answer\n\n[state: 100% Calm | cortex=0.70]"},
		{Role: memory.RoleUser, Content: "second question"},
	}

	got := historyContext(msgs)
	want := "User: first question\n\nAssistant: first answer\n\nUser: second question"
	if got != want {
		t.Errorf("historyContext = %q, want %q", got, want)
	}
}

func TestHistoryContextEmpty(t *testing.T) {
	if got := historyContext(nil); got != "" {
		t.Errorf("historyContext(nil) = %q, want empty", got)
	}
}

func TestRecallContext(t *testing.T) {
	got := recallContext([]memory.Exchange{
		{UserInput: "q1", Reply: "a1"},
		{UserInput: "q2", Reply: "a2\n\n[state: 100% Joy | cortex=0.80]"},
	})
	want := "User: q1\nAssistant: a1\n\nUser: q2\nAssistant: a2"
	if got != want {
		t.Errorf("recallContext = %q, want %q", got, want)
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseIdle, "idle"},
		{PhaseAnalyzing, "analyzing"},
		{PhaseScanning, "scanning"},
		{PhaseEvaluating, "evaluating"},
		{PhaseConsidering, "considering"},
		{PhaseAssessing, "assessing"},
		{PhaseExploring, "exploring"},
		{PhaseWeighing, "weighing"},
		{PhaseIntegrating, "integrating"},
		{Phase(99), "unknown"},
	}
	for _, tc := range tests {
		if got := tc.phase.String(); got != tc.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tc.phase, got, tc.want)
		}
	}
}
