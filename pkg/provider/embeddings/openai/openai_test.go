package openai

import "testing"

func TestNew_Validation(t *testing.T) {
	if _, err := New("", "text-embedding-3-small"); err == nil {
		t.Error("New with empty apiKey succeeded, want error")
	}
}

// TestNew_DefaultModel verifies that an empty model defaults to
// text-embedding-3-small.
func TestNew_DefaultModel(t *testing.T) {
	p, err := New("sk-test", "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if p.ModelID() != DefaultModel {
		t.Errorf("ModelID() = %q, want %q", p.ModelID(), DefaultModel)
	}
}

func TestModelDimensions(t *testing.T) {
	tests := []struct {
		model string
		want  int
	}{
		{model: "text-embedding-3-small", want: 1536},
		{model: "text-embedding-3-large", want: 3072},
		{model: "text-embedding-ada-002", want: 1536},
		{model: "some-future-model", want: 1536},
	}
	for _, tt := range tests {
		if got := modelDimensions(tt.model); got != tt.want {
			t.Errorf("modelDimensions(%q) = %d, want %d", tt.model, got, tt.want)
		}
	}
}

func TestDimensions_MatchesModel(t *testing.T) {
	p := &Provider{model: "text-embedding-3-large"}
	if got := p.Dimensions(); got != 3072 {
		t.Errorf("Dimensions() = %d, want 3072", got)
	}
}

func TestFloat64ToFloat32(t *testing.T) {
	got := float64ToFloat32([]float64{0.25, -1, 0})
	if len(got) != 3 {
		t.Fatalf("length = %d, want 3", len(got))
	}
	if got[0] != 0.25 || got[1] != -1 || got[2] != 0 {
		t.Errorf("converted = %v, want [0.25 -1 0]", got)
	}

	if got := float64ToFloat32(nil); len(got) != 0 {
		t.Errorf("nil input yields %v, want empty", got)
	}
}
