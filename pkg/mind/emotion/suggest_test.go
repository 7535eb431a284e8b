package emotion

import "testing"

func TestSuggestKeyword(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		wantKw  string
		wantOK  bool
	}{
		{name: "close misspelling", label: "curios", wantKw: "curio", wantOK: true},
		{name: "exact keyword", label: "fear", wantKw: "fear", wantOK: true},
		{name: "far from everything", label: "quintessence of dust", wantOK: false},
		{name: "empty label", label: "", wantOK: false},
		{name: "whitespace only", label: "   ", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kw, dist, ok := SuggestKeyword(tt.label)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v (kw=%q dist=%d)", ok, tt.wantOK, kw, dist)
			}
			if tt.wantOK && kw != tt.wantKw {
				t.Errorf("keyword = %q, want %q", kw, tt.wantKw)
			}
			if tt.wantOK && dist > maxSuggestDistance {
				t.Errorf("distance %d exceeds limit", dist)
			}
		})
	}
}
