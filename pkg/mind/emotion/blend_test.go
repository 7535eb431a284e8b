package emotion

import (
	"math"
	"testing"

	"github.com/mindweave/sevenmind/pkg/mind"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// tableRow returns the authored vector for keyword, failing the test when the
// keyword is not in the table.
func tableRow(t *testing.T, keyword string) mind.TemperatureVector {
	t.Helper()
	for _, e := range Table {
		if e.Keyword == keyword {
			return e.Vector
		}
	}
	t.Fatalf("keyword %q not found in table", keyword)
	return nil
}

func TestBlendSingleEmotionMatchesTableRow(t *testing.T) {
	got := Blend([]Measurement{{Label: "joy", Percentage: 100}})
	want := tableRow(t, "joy")

	for _, r := range mind.Roles {
		if r == mind.RoleDayDream {
			continue // governed by the additive rule, checked separately
		}
		if !almostEqual(got[r], want[r]) {
			t.Errorf("role %q = %.4f, want %.4f", r, got[r], want[r])
		}
	}
	if got[mind.RoleCortex] != 0.80 {
		t.Errorf("joy cortex = %.2f, want 0.80", got[mind.RoleCortex])
	}
	if got[mind.RolePrudence] != 0.40 {
		t.Errorf("joy prudence = %.2f, want 0.40", got[mind.RolePrudence])
	}
}

func TestBlendEqualMixAverages(t *testing.T) {
	got := Blend([]Measurement{
		{Label: "joy", Percentage: 50},
		{Label: "sadness", Percentage: 50},
	})

	joy := tableRow(t, "joy")
	sad := tableRow(t, "sad")
	want := (joy[mind.RoleCortex] + sad[mind.RoleCortex]) / 2
	if !almostEqual(got[mind.RoleCortex], want) {
		t.Errorf("cortex = %.4f, want %.4f", got[mind.RoleCortex], want)
	}
}

func TestBlendNormalisesArbitraryTotals(t *testing.T) {
	// A model reporting a 60% total blends exactly like a 100% total with the
	// same ratios.
	a := Blend([]Measurement{
		{Label: "fear", Percentage: 30},
		{Label: "calm", Percentage: 30},
	})
	b := Blend([]Measurement{
		{Label: "fear", Percentage: 50},
		{Label: "calm", Percentage: 50},
	})
	for _, r := range mind.Roles {
		if !almostEqual(a[r], b[r]) {
			t.Errorf("role %q: 60%%-total blend %.4f != 100%%-total blend %.4f", r, a[r], b[r])
		}
	}
}

func TestBlendUnmatchedLabelContributesBaseline(t *testing.T) {
	got := Blend([]Measurement{{Label: "zygomorphic", Percentage: 100}})
	want := mind.Baseline()
	for _, r := range mind.Roles {
		if !almostEqual(got[r], want[r]) {
			t.Errorf("role %q = %.4f, want baseline %.4f", r, got[r], want[r])
		}
	}
}

func TestBlendMatchIsCaseInsensitiveSubstring(t *testing.T) {
	got := Blend([]Measurement{{Label: "Deep FASCINATION with the problem", Percentage: 100}})
	want := tableRow(t, "fascinat")
	if !almostEqual(got[mind.RoleSeer], want[mind.RoleSeer]) {
		t.Errorf("seer = %.4f, want %.4f", got[mind.RoleSeer], want[mind.RoleSeer])
	}
}

func TestBlendDegenerateInput(t *testing.T) {
	tests := []struct {
		name         string
		measurements []Measurement
	}{
		{name: "no measurements", measurements: nil},
		{name: "empty slice", measurements: []Measurement{}},
		{
			name: "all zero percentages",
			measurements: []Measurement{
				{Label: "joy", Percentage: 0},
				{Label: "fear", Percentage: 0},
			},
		},
	}

	want := mind.Baseline()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Blend(tt.measurements)
			for _, r := range mind.Roles {
				if !almostEqual(got[r], want[r]) {
					t.Errorf("role %q = %.4f, want baseline %.4f", r, got[r], want[r])
				}
			}
		})
	}
}

func TestBlendOutputAlwaysInRange(t *testing.T) {
	adversarial := [][]Measurement{
		{{Label: "joy", Percentage: 10000}},
		{{Label: "fear", Percentage: 0.0001}},
		{{Label: "joy", Percentage: 400}, {Label: "fear", Percentage: 350}},
		{{Label: "unknown thing", Percentage: 7}, {Label: "awe", Percentage: 0.3}},
		{{Label: "creative", Percentage: 90}, {Label: "inspiration", Percentage: 90}},
	}

	for _, ms := range adversarial {
		got := Blend(ms)
		if err := got.Validate(); err != nil {
			t.Errorf("Blend(%v) out of range: %v", ms, err)
		}
	}
}

func TestDayDreamAdditiveRule(t *testing.T) {
	tests := []struct {
		name         string
		measurements []Measurement
		want         float64
	}{
		{
			name:         "neutral states keep the base",
			measurements: []Measurement{{Label: "calm", Percentage: 100}},
			want:         0.8,
		},
		{
			name:         "pure curiosity adds 0.05",
			measurements: []Measurement{{Label: "curiosity", Percentage: 100}},
			want:         0.85,
		},
		{
			name:         "pure inspiration adds 0.10",
			measurements: []Measurement{{Label: "inspiration", Percentage: 100}},
			want:         0.9,
		},
		{
			name:         "pure analytical subtracts 0.05",
			measurements: []Measurement{{Label: "analytical", Percentage: 100}},
			want:         0.75,
		},
		{
			name: "weights scale the adjustments",
			measurements: []Measurement{
				{Label: "creative", Percentage: 50},
				{Label: "critical", Percentage: 50},
			},
			want: 0.8 + 0.10*0.5 - 0.05*0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Blend(tt.measurements)[mind.RoleDayDream]
			if !almostEqual(got, tt.want) {
				t.Errorf("daydream = %.4f, want %.4f", got, tt.want)
			}
		})
	}
}

func TestDayDreamClampBand(t *testing.T) {
	got := Blend([]Measurement{{Label: "analytical", Percentage: 100}})
	if got[mind.RoleDayDream] < 0.6 || got[mind.RoleDayDream] > 1.0 {
		t.Errorf("daydream %.4f outside [0.6, 1.0]", got[mind.RoleDayDream])
	}
}
