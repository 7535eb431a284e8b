package emotion

import (
	"log/slog"
	"strings"

	"github.com/mindweave/sevenmind/pkg/mind"
)

// DayDream additive-rule constants. The DayDream temperature is not blended
// from the table; it starts from a fixed base and is nudged by specific state
// families, then clamped to a narrower band so the associative stage never
// goes fully cold or fully chaotic.
const (
	dayDreamBase    = 0.8
	dayDreamFloor   = 0.6
	dayDreamCeiling = 1.0
)

// Blend converts a weighted set of measurements into the next turn's
// temperature vector.
//
// Each measurement's weight is its percentage divided by the observed total —
// totals far from 100 are normalised, not rejected. The label is resolved by
// case-insensitive substring match against [Table] in order, first match
// wins; an unmatched label contributes the baseline vector at its weight, so
// coverage is total even for labels outside the catalogue.
//
// Degenerate input (no measurements, or a zero percentage total) returns the
// baseline vector; Blend never divides by zero and never returns an error.
// Every output component is clamped to [0, 1].
func Blend(measurements []Measurement) mind.TemperatureVector {
	total := 0.0
	for _, m := range measurements {
		total += m.Percentage
	}
	if total == 0 {
		return mind.Baseline()
	}

	result := make(mind.TemperatureVector, len(mind.Roles))
	baseline := mind.Baseline()
	for _, m := range measurements {
		weight := m.Percentage / total
		entry := lookup(m.Label)
		if entry == nil {
			entry = baseline
		}
		for _, r := range mind.Roles {
			result[r] += weight * entry[r]
		}
	}

	// The additive rule overrides the table-blended DayDream component.
	result[mind.RoleDayDream] = dayDreamTemperature(measurements, total)

	return result.Clamped()
}

// lookup resolves label against [Table] and returns the matching vector, or
// nil when no keyword is a substring of the label. Unmatched labels get a
// nearest-keyword suggestion logged at debug level for catalogue tuning.
func lookup(label string) mind.TemperatureVector {
	lower := strings.ToLower(label)
	for _, e := range Table {
		if strings.Contains(lower, e.Keyword) {
			return e.Vector
		}
	}
	if kw, dist, ok := SuggestKeyword(label); ok {
		slog.Debug("emotion label matched no table keyword",
			"label", label,
			"nearest_keyword", kw,
			"distance", dist,
		)
	}
	return nil
}

// dayDreamTemperature implements the additive DayDream rule: start at 0.8,
// add 0.05·weight for curiosity or surprise, 0.10·weight for creative or
// inspiration, subtract 0.05·weight for analytical or critical, then clamp
// to [0.6, 1.0].
func dayDreamTemperature(measurements []Measurement, total float64) float64 {
	temp := dayDreamBase
	for _, m := range measurements {
		weight := m.Percentage / total
		lower := strings.ToLower(m.Label)
		switch {
		case strings.Contains(lower, "curio") || strings.Contains(lower, "surpris"):
			temp += 0.05 * weight
		case strings.Contains(lower, "creativ") || strings.Contains(lower, "inspir"):
			temp += 0.10 * weight
		case strings.Contains(lower, "analytic") || strings.Contains(lower, "critic"):
			temp -= 0.05 * weight
		}
	}
	return mind.Clamp(temp, dayDreamFloor, dayDreamCeiling)
}
