package emotion

import (
	"strconv"
	"strings"
)

// Parse extracts (label, percentage) measurements from a free-text
// self-analysis block.
//
// Each input line is split on '%'. A line is accepted only when it splits
// into exactly two parts, the first part parses as a number, and the second
// part is non-empty after trimming whitespace; the trimmed remainder becomes
// the label. Everything else — headers, blank lines, free-text notes, lines
// with more than one '%' — is silently skipped.
//
// Parse performs no normalisation and no check that the accepted percentages
// sum to 100; the blender normalises by whatever total it observes.
func Parse(text string) []Measurement {
	var out []Measurement
	for line := range strings.Lines(text) {
		parts := strings.Split(strings.TrimRight(line, "\n"), "%")
		if len(parts) != 2 {
			continue
		}
		pct, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			continue
		}
		label := strings.TrimSpace(parts[1])
		if label == "" {
			continue
		}
		out = append(out, Measurement{Label: label, Percentage: pct})
	}
	return out
}
