// Package emotion implements the emotional feedback loop of the pipeline:
// parsing the model's free-text self-analysis into measurements, and blending
// those measurements into the next turn's per-role temperature vector.
package emotion

import "strings"

// Measurement is one line of a parsed self-analysis: a named state and the
// percentage the model assigned to it. Percentages across one analysis are
// expected, but never required, to sum to 100.
type Measurement struct {
	Label      string  `json:"label"`
	Percentage float64 `json:"percentage"`
}

// Category groups the named states offered to the model in the self-analysis
// prompt.
type Category struct {
	Name   string
	States []string
}

// Catalogue is the closed set of named states the self-analysis prompt
// constrains the model to. Forty states across four categories; the prompt
// instructs the model to distribute 100% across them.
var Catalogue = []Category{
	{
		Name: "Primary emotions",
		States: []string{
			"Joy", "Sadness", "Fear", "Anger", "Surprise",
			"Disgust", "Trust", "Anticipation", "Love", "Calm",
		},
	},
	{
		Name: "Complex emotions",
		States: []string{
			"Nostalgia", "Pride", "Shame", "Guilt", "Envy",
			"Gratitude", "Hope", "Loneliness", "Awe", "Contentment",
		},
	},
	{
		Name: "Cognitive-emotional blends",
		States: []string{
			"Curiosity", "Confusion", "Determination", "Frustration", "Inspiration",
			"Doubt", "Confidence", "Empathy", "Skepticism", "Fascination",
		},
	},
	{
		Name: "Processing states",
		States: []string{
			"Analytical", "Reflective", "Creative", "Focused", "Exploratory",
			"Cautious", "Critical", "Integrative", "Meditative", "Alert",
		},
	},
}

// CatalogueText renders the catalogue as the bullet list embedded in the
// self-analysis prompt.
func CatalogueText() string {
	var sb strings.Builder
	for _, cat := range Catalogue {
		sb.WriteString(cat.Name)
		sb.WriteString(":\n")
		for _, s := range cat.States {
			sb.WriteString("  - ")
			sb.WriteString(s)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
