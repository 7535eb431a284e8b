package emotion

import "github.com/mindweave/sevenmind/pkg/mind"

// Entry maps one emotion keyword to a full temperature vector. Keywords are
// matched case-insensitively as substrings of a measurement's label, in table
// order, first match wins.
type Entry struct {
	Keyword string
	Vector  mind.TemperatureVector
}

// vec builds a vector in canonical role order:
// cortex, seer, oracle, house, prudence, daydream, conscience.
func vec(cortex, seer, oracle, house, prudence, daydream, conscience float64) mind.TemperatureVector {
	return mind.TemperatureVector{
		mind.RoleCortex:     cortex,
		mind.RoleSeer:       seer,
		mind.RoleOracle:     oracle,
		mind.RoleHouse:      house,
		mind.RolePrudence:   prudence,
		mind.RoleDayDream:   daydream,
		mind.RoleConscience: conscience,
	}
}

// Table is the authored emotion-to-temperature mapping. The values are design
// content, hand-tuned per keyword: e.g. fear raises Prudence and lowers
// Cortex and House, joy raises Cortex and DayDream and keeps Prudence low.
//
// Order matters: broader keywords are listed after more specific ones so that
// a label like "Contentment" hits "content" only if nothing earlier matched.
// Every value must lie in [0, 1]; TestTableValuesInRange enforces this.
var Table = []Entry{
	// Primary emotions.
	{"joy", vec(0.80, 0.70, 0.60, 0.50, 0.40, 0.90, 0.50)},
	{"happ", vec(0.80, 0.70, 0.60, 0.50, 0.40, 0.90, 0.50)},
	{"sad", vec(0.50, 0.55, 0.45, 0.40, 0.50, 0.60, 0.65)},
	{"melanchol", vec(0.50, 0.55, 0.45, 0.40, 0.50, 0.65, 0.65)},
	{"fear", vec(0.30, 0.50, 0.40, 0.20, 0.90, 0.60, 0.60)},
	{"anxi", vec(0.35, 0.55, 0.45, 0.25, 0.85, 0.60, 0.55)},
	{"rage", vec(0.40, 0.40, 0.35, 0.30, 0.75, 0.55, 0.80)},
	{"anger", vec(0.45, 0.45, 0.40, 0.35, 0.70, 0.55, 0.75)},
	{"angr", vec(0.45, 0.45, 0.40, 0.35, 0.70, 0.55, 0.75)},
	{"surpris", vec(0.65, 0.75, 0.60, 0.45, 0.45, 0.90, 0.50)},
	{"disgust", vec(0.45, 0.50, 0.40, 0.40, 0.65, 0.50, 0.80)},
	{"trust", vec(0.70, 0.60, 0.55, 0.55, 0.25, 0.75, 0.55)},
	{"anticipat", vec(0.70, 0.70, 0.70, 0.50, 0.40, 0.85, 0.50)},
	{"love", vec(0.75, 0.65, 0.55, 0.50, 0.30, 0.85, 0.60)},
	{"calm", vec(0.60, 0.55, 0.50, 0.45, 0.30, 0.70, 0.50)},

	// Complex emotions.
	{"nostalg", vec(0.55, 0.60, 0.45, 0.40, 0.40, 0.85, 0.55)},
	{"proud", vec(0.75, 0.60, 0.55, 0.50, 0.35, 0.75, 0.55)},
	{"pride", vec(0.75, 0.60, 0.55, 0.50, 0.35, 0.75, 0.55)},
	{"shame", vec(0.45, 0.50, 0.40, 0.35, 0.70, 0.55, 0.85)},
	{"guilt", vec(0.45, 0.50, 0.40, 0.35, 0.65, 0.55, 0.90)},
	{"envy", vec(0.50, 0.55, 0.50, 0.40, 0.55, 0.60, 0.75)},
	{"gratitud", vec(0.70, 0.60, 0.50, 0.50, 0.30, 0.80, 0.60)},
	{"gratef", vec(0.70, 0.60, 0.50, 0.50, 0.30, 0.80, 0.60)},
	{"hope", vec(0.70, 0.65, 0.75, 0.50, 0.35, 0.85, 0.55)},
	{"lonel", vec(0.50, 0.55, 0.45, 0.40, 0.55, 0.65, 0.65)},
	{"awe", vec(0.65, 0.75, 0.65, 0.40, 0.40, 0.95, 0.55)},
	{"content", vec(0.65, 0.55, 0.50, 0.50, 0.25, 0.75, 0.50)},

	// Cognitive-emotional blends.
	{"curio", vec(0.75, 0.80, 0.70, 0.50, 0.35, 0.90, 0.50)},
	{"confus", vec(0.45, 0.65, 0.50, 0.35, 0.60, 0.70, 0.50)},
	{"determin", vec(0.75, 0.60, 0.60, 0.65, 0.40, 0.65, 0.55)},
	{"frustrat", vec(0.50, 0.50, 0.45, 0.40, 0.65, 0.55, 0.65)},
	{"inspir", vec(0.75, 0.70, 0.65, 0.45, 0.30, 0.95, 0.55)},
	{"doubt", vec(0.50, 0.60, 0.50, 0.40, 0.70, 0.60, 0.60)},
	{"confiden", vec(0.80, 0.65, 0.60, 0.60, 0.25, 0.75, 0.50)},
	{"empath", vec(0.65, 0.70, 0.55, 0.45, 0.35, 0.75, 0.80)},
	{"skeptic", vec(0.55, 0.65, 0.50, 0.50, 0.65, 0.50, 0.60)},
	{"fascinat", vec(0.70, 0.80, 0.65, 0.45, 0.35, 0.95, 0.50)},

	// Processing states.
	{"analytic", vec(0.85, 0.70, 0.55, 0.55, 0.35, 0.60, 0.50)},
	{"reflect", vec(0.60, 0.70, 0.55, 0.45, 0.40, 0.75, 0.70)},
	{"creativ", vec(0.70, 0.65, 0.60, 0.40, 0.30, 0.95, 0.50)},
	{"focus", vec(0.80, 0.60, 0.50, 0.60, 0.35, 0.55, 0.50)},
	{"explor", vec(0.70, 0.75, 0.70, 0.45, 0.35, 0.90, 0.50)},
	{"cautio", vec(0.50, 0.55, 0.50, 0.40, 0.85, 0.55, 0.60)},
	{"critic", vec(0.70, 0.65, 0.50, 0.55, 0.60, 0.50, 0.65)},
	{"integrat", vec(0.70, 0.70, 0.60, 0.55, 0.40, 0.70, 0.60)},
	{"meditat", vec(0.55, 0.60, 0.50, 0.40, 0.30, 0.80, 0.60)},
	{"alert", vec(0.75, 0.70, 0.55, 0.55, 0.60, 0.55, 0.50)},
}
