// Package mind defines the cognitive data model shared across the sevenmind
// pipeline: the fixed set of agent roles and the per-role temperature vector
// that parameterises each turn's completion calls.
package mind

// Role identifies one of the seven cognitive agents in the pipeline.
// The zero value is not a valid role; use [Roles] for the canonical ordering.
type Role string

const (
	// RoleCortex performs the initial analytical read of the user's message.
	RoleCortex Role = "cortex"

	// RoleSeer scans the Cortex analysis for patterns and implications.
	RoleSeer Role = "seer"

	// RoleOracle projects the Seer's observations into possible outcomes.
	RoleOracle Role = "oracle"

	// RoleHouse grounds the Oracle's projections against practical reality.
	RoleHouse Role = "house"

	// RolePrudence weighs risks across the Oracle and House perspectives.
	RolePrudence Role = "prudence"

	// RoleDayDream produces free creative associations from the Cortex output
	// and the conversation history.
	RoleDayDream Role = "daydream"

	// RoleConscience applies an ethical reading to Prudence's assessment.
	RoleConscience Role = "conscience"
)

// Roles is the canonical ordering of all seven roles. It doubles as the
// pipeline execution order and the display order; code that iterates over
// roles must use this slice rather than ranging over a map.
var Roles = []Role{
	RoleCortex,
	RoleSeer,
	RoleOracle,
	RoleHouse,
	RolePrudence,
	RoleDayDream,
	RoleConscience,
}

// roleInfo holds the immutable per-role metadata.
type roleInfo struct {
	description  string
	baselineTemp float64
}

var roleTable = map[Role]roleInfo{
	RoleCortex:     {"analytical core that breaks the message into facts, questions and intent", 0.70},
	RoleSeer:       {"pattern scanner that reads between the lines of the analysis", 0.60},
	RoleOracle:     {"forward projector that sketches where the exchange could lead", 0.50},
	RoleHouse:      {"pragmatist that checks projections against concrete reality", 0.40},
	RolePrudence:   {"risk assessor that weighs what could go wrong and what is at stake", 0.30},
	RoleDayDream:   {"free associator that wanders from the message to loosely related images", 0.80},
	RoleConscience: {"ethical voice that asks what a good answer owes the person asking", 0.50},
}

// Valid reports whether r is one of the seven defined roles.
func (r Role) Valid() bool {
	_, ok := roleTable[r]
	return ok
}

// Description returns the fixed textual description of the role, or the
// empty string for an unknown role.
func (r Role) Description() string {
	return roleTable[r].description
}

// BaselineTemperature returns the role's immutable baseline temperature.
// Unknown roles return 0.
func (r Role) BaselineTemperature() float64 {
	return roleTable[r].baselineTemp
}

// String returns the role identifier.
func (r Role) String() string { return string(r) }
