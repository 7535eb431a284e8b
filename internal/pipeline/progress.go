package pipeline

// Phase describes where within a turn the pipeline currently is. Phases are
// an observability signal only; they carry no correctness contract.
type Phase int

const (
	// PhaseIdle is reported before the first stage and after the turn
	// finishes, whether it succeeded or failed.
	PhaseIdle Phase = iota

	// PhaseAnalyzing covers the Cortex stage.
	PhaseAnalyzing

	// PhaseScanning covers the Seer stage.
	PhaseScanning

	// PhaseEvaluating covers the Oracle stage.
	PhaseEvaluating

	// PhaseConsidering covers the House stage.
	PhaseConsidering

	// PhaseAssessing covers the Prudence stage.
	PhaseAssessing

	// PhaseExploring covers the DayDream stage.
	PhaseExploring

	// PhaseWeighing covers the Conscience stage.
	PhaseWeighing

	// PhaseIntegrating covers both the integration and the self-analysis
	// completion calls.
	PhaseIntegrating
)

var phaseNames = map[Phase]string{
	PhaseIdle:        "idle",
	PhaseAnalyzing:   "analyzing",
	PhaseScanning:    "scanning",
	PhaseEvaluating:  "evaluating",
	PhaseConsidering: "considering",
	PhaseAssessing:   "assessing",
	PhaseExploring:   "exploring",
	PhaseWeighing:    "weighing",
	PhaseIntegrating: "integrating",
}

// String returns the lower-case phase name, or "unknown" for values outside
// the defined range.
func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "unknown"
}

// ProgressFunc receives one call per phase transition during a turn. It is
// invoked synchronously on the turn's goroutine, so implementations must
// return quickly and never block; slow sinks should hand off to a buffered
// channel and drop on overflow.
type ProgressFunc func(Phase)
