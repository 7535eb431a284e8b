package pipeline

import (
	"fmt"

	"github.com/mindweave/sevenmind/pkg/mind"
)

// turnContext accumulates everything the stage prompt builders can draw on
// during one turn. Outputs fills in as stages complete; each builder reads
// only its declared inputs.
type turnContext struct {
	// UserInput is the raw user message for this turn.
	UserInput string

	// History is the formatted prior-exchange context, at most the last
	// three exchanges, with any reply annotations stripped.
	History string

	// Recall is the formatted associative-recall context for the DayDream
	// stage. Empty when no recaller is configured or recall failed.
	Recall string

	// Outputs holds the text produced by each completed stage.
	Outputs map[mind.Role]string
}

// stageSpec declares one pipeline stage: the role whose temperature
// parameterises the call, the progress phase reported while it runs, and the
// prompt builder that encodes the stage's input dependencies.
type stageSpec struct {
	Role   mind.Role
	Phase  Phase
	Prompt func(*turnContext) string
}

// stages is the fixed pipeline in execution order. The chain is strictly
// sequential: every stage's prompt depends on output the stages before it
// produced.
//
//	Cortex     ← user message (+ history)
//	Seer       ← Cortex
//	Oracle     ← Seer
//	House      ← Oracle
//	Prudence   ← Oracle + House
//	DayDream   ← Cortex + history (+ recall)
//	Conscience ← Prudence
var stages = []stageSpec{
	{mind.RoleCortex, PhaseAnalyzing, cortexPrompt},
	{mind.RoleSeer, PhaseScanning, seerPrompt},
	{mind.RoleOracle, PhaseEvaluating, oraclePrompt},
	{mind.RoleHouse, PhaseConsidering, housePrompt},
	{mind.RolePrudence, PhaseAssessing, prudencePrompt},
	{mind.RoleDayDream, PhaseExploring, dayDreamPrompt},
	{mind.RoleConscience, PhaseWeighing, consciencePrompt},
}

// StageError reports which stage's completion call failed. It wraps the
// provider error so callers can still reach llm.APIError or
// llm.TransportError through errors.As.
type StageError struct {
	// Role is the stage that failed, or empty for the integration and
	// self-analysis calls.
	Role mind.Role

	// Call names the failed call for the two post-stage calls
	// ("integration", "self-analysis"); empty for role stages.
	Call string

	// Err is the underlying provider error.
	Err error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	if e.Call != "" {
		return fmt.Sprintf("pipeline: %s call: %v", e.Call, e.Err)
	}
	return fmt.Sprintf("pipeline: stage %s: %v", e.Role, e.Err)
}

// Unwrap returns the underlying provider error.
func (e *StageError) Unwrap() error { return e.Err }
