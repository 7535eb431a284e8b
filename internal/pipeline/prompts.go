package pipeline

import (
	"fmt"
	"strings"

	"github.com/mindweave/sevenmind/pkg/mind"
	"github.com/mindweave/sevenmind/pkg/mind/emotion"
)

// Fixed temperatures for the two post-stage calls. Stage calls themselves
// use the per-role values from the current temperature vector.
const (
	integrationTemperature  = 0.4
	selfAnalysisTemperature = 0.7
)

// section is one titled block of context inside a stage prompt. Empty bodies
// are skipped so optional context (history, recall) costs nothing when
// absent.
type section struct {
	title string
	body  string
}

// buildPrompt renders a stage prompt: persona line, context sections, then
// the stage's task instruction.
func buildPrompt(role mind.Role, instruction string, sections ...section) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, %s.\n", strings.ToUpper(role.String()), role.Description())
	for _, s := range sections {
		if s.body == "" {
			continue
		}
		fmt.Fprintf(&b, "\n%s:\n%s\n", s.title, s.body)
	}
	b.WriteString("\n")
	b.WriteString(instruction)
	return b.String()
}

func cortexPrompt(c *turnContext) string {
	return buildPrompt(mind.RoleCortex,
		"Break the message down: what is being said, what is being asked, and what the person seems to want. List the facts you can rely on and the open questions.",
		section{"Conversation so far", c.History},
		section{"User message", c.UserInput},
	)
}

func seerPrompt(c *turnContext) string {
	return buildPrompt(mind.RoleSeer,
		"Read between the lines of the analysis. Name the patterns, assumptions, and unstated implications you notice.",
		section{"Cortex analysis", c.Outputs[mind.RoleCortex]},
	)
}

func oraclePrompt(c *turnContext) string {
	return buildPrompt(mind.RoleOracle,
		"Project forward. Sketch the two or three most plausible directions this exchange could take and what each would require from a reply.",
		section{"Seer observations", c.Outputs[mind.RoleSeer]},
	)
}

func housePrompt(c *turnContext) string {
	return buildPrompt(mind.RoleHouse,
		"Ground the projections. Which of them hold up against concrete, practical reality, and which are speculation? Be blunt.",
		section{"Oracle projections", c.Outputs[mind.RoleOracle]},
	)
}

func prudencePrompt(c *turnContext) string {
	return buildPrompt(mind.RolePrudence,
		"Weigh the risks. Given the projections and the practical assessment, what could go wrong with a reply, and what is at stake for the person asking?",
		section{"Oracle projections", c.Outputs[mind.RoleOracle]},
		section{"House assessment", c.Outputs[mind.RoleHouse]},
	)
}

func dayDreamPrompt(c *turnContext) string {
	return buildPrompt(mind.RoleDayDream,
		"Wander. Follow loose associations from the analysis and the conversation to images, memories, and ideas that are only distantly related. Do not evaluate them.",
		section{"Cortex analysis", c.Outputs[mind.RoleCortex]},
		section{"Conversation so far", c.History},
		section{"Echoes of earlier exchanges", c.Recall},
	)
}

func consciencePrompt(c *turnContext) string {
	return buildPrompt(mind.RoleConscience,
		"Apply an ethical reading. What does a good answer owe the person asking, and where does the risk assessment conflict with that?",
		section{"Prudence assessment", c.Outputs[mind.RolePrudence]},
	)
}

// integrationPrompt asks for the single reply text, built from every stage
// output in canonical role order.
func integrationPrompt(c *turnContext) string {
	var b strings.Builder
	b.WriteString("You are the integrated voice of seven cognitive agents. Compose one coherent reply to the user, drawing on every perspective below. Speak directly to the user; do not mention the agents.\n")
	fmt.Fprintf(&b, "\nUser message:\n%s\n", c.UserInput)
	for _, role := range mind.Roles {
		fmt.Fprintf(&b, "\n%s (%s):\n%s\n", strings.ToUpper(role.String()), role.Description(), c.Outputs[role])
	}
	b.WriteString("\nReply:")
	return b.String()
}

// selfAnalysisPrompt asks the model to report its own emotional and
// cognitive state as percentage-labelled lines drawn from the fixed state
// catalogue. The parser accepts exactly the "NN% Label" shape requested
// here and silently drops everything else.
func selfAnalysisPrompt(c *turnContext) string {
	var b strings.Builder
	b.WriteString("Having produced the perspectives below, analyse the emotional and cognitive state of the system that produced them.\n")
	for _, role := range mind.Roles {
		fmt.Fprintf(&b, "\n%s:\n%s\n", strings.ToUpper(role.String()), c.Outputs[role])
	}
	b.WriteString("\nReport the state as one line per named state, in the form:\n")
	b.WriteString("30% Analytical\n20% Curiosity\n")
	b.WriteString("\nUse only states from this catalogue, and make the percentages total 100:\n\n")
	b.WriteString(emotion.CatalogueText())
	return b.String()
}
