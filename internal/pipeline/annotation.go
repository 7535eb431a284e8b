package pipeline

import (
	"fmt"
	"strings"

	"github.com/mindweave/sevenmind/pkg/memory"
	"github.com/mindweave/sevenmind/pkg/mind"
	"github.com/mindweave/sevenmind/pkg/mind/emotion"
)

// annotationMarker opens the optional state summary appended to replies.
// stripAnnotation relies on this exact prefix when rebuilding history
// context, so the two must stay in sync.
const annotationMarker = "\n\n[state: "

// annotate appends a human-readable summary of the measured state and the
// next-turn temperatures to a reply. Presentation only; the persisted record
// keeps the bare reply.
func annotate(reply string, measurements []emotion.Measurement, temps mind.TemperatureVector) string {
	var b strings.Builder
	b.WriteString(reply)
	b.WriteString(annotationMarker)
	for i, m := range measurements {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%.0f%% %s", m.Percentage, m.Label)
	}
	if len(measurements) == 0 {
		b.WriteString("baseline")
	}
	b.WriteString(" | ")
	b.WriteString(temps.String())
	b.WriteString("]")
	return b.String()
}

// stripAnnotation removes a trailing state annotation from an assistant
// message, returning the content unchanged when no annotation is present.
func stripAnnotation(content string) string {
	idx := strings.LastIndex(content, annotationMarker)
	if idx < 0 {
		return content
	}
	tail := strings.TrimRight(content[idx:], " \n")
	if !strings.HasSuffix(tail, "]") {
		return content
	}
	return strings.TrimRight(content[:idx], " \n")
}

// historyContext renders prior messages as alternating speaker-tagged
// blocks. Assistant messages are stripped of any appended state annotation
// so stage prompts never see presentation text.
func historyContext(messages []memory.Message) string {
	var b strings.Builder
	for i, msg := range messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		content := msg.Content
		speaker := "User"
		if msg.Role == memory.RoleAssistant {
			speaker = "Assistant"
			content = stripAnnotation(content)
		}
		fmt.Fprintf(&b, "%s: %s", speaker, content)
	}
	return b.String()
}

// recallContext renders associatively recalled exchanges for the DayDream
// stage.
func recallContext(exchanges []memory.Exchange) string {
	var b strings.Builder
	for i, ex := range exchanges {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "User: %s\nAssistant: %s", ex.UserInput, stripAnnotation(ex.Reply))
	}
	return b.String()
}
