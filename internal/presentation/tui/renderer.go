package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/automata/pkg/playback"
	"github.com/charmbracelet/glamour"
)

// DefaultWidth is the wrap width used when the terminal size is unknown.
const DefaultWidth = 100

// NewRenderer returns a function that renders markdown using glamour, wrapped at width.
// Rendering falls back to the raw markdown when no renderer can be built.
func NewRenderer(width int) func(string) (string, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// StepMarkdown describes the current step of v: pseudo-code with the active
// line marked, the narration, and the queue and result set.
func StepMarkdown(v playback.View) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "## %s · step %d/%d\n\n", v.Algorithm, v.Cursor+1, v.Total)

	sb.WriteString("```\n")
	for _, c := range v.Code {
		marker := "  "
		if c.Line == v.Line {
			marker = "> "
		}
		fmt.Fprintf(&sb, "%s%d. %s\n", marker, c.Line, c.Text)
	}
	sb.WriteString("```\n\n")

	if v.Description != "" {
		fmt.Fprintf(&sb, "**%s**\n\n", v.Description)
	}

	fmt.Fprintf(&sb, "- Queue L: %s\n", set(v.Queue))
	fmt.Fprintf(&sb, "- %s: %s\n", v.ResultName, set(v.Accessible))
	if len(v.HighlightedNodes) > 0 {
		fmt.Fprintf(&sb, "- Highlighted: %s\n", strings.Join(v.HighlightedNodes, ", "))
	}

	if v.Finished {
		sb.WriteString("\n_Finished._")
		if v.CanPrune {
			fmt.Fprintf(&sb, " States outside %s can be pruned.", v.ResultName)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func set(ids []string) string {
	if len(ids) == 0 {
		return "∅"
	}
	return "{" + strings.Join(ids, ", ") + "}"
}
