package cli

import (
	"fmt"
	"strings"

	"github.com/bastiangx/wordsolve/pkg/constraint"
	"github.com/bastiangx/wordsolve/pkg/session"
	"github.com/charmbracelet/lipgloss"
)

// Styles colors the terminal output. With color off every string is
// written as is, so plain output matches session.Result.Text exactly.
type Styles struct {
	color bool

	Title  lipgloss.Style
	Label  lipgloss.Style
	Word   lipgloss.Style
	Rank   lipgloss.Style
	Error  lipgloss.Style
	Prompt lipgloss.Style
}

// NewStyles returns the default palette, or plain output when color is
// false.
func NewStyles(color bool) Styles {
	return Styles{
		color:  color,
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}),
		Label:  lipgloss.NewStyle().Faint(true),
		Word:   lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		Rank:   lipgloss.NewStyle().Italic(true).Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"}),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#b4637a", Dark: "#eb6f92"}),
		Prompt: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#907aa9", Dark: "#c4a7e7"}),
	}
}

func (s Styles) paint(st lipgloss.Style, text string) string {
	if !s.color || text == "" {
		return text
	}
	return st.Render(text)
}

// Result renders the same block as res.Text, styled.
func (s Styles) Result(res *session.Result) string {
	var b strings.Builder
	b.WriteString(s.paint(s.Title, fmt.Sprintf("Attempt %d:", res.Attempt)))
	b.WriteString("\n")
	s.field(&b, "Current exclusions", res.Spec.Exclusions.Join(", "))
	s.field(&b, "Current inclusions", constraint.FormatPositional(res.Spec.Positional, ""))
	s.field(&b, "Current negative inclusions", constraint.FormatPositional(res.Spec.Negative, "-"))

	words := make([]string, len(res.Candidates))
	for i, w := range res.Candidates {
		words[i] = s.paint(s.Word, w)
	}
	s.field(&b, "Possible words", strings.Join(words, ", "))

	if res.Ranking != nil {
		st := s.Rank
		if !res.Ranked() {
			st = s.Error
		}
		for _, line := range strings.Split(res.Ranking.Text, "\n") {
			b.WriteString(s.paint(st, line))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (s Styles) field(b *strings.Builder, label, value string) {
	b.WriteString(s.paint(s.Label, label+":"))
	b.WriteString(" ")
	b.WriteString(value)
	b.WriteString("\n")
}
