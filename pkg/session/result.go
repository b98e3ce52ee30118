package session

import (
	"fmt"
	"strings"

	"github.com/bastiangx/wordsolve/pkg/constraint"
	"github.com/bastiangx/wordsolve/pkg/rank"
)

// Result is one successful solve.
type Result struct {
	Attempt    int
	Spec       constraint.Spec
	Candidates []string
	// Ranking is nil when ranking was not attempted.
	Ranking *rank.Result
}

// Text renders the block shown to the player.
func (r *Result) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Attempt %d:\n", r.Attempt)
	fmt.Fprintf(&b, "Current exclusions: %s\n", r.Spec.Exclusions.Join(", "))
	fmt.Fprintf(&b, "Current inclusions: %s\n", constraint.FormatPositional(r.Spec.Positional, ""))
	fmt.Fprintf(&b, "Current negative inclusions: %s\n", constraint.FormatPositional(r.Spec.Negative, "-"))
	fmt.Fprintf(&b, "Possible words: %s\n", strings.Join(r.Candidates, ", "))
	if r.Ranking != nil {
		b.WriteString(r.Ranking.Text)
		b.WriteString("\n")
	}
	return b.String()
}

// Ranked reports whether the model's ranking is present and not an error.
func (r *Result) Ranked() bool {
	return r.Ranking != nil && r.Ranking.OK()
}
