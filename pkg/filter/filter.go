// Package filter narrows a word list to the candidates consistent with a
// constraint.Spec.
package filter

import (
	"github.com/bastiangx/wordsolve/pkg/constraint"
	"github.com/bastiangx/wordsolve/pkg/dictionary"
	"github.com/charmbracelet/log"
)

// Filter returns the words of in that satisfy spec, in input order.
func Filter(in []string, spec constraint.Spec) []string {
	out := make([]string, 0, len(in))
	for _, word := range in {
		if Match(word, spec) {
			out = append(out, word)
		}
	}
	return out
}

// Candidates is Filter over a dictionary. When the spec pins a run of
// letters from position 0 the prefix index narrows the scan first.
func Candidates(d *dictionary.Dictionary, spec constraint.Spec) []string {
	pool := d.Words()
	prefix := []rune(spec.FixedPrefix())
	// pins past the word length are skipped by Match, so they must not
	// narrow the pool either
	if len(prefix) > d.Length() {
		prefix = prefix[:d.Length()]
	}
	if len(prefix) > 0 {
		pool = d.WithPrefix(string(prefix))
		log.Debugf("Prefix %q narrowed %d words to %d", string(prefix), d.Len(), len(pool))
	}
	return Filter(pool, spec)
}

// Match reports whether a single word satisfies every rule of spec:
//
//  1. it has no excluded letter
//  2. each pinned position within the word holds its letter
//  3. no negative position within the word holds its letter
//  4. every general letter appears somewhere
//
// Positions at or past the end of the word are skipped.
func Match(word string, spec constraint.Spec) bool {
	if spec.Exclusions.ContainsAny(word) {
		return false
	}

	runes := []rune(word)
	for pos, letter := range spec.Positional {
		if pos < len(runes) && runes[pos] != letter {
			return false
		}
	}
	for pos, letter := range spec.Negative {
		if pos < len(runes) && runes[pos] == letter {
			return false
		}
	}

	if spec.General.Empty() {
		return true
	}
	present := constraint.NewLetterSet(runes...)
	for _, letter := range spec.General.Letters() {
		if !present.Contains(letter) {
			return false
		}
	}
	return true
}
