// Package constraint parses the player's exclusions and inclusions into
// the structured query the candidate filter runs against.
package constraint

import (
	"fmt"
	"sort"
	"strings"
)

// Spec fully describes one filtering query. Positions are 0-based.
type Spec struct {
	Exclusions LetterSet
	Positional map[int]rune
	General    LetterSet
	Negative   map[int]rune
}

// Inclusions is the part of a Spec produced by ParseInclusions.
type Inclusions struct {
	Positional map[int]rune
	General    LetterSet
	Negative   map[int]rune
}

// NewInclusions returns empty containers.
func NewInclusions() Inclusions {
	return Inclusions{
		Positional: make(map[int]rune),
		General:    NewLetterSet(),
		Negative:   make(map[int]rune),
	}
}

// NewSpec combines an exclusion set with parsed inclusions.
func NewSpec(exclusions LetterSet, inc Inclusions) Spec {
	return Spec{
		Exclusions: exclusions,
		Positional: inc.Positional,
		General:    inc.General,
		Negative:   inc.Negative,
	}
}

// Letters returns the letters of interest for ranking: the general
// inclusions plus every positionally fixed letter.
func (s Spec) Letters() LetterSet {
	out := s.General.Clone()
	for _, r := range s.Positional {
		out.Add(r)
	}
	return out
}

// FixedPrefix returns the longest run of pinned letters starting at
// position 0, e.g. {0:'C', 1:'R', 3:'N'} gives "CR".
func (s Spec) FixedPrefix() string {
	var b strings.Builder
	for i := 0; ; i++ {
		r, ok := s.Positional[i]
		if !ok {
			return b.String()
		}
		b.WriteRune(r)
	}
}

// FormatPositional renders positions 1-based in ascending order, e.g. "1C, 3A".
func FormatPositional(m map[int]rune, sign string) string {
	positions := make([]int, 0, len(m))
	for p := range m {
		positions = append(positions, p)
	}
	sort.Ints(positions)
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = fmt.Sprintf("%s%d%c", sign, p+1, m[p])
	}
	return strings.Join(parts, ", ")
}
