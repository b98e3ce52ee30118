package constraint

import (
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// LetterSet is a set of runes backed by a bitset indexed by rune value.
// Iteration is always in ascending rune order.
type LetterSet struct {
	bits *bitset.BitSet
}

// NewLetterSet returns a set holding the given runes.
func NewLetterSet(letters ...rune) LetterSet {
	s := LetterSet{bits: bitset.New(uint('Z') + 1)}
	for _, r := range letters {
		s.Add(r)
	}
	return s
}

// Add inserts r. Negative runes are ignored.
func (s *LetterSet) Add(r rune) {
	if r < 0 {
		return
	}
	if s.bits == nil {
		s.bits = bitset.New(uint('Z') + 1)
	}
	s.bits.Set(uint(r))
}

// Contains reports whether r is in the set.
func (s LetterSet) Contains(r rune) bool {
	if s.bits == nil || r < 0 {
		return false
	}
	return s.bits.Test(uint(r))
}

// Len returns the number of distinct runes in the set.
func (s LetterSet) Len() int {
	if s.bits == nil {
		return 0
	}
	return int(s.bits.Count())
}

// Empty reports whether the set holds nothing.
func (s LetterSet) Empty() bool {
	return s.Len() == 0
}

// Letters returns the members in ascending order.
func (s LetterSet) Letters() []rune {
	if s.Empty() {
		return nil
	}
	out := make([]rune, 0, s.bits.Count())
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		out = append(out, rune(i))
	}
	return out
}

// Clone returns an independent copy.
func (s LetterSet) Clone() LetterSet {
	if s.bits == nil {
		return NewLetterSet()
	}
	return LetterSet{bits: s.bits.Clone()}
}

// Union returns a new set with the members of both sets.
func (s LetterSet) Union(other LetterSet) LetterSet {
	out := NewLetterSet()
	if s.bits != nil {
		out.bits.InPlaceUnion(s.bits)
	}
	if other.bits != nil {
		out.bits.InPlaceUnion(other.bits)
	}
	return out
}

// ContainsAny reports whether word has at least one rune from the set.
func (s LetterSet) ContainsAny(word string) bool {
	if s.Empty() {
		return false
	}
	for _, r := range word {
		if s.Contains(r) {
			return true
		}
	}
	return false
}

// Join renders the members in order separated by sep.
func (s LetterSet) Join(sep string) string {
	letters := s.Letters()
	parts := make([]string, len(letters))
	for i, r := range letters {
		parts[i] = string(r)
	}
	return strings.Join(parts, sep)
}

// String implements fmt.Stringer.
func (s LetterSet) String() string {
	return "{" + s.Join(", ") + "}"
}
