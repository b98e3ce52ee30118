package constraint

import (
	"fmt"
	"strings"
	"unicode"
)

// ExclusionPolicy controls how non-letter characters in the exclusions
// text are treated.
type ExclusionPolicy string

const (
	// ExclusionAccept excludes every character typed, punctuation included.
	ExclusionAccept ExclusionPolicy = "accept"
	// ExclusionIgnore silently drops non-letters.
	ExclusionIgnore ExclusionPolicy = "ignore"
	// ExclusionReject fails on the first non-letter.
	ExclusionReject ExclusionPolicy = "reject"
)

// ParseExclusionPolicy maps a config value to a policy.
func ParseExclusionPolicy(s string) (ExclusionPolicy, error) {
	switch p := ExclusionPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", ExclusionAccept:
		return ExclusionAccept, nil
	case ExclusionIgnore, ExclusionReject:
		return p, nil
	default:
		return "", fmt.Errorf("unknown exclusion policy %q (want accept, ignore or reject)", s)
	}
}

// ParseExclusions turns free-form text into the set of excluded
// characters. Case is folded to upper and whitespace is removed.
func ParseExclusions(text string, policy ExclusionPolicy) (LetterSet, error) {
	set := NewLetterSet()
	for _, r := range normalize(text) {
		if !unicode.IsLetter(r) {
			switch policy {
			case ExclusionIgnore:
				continue
			case ExclusionReject:
				return NewLetterSet(), &ExclusionError{Char: r}
			}
		}
		set.Add(r)
	}
	return set, nil
}
