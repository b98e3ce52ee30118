package constraint

import "fmt"

// FormatError is returned when an inclusion token matches none of the
// accepted forms.
type FormatError struct {
	Token string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid inclusion format: '%s'. Expected formats '2A', '-4E' or '+E'", e.Token)
}

// DuplicatePositionError is returned under DuplicateReject when a token
// targets a position that an earlier token of the same kind already set.
type DuplicatePositionError struct {
	Position int // 1-based, as typed
	Token    string
}

func (e *DuplicatePositionError) Error() string {
	return fmt.Sprintf("position %d is set more than once (token '%s')", e.Position, e.Token)
}

// ExclusionError is returned under ExclusionReject for a non-letter
// character in the exclusions text.
type ExclusionError struct {
	Char rune
}

func (e *ExclusionError) Error() string {
	return fmt.Sprintf("invalid exclusion character %q: only letters can be excluded", e.Char)
}
