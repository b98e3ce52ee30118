package constraint

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// DuplicatePolicy decides what happens when two tokens of the same kind
// target one position.
type DuplicatePolicy string

const (
	// DuplicateOverwrite keeps the last token (default).
	DuplicateOverwrite DuplicatePolicy = "overwrite"
	// DuplicateReject fails the parse with a DuplicatePositionError.
	DuplicateReject DuplicatePolicy = "reject"
)

// DefaultDelimiter separates inclusion tokens.
const DefaultDelimiter = ","

// ErrInvalidDelimiter is returned for a delimiter that could be read as
// part of a token or that input normalization would strip.
var ErrInvalidDelimiter = errors.New("invalid inclusion delimiter")

// ParseOptions tunes ParseInclusions. The zero value uses "," and
// DuplicateOverwrite.
type ParseOptions struct {
	Delimiter  string
	Duplicates DuplicatePolicy
}

func (o ParseOptions) delimiter() string {
	if o.Delimiter == "" {
		return DefaultDelimiter
	}
	return o.Delimiter
}

// Validate checks the delimiter. The zero value is valid.
func (o ParseOptions) Validate() error {
	if o.Delimiter == "" {
		return nil
	}
	return ValidateDelimiter(o.Delimiter)
}

// ValidateDelimiter accepts a single rune that is not whitespace, a
// letter, a digit, '-' or '+'.
func ValidateDelimiter(d string) error {
	if utf8.RuneCountInString(d) != 1 {
		return fmt.Errorf("%w %q: must be a single character", ErrInvalidDelimiter, d)
	}
	r, _ := utf8.DecodeRuneInString(d)
	switch {
	case unicode.IsSpace(r):
		return fmt.Errorf("%w %q: whitespace is removed before splitting", ErrInvalidDelimiter, d)
	case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '+':
		return fmt.Errorf("%w %q: clashes with the token syntax", ErrInvalidDelimiter, d)
	}
	return nil
}

// ParseDuplicatePolicy maps a config value to a policy.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch p := DuplicatePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", DuplicateOverwrite:
		return DuplicateOverwrite, nil
	case DuplicateReject:
		return p, nil
	default:
		return "", fmt.Errorf("unknown duplicate policy %q (want overwrite or reject)", s)
	}
}

// ParseInclusions parses the inclusion mini-language:
//
//	2A   letter A at position 2
//	-4E  E is in the word but not at position 4
//	+R   R is somewhere in the word
//
// Positions are 1-based and a single digit. The text is uppercased and
// stripped of whitespace before splitting. The first malformed token stops
// the parse and nothing parsed before it is returned.
func ParseInclusions(text string, opts ParseOptions) (Inclusions, error) {
	inc := NewInclusions()
	if err := opts.Validate(); err != nil {
		return inc, err
	}
	cleaned := normalize(text)
	if cleaned == "" {
		return inc, nil
	}

	for _, token := range strings.Split(cleaned, opts.delimiter()) {
		if token == "" {
			continue
		}
		if err := inc.apply(token, opts.Duplicates); err != nil {
			log.Debugf("Inclusion parse aborted at token '%s': %v", token, err)
			return NewInclusions(), err
		}
	}
	return inc, nil
}

// apply interprets one non-empty token.
func (inc *Inclusions) apply(token string, dup DuplicatePolicy) error {
	runes := []rune(token)

	switch {
	case len(runes) == 3 && runes[0] == '-' && isPosition(runes[1]) && unicode.IsLetter(runes[2]):
		pos := int(runes[1] - '1')
		if _, seen := inc.Negative[pos]; seen && dup == DuplicateReject {
			return &DuplicatePositionError{Position: pos + 1, Token: token}
		}
		inc.Negative[pos] = runes[2]
		inc.General.Add(runes[2])

	case len(runes) == 2 && isPosition(runes[0]) && unicode.IsLetter(runes[1]):
		pos := int(runes[0] - '1')
		if _, seen := inc.Positional[pos]; seen && dup == DuplicateReject {
			return &DuplicatePositionError{Position: pos + 1, Token: token}
		}
		inc.Positional[pos] = runes[1]

	case len(runes) == 2 && runes[0] == '+' && unicode.IsLetter(runes[1]):
		inc.General.Add(runes[1])

	default:
		return &FormatError{Token: token}
	}
	return nil
}

// isPosition accepts the digits 1-9.
func isPosition(r rune) bool {
	return r >= '1' && r <= '9'
}

// normalize uppercases s and drops every whitespace rune.
func normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.ToUpper(s))
}
