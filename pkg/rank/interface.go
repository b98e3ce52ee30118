// Package rank asks a chat-completion model to order candidate words by
// how common they are.
//
// Failures are values, not errors: a Result always carries display text,
// and OK reports whether that text is a ranking or an error line. Callers
// keep showing the candidates either way.
package rank

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNoCredential means no API key was supplied.
	ErrNoCredential = errors.New("no API credential")
	// ErrNothingToRank means the candidate list was empty.
	ErrNothingToRank = errors.New("no candidates to rank")
	// ErrNoChoices means the endpoint answered without a completion.
	ErrNoChoices = errors.New("completion returned no choices")
)

// Ranker orders candidates.
type Ranker interface {
	Rank(ctx context.Context, q Query) Result
}

// Query is one ranking request.
type Query struct {
	Candidates []string
	// Letters of interest, already ordered and deduplicated.
	Letters    []rune
	Credential string
}

// Result is either ranked text from the model or a failure.
type Result struct {
	Text       string
	StatusCode int
	Err        error
}

// OK reports whether Text is the model's ranking.
func (r Result) OK() bool { return r.Err == nil }

func success(text string) Result {
	return Result{Text: text}
}

// failure builds the error result; status 0 means no HTTP response.
func failure(status int, err error) Result {
	if status != 0 {
		return Result{Text: fmt.Sprintf("Error: %d", status), StatusCode: status, Err: err}
	}
	return Result{Text: fmt.Sprintf("Error: %v", err), Err: err}
}
