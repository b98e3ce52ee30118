// Package session runs one solve or reset per user action against a
// caller-owned State.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/bastiangx/wordsolve/internal/logger"
	"github.com/bastiangx/wordsolve/pkg/config"
	"github.com/bastiangx/wordsolve/pkg/constraint"
	"github.com/bastiangx/wordsolve/pkg/dictionary"
	"github.com/bastiangx/wordsolve/pkg/filter"
	"github.com/bastiangx/wordsolve/pkg/rank"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// DefaultMinRankAttempt is the first attempt that may be ranked.
const DefaultMinRankAttempt = 3

// Request carries the four user inputs plus the optional credential.
type Request struct {
	WordLength int
	Exclusions string
	Inclusions string
	DictPath   string
	Credential string
}

// State is owned by the front end and survives between actions.
type State struct {
	ID       string
	Attempts int
	// Output is the text of the last successful solve.
	Output string
}

// NewState returns a fresh state with a random ID for log correlation.
func NewState() *State {
	return &State{ID: uuid.NewString()}
}

// Options tunes a Solver.
type Options struct {
	Parse           constraint.ParseOptions
	ExclusionPolicy constraint.ExclusionPolicy
	// MinRankAttempt gates ranking; 0 means DefaultMinRankAttempt.
	MinRankAttempt int
}

// Solver is stateless; every call gets the State to act on.
type Solver struct {
	opts   Options
	ranker rank.Ranker
	log    *log.Logger
}

// NewSolver wires a ranker into a solver. A nil ranker disables ranking.
func NewSolver(ranker rank.Ranker, opts Options) *Solver {
	if opts.MinRankAttempt < 1 {
		opts.MinRankAttempt = DefaultMinRankAttempt
	}
	if opts.ExclusionPolicy == "" {
		opts.ExclusionPolicy = constraint.ExclusionAccept
	}
	return &Solver{
		opts:   opts,
		ranker: ranker,
		log:    logger.New("solve"),
	}
}

// FromConfig builds a solver with an OpenAI ranker from cfg.
func FromConfig(cfg *config.Config) (*Solver, error) {
	exPolicy, err := constraint.ParseExclusionPolicy(cfg.Solver.ExclusionPolicy)
	if err != nil {
		return nil, err
	}
	dupPolicy, err := constraint.ParseDuplicatePolicy(cfg.Solver.DuplicatePolicy)
	if err != nil {
		return nil, err
	}
	parse := constraint.ParseOptions{Delimiter: cfg.Solver.Delimiter, Duplicates: dupPolicy}
	if err := parse.Validate(); err != nil {
		return nil, err
	}
	ranker := rank.NewOpenAIRanker(rank.Options{
		Model:   cfg.Rank.Model,
		BaseURL: cfg.Rank.BaseURL,
		Timeout: cfg.Rank.Timeout(),
		TopN:    cfg.Rank.TopN,
	})
	return NewSolver(ranker, Options{
		Parse:           parse,
		ExclusionPolicy: exPolicy,
		MinRankAttempt:  cfg.Rank.MinAttempt,
	}), nil
}

// Solve counts one attempt, then parses, loads, filters and maybe ranks.
// Any error leaves st.Output as it was; the attempt still counts.
func (s *Solver) Solve(ctx context.Context, st *State, req Request) (*Result, error) {
	st.Attempts++
	attempt := st.Attempts
	l := s.log.With("session", st.ID, "attempt", attempt)

	exclusions, err := constraint.ParseExclusions(req.Exclusions, s.opts.ExclusionPolicy)
	if err != nil {
		return nil, fmt.Errorf("exclusions: %w", err)
	}
	inc, err := constraint.ParseInclusions(req.Inclusions, s.opts.Parse)
	if err != nil {
		return nil, fmt.Errorf("inclusions: %w", err)
	}
	spec := constraint.NewSpec(exclusions, inc)

	if err := dictionary.ValidateFile(req.DictPath); err != nil {
		return nil, err
	}
	dict, err := dictionary.Load(req.DictPath, req.WordLength)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	words := filter.Candidates(dict, spec)
	l.Debugf("Filtered %d words to %d in [ %v ]", dict.Len(), len(words), time.Since(start))

	res := &Result{
		Attempt:    attempt,
		Spec:       spec,
		Candidates: words,
	}

	if s.shouldRank(attempt, req.Credential, words) {
		r := s.ranker.Rank(ctx, rank.Query{
			Candidates: words,
			Letters:    spec.Letters().Letters(),
			Credential: req.Credential,
		})
		if !r.OK() {
			l.Warn("Ranking unavailable", "err", r.Err)
		}
		res.Ranking = &r
	}

	st.Output = res.Text()
	return res, nil
}

// Reset zeroes the attempt counter and clears the displayed output.
func (s *Solver) Reset(st *State) {
	s.log.Debug("Reset", "session", st.ID, "attempts", st.Attempts)
	st.Attempts = 0
	st.Output = ""
}

// MinRankAttempt is the first attempt number that may be ranked.
func (s *Solver) MinRankAttempt() int { return s.opts.MinRankAttempt }

func (s *Solver) shouldRank(attempt int, credential string, words []string) bool {
	return s.ranker != nil &&
		attempt >= s.opts.MinRankAttempt &&
		credential != "" &&
		len(words) > 0
}
