package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bastiangx/wordsolve/internal/logger"
	"github.com/bastiangx/wordsolve/pkg/session"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Options are the defaults applied to requests that leave a field out.
type Options struct {
	WordLength int
	DictPath   string
	Credential string
	// MaxWords caps the words list of a solve response, 0 for no cap.
	MaxWords   int
}

// Server handles the IPC for one solving session.
type Server struct {
	solver  *session.Solver
	state   *session.State
	opts    Options
	dec     *msgpack.Decoder
	enc     *msgpack.Encoder
	log     *log.Logger
	handled int
}

// NewServer creates a server reading requests from r and writing
// responses to w.
func NewServer(solver *session.Solver, opts Options, r io.Reader, w io.Writer) *Server {
	return &Server{
		solver: solver,
		state:  session.NewState(),
		opts:   opts,
		dec:    msgpack.NewDecoder(r),
		enc:    msgpack.NewEncoder(w),
		log:    logger.NewWithConfig("serve", log.GetLevel(), false, log.GetLevel() == log.DebugLevel, log.LogfmtFormatter),
	}
}

// Start announces readiness and serves requests until the input ends.
// A malformed message is answered with an error and skipped; only a
// broken stream stops the loop.
func (s *Server) Start(ctx context.Context) error {
	s.log.Debug("Starting server", "session", s.state.ID)
	if err := s.send(StatusResponse{Status: StatusReady}); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		raw, err := s.dec.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debug("Input closed", "handled", s.handled)
				return nil
			}
			s.log.Errorf("Reading request: %v", err)
			return err
		}

		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			s.log.Warnf("Invalid request: %v", err)
			if err := s.sendError("", fmt.Errorf("invalid msgpack request: %w", err)); err != nil {
				return err
			}
			continue
		}
		if err := s.handle(ctx, req); err != nil {
			return err
		}
	}
}

// handle dispatches one request. The returned error is a write failure.
func (s *Server) handle(ctx context.Context, req Request) error {
	s.handled++
	s.log.Debug("Request", "id", req.ID, "action", req.Action)

	switch req.Action {
	case "", ActionSolve:
		return s.handleSolve(ctx, req)
	case ActionReset:
		s.solver.Reset(s.state)
		return s.send(s.status(req.ID))
	case ActionInfo:
		return s.send(s.status(req.ID))
	default:
		return s.sendError(req.ID, fmt.Errorf("unknown action: %s", req.Action))
	}
}

func (s *Server) handleSolve(ctx context.Context, req Request) error {
	sr := session.Request{
		WordLength: req.Length,
		Exclusions: req.Exclusions,
		Inclusions: req.Inclusions,
		DictPath:   req.Dict,
		Credential: req.Key,
	}
	if sr.WordLength == 0 {
		sr.WordLength = s.opts.WordLength
	}
	if sr.DictPath == "" {
		sr.DictPath = s.opts.DictPath
	}
	if sr.Credential == "" {
		sr.Credential = s.opts.Credential
	}

	start := time.Now()
	res, err := s.solver.Solve(ctx, s.state, sr)
	elapsed := time.Since(start)
	if err != nil {
		s.log.Debugf("Solve %s failed after [ %v ]: %v", req.ID, elapsed, err)
		return s.sendError(req.ID, err)
	}
	s.log.Debugf("Solve %s took [ %v ]", req.ID, elapsed)

	words := res.Candidates
	if s.opts.MaxWords > 0 && len(words) > s.opts.MaxWords {
		words = words[:s.opts.MaxWords]
	}

	resp := SolveResponse{
		ID:        req.ID,
		Status:    StatusOK,
		Attempt:   res.Attempt,
		Words:     words,
		Count:     len(res.Candidates),
		Output:    res.Text(),
		TimeTaken: elapsed.Microseconds(),
	}
	if res.Ranking != nil {
		if res.Ranked() {
			resp.Rank = res.Ranking.Text
		} else {
			resp.RankError = res.Ranking.Text
			resp.RankStatus = res.Ranking.StatusCode
		}
	}
	return s.send(resp)
}

func (s *Server) status(id string) StatusResponse {
	return StatusResponse{
		ID:             id,
		Status:         StatusOK,
		Attempt:        s.state.Attempts,
		Session:        s.state.ID,
		Length:         s.opts.WordLength,
		Dict:           s.opts.DictPath,
		Ranking:        s.opts.Credential != "",
		MinRankAttempt: s.solver.MinRankAttempt(),
	}
}

func (s *Server) send(v any) error {
	if err := s.enc.Encode(v); err != nil {
		s.log.Errorf("Writing response: %v", err)
		return err
	}
	return nil
}

func (s *Server) sendError(id string, err error) error {
	return s.send(ErrorResponse{
		ID:     id,
		Status: StatusError,
		Error:  err.Error(),
	})
}
