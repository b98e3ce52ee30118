package server

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/wordsolve/pkg/rank"
	"github.com/bastiangx/wordsolve/pkg/session"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

type stubRanker struct {
	result rank.Result
}

func (s stubRanker) Rank(context.Context, rank.Query) rank.Result { return s.result }

func dictFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("crane\ncrate\ngrape\nslate\n"), 0644))
	return path
}

// run feeds msgs to a fresh server and returns a decoder over everything
// it wrote, positioned after the ready message.
func run(t *testing.T, solver *session.Solver, opts Options, msgs ...any) *msgpack.Decoder {
	t.Helper()
	var in, out bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, m := range msgs {
		require.NoError(t, enc.Encode(m))
	}

	require.NoError(t, NewServer(solver, opts, &in, &out).Start(context.Background()))

	dec := msgpack.NewDecoder(&out)
	var ready StatusResponse
	require.NoError(t, dec.Decode(&ready))
	assert.Equal(t, StatusReady, ready.Status)
	return dec
}

func TestServerSolveResetInfo(t *testing.T) {
	path := dictFile(t)
	dec := run(t, session.NewSolver(nil, session.Options{}), Options{WordLength: 5, DictPath: path},
		Request{ID: "s1", Action: ActionSolve, Inclusions: "1C"},
		Request{ID: "s2", Inclusions: "1C,5E", Exclusions: "t"},
		Request{ID: "q1", Action: ActionInfo},
		Request{ID: "r1", Action: ActionReset},
		Request{ID: "s3", Inclusions: "+L"},
	)

	var s1 SolveResponse
	require.NoError(t, dec.Decode(&s1))
	assert.Equal(t, "s1", s1.ID)
	assert.Equal(t, StatusOK, s1.Status)
	assert.Equal(t, 1, s1.Attempt)
	assert.Equal(t, []string{"CRANE", "CRATE"}, s1.Words)
	assert.Equal(t, 2, s1.Count)
	assert.Contains(t, s1.Output, "Possible words: CRANE, CRATE\n")
	assert.Empty(t, s1.Rank)

	var s2 SolveResponse
	require.NoError(t, dec.Decode(&s2))
	assert.Equal(t, 2, s2.Attempt)
	assert.Equal(t, []string{"CRANE"}, s2.Words)

	var q1 StatusResponse
	require.NoError(t, dec.Decode(&q1))
	assert.Equal(t, "q1", q1.ID)
	assert.Equal(t, 2, q1.Attempt)
	assert.Equal(t, 5, q1.Length)
	assert.Equal(t, path, q1.Dict)
	assert.False(t, q1.Ranking)
	assert.Equal(t, session.DefaultMinRankAttempt, q1.MinRankAttempt)

	var r1 StatusResponse
	require.NoError(t, dec.Decode(&r1))
	assert.Equal(t, 0, r1.Attempt)

	var s3 SolveResponse
	require.NoError(t, dec.Decode(&s3))
	assert.Equal(t, 1, s3.Attempt)
	assert.Equal(t, []string{"SLATE"}, s3.Words)
}

func TestServerErrorsDoNotStopStream(t *testing.T) {
	path := dictFile(t)
	dec := run(t, session.NewSolver(nil, session.Options{}), Options{WordLength: 5, DictPath: path},
		Request{ID: "bad", Inclusions: "2A,XY"},
		Request{ID: "odd", Action: "guess"},
		map[string]any{"id": "typed", "n": "five"},
		Request{ID: "nodict", Dict: filepath.Join(t.TempDir(), "missing.txt")},
		Request{ID: "ok"},
	)

	var bad ErrorResponse
	require.NoError(t, dec.Decode(&bad))
	assert.Equal(t, "bad", bad.ID)
	assert.Equal(t, StatusError, bad.Status)
	assert.Contains(t, bad.Error, "'XY'")

	var odd ErrorResponse
	require.NoError(t, dec.Decode(&odd))
	assert.Equal(t, "unknown action: guess", odd.Error)

	var typed ErrorResponse
	require.NoError(t, dec.Decode(&typed))
	assert.Equal(t, StatusError, typed.Status)
	assert.Contains(t, typed.Error, "invalid msgpack request")

	var nodict ErrorResponse
	require.NoError(t, dec.Decode(&nodict))
	assert.Equal(t, "nodict", nodict.ID)
	assert.Contains(t, nodict.Error, "missing.txt")

	// failed solves still count as attempts
	var ok SolveResponse
	require.NoError(t, dec.Decode(&ok))
	assert.Equal(t, 3, ok.Attempt)
	assert.Equal(t, 4, ok.Count)
}

func TestServerRankingFields(t *testing.T) {
	path := dictFile(t)
	testCases := []struct {
		result     rank.Result
		wantRank   string
		wantError  string
		wantStatus int
		desc       string
	}{
		{rank.Result{Text: "1. CRANE"}, "1. CRANE", "", 0, "ranked"},
		{rank.Result{Text: "Error: 401", StatusCode: 401, Err: errors.New("unauthorized")}, "", "Error: 401", 401, "rejected"},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			solver := session.NewSolver(stubRanker{tc.result}, session.Options{MinRankAttempt: 1})
			dec := run(t, solver, Options{WordLength: 5, DictPath: path, Credential: "sk"},
				Request{ID: "s1", Inclusions: "1C"},
			)
			var resp SolveResponse
			require.NoError(t, dec.Decode(&resp))
			assert.Equal(t, tc.wantRank, resp.Rank)
			assert.Equal(t, tc.wantError, resp.RankError)
			assert.Equal(t, tc.wantStatus, resp.RankStatus)
			assert.Equal(t, []string{"CRANE", "CRATE"}, resp.Words)
		})
	}
}

func TestServerMaxWords(t *testing.T) {
	dec := run(t, session.NewSolver(nil, session.Options{}), Options{WordLength: 5, DictPath: dictFile(t), MaxWords: 2},
		Request{ID: "s1"},
	)
	var resp SolveResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, []string{"CRANE", "CRATE"}, resp.Words)
	assert.Equal(t, 4, resp.Count)
	assert.Contains(t, resp.Output, "Possible words: CRANE, CRATE, GRAPE, SLATE\n")
}
