/*
Package server implements msgpack IPC for the word solver.

The server reads a stream of msgpack maps from stdin and writes one msgpack
map per request to stdout. Logs go to stderr so the stream stays clean.

# IPC

Clients send structured messages with an ID and an action. A solve carries
the same four inputs the CLI takes; missing fields fall back to the server
defaults:

	{"id": "s1", "action": "solve", "n": 5, "x": "BT", "i": "1C,-4E"}

The response echoes the ID and carries the candidates plus the rendered
block a human would see:

	{"id": "s1", "status": "ok", "attempt": 1, "words": ["CRANE"], "c": 1, "out": "Attempt 1:\n...", "t": 412}

When ranking ran, "rank" holds the model's text, or "rank_error" and
"rank_status" hold the failure. "t" is the solve time in microseconds.

The server keeps one session for the whole stream:

	{"id": "r1", "action": "reset"}
	{"id": "q1", "action": "info"}

Any failure is answered with

	{"id": "s2", "status": "error", "error": "inclusions: invalid inclusion format: 'XY'. ..."}

and the stream continues. A message with no action is treated as a solve.

Right after start the server writes {"status": "ready"} so clients can wait
for the dictionary path and config to be resolved.
*/
package server

// Actions understood by the server.
const (
	ActionSolve = "solve"
	ActionReset = "reset"
	ActionInfo  = "info"
)

// Status values.
const (
	StatusOK    = "ok"
	StatusReady = "ready"
	StatusError = "error"
)

// Request is any client message.
type Request struct {
	ID         string `msgpack:"id"`
	Action     string `msgpack:"action,omitempty"`
	Length     int    `msgpack:"n,omitempty"`
	Exclusions string `msgpack:"x,omitempty"`
	Inclusions string `msgpack:"i,omitempty"`
	Dict       string `msgpack:"dict,omitempty"`
	Key        string `msgpack:"key,omitempty"`
}

// SolveResponse answers a solve.
type SolveResponse struct {
	ID         string   `msgpack:"id"`
	Status     string   `msgpack:"status"`
	Attempt    int      `msgpack:"attempt"`
	Words      []string `msgpack:"words"`
	Count      int      `msgpack:"c"`
	Rank       string   `msgpack:"rank,omitempty"`
	RankError  string   `msgpack:"rank_error,omitempty"`
	RankStatus int      `msgpack:"rank_status,omitempty"`
	Output     string   `msgpack:"out"`
	TimeTaken  int64    `msgpack:"t"`
}

// StatusResponse answers reset and info, and announces readiness.
type StatusResponse struct {
	ID             string `msgpack:"id,omitempty"`
	Status         string `msgpack:"status"`
	Attempt        int    `msgpack:"attempt"`
	Session        string `msgpack:"session,omitempty"`
	Length         int    `msgpack:"n,omitempty"`
	Dict           string `msgpack:"dict,omitempty"`
	Ranking        bool   `msgpack:"ranking"`
	MinRankAttempt int    `msgpack:"min_rank_attempt,omitempty"`
}

// ErrorResponse reports a failed request.
type ErrorResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
	Error  string `msgpack:"error"`
}
