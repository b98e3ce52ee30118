// Package cli runs the interactive solving loop.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bastiangx/wordsolve/internal/logger"
	"github.com/bastiangx/wordsolve/pkg/session"
	"github.com/charmbracelet/log"
)

const helpText = `commands:
  exclude <chars>   letters known to be absent (empty clears)
  include <spec>    inclusions such as 2A,-4E,+R (empty clears)
  length <n>        target word length
  dict <path>       dictionary file
  solve             run an attempt (an empty line does the same)
  reset             start a new game
  show              print the inputs and the last result
  help              this text
  quit              leave`

// InputHandler reads commands line by line and keeps one session for the
// life of the loop. The current inputs persist between attempts, so a
// player only retypes what changed.
type InputHandler struct {
	solver *session.Solver
	state  *session.State
	req    session.Request
	in     *bufio.Reader
	out    io.Writer
	styles Styles
	log    *log.Logger
}

// NewInputHandler starts from the inputs in defaults.
func NewInputHandler(solver *session.Solver, defaults session.Request, in io.Reader, out io.Writer, styles Styles) *InputHandler {
	return &InputHandler{
		solver: solver,
		state:  session.NewState(),
		req:    defaults,
		in:     bufio.NewReader(in),
		out:    out,
		styles: styles,
		log:    logger.New("repl"),
	}
}

// Start begins the loop. It returns nil on quit or end of input.
func (h *InputHandler) Start(ctx context.Context) error {
	fmt.Fprintln(h.out, h.styles.paint(h.styles.Title, "WordSolve"))
	fmt.Fprintln(h.out, "type help for commands (Ctrl+C to exit)")

	for {
		fmt.Fprint(h.out, h.styles.paint(h.styles.Prompt, "> "))
		line, err := h.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		// a last line without a newline still runs
		if err != nil && line == "" {
			fmt.Fprintln(h.out)
			return nil
		}
		if !h.handleInput(ctx, strings.TrimSpace(line)) {
			return nil
		}
	}
}

// handleInput runs one command and reports whether to keep going.
func (h *InputHandler) handleInput(ctx context.Context, line string) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	h.log.Debug("Command", "cmd", cmd, "arg", arg)

	switch strings.ToLower(cmd) {
	case "", "solve":
		h.solve(ctx)
	case "exclude", "x":
		h.req.Exclusions = arg
	case "include", "i":
		h.req.Inclusions = arg
	case "length", "n":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			h.printError(fmt.Errorf("length must be a positive number, got %q", arg))
			return true
		}
		h.req.WordLength = n
	case "dict":
		if arg == "" {
			h.printError(errors.New("dict needs a path"))
			return true
		}
		h.req.DictPath = arg
	case "reset":
		h.solver.Reset(h.state)
		fmt.Fprintln(h.out, "New game.")
	case "show":
		h.show()
	case "help", "?":
		fmt.Fprintln(h.out, helpText)
	case "quit", "exit", "q":
		return false
	default:
		h.printError(fmt.Errorf("unknown command %q, type help", cmd))
	}
	return true
}

func (h *InputHandler) solve(ctx context.Context) {
	res, err := h.solver.Solve(ctx, h.state, h.req)
	if err != nil {
		h.printError(err)
		return
	}
	fmt.Fprint(h.out, h.styles.Result(res))
}

func (h *InputHandler) show() {
	fmt.Fprintf(h.out, "length: %d\ndict: %s\nexclude: %s\ninclude: %s\nattempts: %d\n",
		h.req.WordLength, h.req.DictPath, h.req.Exclusions, h.req.Inclusions, h.state.Attempts)
	if h.state.Output != "" {
		fmt.Fprint(h.out, h.state.Output)
	}
}

func (h *InputHandler) printError(err error) {
	fmt.Fprintln(h.out, h.styles.paint(h.styles.Error, "error: "+err.Error()))
}
