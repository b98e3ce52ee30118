// Copyright 2025 The WordSolve Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the WordSolve CLI, interactive loop and IPC server.

WordSolve narrows a word list to the words that fit what a Wordle-style
game has revealed so far: letters known to be absent, letters pinned to a
position, letters present but not at some position, and letters present
somewhere. From the third attempt on, and when an API key is available,
the remaining words are sent to a chat-completion model that picks the
most common ones.

# Usage

Solve once:

	wordsolve solve --exclude BT --include 1C,-4E --dict words.txt

Play a whole game in the terminal:

	wordsolve repl --dict words.txt

Serve msgpack requests on stdin/stdout for editor or bot integration:

	wordsolve serve

# Inclusions

Inclusions are comma separated tokens with 1-based positions:

	2A    A is the second letter
	-4E   E is in the word but not fourth
	+R    R is somewhere in the word

Case and whitespace are ignored. The first malformed token stops the
attempt and names the token.

# Configuration

Runtime configuration is read from a TOML file, created with defaults on
first use in the user config dir:

	[solver]
	word_length = 5
	delimiter = ","
	exclusion_policy = "accept"
	duplicate_policy = "overwrite"

	[dict]
	path = "words.txt"

	[rank]
	model = "gpt-3.5-turbo"
	base_url = "https://api.openai.com/v1"
	timeout_seconds = 30
	min_attempt = 3
	top_n = 5
	api_key_env = "OPENAI_API_KEY"

	[server]
	max_words = 0

	[cli]
	color = true

Use --config to point at another file. The API key is taken from --key,
or from the environment variable named by rank.api_key_env.

# IPC Protocol

See package server for the message layout:

	{"id": "s1", "action": "solve", "n": 5, "x": "BT", "i": "1C,-4E"}
	{"id": "s1", "status": "ok", "attempt": 1, "words": ["CRANE"], "c": 1, "out": "...", "t": 412}

Logs always go to stderr. Use -d for debug logs with timestamps.
*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0"
	AppName = "wordsolve"
	gh      = "https://github.com/bastiangx/wordsolve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main only wires the flow; the commands live in commands.go.
func main() {
	sigHandler()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
