// Package mux answers one question about terminal multiplexers: is a
// session attached right now. The packaging flow uses it for status
// reporting; the synthesized script performs the equivalent query on
// the far side at cleanup time to decide whether the bundle directory
// may be removed.
package mux

import (
	"context"
	"os"
	"os/exec"
	"time"
)

// Timeout for multiplexer CLI queries
const queryTimeout = 5 * time.Second

// Multiplexer is the attached-session oracle.
type Multiplexer interface {
	// Name returns the multiplexer name (e.g., "tmux").
	Name() string

	// Attached reports whether a session of this multiplexer currently
	// owns the terminal or keeps sessions alive.
	Attached() bool
}

// Tmux queries the tmux CLI.
type Tmux struct{}

// NewTmux creates the tmux oracle.
func NewTmux() *Tmux {
	return &Tmux{}
}

func (t *Tmux) Name() string {
	return "tmux"
}

func (t *Tmux) Attached() bool {
	// Inside a tmux client the server sets TMUX; that alone answers
	// the question without spawning a process.
	if os.Getenv("TMUX") != "" {
		return true
	}

	if _, err := exec.LookPath("tmux"); err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "tmux", "list-sessions")
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
