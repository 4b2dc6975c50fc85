// Package escalate runs the user-switch script as another account,
// trying an ordered list of strategies until one of them gets through.
// The script itself always exits zero, so a non-zero status from a
// strategy means the switch mechanism failed, never that the user left
// the shell.
package escalate

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// RootAccount is the root-equivalent target and the default for a
// switch with no explicit account.
const RootAccount = "root"

// Strategy is one escalation attempt.
type Strategy interface {
	// Name identifies the strategy in progress messages.
	Name() string

	// Available reports whether the strategy's mechanism exists on
	// this host at all. Unavailable strategies are skipped entirely.
	Available() bool

	// Attempt runs the script as the target account. It returns
	// errNotApplicable when the strategy cannot serve this particular
	// target.
	Attempt(target, scriptPath string) error
}

// errNotApplicable marks a strategy that does not serve the requested
// target (e.g. hopping through root to reach root).
var errNotApplicable = errors.New("strategy not applicable to target")

// ExhaustedError indicates every applicable strategy failed.
type ExhaustedError struct {
	Target string
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("could not switch to %s: every escalation strategy failed", e.Target)
}

// Runner tries strategies in order; the first success terminates the
// list.
type Runner struct {
	Strategies []Strategy
}

// NewRunner builds the standard strategy order: mediated switch,
// mediated switch via root, plain switch, plain switch via root.
// confirm is consulted before a mediated attempt whose permission is
// ambiguous; nil declines silently.
func NewRunner(confirm func(question string) bool) *Runner {
	sudoPath, _ := exec.LookPath("sudo")
	return &Runner{
		Strategies: []Strategy{
			&SudoDirect{SudoPath: sudoPath, Confirm: confirm},
			&SudoViaRoot{SudoPath: sudoPath},
			&SuDirect{},
			&SuViaRoot{},
		},
	}
}

// Run attempts the switch to target. All applicable strategies failing
// yields an ExhaustedError.
func (r *Runner) Run(target, scriptPath string) error {
	for _, strategy := range r.Strategies {
		if !strategy.Available() {
			continue
		}

		err := strategy.Attempt(target, scriptPath)
		if err == nil {
			return nil
		}
		if errors.Is(err, errNotApplicable) {
			continue
		}
		fmt.Fprintf(os.Stderr, "%s failed, trying next method\n", strategy.Name())
	}

	return &ExhaustedError{Target: target}
}

// runInteractive runs a switch command wired to this terminal, so the
// mechanism can prompt for credentials itself.
func runInteractive(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
