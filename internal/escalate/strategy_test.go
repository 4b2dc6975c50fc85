package escalate

import (
	"errors"
	"fmt"
	"os/user"
	"testing"
)

type fakeStrategy struct {
	name      string
	available bool
	err       error
	log       *[]string
}

func (f *fakeStrategy) Name() string    { return f.name }
func (f *fakeStrategy) Available() bool { return f.available }
func (f *fakeStrategy) Attempt(target, scriptPath string) error {
	*f.log = append(*f.log, f.name)
	return f.err
}

func TestRunnerStopsAtFirstSuccess(t *testing.T) {
	var log []string
	runner := &Runner{Strategies: []Strategy{
		&fakeStrategy{name: "first", available: true, err: fmt.Errorf("denied"), log: &log},
		&fakeStrategy{name: "second", available: true, log: &log},
		&fakeStrategy{name: "third", available: true, log: &log},
	}}

	if err := runner.Run("deploy", "/tmp/script"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{"first", "second"}
	if len(log) != len(want) {
		t.Fatalf("attempts = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("attempt %d = %q, want %q", i, log[i], want[i])
		}
	}
}

func TestRunnerExhausted(t *testing.T) {
	var log []string
	runner := &Runner{Strategies: []Strategy{
		&fakeStrategy{name: "first", available: true, err: fmt.Errorf("denied"), log: &log},
		&fakeStrategy{name: "second", available: true, err: fmt.Errorf("denied"), log: &log},
	}}

	err := runner.Run("deploy", "/tmp/script")
	if err == nil {
		t.Fatal("Run() expected ExhaustedError, got nil")
	}

	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("Run() error type = %T, want *ExhaustedError", err)
	}
	if exhausted.Target != "deploy" {
		t.Errorf("ExhaustedError.Target = %q, want %q", exhausted.Target, "deploy")
	}
}

// With the mediation tool absent, both mediated strategies must be
// skipped entirely and only the plain switches attempted.
func TestRunnerSkipsMediatedWithoutSudo(t *testing.T) {
	var log []string
	runner := &Runner{Strategies: []Strategy{
		&SudoDirect{SudoPath: ""},
		&SudoViaRoot{SudoPath: ""},
		&fakeStrategy{name: "su", available: true, err: fmt.Errorf("denied"), log: &log},
		&fakeStrategy{name: "su via root", available: true, err: fmt.Errorf("denied"), log: &log},
	}}

	if err := runner.Run("deploy", "/tmp/script"); err == nil {
		t.Fatal("Run() expected ExhaustedError, got nil")
	}

	want := []string{"su", "su via root"}
	if len(log) != len(want) {
		t.Fatalf("attempts = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("attempt %d = %q, want %q", i, log[i], want[i])
		}
	}
}

func TestRunnerSkipsNotApplicable(t *testing.T) {
	var log []string
	runner := &Runner{Strategies: []Strategy{
		&SudoViaRoot{SudoPath: "/usr/bin/sudo"},
		&fakeStrategy{name: "fallback", available: true, log: &log},
	}}

	// Hopping through root to reach root is not applicable; the
	// runner must move on without treating it as a failed attempt.
	if err := runner.Run(RootAccount, "/tmp/script"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(log) != 1 || log[0] != "fallback" {
		t.Errorf("attempts = %v, want [fallback]", log)
	}
}

func TestSudoViaRootNotApplicableForRoot(t *testing.T) {
	strategy := &SudoViaRoot{SudoPath: "/usr/bin/sudo"}
	err := strategy.Attempt(RootAccount, "/tmp/script")
	if !errors.Is(err, errNotApplicable) {
		t.Errorf("Attempt(root) error = %v, want errNotApplicable", err)
	}
}

func TestSuViaRootNotApplicableForRoot(t *testing.T) {
	strategy := &SuViaRoot{}
	err := strategy.Attempt(RootAccount, "/tmp/script")
	if !errors.Is(err, errNotApplicable) {
		t.Errorf("Attempt(root) error = %v, want errNotApplicable", err)
	}
}

func TestSudoDirectDeclinedWithoutConfirmation(t *testing.T) {
	confirmed := false
	strategy := &SudoDirect{
		SudoPath: "/usr/bin/sudo",
		Confirm: func(question string) bool {
			confirmed = true
			return false
		},
		CurrentUser: func() (*user.User, error) {
			// An account with no resolvable groups: permission is
			// ambiguous, so the confirmation prompt decides.
			return &user.User{Uid: "12345", Gid: "12345", Username: "nobody-here"}, nil
		},
	}

	if err := strategy.Attempt("deploy", "/tmp/script"); err == nil {
		t.Error("Attempt() expected error after declined confirmation, got nil")
	}
	if !confirmed {
		t.Error("Attempt() never asked for confirmation on ambiguous permission")
	}
}

func TestNewRunnerOrder(t *testing.T) {
	runner := NewRunner(nil)
	if len(runner.Strategies) != 4 {
		t.Fatalf("NewRunner() built %d strategies, want 4", len(runner.Strategies))
	}

	wantNames := []string{"sudo", "sudo via root", "su", "su via root"}
	for i, strategy := range runner.Strategies {
		if strategy.Name() != wantNames[i] {
			t.Errorf("strategy %d = %q, want %q", i, strategy.Name(), wantNames[i])
		}
	}
}
