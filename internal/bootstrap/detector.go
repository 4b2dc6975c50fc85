// Package bootstrap decides how a landed shell rebinds its environment
// to the travelled files. The decision logic is a pure function over an
// explicit Session value rather than ambient process environment, so it
// can be exercised directly; Profile renders the same decisions as the
// shell fragment the synthesized script installs on the far side.
package bootstrap

import (
	"os"
	"os/exec"
	"path/filepath"

	"rcferry/internal/constants"
)

// Session is the explicit shell-startup context: whether this shell is
// a travelled session and, if so, where the bundle directory lives.
type Session struct {
	Travelled bool
	BundleDir string
}

// Binding is a single environment variable rebinding.
type Binding struct {
	Name  string
	Value string
}

// Bindings holds every rebinding decided for one session. Each field
// is empty when the corresponding travelled file is absent; absence is
// not an error.
type Bindings struct {
	// Anchor is the travelled shell configuration, exported as
	// RCFERRY_RC so nested shell launches can find it.
	Anchor string

	// Inputrc redirects line-editing configuration.
	Inputrc string

	// TmuxConf is the travelled multiplexer configuration; the shell
	// rendering wraps the tmux invocation around it so new windows
	// land in a nested travelled shell.
	TmuxConf string

	// Editor is the redefined default editor invocation.
	Editor string

	// BinDir is prepended to the executable search path.
	BinDir string
}

// Empty reports whether no rebinding applies.
func (b *Bindings) Empty() bool {
	return b.Anchor == "" && b.Inputrc == "" && b.TmuxConf == "" && b.Editor == "" && b.BinDir == ""
}

// Environ returns the variable rebindings in application order. The
// tmux wrapper and the PATH prepend are not plain variable values and
// are carried by TmuxConf and BinDir instead.
func (b *Bindings) Environ() []Binding {
	var env []Binding
	if b.Anchor != "" {
		env = append(env, Binding{Name: "RCFERRY_RC", Value: b.Anchor})
	}
	if b.Inputrc != "" {
		env = append(env, Binding{Name: "INPUTRC", Value: b.Inputrc})
	}
	if b.Editor != "" {
		env = append(env, Binding{Name: "EDITOR", Value: b.Editor})
	}
	return env
}

// Detector probes the bundle directory and the local PATH to decide
// rebindings.
type Detector struct {
	// LookPath probes for a binary. Defaults to exec.LookPath.
	LookPath func(string) (string, error)
}

// NewDetector creates a detector with default probes.
func NewDetector() *Detector {
	return &Detector{LookPath: exec.LookPath}
}

// Detect returns the rebindings for a session. A session that is not
// travelled gets none; each travelled file contributes its rebinding
// independently.
func (d *Detector) Detect(session Session) *Bindings {
	bindings := &Bindings{}
	if !session.Travelled || session.BundleDir == "" {
		return bindings
	}

	if path := d.fileIn(session.BundleDir, constants.AnchorFile); path != "" {
		bindings.Anchor = path
	}
	if path := d.fileIn(session.BundleDir, constants.InputrcFile); path != "" {
		bindings.Inputrc = path
	}
	if path := d.fileIn(session.BundleDir, constants.TmuxFile); path != "" && d.haveBinary("tmux") {
		bindings.TmuxConf = path
	}
	if path := d.fileIn(session.BundleDir, constants.VimFile); path != "" && d.haveBinary("vim") {
		bindings.Editor = "vim -u " + path
	}

	binDir := filepath.Join(session.BundleDir, constants.BinDir)
	if info, err := os.Stat(binDir); err == nil && info.IsDir() {
		bindings.BinDir = binDir
	}

	return bindings
}

func (d *Detector) fileIn(dir, name string) string {
	path := filepath.Join(dir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return ""
	}
	return path
}

func (d *Detector) haveBinary(name string) bool {
	lookPath := d.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	_, err := lookPath(name)
	return err == nil
}
