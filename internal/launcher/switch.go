package launcher

import (
	"fmt"
	"os"
	"path/filepath"

	"rcferry/internal/archive"
	"rcferry/internal/config"
	"rcferry/internal/constants"
	"rcferry/internal/escalate"
)

// SwitchLauncher runs the synthesized command as another local
// account. Mediated escalation tooling executes file paths rather than
// inline strings, so the command goes into a target-executable script
// under a private temp directory; the directory is removed whatever
// the outcome.
type SwitchLauncher struct {
	Config *config.Config
	Runner *escalate.Runner
}

// NewSwitchLauncher creates the user-switch launcher with the standard
// escalation order.
func NewSwitchLauncher(cfg *config.Config, confirm func(question string) bool) *SwitchLauncher {
	return &SwitchLauncher{
		Config: cfg,
		Runner: escalate.NewRunner(confirm),
	}
}

// Launch packages the rc source and tries the escalation strategies in
// order. The target account's own PATH is unknown, so the portable
// filter is the default.
func (l *SwitchLauncher) Launch(target string) error {
	if target == "" {
		target = escalate.RootAccount
	}

	command, err := BuildCommand(l.Config, archive.FilterGzip)
	if err != nil {
		return err
	}

	scriptPath, err := writeSwitchScript(command)
	if err != nil {
		return err
	}
	defer os.RemoveAll(filepath.Dir(scriptPath))

	return l.Runner.Run(target, scriptPath)
}

// writeSwitchScript places the command in a fresh temp directory and
// returns the script path. The strategies run the script as the target
// account, so the script itself must be readable and executable by
// that account; the directory is traverse-only and its random name is
// what keeps the path private.
func writeSwitchScript(command string) (string, error) {
	dir, err := os.MkdirTemp("", "rcferry-switch-")
	if err != nil {
		return "", fmt.Errorf("failed to create switch script directory: %w", err)
	}
	if err := os.Chmod(dir, constants.SwitchDirPermissions); err != nil {
		os.RemoveAll(dir)
		return "", fmt.Errorf("failed to open switch script directory to the target: %w", err)
	}

	path := filepath.Join(dir, "travel.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+command+"\n"), constants.SwitchScriptPermissions); err != nil {
		os.RemoveAll(dir)
		return "", fmt.Errorf("failed to write switch script: %w", err)
	}

	// WriteFile's mode passes through the umask; restate it so the
	// target account keeps read and execute.
	if err := os.Chmod(path, constants.SwitchScriptPermissions); err != nil {
		os.RemoveAll(dir)
		return "", fmt.Errorf("failed to mark switch script executable: %w", err)
	}

	return path, nil
}
