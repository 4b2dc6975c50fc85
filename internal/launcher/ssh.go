package launcher

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	sshconfig "github.com/kevinburke/ssh_config"

	"rcferry/internal/archive"
	"rcferry/internal/config"
)

// SSHLauncher hands the synthesized command to the ssh client as the
// remote command. The remote is assumed capable, so the stronger
// filter is the default; -t forces the terminal allocation the
// interactive shell needs.
type SSHLauncher struct {
	Config *config.Config
}

// NewSSHLauncher creates the remote-shell launcher.
func NewSSHLauncher(cfg *config.Config) *SSHLauncher {
	return &SSHLauncher{Config: cfg}
}

// Launch packages the rc source and replaces this process with
// ssh <args...> <script>. All flags and the destination pass through
// to ssh untouched.
func (l *SSHLauncher) Launch(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no ssh destination given")
	}

	command, err := BuildCommand(l.Config, archive.FilterZstd)
	if err != nil {
		return err
	}

	sshPath, err := exec.LookPath("ssh")
	if err != nil {
		return fmt.Errorf("ssh not found in PATH: %w", err)
	}

	sshArgs := append([]string{"ssh", "-t"}, args...)
	sshArgs = append(sshArgs, command)

	return execSyscall(sshPath, sshArgs, os.Environ())
}

// CompleteHosts suggests destinations from the user's ssh client
// configuration. ssh exposes no completion interface another process
// can call, so the concrete host aliases of ~/.ssh/config stand in for
// it. This is a one-shot capability probe: when the config cannot be
// located or parsed, completion yields nothing and the shell falls
// back to its defaults.
func CompleteHosts(toComplete string) []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	f, err := os.Open(filepath.Join(home, ".ssh", "config"))
	if err != nil {
		return nil
	}
	defer f.Close()

	cfg, err := sshconfig.Decode(f)
	if err != nil {
		return nil
	}

	var hosts []string
	for _, host := range cfg.Hosts {
		for _, pattern := range host.Patterns {
			name := pattern.String()
			if name == "" || strings.ContainsAny(name, "*?!") {
				continue
			}
			if strings.HasPrefix(name, toComplete) {
				hosts = append(hosts, name)
			}
		}
	}
	return hosts
}
