package launcher

import (
	"fmt"
	"os"
	"os/exec"

	"rcferry/internal/archive"
	"rcferry/internal/config"
)

// DockerLauncher hands the synthesized command to the container
// runtime. The image may lack the stronger filter's decoder, so the
// portable filter is the default.
type DockerLauncher struct {
	Config *config.Config
}

// NewDockerLauncher creates the container-exec launcher.
func NewDockerLauncher(cfg *config.Config) *DockerLauncher {
	return &DockerLauncher{Config: cfg}
}

// Launch packages the rc source and replaces this process with
// docker <subcommand> -i -t <args...> sh -c <script>. The sub-command
// selects the container operation (exec, run, ...); remaining
// arguments pass through untouched.
func (l *DockerLauncher) Launch(subcommand string, args []string) error {
	if subcommand == "" {
		return fmt.Errorf("no docker sub-command given")
	}
	if len(args) == 0 {
		return fmt.Errorf("no container arguments given")
	}

	command, err := BuildCommand(l.Config, archive.FilterGzip)
	if err != nil {
		return err
	}

	dockerPath, err := exec.LookPath("docker")
	if err != nil {
		return fmt.Errorf("docker not found in PATH: %w", err)
	}

	dockerArgs := append([]string{"docker", subcommand, "-i", "-t"}, args...)
	dockerArgs = append(dockerArgs, "sh", "-c", command)

	return execSyscall(dockerPath, dockerArgs, os.Environ())
}
