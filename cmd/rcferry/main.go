package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"rcferry/internal/archive"
	"rcferry/internal/bootstrap"
	"rcferry/internal/config"
	"rcferry/internal/launcher"
	"rcferry/internal/mux"
	"rcferry/internal/rcdir"
	"rcferry/internal/script"
	"rcferry/internal/state"
	"rcferry/internal/terminal"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "rcferry",
		Short: "Carry your rc files into ephemeral remote sessions",
		Long: "Packages ~/.rcferry.d into a self-extracting remote command, so SSH,\n" +
			"user-switch and container sessions get your shell configuration without\n" +
			"installing anything persistent on the far side.",
	}

	rootCmd.AddCommand(
		newShellCmd(),
		newDockerCmd(),
		newSwitchCmd(),
		newPackCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the optional user configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func newShellCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell [ssh flags] destination",
		Short: "Open a remote shell with your rc files travelled",
		Long: `Packages the rc source and runs ssh with the synthesized command
appended as the remote command. Every flag and the destination pass
through to ssh untouched.`,
		// All arguments belong to ssh; rcferry adds nothing but the
		// trailing remote command.
		DisableFlagParsing: true,
		RunE:               runShell,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			hosts := launcher.CompleteHosts(toComplete)
			if hosts == nil {
				return nil, cobra.ShellCompDirectiveDefault
			}
			return hosts, cobra.ShellCompDirectiveNoFileComp
		},
	}
	return cmd
}

func runShell(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return launcher.NewSSHLauncher(cfg).Launch(args)
}

func newDockerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docker sub-command [docker flags] container",
		Short: "Enter a container with your rc files travelled",
		Long: `Packages the rc source and runs the given docker sub-command
(exec, run, ...) with interactive and terminal flags, handing the
synthesized command to the container's shell. Remaining arguments pass
through to docker untouched.`,
		DisableFlagParsing: true,
		RunE:               runDocker,
	}
	return cmd
}

func runDocker(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: rcferry docker sub-command [docker flags] container")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return launcher.NewDockerLauncher(cfg).Launch(args[0], args[1:])
}

func newSwitchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "switch [account]",
		Short: "Switch to another local account with your rc files travelled",
		Long: `Packages the rc source into a temporary script and switches
to the target account (default root), trying sudo, sudo via root, su,
and su via root in order until one succeeds.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSwitch,
	}
	return cmd
}

func runSwitch(cmd *cobra.Command, args []string) error {
	target := ""
	if len(args) > 0 {
		target = args[0]
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	confirm := func(question string) bool {
		yes, err := terminal.PromptYesNo(question, false)
		return err == nil && yes
	}

	return launcher.NewSwitchLauncher(cfg, confirm).Launch(target)
}

func newPackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Package the rc source without launching a transport",
		Long: `Runs the minify/archive/synthesize pipeline standalone and reports
the payload size against the ceiling. Useful to find out what a
transport would ship before connecting anywhere.`,
		RunE: runPack,
	}

	cmd.Flags().String("filter", "gzip", "Compression filter (gzip or zstd)")
	cmd.Flags().Bool("script", false, "Print the synthesized remote script instead of statistics")
	cmd.Flags().Bool("verify", false, "Extract the payload locally and report the file count")

	return cmd
}

func runPack(cmd *cobra.Command, args []string) error {
	filterName, err := cmd.Flags().GetString("filter")
	if err != nil {
		return fmt.Errorf("invalid filter flag: %w", err)
	}
	printScript, err := cmd.Flags().GetBool("script")
	if err != nil {
		return fmt.Errorf("invalid script flag: %w", err)
	}
	verify, err := cmd.Flags().GetBool("verify")
	if err != nil {
		return fmt.Errorf("invalid verify flag: %w", err)
	}

	filter, err := archive.ParseFilter(filterName)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sourceDir, nested, err := rcdir.Resolve(cfg.SourceDir)
	if err != nil {
		return err
	}

	payload, err := archive.Pack(sourceDir, archive.Options{
		Filter:          cfg.FilterOr(filter),
		MaxEncodedBytes: cfg.Ceiling(),
	})
	if err != nil {
		return err
	}

	if printScript {
		text, err := script.Synthesize(script.Params{Payload: payload, Nested: nested})
		if err != nil {
			return err
		}
		fmt.Print(text)
		return nil
	}

	fmt.Printf("Source:   %s\n", sourceDir)
	fmt.Printf("Filter:   %s\n", payload.Filter)
	fmt.Printf("Payload:  %d encoded bytes (limit %d)\n", payload.Len(), cfg.Ceiling())

	if verify {
		dir, err := os.MkdirTemp("", "rcferry-verify-")
		if err != nil {
			return fmt.Errorf("failed to create verify directory: %w", err)
		}
		defer os.RemoveAll(dir)

		if err := archive.Extract(payload, dir); err != nil {
			return fmt.Errorf("payload verification failed: %w", err)
		}
		fmt.Println("Verified: payload extracts cleanly")
	}

	return nil
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the travel environment status",
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sourceDir, _, err := rcdir.Resolve(cfg.SourceDir)
	if err != nil {
		return err
	}

	detector := state.NewDetector(sourceDir, mux.NewTmux())
	travelState := detector.Detect()

	fmt.Println("rcferry status")
	fmt.Println("==============")
	fmt.Println()

	if travelState.SourceExists {
		fmt.Printf("Source:      %s\n", travelState.SourceDir)
	} else {
		fmt.Printf("Source:      %s (not found)\n", travelState.SourceDir)
	}

	if travelState.AnchorPresent {
		fmt.Println("Anchor:      present")
	} else {
		fmt.Println("Anchor:      missing (nothing to travel)")
	}

	if travelState.AnchorPresent {
		payload, err := archive.Pack(sourceDir, archive.Options{
			Filter:          cfg.FilterOr(archive.FilterGzip),
			MaxEncodedBytes: cfg.Ceiling(),
		})
		if err != nil {
			fmt.Printf("Payload:     unavailable (%v)\n", err)
		} else {
			fmt.Printf("Payload:     %d encoded bytes (limit %d, %s)\n", payload.Len(), cfg.Ceiling(), payload.Filter)
		}
	}

	if travelState.Travelled {
		if travelState.Nested {
			fmt.Printf("Session:     travelled, nested (%s)\n", travelState.BundleDir)
		} else {
			fmt.Printf("Session:     travelled (%s)\n", travelState.BundleDir)
		}
	} else {
		fmt.Println("Session:     local")
	}

	for _, line := range rebindingLines(*travelState) {
		fmt.Println(line)
	}

	if travelState.MuxAttached {
		fmt.Println("Multiplexer: attached")
	} else {
		fmt.Println("Multiplexer: none")
	}

	return nil
}

// rebindingLines reports the environment a travelled session rebinds,
// one report line per rebinding. A local session gets none.
func rebindingLines(travelState state.TravelState) []string {
	if !travelState.Travelled {
		return nil
	}

	bindings := bootstrap.NewDetector().Detect(bootstrap.Session{
		Travelled: true,
		BundleDir: travelState.BundleDir,
	})
	if bindings.Empty() {
		return []string{"Rebinding:   none (bundle is empty)"}
	}

	var lines []string
	for _, binding := range bindings.Environ() {
		lines = append(lines, fmt.Sprintf("Rebinding:   %s=%s", binding.Name, binding.Value))
	}
	if bindings.TmuxConf != "" {
		lines = append(lines, "Rebinding:   tmux wrapped around "+bindings.TmuxConf)
	}
	if bindings.BinDir != "" {
		lines = append(lines, "Rebinding:   PATH prepends "+bindings.BinDir)
	}
	return lines
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("rcferry version %s\n", version)
			fmt.Printf("Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
