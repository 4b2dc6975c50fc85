package bootstrap

import (
	"fmt"

	"rcferry/internal/constants"
)

// Profile renders the shell fragment that performs Detect's rebindings
// inside the landed shell, where the travelled files can actually be
// probed. The synthesized script writes it into the bundle directory
// and starts the interactive shell on it; it ends by sourcing the
// travelled anchor. Every check degrades silently when its file is
// absent.
func Profile() string {
	return fmt.Sprintf(`if [ -n "$%[1]s" ]; then
if [ -f "$%[1]s/%[2]s" ]; then
export RCFERRY_RC="$%[1]s/%[2]s"
fi
if [ -f "$%[1]s/%[3]s" ]; then
export INPUTRC="$%[1]s/%[3]s"
fi
if [ -f "$%[1]s/%[4]s" ] && command -v tmux >/dev/null 2>&1; then
printf 'source-file %%s\nset-option -g default-command "bash --rcfile %%s -i"\n' "$%[1]s/%[4]s" "$%[1]s/%[7]s" > "$%[1]s/.tmux_travel.conf"
tmux() { command tmux -f "$%[1]s/.tmux_travel.conf" "$@"; }
fi
if [ -f "$%[1]s/%[5]s" ] && command -v vim >/dev/null 2>&1; then
export EDITOR="vim -u $%[1]s/%[5]s"
fi
if [ -d "$%[1]s/%[6]s" ]; then
export PATH="$%[1]s/%[6]s:$PATH"
fi
if [ -n "$RCFERRY_RC" ]; then
. "$RCFERRY_RC"
fi
fi`,
		constants.MarkerVar,
		constants.AnchorFile,
		constants.InputrcFile,
		constants.TmuxFile,
		constants.VimFile,
		constants.BinDir,
		constants.ProfileFile,
	)
}
