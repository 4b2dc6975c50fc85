package constants

import "os"

// Travelled-session environment contract
const (
	// MarkerVar is the single environment variable that signals a
	// travelled session. Its presence means "this shell was launched by
	// rcferry"; its value is the bundle directory path. Only the
	// synthesized script writes it.
	MarkerVar = "RCFERRY_DIR"

	// NestedVar is additionally exported when a travelled session hops
	// again, so tooling can tell a second hop from a first one.
	NestedVar = "RCFERRY_NESTED"
)

// Source and bundle layout
const (
	// SourceDirName is the directory of files to travel, under $HOME.
	SourceDirName = ".rcferry.d"

	// AnchorFile is the primary shell configuration inside the source
	// directory. Packaging fails fast when it is missing.
	AnchorFile = "bashrc"

	// VimFile, InputrcFile, TmuxFile and BinDir are the optional
	// travelled files the bootstrap detector rebinds when present.
	VimFile     = "vimrc"
	InputrcFile = "inputrc"
	TmuxFile    = "tmux.conf"
	BinDir      = "bin"

	// ProfileFile is the generated wrapper rcfile inside the bundle
	// directory. The landed shell reads it instead of the raw anchor so
	// the bootstrap rebindings run first.
	ProfileFile = ".rcferry_profile"

	// BundleDirPrefix is the deterministic bundle directory path prefix;
	// the remote account name is appended on the far side. Deterministic
	// naming is what lets a nested travel find the already-unpacked
	// directory through MarkerVar.
	BundleDirPrefix = "/tmp/.rcferry-"
)

// Payload limits
const (
	// MaxPayloadBytes is the hard ceiling on the encoded payload. The
	// whole script must fit comfortably inside one remote command
	// argument.
	MaxPayloadBytes = 65536
)

// File permissions
const (
	// StageDirPermissions is the mode for the local staging directory.
	StageDirPermissions os.FileMode = 0700

	// SwitchDirPermissions is the mode for the directory holding the
	// user-switch temp script. The target account must traverse it to
	// reach the script, but cannot list it.
	SwitchDirPermissions os.FileMode = 0711

	// SwitchScriptPermissions is the mode for the user-switch temp
	// script; sudo and su execute a file path as the target account, so
	// the script must be readable and executable by that account. The
	// extracted bundle re-privatizes itself with chmod -R go-rwx.
	SwitchScriptPermissions os.FileMode = 0755
)
