//go:build darwin || linux

package launcher

import "syscall"

// execSyscall replaces the current process with the transport, so its
// exit status becomes ours unmodified. This function does not return
// on success.
func execSyscall(path string, args []string, env []string) error {
	return syscall.Exec(path, args, env)
}
