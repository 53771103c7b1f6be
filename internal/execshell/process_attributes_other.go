//go:build !windows

package execshell

import "os/exec"

// configureProcessAttributes is a no-op outside Windows.
func configureProcessAttributes(*exec.Cmd) {}
