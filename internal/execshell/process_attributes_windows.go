//go:build windows

package execshell

import (
	"os/exec"
	"syscall"
)

// configureProcessAttributes prevents spawned commands from flashing a console window.
func configureProcessAttributes(executable *exec.Cmd) {
	executable.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}
