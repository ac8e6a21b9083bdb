//go:build !windows

package slideforge

import (
	"os/exec"
	"syscall"
)

// setProcessGroup puts the child in its own process group so a group kill
// reaches grandchildren spawned by the engine.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
