//go:build windows

package slideforge

import "os/exec"

// setProcessGroup is a no-op on Windows; KillProcessGroup tree-kills via taskkill.
func setProcessGroup(cmd *exec.Cmd) {}
