package slideforge

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/alnah/go-slideforge/internal/process"
)

// CommandRunner abstracts external command execution to enable testing
// without real subprocesses.
type CommandRunner interface {
	// Run executes name with args, honoring ctx cancellation.
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
	// LookPath reports whether the named executable is on PATH.
	LookPath(name string) error
}

// Compile-time interface check
var _ CommandRunner = (*ExecRunner)(nil)

// ExecRunner implements CommandRunner using os/exec. Commands run in their
// own process group so cancellation kills the whole tree, not just the
// direct child.
type ExecRunner struct{}

func (r *ExecRunner) LookPath(name string) error {
	_, err := exec.LookPath(name)
	return err
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.Command(name, args...)
	setProcessGroup(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return "", "", fmt.Errorf("starting %s: %w", name, err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case <-ctx.Done():
		process.KillProcessGroup(cmd.Process.Pid)
		<-done
		return stdout.String(), stderr.String(), ctx.Err()
	case err := <-done:
		return stdout.String(), stderr.String(), err
	}
}
