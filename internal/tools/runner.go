package tools

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// ExitCodeLaunchFailed is reported when the process could not be started.
const ExitCodeLaunchFailed int32 = 127

// CommandRunner abstracts process execution for the dispatcher.
type CommandRunner interface {
	Run(ctx context.Context, dir string, name string, args ...string) ([]byte, []byte, int32, error)
}

// ExecRunner executes commands on the local host.
type ExecRunner struct{}

// Run starts name with args directly (no shell) inside dir and waits for it.
func (r ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) ([]byte, []byte, int32, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), stderr.Bytes(), 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := int32(exitErr.ExitCode())
		if code < 0 {
			// killed by signal
			code = 1
		}
		return stdout.Bytes(), stderr.Bytes(), code, err
	}

	return stdout.Bytes(), stderr.Bytes(), ExitCodeLaunchFailed, err
}
