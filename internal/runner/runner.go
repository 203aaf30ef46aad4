// Package runner executes external commands and captures their output.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/hongyan/audiocontrol/internal/logging"
)

// waitDelay bounds how long Run waits for output pipes after the process is killed
const waitDelay = 500 * time.Millisecond

// Runner runs a command and returns its standard output
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// CommandError describes a command that could not be started or exited non-zero
type CommandError struct {
	Command  string
	Args     []string
	ExitCode int // -1 when the process never ran
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	cmdline := strings.TrimSpace(e.Command + " " + strings.Join(e.Args, " "))
	if e.ExitCode >= 0 {
		msg := fmt.Sprintf("command %q failed with exit code %d", cmdline, e.ExitCode)
		if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
			msg += ": " + stderr
		}
		return msg
	}
	return fmt.Sprintf("command %q failed: %v", cmdline, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExecRunner runs commands with os/exec
type ExecRunner struct {
	// Timeout bounds a single invocation; zero means no limit
	Timeout time.Duration
}

// NewExecRunner creates an ExecRunner with the given per-command timeout
func NewExecRunner(timeout time.Duration) *ExecRunner {
	return &ExecRunner{Timeout: timeout}
}

// Run executes name with args and returns captured stdout
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	logging.Debug("Executing command: %s %v", name, args)

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	if err == nil {
		return stdout.String(), nil
	}

	cmdErr := &CommandError{
		Command:  name,
		Args:     args,
		ExitCode: -1,
		Stderr:   stderr.String(),
		Err:      err,
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		cmdErr.Err = fmt.Errorf("%w: %v", ctxErr, err)
		return "", cmdErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		cmdErr.ExitCode = exitErr.ExitCode()
	}
	return "", cmdErr
}
