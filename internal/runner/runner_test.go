package runner

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecRunnerCapturesStdout(t *testing.T) {
	requireShell(t)

	out, err := NewExecRunner(0).Run(context.Background(), "sh", "-c", "printf 'Sinks:\\n'; echo oops >&2")
	require.NoError(t, err)
	assert.Equal(t, "Sinks:\n", out)
}

func TestExecRunnerNonZeroExit(t *testing.T) {
	requireShell(t)

	_, err := NewExecRunner(0).Run(context.Background(), "sh", "-c", "echo denied >&2; exit 3")
	require.Error(t, err)

	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, 3, cmdErr.ExitCode)
	assert.Equal(t, "sh", cmdErr.Command)
	assert.Contains(t, cmdErr.Error(), "exit code 3")
	assert.Contains(t, cmdErr.Error(), "denied")
}

func TestExecRunnerMissingBinary(t *testing.T) {
	_, err := NewExecRunner(0).Run(context.Background(), "audiocontrol-definitely-not-installed", "status")
	require.Error(t, err)

	var cmdErr *CommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, -1, cmdErr.ExitCode)
	assert.True(t, errors.Is(err, exec.ErrNotFound))
}

func TestExecRunnerTimeout(t *testing.T) {
	requireShell(t)

	start := time.Now()
	_, err := NewExecRunner(100*time.Millisecond).Run(context.Background(), "sh", "-c", "exec sleep 5")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 4*time.Second)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestCommandErrorMessage(t *testing.T) {
	err := &CommandError{Command: "wpctl", Args: []string{"set-default", "64"}, ExitCode: -1, Err: errors.New("spawn failed")}
	assert.Equal(t, `command "wpctl set-default 64" failed: spawn failed`, err.Error())
}
