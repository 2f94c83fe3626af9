package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"
)

// ErrBinaryRequired is returned for a Command without a Binary.
var ErrBinaryRequired = errors.New("process: binary is required")

// Run executes cmd and waits for it. A non-zero exit yields an *ExitError
// together with the Result. If ctx is canceled the error wraps ctx.Err().
func Run(ctx context.Context, cmd Command) (*Result, error) {
	if cmd.Binary == "" {
		return nil, ErrBinaryRequired
	}
	path, err := exec.LookPath(cmd.Binary)
	if err != nil {
		return nil, fmt.Errorf("process: %w", err)
	}

	grace := cmd.GracePeriod
	if grace == 0 {
		grace = DefaultGracePeriod
	}

	c := exec.CommandContext(ctx, path, cmd.Args...) //nolint:gosec // callers pass fixed tool arguments
	c.Dir = cmd.Dir
	c.Env = mergeEnv(cmd.Env)
	c.Stdin = cmd.Stdin

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	// Own process group so cancellation reaches children too.
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	c.Cancel = func() error {
		if c.Process == nil {
			return nil
		}
		return syscall.Kill(-c.Process.Pid, syscall.SIGTERM)
	}
	c.WaitDelay = grace

	start := time.Now()
	runErr := c.Run()
	result := &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: c.ProcessState.ExitCode(),
		Duration: time.Since(start),
	}

	if runErr != nil {
		if ctx.Err() != nil {
			return result, fmt.Errorf("process: %s killed: %w", filepath.Base(cmd.Binary), ctx.Err())
		}
		return result, &ExitError{
			Binary:   filepath.Base(cmd.Binary),
			ExitCode: result.ExitCode,
			Stderr:   result.StderrTail(maxStderrTail),
			Err:      runErr,
		}
	}
	return result, nil
}

// mergeEnv appends extra to the current environment. Nil inherits it as is.
func mergeEnv(extra []string) []string {
	if len(extra) == 0 {
		return nil
	}
	return append(os.Environ(), extra...)
}
