package process_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/transcribealpha/process"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name       string
		cmd        process.Command
		wantStdout string
		wantStderr string
	}{
		{"args", process.Command{Binary: "echo", Args: []string{"hello", "world"}}, "hello world", ""},
		{"stdin", process.Command{Binary: "cat", Stdin: strings.NewReader("from stdin")}, "from stdin", ""},
		{"env", process.Command{Binary: "sh", Args: []string{"-c", "echo $PROBE_VAR"}, Env: []string{"PROBE_VAR=hello123"}}, "hello123", ""},
		{"stderr on success", process.Command{Binary: "sh", Args: []string{"-c", "echo banner >&2"}}, "", "banner"},
		{"working dir", process.Command{Binary: "pwd", Dir: "/"}, "/", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := process.Run(context.Background(), tt.cmd)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if res.ExitCode != 0 {
				t.Errorf("exit code = %d", res.ExitCode)
			}
			if got := strings.TrimSpace(string(res.Stdout)); got != tt.wantStdout {
				t.Errorf("stdout = %q, want %q", got, tt.wantStdout)
			}
			if got := res.StderrTail(100); got != tt.wantStderr {
				t.Errorf("stderr = %q, want %q", got, tt.wantStderr)
			}
		})
	}
}

func TestRunExitError(t *testing.T) {
	res, err := process.Run(context.Background(), process.Command{
		Binary: "sh",
		Args:   []string{"-c", "echo 'Invalid data found when processing input' >&2; exit 42"},
	})
	var exitErr *process.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("err = %v, want *ExitError", err)
	}
	if exitErr.ExitCode != 42 || res.ExitCode != 42 {
		t.Errorf("exit code = %d / %d", exitErr.ExitCode, res.ExitCode)
	}
	if !strings.Contains(err.Error(), "Invalid data found") || exitErr.Binary != "sh" {
		t.Errorf("error = %q", err)
	}
}

func TestRunContextCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	res, err := process.Run(ctx, process.Command{
		Binary:      "sleep",
		Args:        []string{"10"},
		GracePeriod: 500 * time.Millisecond,
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if res.Duration > 5*time.Second {
		t.Errorf("process took too long to stop: %v", res.Duration)
	}
}

func TestRunMissingBinary(t *testing.T) {
	if _, err := process.Run(context.Background(), process.Command{}); !errors.Is(err, process.ErrBinaryRequired) {
		t.Errorf("empty binary: err = %v", err)
	}
	if _, err := process.Run(context.Background(), process.Command{Binary: "definitely-not-a-real-tool-xyz"}); err == nil {
		t.Error("unknown binary should fail")
	}
}

func TestStderrTail(t *testing.T) {
	r := &process.Result{Stderr: []byte("  ffmpeg version 7\n...\nError opening input  \n")}
	if got := r.StderrTail(20); got != "Error opening input" {
		t.Errorf("StderrTail(20) = %q", got)
	}
	if got := r.StderrTail(1000); !strings.HasPrefix(got, "ffmpeg version 7") {
		t.Errorf("StderrTail(1000) = %q", got)
	}
}
