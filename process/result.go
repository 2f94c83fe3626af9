package process

import (
	"fmt"
	"strings"
	"time"
)

// maxStderrTail bounds how much stderr an ExitError carries.
const maxStderrTail = 400

// Result holds the output and status of a completed subprocess.
type Result struct {
	Stdout []byte
	Stderr []byte
	// ExitCode is -1 if the process was killed by a signal.
	ExitCode int
	Duration time.Duration
}

// StderrTail returns the last n bytes of stderr, trimmed. ffmpeg reports the
// actual failure at the end of a long banner.
func (r *Result) StderrTail(n int) string {
	msg := strings.TrimSpace(string(r.Stderr))
	if len(msg) > n {
		msg = strings.TrimSpace(msg[len(msg)-n:])
	}
	return msg
}

// ExitError reports a process that ran but did not succeed.
type ExitError struct {
	Binary   string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s: exit code %d: %v", e.Binary, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("%s: exit code %d: %v: %s", e.Binary, e.ExitCode, e.Err, e.Stderr)
}

func (e *ExitError) Unwrap() error { return e.Err }
