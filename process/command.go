package process

import (
	"io"
	"time"
)

// DefaultGracePeriod is how long a canceled process may take to exit after
// SIGTERM before it is killed.
const DefaultGracePeriod = 5 * time.Second

// Command configures a subprocess to execute.
type Command struct {
	// Binary is the executable path or name (resolved via PATH).
	Binary string
	// Args are the command-line arguments.
	Args []string
	// Dir is the working directory. Empty uses the current directory.
	Dir string
	// Env is additional KEY=value pairs appended to the inherited environment.
	Env []string
	// Stdin provides input to the process. May be nil.
	Stdin io.Reader
	// GracePeriod overrides DefaultGracePeriod.
	GracePeriod time.Duration
}
