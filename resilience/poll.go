package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrPollExhausted is returned when every attempt ran without the check reporting done.
var ErrPollExhausted = errors.New("poll attempts exhausted")

// PollConfig configures Poll.
type PollConfig struct {
	// MaxAttempts bounds the number of checks, including the first.
	MaxAttempts int
	// Backoff is the delay schedule between checks.
	Backoff Backoff
	// Sleep waits between checks. Defaults to Sleep.
	Sleep Sleeper
	// OnAttempt is called after every check that did not finish the poll.
	// next is zero when no further attempt will be made.
	OnAttempt func(attempt int, err error, next time.Duration)
}

// PollState is the loop state threaded through each iteration.
type PollState struct {
	Attempt int
	Delay   time.Duration
}

// Start returns the state before the first check.
func (c PollConfig) Start() PollState {
	return PollState{Attempt: 1, Delay: c.Backoff.First()}
}

// Advance returns the state for the following check.
func (c PollConfig) Advance(s PollState) PollState {
	return PollState{Attempt: s.Attempt + 1, Delay: c.Backoff.Next(s.Delay)}
}

// Exhausted reports whether s is past the last permitted attempt.
func (c PollConfig) Exhausted(s PollState) bool {
	return s.Attempt > c.maxAttempts()
}

func (c PollConfig) maxAttempts() int {
	if c.MaxAttempts <= 0 {
		return 1
	}
	return c.MaxAttempts
}

// Poll runs check until it reports done, the attempt bound is reached or ctx ends.
//
// A check returning an error is treated as transient: it consumes the attempt
// and the loop continues. done=true ends the loop immediately, whatever the
// value means to the caller. Poll returns the last value seen and the number
// of checks performed. On exhaustion the error wraps ErrPollExhausted and the
// last transient error, if any.
func Poll[T any](ctx context.Context, cfg PollConfig, check func(ctx context.Context, attempt int) (T, bool, error)) (T, int, error) {
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = Sleep
	}

	var last T
	state := cfg.Start()
	for {
		value, done, err := check(ctx, state.Attempt)
		if err == nil {
			last = value
			if done {
				return last, state.Attempt, nil
			}
		}

		next := cfg.Advance(state)
		if cfg.Exhausted(next) {
			if cfg.OnAttempt != nil {
				cfg.OnAttempt(state.Attempt, err, 0)
			}
			if err != nil {
				return last, state.Attempt, fmt.Errorf("%w after %d attempts: %w", ErrPollExhausted, state.Attempt, err)
			}
			return last, state.Attempt, fmt.Errorf("%w after %d attempts", ErrPollExhausted, state.Attempt)
		}

		if cfg.OnAttempt != nil {
			cfg.OnAttempt(state.Attempt, err, state.Delay)
		}
		if err := sleep(ctx, state.Delay); err != nil {
			return last, state.Attempt, err
		}
		state = next
	}
}
