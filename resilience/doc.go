// Package resilience provides the timing and concurrency primitives used by
// the transcription pipeline.
//
//   - Backoff: capped exponential delay schedule
//   - Poll: bounded polling loop driven by an explicit PollState, with an
//     injectable Sleeper so tests never wait on real time
//   - Bulkhead: limits concurrent executions and fails fast when full
//
// Example:
//
//	state, attempts, err := resilience.Poll(ctx, resilience.PollConfig{
//	    MaxAttempts: 15,
//	    Backoff:     resilience.Backoff{Initial: 8 * time.Second, Max: 45 * time.Second, Factor: 1.5},
//	}, func(ctx context.Context, attempt int) (State, bool, error) {
//	    s, err := client.Status(ctx, id)
//	    return s, s == Active, err
//	})
package resilience
