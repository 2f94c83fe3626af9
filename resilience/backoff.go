package resilience

import (
	"context"
	"time"
)

// Backoff describes a capped exponential delay schedule:
// Initial, then min(previous*Factor, Max) for every following step.
type Backoff struct {
	Initial time.Duration `yaml:"initial_delay" mapstructure:"initial_delay"`
	Max     time.Duration `yaml:"max_delay" mapstructure:"max_delay"`
	Factor  float64       `yaml:"factor" mapstructure:"factor"`
}

// DefaultPollBackoff is the schedule used for remote file readiness polling.
func DefaultPollBackoff() Backoff {
	return Backoff{
		Initial: 8 * time.Second,
		Max:     45 * time.Second,
		Factor:  1.5,
	}
}

// withDefaults fills zero fields so a partially configured Backoff still grows and stays capped.
func (b Backoff) withDefaults() Backoff {
	def := DefaultPollBackoff()
	if b.Initial <= 0 {
		b.Initial = def.Initial
	}
	if b.Max <= 0 {
		b.Max = def.Max
	}
	if b.Max < b.Initial {
		b.Max = b.Initial
	}
	if b.Factor < 1 {
		b.Factor = def.Factor
	}
	return b
}

// First returns the first delay of the schedule.
func (b Backoff) First() time.Duration {
	return b.withDefaults().Initial
}

// Next returns the delay that follows prev.
func (b Backoff) Next(prev time.Duration) time.Duration {
	b = b.withDefaults()
	if prev <= 0 {
		return b.Initial
	}
	next := time.Duration(float64(prev) * b.Factor)
	if next > b.Max || next < prev {
		return b.Max
	}
	return next
}

// Sleeper waits for d or until ctx is done. Tests substitute a recording fake.
type Sleeper func(ctx context.Context, d time.Duration) error

// Sleep is the real-time Sleeper.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
