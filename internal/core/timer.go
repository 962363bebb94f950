package core

import "time"

// FixedStep paces simulation updates at a steady rate independent of the
// frame rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given rate per second.
func NewFixedStep(rate int) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetRate(rate)
	fs.accumulator = fs.step
	return fs
}

// SetRate changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetRate(rate int) {
	if rate <= 0 {
		rate = 60
	}
	f.step = time.Second / time.Duration(rate)
}

// Rate returns the configured ticks per second.
func (f *FixedStep) Rate() int { return int(time.Second / f.step) }

// Reset drops accumulated time so the next tick waits a full period.
func (f *FixedStep) Reset() {
	f.accumulator = 0
	f.last = time.Time{}
}

// ShouldStep reports whether the simulation should advance by one tick.
// Lag beyond one period is dropped instead of replayed in a burst.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	if f.accumulator >= f.step {
		f.accumulator = min(f.accumulator-f.step, f.step)
		return true
	}
	return false
}
