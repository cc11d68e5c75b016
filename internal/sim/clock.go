package sim

import (
	"time"

	"github.com/vovakirdan/rooftops/internal/config"
)

// Clock turns variable host frame times into a whole number of fixed steps.
// Leftover time carries into the next frame. When a frame owes more than
// maxSteps, the extra whole steps are dropped so a stalled host does not
// spiral.
type Clock struct {
	step     time.Duration
	dt       float64
	maxSteps int
	acc      time.Duration
	ticks    uint64
}

// NewClock creates a clock for the given timing config.
func NewClock(cfg config.TimingConfig) *Clock {
	step := time.Second / time.Duration(cfg.TickRate)
	if step <= 0 {
		step = time.Nanosecond
	}
	return &Clock{
		step:     step,
		dt:       cfg.Step(),
		maxSteps: cfg.MaxStepsPerFrame,
	}
}

// Advance adds elapsed wall time and returns how many fixed steps to run now.
// Negative durations are ignored.
func (c *Clock) Advance(elapsed time.Duration) int {
	if elapsed > 0 {
		c.acc += elapsed
	}

	n := int(c.acc / c.step)
	if n > c.maxSteps {
		n = c.maxSteps
		c.acc %= c.step
	} else {
		c.acc -= time.Duration(n) * c.step
	}
	c.ticks += uint64(n)
	return n
}

// Step returns the fixed timestep in seconds.
func (c *Clock) Step() float64 { return c.dt }

// StepDuration returns the fixed timestep as a duration.
func (c *Clock) StepDuration() time.Duration { return c.step }

// Pending returns accumulated time not yet consumed by a step.
func (c *Clock) Pending() time.Duration { return c.acc }

// Ticks returns the total number of steps handed out.
func (c *Clock) Ticks() uint64 { return c.ticks }

// Reset drops accumulated time. The tick counter is kept.
func (c *Clock) Reset() { c.acc = 0 }
