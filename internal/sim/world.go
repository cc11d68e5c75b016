package sim

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/rooftops/internal/config"
)

// TickResult describes what happened during one fixed tick.
type TickResult struct {
	Collision    Collision    // Detection result shared by resolver and evaluator
	State        SessionState // State after the tick
	Transitioned bool         // State changed during the tick
	Recycled     int          // Obstacles recycled during the tick
	Presses      int          // Presses acted upon
}

// AdvanceResult summarizes a batch of ticks run for one host frame.
type AdvanceResult struct {
	Ticks        int
	State        SessionState
	Transitioned bool
	Last         TickResult
}

// World owns the whole simulation state and runs the tick pipeline.
// It is not safe for concurrent use.
type World struct {
	cfg    config.RunnerConfig
	policy LossPolicy
	rng    Rand

	field *Field
	actor Actor
	state SessionState
	clock *Clock

	pending int // Presses waiting for the next tick
}

// New validates cfg and builds a running world.
func New(cfg config.RunnerConfig, policy LossPolicy, rng Rand) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sim: invalid config: %w", err)
	}
	if rng == nil {
		return nil, errors.New("sim: random source is required")
	}

	return &World{
		cfg:    cfg,
		policy: policy,
		rng:    rng,
		field:  NewField(cfg.Field, cfg.Physics.ScrollSpeed, rng),
		actor:  NewActor(cfg.Actor),
		state:  StateRunning,
		clock:  NewClock(cfg.Timing),
	}, nil
}

// Tick runs exactly one fixed step with the given number of fresh presses.
//
// Running: scroll, recycle, gravity, integrate, detect, resolve landing,
// evaluate outcome, then one jump per press. A loss preempts the presses.
// Paused: the first press resumes with the actor back at its start, and the
// rest are handled as jumps. Ended: nothing happens.
func (w *World) Tick(presses int) TickResult {
	if presses < 0 {
		presses = 0
	}

	switch w.state {
	case StateEnded:
		return TickResult{Collision: NoCollision, State: w.state}
	case StatePaused:
		if presses == 0 {
			return TickResult{Collision: NoCollision, State: w.state}
		}
		w.resume()
		w.jump(presses - 1)
		return TickResult{
			Collision:    NoCollision,
			State:        w.state,
			Transitioned: true,
			Presses:      presses,
		}
	}

	dt := w.clock.Step()
	res := TickResult{}

	w.field.Scroll(dt)
	res.Recycled = w.field.Recycle(w.rng)

	ApplyGravity(&w.actor, w.cfg.Physics.Gravity, dt)
	Integrate(&w.actor, dt)

	res.Collision = Detect(w.actor, w.field.Obstacles(), w.cfg.Collision.LandingTolerance)
	ResolveLanding(&w.actor, res.Collision)

	if next, fired := EvaluateOutcome(w.state, res.Collision, w.policy); fired {
		w.state = next
		res.State = next
		res.Transitioned = true
		return res
	}

	w.jump(presses)
	res.Presses = presses
	res.State = w.state
	return res
}

// Advance feeds elapsed host time into the clock and runs the owed ticks.
// Presses are queued and delivered to the next tick that runs, so a press is
// seen exactly once even when a frame owes zero ticks. The batch stops early
// once the session leaves Running.
func (w *World) Advance(elapsed time.Duration, presses int) AdvanceResult {
	if presses > 0 {
		w.pending += presses
	}

	n := w.clock.Advance(elapsed)
	out := AdvanceResult{State: w.state, Last: TickResult{Collision: NoCollision, State: w.state}}

	switch w.state {
	case StateEnded:
		w.pending = 0
		return out
	case StatePaused:
		if w.pending == 0 {
			return out
		}
		// A resume press is honored even when no step is owed.
		n = max(n, 1)
	}

	for i := 0; i < n; i++ {
		r := w.Tick(w.pending)
		w.pending = 0
		out.Ticks++
		out.Last = r
		out.State = r.State
		if r.Transitioned {
			out.Transitioned = true
		}
		if r.State != StateRunning {
			break
		}
	}
	return out
}

// Reset restarts the session: the actor returns to its start and the state
// goes back to Running. The obstacle field keeps its current layout.
func (w *World) Reset() {
	w.actor = NewActor(w.cfg.Actor)
	w.state = StateRunning
	w.pending = 0
	w.clock.Reset()
}

// resume leaves Paused. Calling it in any other state is a no-op.
func (w *World) resume() {
	if w.state != StatePaused {
		return
	}
	w.actor = NewActor(w.cfg.Actor)
	w.state = StateRunning
}

func (w *World) jump(presses int) {
	for i := 0; i < presses; i++ {
		HandleJump(&w.actor, w.cfg.Physics.JumpForce, w.cfg.Physics.FastFallForce)
	}
}

// Actor returns a copy of the actor.
func (w *World) Actor() Actor { return w.actor }

// Obstacles returns the obstacle pool. Callers must not modify it.
func (w *World) Obstacles() []Box { return w.field.Obstacles() }

// State returns the current session state.
func (w *World) State() SessionState { return w.state }

// Policy returns the loss policy the world was built with.
func (w *World) Policy() LossPolicy { return w.policy }

// Bounds returns the visible world area, centered on the origin.
func (w *World) Bounds() Box {
	return Box{HalfW: w.cfg.View.Width / 2, HalfH: w.cfg.View.Height / 2}
}

// Clock exposes the fixed-step clock.
func (w *World) Clock() *Clock { return w.clock }

// Config returns the configuration the world was built with.
func (w *World) Config() config.RunnerConfig { return w.cfg }
