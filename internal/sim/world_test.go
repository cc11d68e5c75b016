package sim

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/rooftops/internal/config"
)

// landingConfig keeps the field still so the actor drops onto the
// obstacle centered under it.
func landingConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Physics.ScrollSpeed = 0
	return cfg
}

// crashConfig starts the actor low in the gap left of the centered
// obstacle so that obstacle scrolls into it face first.
func crashConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Actor.StartX = -200
	cfg.Actor.StartY = -300
	return cfg
}

func newTestWorld(t *testing.T, cfg config.RunnerConfig, policy LossPolicy) *World {
	t.Helper()
	w, err := New(cfg, policy, constRand(0.5))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return w
}

// groundedWorld returns a world whose actor already rests on an obstacle.
func groundedWorld(t *testing.T) *World {
	t.Helper()
	w := newTestWorld(t, landingConfig(), PolicyPause)
	for i := 0; i < 240 && !w.Actor().OnFloor; i++ {
		w.Tick(0)
	}
	if !w.Actor().OnFloor {
		t.Fatal("actor never landed")
	}
	return w
}

// ticksUntilLoss runs a fresh crash world and returns the tick count of the
// tick that ended the run.
func ticksUntilLoss(t *testing.T, policy LossPolicy) (*World, int) {
	t.Helper()
	w := newTestWorld(t, crashConfig(), policy)
	for i := 1; i <= 480; i++ {
		if r := w.Tick(0); r.Transitioned {
			if r.Collision.Side != SideLeft {
				t.Fatalf("transition on %v collision, expected left", r.Collision.Side)
			}
			return w, i
		}
	}
	t.Fatal("actor never crashed")
	return nil, 0
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Field.Gap = 0

	_, err := New(cfg, PolicyPause, constRand(0.5))
	if err == nil {
		t.Fatal("New() = nil error, expected invalid config")
	}
	if !strings.Contains(err.Error(), "sim: invalid config") || !strings.Contains(err.Error(), "field.gap") {
		t.Errorf("New() error = %q", err)
	}
}

func TestNewRequiresRand(t *testing.T) {
	if _, err := New(config.DefaultRunnerConfig(), PolicyPause, nil); err == nil {
		t.Error("New() with nil rand should fail")
	}
}

func TestNewWorldInitialState(t *testing.T) {
	w := newTestWorld(t, config.DefaultRunnerConfig(), PolicyPause)

	a := w.Actor()
	if a.X != 0 || a.Y != 0 || a.Velocity != 0 || a.OnFloor {
		t.Errorf("Actor() = %+v, expected at origin, at rest, airborne", a)
	}
	if a.HalfW != 15 || a.HalfH != 15 {
		t.Errorf("actor half extents = %vx%v, expected 15x15", a.HalfW, a.HalfH)
	}
	if w.State() != StateRunning {
		t.Errorf("State() = %v, expected running", w.State())
	}
	if len(w.Obstacles()) != 10 {
		t.Errorf("len(Obstacles()) = %d, expected 10", len(w.Obstacles()))
	}
	if b := w.Bounds(); b.HalfW != 640 || b.HalfH != 360 {
		t.Errorf("Bounds() = %+v, expected 640x360 half extents", b)
	}
}

func TestWorldLandsOnObstacle(t *testing.T) {
	w := groundedWorld(t)

	a := w.Actor()
	if a.Y != -85 {
		t.Errorf("Y = %v, expected -85", a.Y)
	}
	if a.Velocity != 0 {
		t.Errorf("Velocity = %v, expected 0", a.Velocity)
	}

	// Resting is stable: gravity is suspended and the tolerance keeps the
	// surface under the actor.
	for i := 0; i < 60; i++ {
		r := w.Tick(0)
		if r.Collision.Side != SideTop {
			t.Fatalf("tick %d collision = %v, expected top", i, r.Collision.Side)
		}
	}
	if got := w.Actor(); got.Y != -85 || !got.OnFloor {
		t.Errorf("Actor() = %+v, expected still resting", got)
	}
}

func TestWorldJumpFromFloor(t *testing.T) {
	w := groundedWorld(t)

	r := w.Tick(1)
	if r.Presses != 1 {
		t.Errorf("Presses = %d, expected 1", r.Presses)
	}
	a := w.Actor()
	if a.Velocity != 600 || a.OnFloor {
		t.Errorf("after jump = (%v, %v), expected (600, false)", a.Velocity, a.OnFloor)
	}
}

func TestWorldPressesAreCountedIndividually(t *testing.T) {
	w := groundedWorld(t)

	// First press jumps, second fast-falls.
	w.Tick(2)
	if v := w.Actor().Velocity; v != -400 {
		t.Errorf("Velocity = %v, expected -400 after two presses", v)
	}
}

func TestWorldLeftCollisionPauses(t *testing.T) {
	w, _ := ticksUntilLoss(t, PolicyPause)
	if w.State() != StatePaused {
		t.Fatalf("State() = %v, expected paused", w.State())
	}

	// Paused: the field is frozen and ticks without presses change nothing.
	before := append([]Box(nil), w.Obstacles()...)
	r := w.Tick(0)
	if r.Transitioned || r.State != StatePaused {
		t.Errorf("Tick(0) = %+v, expected to stay paused", r)
	}
	for i, o := range w.Obstacles() {
		if o != before[i] {
			t.Errorf("obstacle %d moved while paused", i)
		}
	}

	r = w.Tick(1)
	if !r.Transitioned || r.State != StateRunning {
		t.Fatalf("Tick(1) = %+v, expected resume", r)
	}
	a := w.Actor()
	if a.X != -200 || a.Y != -300 || a.Velocity != 0 || a.OnFloor {
		t.Errorf("Actor() = %+v, expected reset to start", a)
	}
}

func TestWorldResumeThenJump(t *testing.T) {
	w, _ := ticksUntilLoss(t, PolicyPause)

	r := w.Tick(2)
	if r.State != StateRunning || r.Presses != 2 {
		t.Errorf("Tick(2) = %+v, expected resume plus one jump", r)
	}
	if v := w.Actor().Velocity; v != -400 {
		t.Errorf("Velocity = %v, expected fast-fall -400 after resume", v)
	}
}

func TestWorldLossDiscardsPresses(t *testing.T) {
	_, k := ticksUntilLoss(t, PolicyPause)

	w := newTestWorld(t, crashConfig(), PolicyPause)
	for i := 1; i < k; i++ {
		w.Tick(0)
	}
	velocity := w.Actor().Velocity

	r := w.Tick(2)
	if !r.Transitioned || r.Collision.Side != SideLeft {
		t.Fatalf("Tick(2) = %+v, expected the loss tick", r)
	}
	if r.Presses != 0 {
		t.Errorf("Presses = %d, expected 0 on the loss tick", r.Presses)
	}
	expected := velocity + w.Config().Physics.Gravity*w.Clock().Step()
	if !almostEqual(w.Actor().Velocity, expected) {
		t.Errorf("Velocity = %v, expected %v with presses ignored", w.Actor().Velocity, expected)
	}
}

func TestWorldExitPolicyEnds(t *testing.T) {
	w, _ := ticksUntilLoss(t, PolicyExit)
	if w.State() != StateEnded {
		t.Fatalf("State() = %v, expected ended", w.State())
	}

	r := w.Tick(3)
	if r.Transitioned || r.State != StateEnded {
		t.Errorf("Tick(3) = %+v, expected presses ignored once ended", r)
	}

	w.Reset()
	if w.State() != StateRunning {
		t.Errorf("State() = %v after Reset, expected running", w.State())
	}
	if a := w.Actor(); a.X != -200 || a.Y != -300 {
		t.Errorf("Actor() = %+v after Reset, expected start position", a)
	}
}

func TestWorldAdvanceCarriesPresses(t *testing.T) {
	w := newTestWorld(t, landingConfig(), PolicyPause)
	step := w.Clock().StepDuration()

	out := w.Advance(step/2, 1)
	if out.Ticks != 0 {
		t.Fatalf("Advance(step/2) ran %d ticks, expected 0", out.Ticks)
	}

	out = w.Advance(step, 0)
	if out.Ticks != 1 || out.Last.Presses != 1 {
		t.Errorf("Advance(step) = %+v, expected one tick with the queued press", out)
	}

	out = w.Advance(step, 0)
	if out.Last.Presses != 0 {
		t.Errorf("Presses = %d, expected the press to be seen only once", out.Last.Presses)
	}
}

func TestWorldAdvanceStopsOnLoss(t *testing.T) {
	w := newTestWorld(t, crashConfig(), PolicyPause)
	maxSteps := w.Config().Timing.MaxStepsPerFrame

	var out AdvanceResult
	for i := 0; i < 20; i++ {
		out = w.Advance(100*time.Millisecond, 0)
		if out.Ticks > maxSteps {
			t.Fatalf("Advance() ran %d ticks, cap is %d", out.Ticks, maxSteps)
		}
		if out.Transitioned {
			break
		}
	}
	if out.State != StatePaused || out.Last.Collision.Side != SideLeft {
		t.Fatalf("Advance() = %+v, expected a pause on a left hit", out)
	}

	// A resume press is honored even if no fixed step is owed.
	out = w.Advance(0, 1)
	if out.Ticks != 1 || out.State != StateRunning || !out.Transitioned {
		t.Errorf("Advance(0, 1) = %+v, expected resume", out)
	}
}

func TestClock(t *testing.T) {
	c := NewClock(config.TimingConfig{TickRate: 100, MaxStepsPerFrame: 5})

	if c.Step() != 0.01 {
		t.Errorf("Step() = %v, expected 0.01", c.Step())
	}

	steps := []struct {
		elapsed time.Duration
		ticks   int
		pending time.Duration
	}{
		{25 * time.Millisecond, 2, 5 * time.Millisecond},
		{5 * time.Millisecond, 1, 0},
		{-time.Second, 0, 0},
		{3 * time.Millisecond, 0, 3 * time.Millisecond},
		{104 * time.Millisecond, 5, 7 * time.Millisecond},
	}

	for i, s := range steps {
		if got := c.Advance(s.elapsed); got != s.ticks {
			t.Errorf("step %d: Advance(%v) = %d, expected %d", i, s.elapsed, got, s.ticks)
		}
		if c.Pending() != s.pending {
			t.Errorf("step %d: Pending() = %v, expected %v", i, c.Pending(), s.pending)
		}
	}
	if c.Ticks() != 8 {
		t.Errorf("Ticks() = %d, expected 8", c.Ticks())
	}

	c.Reset()
	if c.Pending() != 0 {
		t.Errorf("Pending() = %v after Reset, expected 0", c.Pending())
	}
}
