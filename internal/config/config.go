// Package config provides YAML-based configuration loading and validation
// for the rooftops simulation.
package config

import (
	"errors"
	"fmt"
	"time"
)

// RunnerConfig contains all tunables for the rooftops simulation.
// Coordinates are world units with y growing upward.
type RunnerConfig struct {
	Physics   PhysicsConfig   `yaml:"physics"`
	Field     FieldConfig     `yaml:"field"`
	Actor     ActorConfig     `yaml:"actor"`
	Collision CollisionConfig `yaml:"collision"`
	Timing    TimingConfig    `yaml:"timing"`
	View      ViewConfig      `yaml:"view"`
	Heartbeat HeartbeatConfig `yaml:"heartbeat"`
}

// PhysicsConfig defines forces and speeds. Gravity and fast-fall are negative
// (downward), jump force is positive.
type PhysicsConfig struct {
	Gravity       float64 `yaml:"gravity"`
	JumpForce     float64 `yaml:"jump_force"`
	FastFallForce float64 `yaml:"fast_fall_force"`
	ScrollSpeed   float64 `yaml:"scroll_speed"`
}

// FieldConfig defines the obstacle pool.
type FieldConfig struct {
	Gap               float64 `yaml:"gap"`                 // Distance between obstacle centers
	Count             int     `yaml:"count"`               // Pool size
	WidthMin          float64 `yaml:"width_min"`           // Full width lower bound
	WidthMax          float64 `yaml:"width_max"`           // Full width upper bound
	HeightOffsetRange float64 `yaml:"height_offset_range"` // Max vertical offset around the horizon
	BaseHeight        float64 `yaml:"base_height"`         // Full obstacle height
	Horizon           float64 `yaml:"horizon"`             // Obstacle center line
}

// UpperLimit returns the x at which recycled obstacles re-enter.
func (f FieldConfig) UpperLimit() float64 {
	return f.Gap * float64(f.Count) / 2
}

// LowerLimit returns the x below which obstacles are recycled.
func (f FieldConfig) LowerLimit() float64 {
	return -f.UpperLimit()
}

// ActorConfig defines the controlled square.
type ActorConfig struct {
	Size   float64 `yaml:"size"`
	StartX float64 `yaml:"start_x"`
	StartY float64 `yaml:"start_y"`
}

// CollisionConfig defines collision heuristics.
type CollisionConfig struct {
	LandingTolerance float64 `yaml:"landing_tolerance"`
}

// TimingConfig defines the fixed simulation step.
type TimingConfig struct {
	TickRate         int `yaml:"tick_rate"`           // Simulation ticks per second
	MaxStepsPerFrame int `yaml:"max_steps_per_frame"` // Catch-up cap per host frame
}

// Step returns the fixed timestep in seconds.
func (t TimingConfig) Step() float64 {
	return 1.0 / float64(t.TickRate)
}

// ViewConfig defines the world area shown on screen, centered on the origin.
type ViewConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// HeartbeatConfig defines the optional ping collaborator.
type HeartbeatConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// Validate checks every startup precondition and reports all violations at once.
func (c RunnerConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Physics.Gravity < 0, "physics.gravity must be negative, got %v", c.Physics.Gravity)
	check(c.Physics.JumpForce > 0, "physics.jump_force must be positive, got %v", c.Physics.JumpForce)
	check(c.Physics.FastFallForce < 0, "physics.fast_fall_force must be negative, got %v", c.Physics.FastFallForce)
	check(c.Physics.ScrollSpeed >= 0, "physics.scroll_speed must not be negative, got %v", c.Physics.ScrollSpeed)

	check(c.Field.Gap > 0, "field.gap must be positive, got %v", c.Field.Gap)
	check(c.Field.Count >= 1, "field.count must be at least 1, got %d", c.Field.Count)
	check(c.Field.WidthMin > 0, "field.width_min must be positive, got %v", c.Field.WidthMin)
	check(c.Field.WidthMax >= c.Field.WidthMin, "field.width_max (%v) must not be below width_min (%v)", c.Field.WidthMax, c.Field.WidthMin)
	check(c.Field.HeightOffsetRange >= 0, "field.height_offset_range must not be negative, got %v", c.Field.HeightOffsetRange)
	check(c.Field.BaseHeight > 0, "field.base_height must be positive, got %v", c.Field.BaseHeight)

	check(c.Actor.Size > 0, "actor.size must be positive, got %v", c.Actor.Size)
	check(c.Collision.LandingTolerance >= 0, "collision.landing_tolerance must not be negative, got %v", c.Collision.LandingTolerance)

	check(c.Timing.TickRate > 0, "timing.tick_rate must be positive, got %d", c.Timing.TickRate)
	check(c.Timing.MaxStepsPerFrame > 0, "timing.max_steps_per_frame must be positive, got %d", c.Timing.MaxStepsPerFrame)

	check(c.View.Width > 0 && c.View.Height > 0, "view must have positive width and height, got %vx%v", c.View.Width, c.View.Height)
	check(c.Heartbeat.Interval > 0, "heartbeat.interval must be positive, got %v", c.Heartbeat.Interval)

	return errors.Join(errs...)
}
