package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/rooftops.yaml
var defaultRooftopsYAML []byte

// DefaultRunnerConfig returns the built-in configuration.
// Values reproduce the classic tuning: 10 buildings 300 units apart,
// a 30 unit square and a 240 Hz simulation.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Physics: PhysicsConfig{
			Gravity:       -1500,
			JumpForce:     600,
			FastFallForce: -400,
			ScrollSpeed:   400,
		},
		Field: FieldConfig{
			Gap:               300,
			Count:             10,
			WidthMin:          60,
			WidthMax:          170,
			HeightOffsetRange: 50,
			BaseHeight:        1000,
			Horizon:           -600,
		},
		Actor: ActorConfig{
			Size:   30,
			StartX: 0,
			StartY: 0,
		},
		Collision: CollisionConfig{
			LandingTolerance: 10,
		},
		Timing: TimingConfig{
			TickRate:         240,
			MaxStepsPerFrame: 24,
		},
		View: ViewConfig{
			Width:  1280,
			Height: 720,
		},
		Heartbeat: HeartbeatConfig{
			Interval: time.Second,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRooftopsYAML
}
