package sim

import "github.com/vovakirdan/rooftops/internal/config"

// Actor is the player-controlled square.
type Actor struct {
	Box
	Velocity float64 // Vertical velocity, positive is up
	OnFloor  bool    // Resting on an obstacle; gravity is suspended
}

// NewActor places a fresh actor at the configured start position,
// airborne and at rest.
func NewActor(cfg config.ActorConfig) Actor {
	half := cfg.Size / 2
	return Actor{
		Box: Box{X: cfg.StartX, Y: cfg.StartY, HalfW: half, HalfH: half},
	}
}
