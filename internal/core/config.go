package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW   int   // Screen width in characters
	ScreenH   int   // Screen height in characters
	FrameRate int   // Host frames per second (render rate, default 60)
	Seed      int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		FrameRate: 60,
		Seed:      0, // 0 means use current time in platform layer
	}
}

// GameState represents the current session state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Paused   bool   // Session is paused and waits for a resume press
	GameOver bool   // Session has ended; the host should stop
	Status   string // Short human-readable session label
}

// StepResult is returned by Game.Step() after each host frame.
type StepResult struct {
	State        GameState
	Ticks        int  // Fixed simulation ticks run during this frame
	Transitioned bool // Session state changed because of a collision
}
