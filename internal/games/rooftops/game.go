// Package rooftops adapts the rooftops simulation to the registry.Game
// interface. Two variants are registered: one that pauses on a crash and
// waits for a press, and one that ends the session.
package rooftops

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rooftops/internal/config"
	"github.com/vovakirdan/rooftops/internal/core"
	"github.com/vovakirdan/rooftops/internal/registry"
	"github.com/vovakirdan/rooftops/internal/sim"
)

// Registered variant IDs.
const (
	IDPause = "rooftops"
	IDExit  = "rooftops-exit"
)

var (
	configPath string
	logger     = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger sets the logger used for session events.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements one rooftops variant.
type Game struct {
	id     string
	title  string
	policy sim.LossPolicy
	world  *sim.World
	seed   int64
}

// New creates a game with the given loss policy.
func New(policy sim.LossPolicy) *Game {
	g := &Game{id: IDPause, title: "Rooftops", policy: policy}
	if policy == sim.PolicyExit {
		g.id = IDExit
		g.title = "Rooftops (one life)"
	}
	return g
}

// ID returns the unique identifier for this variant.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this variant.
func (g *Game) Title() string {
	return g.title
}

// Reset loads configuration and builds a fresh world.
func (g *Game) Reset(runtime core.RuntimeConfig) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("rooftops: %w", err)
	}

	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	world, err := sim.New(cfg, g.policy, rand.New(rand.NewSource(seed)))
	if err != nil {
		return fmt.Errorf("rooftops: %w", err)
	}

	g.world = world
	g.seed = seed
	logger.Debug("session reset", "variant", g.id, "seed", seed, "tick_rate", cfg.Timing.TickRate)
	return nil
}

// Step runs the simulation for one host frame.
// Every jump press in the frame reaches the simulation exactly once.
func (g *Game) Step(in core.InputFrame, elapsed time.Duration) core.StepResult {
	if g.world == nil {
		return core.StepResult{}
	}

	if in.Has(core.ActionRestart) {
		g.world.Reset()
		logger.Debug("session restarted", "variant", g.id)
	}

	out := g.world.Advance(elapsed, in.Count(core.ActionJump))
	if out.Transitioned {
		c := out.Last.Collision
		logger.Debug("session transition",
			"variant", g.id,
			"policy", g.world.Policy(),
			"state", out.State,
			"collision", c.Side,
			"obstacle", c.Index,
		)
	}

	return core.StepResult{
		State:        g.State(),
		Ticks:        out.Ticks,
		Transitioned: out.Transitioned,
	}
}

// State returns the current session state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	s := g.world.State()
	return core.GameState{
		Paused:   s == sim.StatePaused,
		GameOver: s == sim.StateEnded,
		Status:   s.String(),
	}
}

// Seed returns the seed the current world was built with. Passing it back
// through RuntimeConfig.Seed replays the same obstacle layout.
func (g *Game) Seed() int64 {
	return g.seed
}

func init() {
	registry.Register(IDPause, func() registry.Game {
		return New(sim.PolicyPause)
	})
	registry.Register(IDExit, func() registry.Game {
		return New(sim.PolicyExit)
	})
}
