package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/rooftops/internal/config"
	"github.com/vovakirdan/rooftops/internal/core"
	"github.com/vovakirdan/rooftops/internal/games/rooftops"
	"github.com/vovakirdan/rooftops/internal/heartbeat"
	"github.com/vovakirdan/rooftops/internal/platform/tui"
	"github.com/vovakirdan/rooftops/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant (default: rooftops).

Variants:
  rooftops       - A crash pauses the run; press jump to try again
  rooftops-exit  - A crash ends the session

Controls:
  Space/W/Up  - Jump (on a roof) or fast-fall (in the air)
  R           - Restart
  Q/Esc       - Quit

Examples:
  rooftops play
  rooftops play rooftops-exit
  rooftops play --seed 7 --config ./my-rooftops.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := rooftops.IDPause
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q (run 'rooftops list')", gameID)
	}

	// Fail before the terminal is taken over.
	rc, err := loadConfig()
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	hb := startHeartbeat(ctx, rc)

	if err := tui.Run(game, runtimeConfig(), hb); err != nil {
		return err
	}

	if g, ok := game.(*rooftops.Game); ok {
		fmt.Printf("Seed %d (replay with --seed %d)\n", g.Seed(), g.Seed())
	}
	return nil
}

// loadConfig loads and validates the configuration the game will use.
func loadConfig() (config.RunnerConfig, error) {
	rc, err := config.Load(flagConfig)
	if err != nil {
		return config.RunnerConfig{}, err
	}
	if err := rc.Validate(); err != nil {
		return config.RunnerConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	return rc, nil
}

// runtimeConfig builds the host config from the terminal and global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:   width,
		ScreenH:   height,
		FrameRate: flagFPS,
		Seed:      flagSeed,
	}
}

// startHeartbeat connects to the relay named by --heartbeat.
// It returns nil when the flag is empty or the relay is unreachable; the
// game runs either way.
func startHeartbeat(ctx context.Context, rc config.RunnerConfig) tui.HeartbeatSource {
	if flagHeartbeat == "" {
		return nil
	}

	logger := appLogger.WithPrefix("heartbeat")

	t, err := heartbeat.Dial(ctx, flagHeartbeat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: heartbeat disabled: %v\n", err)
		return nil
	}

	client := heartbeat.NewClient(t, rc.Heartbeat.Interval, logger)
	go func() {
		if err := client.Run(ctx); err != nil {
			logger.Warn("heartbeat stopped", "error", err)
		}
	}()
	return client
}
