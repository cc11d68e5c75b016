package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rooftops/internal/platform/tui"
	"github.com/vovakirdan/rooftops/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a variant picker menu",
	Long: `Start rooftops in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a variant.
After a run ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select variant
  Q            - Quit

Examples:
  rooftops menu
  rooftops menu --fps 30`,
	RunE: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) error {
	rc, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	hb := startHeartbeat(ctx, rc)

	cfg := runtimeConfig()
	status := ""

	for {
		menuResult, err := tui.RunMenu(cfg, status)
		if err != nil {
			return err
		}
		status = ""

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit || menuResult.GameID == "" {
			return nil
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			status = err.Error()
			continue
		}

		// Fresh layout for each run unless a seed was pinned.
		cfg.Seed = flagSeed
		if cfg.Seed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, cfg, hb); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			status = err.Error()
		}
	}
}
