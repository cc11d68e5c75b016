// rooftops is an endless rooftop runner for the terminal.
//
// Usage:
//
//	rooftops list             - List available variants
//	rooftops play [variant]   - Play a variant (default: rooftops)
//	rooftops menu             - Pick variants interactively
//	rooftops serve            - Start SSH server for remote play
//	rooftops relay            - Start the heartbeat relay
//	rooftops config           - Print or validate configuration
//
// Global flags:
//
//	--fps <rate>        - Set render rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible obstacle layouts
//	--config <path>     - Load a custom YAML config
//	--log-file <path>   - Write session logs to a file
//	--heartbeat <url>   - Ping a relay, e.g. ws://localhost:14191
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/rooftops/internal/games/rooftops"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagConfig    string
	flagLogFile   string
	flagHeartbeat string
)

var (
	// logFile is closed once the command finishes.
	logFile *os.File

	// appLogger receives session logs from play and menu.
	appLogger = log.New(io.Discard)
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rooftops",
	Short: "Rooftops - jump across an endless skyline in your terminal",
	Long: `Rooftops is an endless runner: buildings scroll toward you and you
jump from roof to roof. Hitting a wall ends the run.

Available commands:
  list     - Show all variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  serve    - Start SSH server for remote play
  relay    - Start the heartbeat relay
  config   - Print or validate configuration

Examples:
  rooftops play
  rooftops play rooftops-exit --seed 42
  rooftops menu --config ./my-rooftops.yaml
  rooftops relay &
  rooftops play --heartbeat ws://localhost:14191`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Render rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write session logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagHeartbeat, "heartbeat", "", "Heartbeat relay URL (empty = disabled)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(relayCmd)
	rootCmd.AddCommand(configCmd)
}

// setup applies the global flags to the game package.
func setup(_ *cobra.Command, _ []string) error {
	rooftops.SetConfigPath(flagConfig)

	logger, err := sessionLogger(flagLogFile)
	if err != nil {
		return err
	}
	appLogger = logger
	rooftops.SetLogger(logger)
	return nil
}

// sessionLogger returns the logger used while Bubble Tea owns the terminal.
func sessionLogger(path string) (*log.Logger, error) {
	if path == "" {
		return log.New(io.Discard), nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logFile = f

	return log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "rooftops",
	}), nil
}

// stderrLogger returns the logger for the headless commands.
func stderrLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}
