package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rooftops/internal/heartbeat"
)

var flagRelayAddr string

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Start the heartbeat relay",
	Long: `Start a websocket relay that answers every PING with the time since
it started ("PONG @ 12.345"). Players pass --heartbeat to see the relay's
uptime and round-trip time in the game footer.

Examples:
  rooftops relay
  rooftops relay --addr :9000
  rooftops play --heartbeat ws://localhost:14191`,
	RunE: runRelay,
}

func init() {
	relayCmd.Flags().StringVar(&flagRelayAddr, "addr", heartbeat.DefaultAddr, "Relay listen address (host:port)")
}

func runRelay(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	relay := heartbeat.NewRelay(stderrLogger("rooftops-relay"))
	return relay.ListenAndServe(ctx, flagRelayAddr)
}
