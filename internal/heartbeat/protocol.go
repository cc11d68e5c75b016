// Package heartbeat implements the optional ping/pong side channel: a relay
// that answers PING with its uptime and a client that pings it on a fixed
// interval. It never touches simulation state.
package heartbeat

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// PingMessage is sent by clients.
	PingMessage = "PING"

	// DefaultAddr is where the relay listens unless told otherwise.
	DefaultAddr = ":14191"

	pongPrefix = "PONG @ "
)

// ErrUnexpectedMessage is returned when a frame is not part of the protocol.
var ErrUnexpectedMessage = errors.New("heartbeat: unexpected message")

// FormatPong builds the reply for a relay that has been up for uptime.
func FormatPong(uptime time.Duration) string {
	return fmt.Sprintf("%s%.3f", pongPrefix, uptime.Seconds())
}

// ParsePong extracts the relay uptime from a pong reply.
func ParsePong(msg string) (time.Duration, error) {
	rest, ok := strings.CutPrefix(msg, pongPrefix)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnexpectedMessage, msg)
	}
	secs, err := strconv.ParseFloat(rest, 64)
	if err != nil || secs < 0 {
		return 0, fmt.Errorf("%w: bad uptime %q", ErrUnexpectedMessage, rest)
	}
	return time.Duration(secs * float64(time.Second)).Round(time.Millisecond), nil
}
