package heartbeat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// EventKind tells what a client event reports.
type EventKind int

const (
	EventPong EventKind = iota
	EventError
)

// Event is a status update from the client to its host.
type Event struct {
	Kind   EventKind
	Uptime time.Duration // Relay uptime carried by the pong
	RTT    time.Duration // Time since the last ping, zero if unknown
	Err    error
}

// String returns a short status line for display.
func (e Event) String() string {
	if e.Kind == EventError {
		return fmt.Sprintf("hb: %v", e.Err)
	}
	return fmt.Sprintf("hb: up %.1fs rtt %s", e.Uptime.Seconds(), e.RTT.Round(time.Millisecond))
}

// eventBuffer bounds how many updates can wait for a slow host.
const eventBuffer = 8

// Client pings a relay on a fixed interval and reports replies to its
// subscribers. Events are delivered without blocking; when a subscriber
// falls behind, its updates are dropped.
type Client struct {
	transport Transport
	interval  time.Duration
	logger    *log.Logger
	sentAt    atomic.Int64 // UnixNano of the last ping

	mu     sync.Mutex
	subs   map[chan Event]struct{}
	closed bool
}

// NewClient creates a client over an established transport.
func NewClient(t Transport, interval time.Duration, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{
		transport: t,
		interval:  interval,
		logger:    logger,
		subs:      make(map[chan Event]struct{}),
	}
}

// Subscribe returns a channel of status updates and a func that ends the
// subscription and closes the channel. Every open subscription is closed
// when Run returns; subscribing after that yields a closed channel.
func (c *Client) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, eventBuffer)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		close(ch)
		return ch, func() {}
	}
	c.subs[ch] = struct{}{}

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.subs[ch]; ok {
			delete(c.subs, ch)
			close(ch)
		}
	}
}

// Run pings and reads until ctx is cancelled or the transport fails.
// Cancellation is not an error. The transport is closed on return.
func (c *Client) Run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return c.pingLoop(ctx)
	})
	eg.Go(func() error {
		return c.readLoop(ctx)
	})

	err := eg.Wait()
	//nolint:errcheck // Connection is going away either way
	c.transport.Close()

	if err != nil && !errors.Is(err, context.Canceled) {
		c.emit(Event{Kind: EventError, Err: err})
	} else {
		err = nil
	}
	c.closeSubscribers()
	return err
}

// closeSubscribers ends every subscription; later ones start closed.
func (c *Client) closeSubscribers() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	for ch := range c.subs {
		delete(c.subs, ch)
		close(ch)
	}
}

func (c *Client) pingLoop(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			c.sentAt.Store(time.Now().UnixNano())
			if err := c.transport.Write(ctx, PingMessage); err != nil {
				return fmt.Errorf("heartbeat: ping: %w", err)
			}
			c.logger.Debug("ping sent")
		}
	}
}

func (c *Client) readLoop(ctx context.Context) error {
	for {
		msg, err := c.transport.Read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("heartbeat: read: %w", err)
		}

		uptime, err := ParsePong(msg)
		if err != nil {
			c.logger.Warn("ignoring message", "msg", msg)
			continue
		}

		var rtt time.Duration
		if sent := c.sentAt.Load(); sent != 0 {
			rtt = time.Since(time.Unix(0, sent))
		}
		c.logger.Debug("pong received", "uptime", uptime, "rtt", rtt)
		c.emit(Event{Kind: EventPong, Uptime: uptime, RTT: rtt})
	}
}

// emit delivers ev to every subscriber whose buffer has room.
func (c *Client) emit(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for ch := range c.subs {
		select {
		case ch <- ev:
		default:
			c.logger.Debug("event dropped, host is behind")
		}
	}
}
