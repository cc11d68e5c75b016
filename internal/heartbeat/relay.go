package heartbeat

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// Relay answers every PING with the time since the relay started.
type Relay struct {
	start  time.Time
	now    func() time.Time
	logger *log.Logger
}

// NewRelay creates a relay whose uptime starts now.
func NewRelay(logger *log.Logger) *Relay {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Relay{
		start:  time.Now(),
		now:    time.Now,
		logger: logger,
	}
}

// ServeHTTP upgrades the request and serves one client.
// Browser requests from another origin are refused; clients that send no
// Origin header, like Dial, are accepted.
func (r *Relay) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	conn, err := websocket.Accept(w, req, nil)
	if err != nil {
		r.logger.Error("failed to accept", "remote", req.RemoteAddr, "error", err)
		return
	}

	id := uuid.New()
	r.logger.Info("client connected", "id", id, "remote", req.RemoteAddr)

	err = r.Serve(req.Context(), NewTransportFrom(conn))
	switch {
	case err == nil,
		websocket.CloseStatus(err) == websocket.StatusNormalClosure,
		websocket.CloseStatus(err) == websocket.StatusGoingAway,
		errors.Is(err, context.Canceled):
		r.logger.Info("client disconnected", "id", id)
	default:
		r.logger.Warn("client dropped", "id", id, "error", err)
	}
}

// Serve answers pings on t until reading fails or ctx is done.
// Frames other than PING are logged and ignored. t is closed on return.
func (r *Relay) Serve(ctx context.Context, t Transport) error {
	defer t.Close()

	for {
		msg, err := t.Read(ctx)
		if err != nil {
			return err
		}
		if msg != PingMessage {
			r.logger.Warn("ignoring message", "msg", msg)
			continue
		}
		if err := t.Write(ctx, FormatPong(r.now().Sub(r.start))); err != nil {
			return err
		}
	}
}

// ListenAndServe runs the relay on addr until ctx is cancelled.
func (r *Relay) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	r.logger.Info("relay listening", "address", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	r.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
