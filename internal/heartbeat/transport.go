package heartbeat

import (
	"context"
	"fmt"

	"github.com/coder/websocket"
)

//go:generate go tool mockgen -destination=./mocks/transport_mock.go -package=mocks . Transport

// Transport carries text frames between relay and client.
type Transport interface {
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, msg string) error
	Close() error
}

type wsTransport struct {
	conn *websocket.Conn
}

// NewTransportFrom wraps an established websocket connection.
func NewTransportFrom(conn *websocket.Conn) Transport {
	return &wsTransport{conn: conn}
}

// Dial connects to a relay and returns its transport.
func Dial(ctx context.Context, url string) (Transport, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("heartbeat: dial %s: %w", url, err)
	}
	return NewTransportFrom(conn), nil
}

func (t *wsTransport) Read(ctx context.Context) (string, error) {
	typ, data, err := t.conn.Read(ctx)
	if err != nil {
		return "", err
	}
	if typ != websocket.MessageText {
		return "", fmt.Errorf("%w: binary frame", ErrUnexpectedMessage)
	}
	return string(data), nil
}

func (t *wsTransport) Write(ctx context.Context, msg string) error {
	return t.conn.Write(ctx, websocket.MessageText, []byte(msg))
}

func (t *wsTransport) Close() error {
	return t.conn.Close(websocket.StatusNormalClosure, "")
}
