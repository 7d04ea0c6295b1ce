package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

//go:generate mockgen -source=websocket.go -destination=../mocks/websocket.go -package=mocks -mock_names=WSConn=MockWSConn,WSDialer=MockWSDialer

// WSConn is the subset of *websocket.Conn used by stream supervisors
type WSConn interface {
	WriteJSON(v interface{}) error
	ReadMessage() (messageType int, p []byte, err error)
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	Close() error
}

// WSDialer opens websocket connections
type WSDialer interface {
	Dial(ctx context.Context, url string) (WSConn, error)
}

// RealWSDialer implements WSDialer with gorilla/websocket
type RealWSDialer struct {
	dialer *websocket.Dialer
}

// NewWSDialer creates a dialer with the given handshake timeout
func NewWSDialer(handshakeTimeout time.Duration) WSDialer {
	return &RealWSDialer{
		dialer: &websocket.Dialer{
			HandshakeTimeout: handshakeTimeout,
			Proxy:            websocket.DefaultDialer.Proxy,
		},
	}
}

func (d *RealWSDialer) Dial(ctx context.Context, url string) (WSConn, error) {
	conn, resp, err := d.dialer.DialContext(ctx, url, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("websocket dial: %w", err)
	}
	return conn, nil
}
