package websockets

import (
	"context"
	"time"
)

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// ConnectionManager tracks live websocket connections.
type ConnectionManager interface {
	AddConnection(connectionID string, conn Conn)
	RemoveConnection(connectionID string)
}

// Publisher defines the interface for publishing messages to WebSocket clients.
type Publisher interface {
	Publish(ctx context.Context, message Message) error
}
