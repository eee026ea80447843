package websockets

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeWait = 5 * time.Second

// Hub fans messages out to every connected client. Connections that fail a
// write are closed and dropped.
type Hub struct {
	mu     sync.Mutex
	conns  map[string]Conn
	logger *zap.Logger
}

// Make sure we conform to the interfaces
var (
	_ Publisher         = (*Hub)(nil)
	_ ConnectionManager = (*Hub)(nil)
)

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{conns: map[string]Conn{}, logger: logger}
}

func (h *Hub) AddConnection(connectionID string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[connectionID] = conn
}

func (h *Hub) RemoveConnection(connectionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, connectionID)
}

// Len returns the number of live connections.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Publish sends a message to all connected clients.
func (h *Hub) Publish(ctx context.Context, message Message) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, conn := range h.conns {
		err := conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err == nil {
			err = conn.WriteMessage(websocket.TextMessage, payload)
		}
		if err == nil {
			continue
		}
		h.logger.Info("stale connection found, removing", zap.String("connectionId", id), zap.Error(err))
		_ = conn.Close()
		delete(h.conns, id)
	}
	return nil
}
