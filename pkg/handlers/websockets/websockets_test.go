package websockets_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	handlers "github.com/chris/topup-storefront/pkg/handlers/websockets"
	"github.com/chris/topup-storefront/pkg/websockets"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestServeHTTP(t *testing.T) {
	hub := websockets.NewHub(zap.NewNop())
	server := httptest.NewServer(handlers.NewHandler(hub, zap.NewNop()))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 10*time.Millisecond)

	err = hub.Publish(context.Background(), websockets.Message{
		Type:    websockets.MessageTypeOrderUpdate,
		Payload: websockets.OrderUpdatePayload{OrderID: "o1", Status: "PENDING"},
	})
	require.NoError(t, err)

	require.NoError(t, client.SetReadDeadline(time.Now().Add(time.Second)))
	var msg map[string]any
	require.NoError(t, client.ReadJSON(&msg))
	assert.Equal(t, "orderUpdate", msg["type"])

	require.NoError(t, client.Close())
	assert.Eventually(t, func() bool { return hub.Len() == 0 }, time.Second, 10*time.Millisecond)
}
