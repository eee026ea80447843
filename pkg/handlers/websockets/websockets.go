package websockets

import (
	"net/http"

	"github.com/chris/topup-storefront/pkg/websockets"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handler upgrades change-feed subscribers and registers them with the hub.
type Handler struct {
	connManager websockets.ConnectionManager
	logger      *zap.Logger
}

func NewHandler(connManager websockets.ConnectionManager, logger *zap.Logger) *Handler {
	return &Handler{
		connManager: connManager,
		logger:      logger,
	}
}

var upgrader = websocket.Upgrader{
	// The storefront UI may be served from any origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeHTTP holds the connection open until the client goes away. Clients
// only listen; anything they send is discarded.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("failed to upgrade connection", zap.Error(err))
		return
	}
	defer conn.Close()

	connectionID := uuid.New().String()
	h.logger.Info("client connected", zap.String("connectionId", connectionID))
	h.connManager.AddConnection(connectionID, conn)

	defer func() {
		h.logger.Info("client disconnected", zap.String("connectionId", connectionID))
		h.connManager.RemoveConnection(connectionID)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("unexpected close error", zap.Error(err))
			}
			break
		}
	}
}
