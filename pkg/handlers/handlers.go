package handlers

import (
	"net/http"
	"time"

	"github.com/chris/topup-storefront/pkg/handlers/orders"
	"github.com/chris/topup-storefront/pkg/handlers/respond"
	"github.com/chris/topup-storefront/pkg/handlers/settings"
	"github.com/chris/topup-storefront/pkg/handlers/wallets"
	wshandlers "github.com/chris/topup-storefront/pkg/handlers/websockets"
	"github.com/chris/topup-storefront/pkg/middleware"
	"github.com/chris/topup-storefront/pkg/storefront"
	"github.com/chris/topup-storefront/pkg/websockets"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const requestTimeout = 30 * time.Second

// NewRouter builds the storefront HTTP API. The change feed is served at /ws.
func NewRouter(store *storefront.Storefront, connManager websockets.ConnectionManager, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.NewStructuredLogger(logger))
	r.Use(chiMiddleware.Recoverer)

	r.Handle("/ws", wshandlers.NewHandler(connManager, logger))

	r.Group(func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(requestTimeout))

		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		orders.NewOrdersHandler(store).Routes(r)
		wallets.NewWalletsHandler(store).Routes(r)
		settings.NewSettingsHandler(store.Settings).Routes(r)
	})

	return r
}
