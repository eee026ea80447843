package orders

import (
	"net/http"
	"strconv"

	"github.com/chris/topup-storefront/pkg/handlers/respond"
	"github.com/chris/topup-storefront/pkg/models"
	"github.com/chris/topup-storefront/pkg/storefront"
	"github.com/go-chi/chi/v5"
)

const defaultRecentLimit = 20

// OrdersHandler serves the order book: checkout, the admin review queue and
// customer notifications.
type OrdersHandler struct {
	Store *storefront.Storefront
}

func NewOrdersHandler(store *storefront.Storefront) *OrdersHandler {
	return &OrdersHandler{Store: store}
}

// Routes mounts the order endpoints on r.
func (h *OrdersHandler) Routes(r chi.Router) {
	r.Get("/orders", h.ListOrders)
	r.Get("/orders/recent", h.RecentOrders)
	r.Get("/orders/pending", h.PendingOrders)
	r.Post("/orders/wallet", h.PlaceWalletOrder)
	r.Post("/orders/agent", h.PlaceAgentOrder)
	r.Get("/orders/{orderId}", h.GetOrder)
	r.Patch("/orders/{orderId}", h.PatchOrder)
	r.Post("/orders/{orderId}/confirm", h.ConfirmOrder)
	r.Post("/orders/{orderId}/reject", h.RejectOrder)
	r.Post("/orders/{orderId}/read", h.MarkRead)
	r.Get("/stats", h.GetStats)
}

type reviewRequest struct {
	Message string `json:"message"`
}

func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders := h.Store.Orders.List(r.Context())
	if orders == nil {
		orders = []models.Order{}
	}
	respond.JSON(w, http.StatusOK, orders)
}

// RecentOrders serves the storefront ticker. The limit query parameter
// defaults to 20.
func (h *OrdersHandler) RecentOrders(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respond.Message(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	orders := h.Store.Orders.Recent(r.Context(), limit)
	if orders == nil {
		orders = []models.Order{}
	}
	respond.JSON(w, http.StatusOK, orders)
}

func (h *OrdersHandler) PendingOrders(w http.ResponseWriter, r *http.Request) {
	orders := h.Store.Orders.PendingWallet(r.Context())
	if orders == nil {
		orders = []models.Order{}
	}
	respond.JSON(w, http.StatusOK, orders)
}

func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := h.Store.Orders.Get(chi.URLParam(r, "orderId"))
	if !ok {
		respond.Error(w, storefront.ErrOrderNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, order)
}

func (h *OrdersHandler) PlaceWalletOrder(w http.ResponseWriter, r *http.Request) {
	var req storefront.OrderRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	order, err := h.Store.PlaceWalletOrder(r.Context(), req)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, order)
}

func (h *OrdersHandler) PlaceAgentOrder(w http.ResponseWriter, r *http.Request) {
	var req storefront.OrderRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	order, err := h.Store.PlaceAgentOrder(r.Context(), req)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, order)
}

// PatchOrder merges a partial update into an order. A status change is only
// accepted from PENDING to a reviewed status and moves no money.
func (h *OrdersHandler) PatchOrder(w http.ResponseWriter, r *http.Request) {
	var patch models.OrderPatch
	if !respond.Decode(w, r, &patch) {
		return
	}
	id := chi.URLParam(r, "orderId")

	if patch.Status == nil {
		order, ok := h.Store.Orders.Patch(r.Context(), id, patch)
		if !ok {
			respond.Error(w, storefront.ErrOrderNotFound)
			return
		}
		respond.JSON(w, http.StatusOK, order)
		return
	}

	if !patch.Status.Valid() {
		respond.Message(w, http.StatusBadRequest, "unknown order status")
		return
	}
	if *patch.Status == models.PENDING {
		respond.Error(w, storefront.ErrOrderNotPending)
		return
	}
	order, err := h.Store.Orders.Transition(r.Context(), id, models.PENDING, patch)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, order)
}

func (h *OrdersHandler) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if r.ContentLength != 0 && !respond.Decode(w, r, &req) {
		return
	}

	order, err := h.Store.ConfirmOrder(r.Context(), chi.URLParam(r, "orderId"), req.Message)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, order)
}

func (h *OrdersHandler) RejectOrder(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if r.ContentLength != 0 && !respond.Decode(w, r, &req) {
		return
	}

	order, err := h.Store.RejectOrder(r.Context(), chi.URLParam(r, "orderId"), req.Message)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, order)
}

func (h *OrdersHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if !h.Store.Orders.MarkRead(r.Context(), chi.URLParam(r, "orderId")) {
		respond.Error(w, storefront.ErrOrderNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *OrdersHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.Store.Stats())
}
