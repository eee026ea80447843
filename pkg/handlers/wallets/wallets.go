package wallets

import (
	"net/http"

	"github.com/chris/topup-storefront/pkg/handlers/respond"
	"github.com/chris/topup-storefront/pkg/ledger"
	"github.com/chris/topup-storefront/pkg/models"
	"github.com/chris/topup-storefront/pkg/storefront"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// WalletsHandler serves accounts, the signed-in session and wallet balances.
type WalletsHandler struct {
	Store *storefront.Storefront
}

func NewWalletsHandler(store *storefront.Storefront) *WalletsHandler {
	return &WalletsHandler{Store: store}
}

// Routes mounts the account and wallet endpoints on r.
func (h *WalletsHandler) Routes(r chi.Router) {
	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)
	r.Post("/auth/logout", h.Logout)

	r.Get("/me", h.GetCurrentUser)
	r.Put("/me", h.UpdateProfile)
	r.Get("/me/orders", h.ListMyOrders)
	r.Get("/me/notifications", h.ListNotifications)

	r.Get("/wallets", h.ListWallets)
	r.Get("/wallets/{serialId}", h.GetWalletBySerialId)
	r.Post("/wallets/{serialId}/deposit", h.Deposit)
	r.Post("/wallets/{serialId}/zero", h.ZeroBalance)
	r.Post("/wallets/{serialId}/ban", h.ToggleBan)
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type balanceRequest struct {
	Kind   models.BalanceKind `json:"kind"`
	Amount decimal.Decimal    `json:"amount"`
}

type banResponse struct {
	SerialId string `json:"serialId"`
	IsBanned bool   `json:"isBanned"`
}

func (h *WalletsHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if !respond.Decode(w, r, &req) {
		return
	}

	user, err := h.Store.Ledger.Register(r.Context(), req.Email, req.Password, req.Username)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, user)
}

func (h *WalletsHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if !respond.Decode(w, r, &req) {
		return
	}

	user, err := h.Store.Ledger.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, user)
}

func (h *WalletsHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Store.Ledger.Logout()
	w.WriteHeader(http.StatusNoContent)
}

func (h *WalletsHandler) currentUser(w http.ResponseWriter) (models.User, bool) {
	user, ok := h.Store.Ledger.CurrentUser()
	if !ok {
		respond.Error(w, storefront.ErrNotSignedIn)
	}
	return user, ok
}

func (h *WalletsHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w)
	if !ok {
		return
	}
	respond.JSON(w, http.StatusOK, user)
}

func (h *WalletsHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w)
	if !ok {
		return
	}
	var req credentials
	if !respond.Decode(w, r, &req) {
		return
	}

	updated, err := h.Store.Ledger.UpdateProfile(r.Context(), user.Id, req.Username)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

func (h *WalletsHandler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w)
	if !ok {
		return
	}
	orders := h.Store.Orders.ListByUser(r.Context(), user.SerialId)
	if orders == nil {
		orders = []models.Order{}
	}
	respond.JSON(w, http.StatusOK, orders)
}

func (h *WalletsHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w)
	if !ok {
		return
	}
	orders := h.Store.Orders.Notifications(r.Context(), user.SerialId)
	if orders == nil {
		orders = []models.Order{}
	}
	respond.JSON(w, http.StatusOK, orders)
}

func (h *WalletsHandler) ListWallets(w http.ResponseWriter, r *http.Request) {
	users := h.Store.Ledger.Users()
	if users == nil {
		users = []models.User{}
	}
	respond.JSON(w, http.StatusOK, users)
}

func (h *WalletsHandler) GetWalletBySerialId(w http.ResponseWriter, r *http.Request) {
	user, ok := h.Store.Ledger.FindBySerial(chi.URLParam(r, "serialId"))
	if !ok {
		respond.Error(w, ledger.ErrUserNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, user)
}

func (h *WalletsHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req balanceRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	user, err := h.Store.Ledger.Deposit(r.Context(), chi.URLParam(r, "serialId"), req.Kind, req.Amount)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, user)
}

func (h *WalletsHandler) ZeroBalance(w http.ResponseWriter, r *http.Request) {
	var req balanceRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	user, err := h.Store.Ledger.ZeroBalance(r.Context(), chi.URLParam(r, "serialId"), req.Kind)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, user)
}

func (h *WalletsHandler) ToggleBan(w http.ResponseWriter, r *http.Request) {
	serialID := chi.URLParam(r, "serialId")
	banned, err := h.Store.Ledger.ToggleBan(r.Context(), serialID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, banResponse{SerialId: serialID, IsBanned: banned})
}
