package settings

import (
	"net/http"

	"github.com/chris/topup-storefront/pkg/handlers/respond"
	"github.com/chris/topup-storefront/pkg/models"
	"github.com/chris/topup-storefront/pkg/settings"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// SettingsHandler serves the admin-editable singletons.
type SettingsHandler struct {
	Store *settings.Repository
}

func NewSettingsHandler(store *settings.Repository) *SettingsHandler {
	return &SettingsHandler{Store: store}
}

// Routes mounts the settings endpoints on r.
func (h *SettingsHandler) Routes(r chi.Router) {
	r.Route("/settings", func(r chi.Router) {
		r.Get("/agency", h.GetAgency)
		r.Post("/agency/connect", h.ConnectAgency)
		r.Post("/agency/disconnect", h.DisconnectAgency)
		r.Get("/banner", h.GetBanner)
		r.Put("/banner", h.SaveBanner)
		r.Get("/contact", h.GetContact)
		r.Put("/contact", h.SaveContact)
		r.Get("/apps", h.ListApps)
		r.Put("/apps", h.SaveApps)
		r.Post("/apps", h.AddApp)
	})
}

type connectRequest struct {
	AgencyURL string `json:"agencyUrl"`
	APIKey    string `json:"apiKey"`
}

type newApp struct {
	Name         string          `json:"name"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
}

func (h *SettingsHandler) GetAgency(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.Store.Agency())
}

func (h *SettingsHandler) ConnectAgency(w http.ResponseWriter, r *http.Request) {
	var req connectRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	c, err := h.Store.ConnectAgency(r.Context(), req.AgencyURL, req.APIKey)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, c)
}

func (h *SettingsHandler) DisconnectAgency(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.Store.DisconnectAgency(r.Context()))
}

func (h *SettingsHandler) GetBanner(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.Store.Banner())
}

func (h *SettingsHandler) SaveBanner(w http.ResponseWriter, r *http.Request) {
	var c models.BannerConfig
	if !respond.Decode(w, r, &c) {
		return
	}
	if err := h.Store.SaveBanner(r.Context(), c); err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, c)
}

func (h *SettingsHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.Store.Contact())
}

func (h *SettingsHandler) SaveContact(w http.ResponseWriter, r *http.Request) {
	var c models.ContactConfig
	if !respond.Decode(w, r, &c) {
		return
	}
	if err := h.Store.SaveContact(r.Context(), c); err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, c)
}

// ListApps serves the catalog. Customers pass active=true to hide disabled apps.
func (h *SettingsHandler) ListApps(w http.ResponseWriter, r *http.Request) {
	apps := h.Store.Apps()
	if r.URL.Query().Get("active") == "true" {
		apps = h.Store.ActiveApps()
	}
	if apps == nil {
		apps = []models.AppConfig{}
	}
	respond.JSON(w, http.StatusOK, apps)
}

func (h *SettingsHandler) SaveApps(w http.ResponseWriter, r *http.Request) {
	var apps []models.AppConfig
	if !respond.Decode(w, r, &apps) {
		return
	}
	if err := h.Store.SaveApps(r.Context(), apps); err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, h.Store.Apps())
}

func (h *SettingsHandler) AddApp(w http.ResponseWriter, r *http.Request) {
	var req newApp
	if !respond.Decode(w, r, &req) {
		return
	}

	app, err := h.Store.AddApp(r.Context(), req.Name, req.ExchangeRate)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, app)
}
