package settings

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/chris/topup-storefront/pkg/clock"
	"github.com/chris/topup-storefront/pkg/localstore"
	"github.com/chris/topup-storefront/pkg/mapping"
	"github.com/chris/topup-storefront/pkg/models"
	"github.com/chris/topup-storefront/pkg/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrInvalidAgencyURL = errors.New("agency url is not valid")
	ErrInvalidBanner    = errors.New("banner style is not valid")
	ErrInvalidContact   = errors.New("primary phone and button label are required")
	ErrInvalidApp       = errors.New("app name and a positive exchange rate are required")
)

// Mirror receives a settings document after every save.
type Mirror interface {
	Put(ctx context.Context, path storage.DocPath, value any, op string)
}

// Repository holds the singleton settings documents. Every save replaces
// the whole document locally and remotely.
type Repository struct {
	mu     sync.Mutex
	local  localstore.Store
	mirror Mirror
	clock  clock.Clock
	logger *zap.Logger
}

func New(local localstore.Store, mirror Mirror, clk clock.Clock, logger *zap.Logger) *Repository {
	return &Repository{local: local, mirror: mirror, clock: clk, logger: logger}
}

func (r *Repository) Agency() models.AgencyConfig {
	return localstore.Get(r.local, localstore.KeyAgencyConfig, DefaultAgency())
}

func (r *Repository) SaveAgency(ctx context.Context, c models.AgencyConfig) {
	r.local.Write(localstore.KeyAgencyConfig, c)
	r.mirror.Put(ctx, storage.SettingsPath(storage.SettingsAgency), mapping.ToAgencyRecord(c), "settings.agency")
}

// ConnectAgency stores the agency credentials and marks the integration live.
func (r *Repository) ConnectAgency(ctx context.Context, url, apiKey string) (models.AgencyConfig, error) {
	url = strings.TrimSpace(url)
	if !strings.Contains(url, ".") || len(url) <= 5 {
		return models.AgencyConfig{}, ErrInvalidAgencyURL
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now().UnixMilli()
	c := models.AgencyConfig{
		AgencyURL:   url,
		APIKey:      apiKey,
		IsConnected: true,
		LastSync:    &now,
	}
	r.SaveAgency(ctx, c)
	r.logger.Info("agency connected", zap.String("url", url))
	return c, nil
}

// DisconnectAgency keeps the stored url and key but turns the integration off.
func (r *Repository) DisconnectAgency(ctx context.Context) models.AgencyConfig {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.Agency()
	c.IsConnected = false
	c.LastSync = nil
	r.SaveAgency(ctx, c)
	r.logger.Info("agency disconnected")
	return c
}

func (r *Repository) Banner() models.BannerConfig {
	return localstore.Get(r.local, localstore.KeyBannerConfig, DefaultBanner())
}

func (r *Repository) SaveBanner(ctx context.Context, c models.BannerConfig) error {
	if !c.Style.Valid() {
		return ErrInvalidBanner
	}
	r.local.Write(localstore.KeyBannerConfig, c)
	r.mirror.Put(ctx, storage.SettingsPath(storage.SettingsBanner), mapping.ToBannerRecord(c), "settings.banner")
	return nil
}

func (r *Repository) Contact() models.ContactConfig {
	return localstore.Get(r.local, localstore.KeyContactConfig, DefaultContact())
}

func (r *Repository) SaveContact(ctx context.Context, c models.ContactConfig) error {
	if strings.TrimSpace(c.PrimaryPhone) == "" || strings.TrimSpace(c.ButtonLabel) == "" {
		return ErrInvalidContact
	}
	r.local.Write(localstore.KeyContactConfig, c)
	r.mirror.Put(ctx, storage.SettingsPath(storage.SettingsContact), mapping.ToContactRecord(c), "settings.contact")
	return nil
}

func (r *Repository) Apps() []models.AppConfig {
	return localstore.Get(r.local, localstore.KeyAppsConfig, DefaultApps())
}

// ActiveApps returns the catalog entries shown to customers.
func (r *Repository) ActiveApps() []models.AppConfig {
	var out []models.AppConfig
	for _, a := range r.Apps() {
		if a.IsActive {
			out = append(out, a)
		}
	}
	return out
}

func (r *Repository) SaveApps(ctx context.Context, apps []models.AppConfig) error {
	for _, a := range apps {
		if err := validateApp(a.Name, a.ExchangeRate); err != nil {
			return err
		}
	}
	r.saveApps(ctx, apps)
	return nil
}

func (r *Repository) saveApps(ctx context.Context, apps []models.AppConfig) {
	if apps == nil {
		apps = []models.AppConfig{}
	}
	r.local.Write(localstore.KeyAppsConfig, apps)
	r.mirror.Put(ctx, storage.SettingsPath(storage.SettingsApps), mapping.ToAppsDocument(apps), "settings.apps")
}

// AddApp appends an active catalog entry with a fresh id.
func (r *Repository) AddApp(ctx context.Context, name string, rate decimal.Decimal) (models.AppConfig, error) {
	name = strings.TrimSpace(name)
	if err := validateApp(name, rate); err != nil {
		return models.AppConfig{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	app := models.AppConfig{
		Id:           uuid.New().String()[:8],
		Name:         name,
		ExchangeRate: rate,
		IsActive:     true,
	}
	r.saveApps(ctx, append(r.Apps(), app))
	return app, nil
}

func validateApp(name string, rate decimal.Decimal) error {
	if name == "" || !rate.IsPositive() {
		return ErrInvalidApp
	}
	return nil
}
