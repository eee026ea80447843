package settings

import (
	"github.com/chris/topup-storefront/pkg/models"
	"github.com/shopspring/decimal"
)

// Seed values served until an admin saves a document.

func DefaultAgency() models.AgencyConfig {
	return models.AgencyConfig{}
}

func DefaultBanner() models.BannerConfig {
	return models.BannerConfig{
		IsVisible: true,
		Title:     "Instant top-ups",
		Message:   "Charge your favourite apps and games from your wallet in seconds.",
		Style:     models.BannerPromo,
	}
}

func DefaultContact() models.ContactConfig {
	return models.ContactConfig{
		PrimaryPhone: "201033851941",
		ButtonLabel:  "إرسال الطلب للوكيل (واتساب)",
	}
}

func DefaultApps() []models.AppConfig {
	return []models.AppConfig{
		{Id: "bigo", Name: "Bigo Live", ExchangeRate: decimal.NewFromInt(210), IsActive: true},
		{Id: "likee", Name: "Likee", ExchangeRate: decimal.NewFromInt(100), IsActive: true},
		{Id: "jawaker", Name: "Jawaker", ExchangeRate: decimal.NewFromInt(10000), IsActive: true},
		{Id: "pubg", Name: "PUBG Mobile", ExchangeRate: decimal.NewFromInt(60), IsActive: true},
	}
}
