package models

import (
	"github.com/shopspring/decimal"
)

// OrderStatus defines the possible states of a top-up order.
type OrderStatus string

const (
	PENDING        OrderStatus = "PENDING"
	COMPLETED      OrderStatus = "COMPLETED"
	AUTO_COMPLETED OrderStatus = "AUTO_COMPLETED"
	REJECTED       OrderStatus = "REJECTED"
)

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case PENDING, COMPLETED, AUTO_COMPLETED, REJECTED:
		return true
	}
	return false
}

// Done reports whether the order was fulfilled.
func (s OrderStatus) Done() bool {
	return s == COMPLETED || s == AUTO_COMPLETED
}

// PaymentMethod defines how an order is funded.
type PaymentMethod string

const (
	WALLET PaymentMethod = "WALLET"
	AGENT  PaymentMethod = "AGENT"
)

// Order represents a top-up request submitted by a storefront user.
type Order struct {
	Id            string          `json:"id"`
	Username      string          `json:"username"`
	UserId        string          `json:"userId"`
	AppName       string          `json:"appName"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      Currency        `json:"currency"`
	Status        OrderStatus     `json:"status"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Date          string          `json:"date"`
	Timestamp     int64           `json:"timestamp"`
	IsRead        bool            `json:"isRead"`
	AdminMessage  string          `json:"adminMessage,omitempty"`
}

// OrderPatch is a partial order update. Nil fields are left untouched.
type OrderPatch struct {
	Status       *OrderStatus `json:"status,omitempty"`
	AdminMessage *string      `json:"adminMessage,omitempty"`
	IsRead       *bool        `json:"isRead,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p OrderPatch) Empty() bool {
	return p.Status == nil && p.AdminMessage == nil && p.IsRead == nil
}

// Apply merges the set fields of p into o.
func (p OrderPatch) Apply(o *Order) {
	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.AdminMessage != nil {
		o.AdminMessage = *p.AdminMessage
	}
	if p.IsRead != nil {
		o.IsRead = *p.IsRead
	}
}

// BalanceKind selects one of the two wallet balances.
type BalanceKind string

const (
	USDBalance   BalanceKind = "USD"
	CoinsBalance BalanceKind = "COINS"
)

func (k BalanceKind) Valid() bool {
	return k == USDBalance || k == CoinsBalance
}

// User represents a storefront account and its wallet.
type User struct {
	Id           string          `json:"id"`
	SerialId     string          `json:"serialId"`
	Email        string          `json:"email"`
	Password     string          `json:"password,omitempty"`
	Username     string          `json:"username"`
	BalanceUSD   decimal.Decimal `json:"balanceUSD"`
	BalanceCoins int64           `json:"balanceCoins"`
	CreatedAt    int64           `json:"createdAt"`
	IsBanned     bool            `json:"isBanned"`
	Permissions  []string        `json:"permissions,omitempty"`
	IsAdmin      bool            `json:"isAdmin,omitempty"`
}

// Public returns a copy of the user without the credential hash.
func (u User) Public() User {
	u.Password = ""
	return u
}

// AgencyConfig holds the external agency integration settings.
type AgencyConfig struct {
	AgencyURL   string `json:"agencyUrl"`
	APIKey      string `json:"apiKey"`
	IsConnected bool   `json:"isConnected"`
	LastSync    *int64 `json:"lastSync"`
}

// BannerStyle selects the hero banner palette.
type BannerStyle string

const (
	BannerPromo   BannerStyle = "promo"
	BannerInfo    BannerStyle = "info"
	BannerWarning BannerStyle = "warning"
	BannerAlert   BannerStyle = "alert"
)

func (s BannerStyle) Valid() bool {
	switch s {
	case BannerPromo, BannerInfo, BannerWarning, BannerAlert:
		return true
	}
	return false
}

// BannerConfig is the storefront hero banner.
type BannerConfig struct {
	IsVisible bool        `json:"isVisible"`
	Title     string      `json:"title"`
	Message   string      `json:"message"`
	Style     BannerStyle `json:"style"`
}

// ContactConfig holds the agent hand-off phone numbers.
type ContactConfig struct {
	PrimaryPhone   string `json:"primaryPhone"`
	ButtonLabel    string `json:"buttonLabel"`
	SecondaryPhone string `json:"secondaryPhone,omitempty"`
	TertiaryPhone  string `json:"tertiaryPhone,omitempty"`
}

// AppConfig is one entry of the app catalog.
type AppConfig struct {
	Id           string          `json:"id"`
	Name         string          `json:"name"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	IsActive     bool            `json:"isActive"`
}

// Stats is the dashboard summary.
type Stats struct {
	VisitorCount int             `json:"visitorCount"`
	TotalOrders  int             `json:"totalOrders"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
}
