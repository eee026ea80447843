package storage

import "fmt"

// OrderRecord is the remote shape of orders/{id}.
type OrderRecord struct {
	Id            string `json:"id" dynamodbav:"id"`
	Username      string `json:"username" dynamodbav:"username"`
	UserId        string `json:"userId" dynamodbav:"userId"`
	AppName       string `json:"appName" dynamodbav:"appName"`
	Amount        string `json:"amount" dynamodbav:"amount"`
	Currency      string `json:"currency" dynamodbav:"currency"`
	Status        string `json:"status" dynamodbav:"status"`
	PaymentMethod string `json:"paymentMethod" dynamodbav:"paymentMethod"`
	Date          string `json:"date" dynamodbav:"date"`
	Timestamp     int64  `json:"timestamp" dynamodbav:"timestamp"`
	IsRead        bool   `json:"isRead" dynamodbav:"isRead"`
	AdminMessage  string `json:"adminMessage,omitempty" dynamodbav:"adminMessage,omitempty"`
}

// UserRecord is the remote shape of users/{id}.
type UserRecord struct {
	Id           string   `json:"id" dynamodbav:"id"`
	SerialId     string   `json:"serialId" dynamodbav:"serialId"`
	Email        string   `json:"email" dynamodbav:"email"`
	Password     string   `json:"password" dynamodbav:"password"`
	Username     string   `json:"username" dynamodbav:"username"`
	BalanceUSD   string   `json:"balanceUSD" dynamodbav:"balanceUSD"`
	BalanceCoins int64    `json:"balanceCoins" dynamodbav:"balanceCoins"`
	CreatedAt    int64    `json:"createdAt" dynamodbav:"createdAt"`
	IsBanned     bool     `json:"isBanned" dynamodbav:"isBanned"`
	Permissions  []string `json:"permissions,omitempty" dynamodbav:"permissions,omitempty"`
	IsAdmin      bool     `json:"isAdmin,omitempty" dynamodbav:"isAdmin,omitempty"`
}

// AgencyRecord is settings/agency.
type AgencyRecord struct {
	AgencyURL   string `json:"agencyUrl" dynamodbav:"agencyUrl"`
	APIKey      string `json:"apiKey" dynamodbav:"apiKey"`
	IsConnected bool   `json:"isConnected" dynamodbav:"isConnected"`
	LastSync    *int64 `json:"lastSync" dynamodbav:"lastSync"`
}

// BannerRecord is settings/banner.
type BannerRecord struct {
	IsVisible bool   `json:"isVisible" dynamodbav:"isVisible"`
	Title     string `json:"title" dynamodbav:"title"`
	Message   string `json:"message" dynamodbav:"message"`
	Style     string `json:"style" dynamodbav:"style"`
}

// ContactRecord is settings/contact.
type ContactRecord struct {
	PrimaryPhone   string `json:"primaryPhone" dynamodbav:"primaryPhone"`
	ButtonLabel    string `json:"buttonLabel" dynamodbav:"buttonLabel"`
	SecondaryPhone string `json:"secondaryPhone,omitempty" dynamodbav:"secondaryPhone,omitempty"`
	TertiaryPhone  string `json:"tertiaryPhone,omitempty" dynamodbav:"tertiaryPhone,omitempty"`
}

// AppRecord is one catalog entry inside settings/apps.
type AppRecord struct {
	Id           string `json:"id" dynamodbav:"id"`
	Name         string `json:"name" dynamodbav:"name"`
	ExchangeRate string `json:"exchangeRate" dynamodbav:"exchangeRate"`
	IsActive     bool   `json:"isActive" dynamodbav:"isActive"`
}

// AppsDocument is settings/apps, the only wrapped document.
type AppsDocument struct {
	List []AppRecord `json:"list" dynamodbav:"list"`
}

// NewRecord returns a pointer to an empty record of the type stored at path.
func NewRecord(path DocPath) (any, error) {
	switch path.Collection {
	case CollectionOrders:
		return new(OrderRecord), nil
	case CollectionUsers:
		return new(UserRecord), nil
	case CollectionSettings:
		switch path.ID {
		case SettingsAgency:
			return new(AgencyRecord), nil
		case SettingsBanner:
			return new(BannerRecord), nil
		case SettingsContact:
			return new(ContactRecord), nil
		case SettingsApps:
			return new(AppsDocument), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCollection, path)
}
