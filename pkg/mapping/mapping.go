package mapping

import (
	"fmt"

	"github.com/chris/topup-storefront/pkg/models"
	"github.com/chris/topup-storefront/pkg/storage"
	"github.com/shopspring/decimal"
)

// ToOrderRecord converts a domain Order to its remote record.
func ToOrderRecord(o models.Order) storage.OrderRecord {
	return storage.OrderRecord{
		Id:            o.Id,
		Username:      o.Username,
		UserId:        o.UserId,
		AppName:       o.AppName,
		Amount:        o.Amount.String(),
		Currency:      string(o.Currency),
		Status:        string(o.Status),
		PaymentMethod: string(o.PaymentMethod),
		Date:          o.Date,
		Timestamp:     o.Timestamp,
		IsRead:        o.IsRead,
		AdminMessage:  o.AdminMessage,
	}
}

// ToDomainOrder converts a remote order record to a domain Order.
func ToDomainOrder(r storage.OrderRecord) (models.Order, error) {
	amount, err := parseDecimal(r.Amount)
	if err != nil {
		return models.Order{}, fmt.Errorf("order %s: invalid amount: %w", r.Id, err)
	}
	return models.Order{
		Id:            r.Id,
		Username:      r.Username,
		UserId:        r.UserId,
		AppName:       r.AppName,
		Amount:        amount,
		Currency:      models.Currency(r.Currency),
		Status:        models.OrderStatus(r.Status),
		PaymentMethod: models.PaymentMethod(r.PaymentMethod),
		Date:          r.Date,
		Timestamp:     r.Timestamp,
		IsRead:        r.IsRead,
		AdminMessage:  r.AdminMessage,
	}, nil
}

// ToDomainOrders converts a pulled order snapshot. One bad record rejects the snapshot.
func ToDomainOrders(records []storage.OrderRecord) ([]models.Order, error) {
	orders := make([]models.Order, 0, len(records))
	for _, r := range records {
		o, err := ToDomainOrder(r)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// OrderPatchFields lists the remote fields a patch sets.
func OrderPatchFields(p models.OrderPatch) map[string]any {
	fields := map[string]any{}
	if p.Status != nil {
		fields["status"] = string(*p.Status)
	}
	if p.AdminMessage != nil {
		fields["adminMessage"] = *p.AdminMessage
	}
	if p.IsRead != nil {
		fields["isRead"] = *p.IsRead
	}
	return fields
}

// ToUserRecord converts a domain User to its remote record.
func ToUserRecord(u models.User) storage.UserRecord {
	return storage.UserRecord{
		Id:           u.Id,
		SerialId:     u.SerialId,
		Email:        u.Email,
		Password:     u.Password,
		Username:     u.Username,
		BalanceUSD:   u.BalanceUSD.String(),
		BalanceCoins: u.BalanceCoins,
		CreatedAt:    u.CreatedAt,
		IsBanned:     u.IsBanned,
		Permissions:  u.Permissions,
		IsAdmin:      u.IsAdmin,
	}
}

func ToDomainUser(r storage.UserRecord) (models.User, error) {
	balance, err := parseDecimal(r.BalanceUSD)
	if err != nil {
		return models.User{}, fmt.Errorf("user %s: invalid balance: %w", r.Id, err)
	}
	return models.User{
		Id:           r.Id,
		SerialId:     r.SerialId,
		Email:        r.Email,
		Password:     r.Password,
		Username:     r.Username,
		BalanceUSD:   balance,
		BalanceCoins: r.BalanceCoins,
		CreatedAt:    r.CreatedAt,
		IsBanned:     r.IsBanned,
		Permissions:  r.Permissions,
		IsAdmin:      r.IsAdmin,
	}, nil
}

func ToDomainUsers(records []storage.UserRecord) ([]models.User, error) {
	users := make([]models.User, 0, len(records))
	for _, r := range records {
		u, err := ToDomainUser(r)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func ToAgencyRecord(c models.AgencyConfig) storage.AgencyRecord {
	return storage.AgencyRecord{
		AgencyURL:   c.AgencyURL,
		APIKey:      c.APIKey,
		IsConnected: c.IsConnected,
		LastSync:    c.LastSync,
	}
}

func ToDomainAgency(r storage.AgencyRecord) models.AgencyConfig {
	return models.AgencyConfig{
		AgencyURL:   r.AgencyURL,
		APIKey:      r.APIKey,
		IsConnected: r.IsConnected,
		LastSync:    r.LastSync,
	}
}

func ToBannerRecord(c models.BannerConfig) storage.BannerRecord {
	return storage.BannerRecord{
		IsVisible: c.IsVisible,
		Title:     c.Title,
		Message:   c.Message,
		Style:     string(c.Style),
	}
}

func ToDomainBanner(r storage.BannerRecord) models.BannerConfig {
	return models.BannerConfig{
		IsVisible: r.IsVisible,
		Title:     r.Title,
		Message:   r.Message,
		Style:     models.BannerStyle(r.Style),
	}
}

func ToContactRecord(c models.ContactConfig) storage.ContactRecord {
	return storage.ContactRecord(c)
}

func ToDomainContact(r storage.ContactRecord) models.ContactConfig {
	return models.ContactConfig(r)
}

// ToAppsDocument wraps the catalog as settings/apps expects it.
func ToAppsDocument(apps []models.AppConfig) storage.AppsDocument {
	doc := storage.AppsDocument{List: make([]storage.AppRecord, 0, len(apps))}
	for _, a := range apps {
		doc.List = append(doc.List, storage.AppRecord{
			Id:           a.Id,
			Name:         a.Name,
			ExchangeRate: a.ExchangeRate.String(),
			IsActive:     a.IsActive,
		})
	}
	return doc
}

func ToDomainApps(doc storage.AppsDocument) ([]models.AppConfig, error) {
	apps := make([]models.AppConfig, 0, len(doc.List))
	for _, r := range doc.List {
		rate, err := parseDecimal(r.ExchangeRate)
		if err != nil {
			return nil, fmt.Errorf("app %s: invalid exchange rate: %w", r.Id, err)
		}
		apps = append(apps, models.AppConfig{
			Id:           r.Id,
			Name:         r.Name,
			ExchangeRate: rate,
			IsActive:     r.IsActive,
		})
	}
	return apps, nil
}

// parseDecimal treats an absent amount as zero.
func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
