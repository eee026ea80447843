package storefront

import (
	"context"
	"strings"

	"github.com/chris/topup-storefront/pkg/clock"
	"github.com/chris/topup-storefront/pkg/ledger"
	"github.com/chris/topup-storefront/pkg/models"
	"github.com/chris/topup-storefront/pkg/orders"
	"github.com/chris/topup-storefront/pkg/settings"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultConfirmMessage is sent to the customer when the admin leaves the message blank.
const DefaultConfirmMessage = "تم تنفيذ طلبك بنجاح!"

// dateLayout is ISO 8601 with millisecond precision in UTC.
const dateLayout = "2006-01-02T15:04:05.000Z07:00"

// OrderRequest is what a customer submits from the order form.
type OrderRequest struct {
	Username string          `json:"username"`
	UserId   string          `json:"userId"`
	AppName  string          `json:"appName"`
	Amount   decimal.Decimal `json:"amount"`
	Currency models.Currency `json:"currency"`
}

func (r *OrderRequest) normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.UserId = strings.TrimSpace(r.UserId)
	r.AppName = strings.TrimSpace(r.AppName)
	if r.Currency == "" {
		r.Currency = models.USD
	}
}

func (r OrderRequest) validate() error {
	if r.Username == "" || r.UserId == "" || r.AppName == "" || !r.Currency.Valid() || !r.Amount.IsPositive() {
		return ErrInvalidOrder
	}
	return nil
}

// Storefront ties the order book, the ledger and the settings together into
// the checkout and review workflows.
type Storefront struct {
	Orders   *orders.Repository
	Ledger   *ledger.Ledger
	Settings *settings.Repository
	clock    clock.Clock
	logger   *zap.Logger
}

func New(o *orders.Repository, l *ledger.Ledger, s *settings.Repository, clk clock.Clock, logger *zap.Logger) *Storefront {
	return &Storefront{
		Orders:   o,
		Ledger:   l,
		Settings: s,
		clock:    clk,
		logger:   logger,
	}
}

func (s *Storefront) newOrder(req OrderRequest, method models.PaymentMethod) models.Order {
	now := s.clock.Now()
	return models.Order{
		Id:            uuid.New().String(),
		Username:      req.Username,
		UserId:        req.UserId,
		AppName:       req.AppName,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Status:        models.PENDING,
		PaymentMethod: method,
		Date:          now.UTC().Format(dateLayout),
		Timestamp:     now.UnixMilli(),
	}
}

// PlaceWalletOrder charges the signed-in user's USD balance and queues the
// order for admin review. Nothing is recorded when the charge fails.
func (s *Storefront) PlaceWalletOrder(ctx context.Context, req OrderRequest) (models.Order, error) {
	user, ok := s.Ledger.CurrentUser()
	if !ok {
		return models.Order{}, ErrNotSignedIn
	}

	req.normalize()
	req.UserId = user.SerialId
	if req.Username == "" {
		req.Username = user.Username
	}
	if err := req.validate(); err != nil {
		return models.Order{}, err
	}

	if _, err := s.Ledger.Deduct(ctx, user.Id, req.Amount); err != nil {
		return models.Order{}, err
	}

	order := s.Orders.Create(ctx, s.newOrder(req, models.WALLET))
	s.logger.Info("wallet order placed",
		zap.String("orderId", order.Id),
		zap.String("serialId", user.SerialId),
		zap.String("amount", order.Amount.String()))
	return order, nil
}

// PlaceAgentOrder records an order that is paid to the agent out of band.
func (s *Storefront) PlaceAgentOrder(ctx context.Context, req OrderRequest) (models.Order, error) {
	req.normalize()
	if req.UserId == "" || req.Username == "" {
		if user, ok := s.Ledger.CurrentUser(); ok {
			if req.UserId == "" {
				req.UserId = user.SerialId
			}
			if req.Username == "" {
				req.Username = user.Username
			}
		}
	}
	if err := req.validate(); err != nil {
		return models.Order{}, err
	}

	order := s.Orders.Create(ctx, s.newOrder(req, models.AGENT))
	s.logger.Info("agent order placed", zap.String("orderId", order.Id))
	return order, nil
}

// ConfirmOrder completes a pending order and leaves the customer an unread
// message. Orders are auto-completed while the agency integration is live.
func (s *Storefront) ConfirmOrder(ctx context.Context, id, message string) (models.Order, error) {
	status := models.COMPLETED
	if s.Settings.Agency().IsConnected {
		status = models.AUTO_COMPLETED
	}
	message = strings.TrimSpace(message)
	if message == "" {
		message = DefaultConfirmMessage
	}
	unread := false

	return s.Orders.Transition(ctx, id, models.PENDING, models.OrderPatch{
		Status:       &status,
		AdminMessage: &message,
		IsRead:       &unread,
	})
}

// RejectOrder declines a pending order. Wallet orders are refunded in full.
func (s *Storefront) RejectOrder(ctx context.Context, id, message string) (models.Order, error) {
	status := models.REJECTED
	message = strings.TrimSpace(message)
	unread := false
	patch := models.OrderPatch{Status: &status, IsRead: &unread}
	if message != "" {
		patch.AdminMessage = &message
	}

	updated, err := s.Orders.Transition(ctx, id, models.PENDING, patch)
	if err != nil {
		return models.Order{}, err
	}

	if updated.PaymentMethod == models.WALLET {
		if _, err := s.Ledger.Refund(ctx, updated.UserId, updated.Amount); err != nil {
			s.logger.Error("failed to refund rejected order",
				zap.String("orderId", id),
				zap.String("serialId", updated.UserId),
				zap.Error(err))
			return updated, err
		}
	}
	return updated, nil
}

func (s *Storefront) Stats() models.Stats {
	return s.Orders.Stats()
}
