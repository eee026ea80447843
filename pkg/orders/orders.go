package orders

import (
	"context"
	"sort"
	"sync"

	"github.com/chris/topup-storefront/pkg/localstore"
	"github.com/chris/topup-storefront/pkg/mapping"
	"github.com/chris/topup-storefront/pkg/models"
	"github.com/chris/topup-storefront/pkg/storage"
	"github.com/chris/topup-storefront/pkg/websockets"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultVisitorCount seeds the visitor counter on first start.
const DefaultVisitorCount = 1250

// Mirror receives order writes after they are committed locally.
type Mirror interface {
	Put(ctx context.Context, path storage.DocPath, value any, op string)
	Patch(ctx context.Context, path storage.DocPath, fields map[string]any, op string)
}

// Syncer refreshes local state from the remote store when it is due.
type Syncer interface {
	MaybePull(ctx context.Context) bool
}

// Repository is the local-first order book. The newest order is first.
type Repository struct {
	mu        sync.Mutex
	local     localstore.Store
	mirror    Mirror
	syncer    Syncer
	publisher websockets.Publisher
	logger    *zap.Logger
}

func New(local localstore.Store, mirror Mirror, syncer Syncer, publisher websockets.Publisher, logger *zap.Logger) *Repository {
	return &Repository{
		local:     local,
		mirror:    mirror,
		syncer:    syncer,
		publisher: publisher,
		logger:    logger,
	}
}

func (r *Repository) load() []models.Order {
	return localstore.Get[[]models.Order](r.local, localstore.KeyOrders, nil)
}

// List returns the local orders and, as a side effect, lets a due pull start.
// The pull lands later; this call never waits for it.
func (r *Repository) List(ctx context.Context) []models.Order {
	orders := r.load()
	if r.syncer != nil {
		r.syncer.MaybePull(ctx)
	}
	return orders
}

// Get returns one order by id.
func (r *Repository) Get(id string) (models.Order, bool) {
	for _, o := range r.load() {
		if o.Id == id {
			return o, true
		}
	}
	return models.Order{}, false
}

// Create records a new order locally and mirrors it under its own id.
func (r *Repository) Create(ctx context.Context, o models.Order) models.Order {
	r.mu.Lock()
	orders := append([]models.Order{o}, r.load()...)
	r.local.Write(localstore.KeyOrders, orders)
	r.mu.Unlock()

	r.mirror.Put(ctx, storage.OrderPath(o.Id), mapping.ToOrderRecord(o), "orders.create")
	r.publish(ctx, o)
	return o
}

// Patch merges p into the order with the given id. It reports false, and
// changes nothing, when no such order exists locally.
func (r *Repository) Patch(ctx context.Context, id string, p models.OrderPatch) (models.Order, bool) {
	updated, err := r.update(ctx, id, p, func(models.Order) error { return nil })
	return updated, err == nil
}

// Transition applies p only while the order is still in status from. The
// status check and the write share one critical section.
func (r *Repository) Transition(ctx context.Context, id string, from models.OrderStatus, p models.OrderPatch) (models.Order, error) {
	return r.update(ctx, id, p, func(o models.Order) error {
		if o.Status != from {
			return ErrStatusChanged
		}
		return nil
	})
}

func (r *Repository) update(ctx context.Context, id string, p models.OrderPatch, check func(models.Order) error) (models.Order, error) {
	r.mu.Lock()
	orders := r.load()
	i := -1
	for j := range orders {
		if orders[j].Id == id {
			i = j
			break
		}
	}
	if i < 0 {
		r.mu.Unlock()
		return models.Order{}, ErrNotFound
	}
	if err := check(orders[i]); err != nil {
		r.mu.Unlock()
		return models.Order{}, err
	}
	p.Apply(&orders[i])
	r.local.Write(localstore.KeyOrders, orders)
	updated := orders[i]
	r.mu.Unlock()

	if fields := mapping.OrderPatchFields(p); len(fields) > 0 {
		r.mirror.Patch(ctx, storage.OrderPath(id), fields, "orders.patch")
	}
	r.publish(ctx, updated)
	return updated, nil
}

// ListByUser returns one user's orders, newest first.
func (r *Repository) ListByUser(ctx context.Context, serialID string) []models.Order {
	var out []models.Order
	for _, o := range r.List(ctx) {
		if o.UserId == serialID {
			out = append(out, o)
		}
	}
	sortNewestFirst(out)
	return out
}

// Recent returns up to n orders, newest first.
func (r *Repository) Recent(ctx context.Context, n int) []models.Order {
	orders := r.List(ctx)
	sortNewestFirst(orders)
	if n >= 0 && len(orders) > n {
		orders = orders[:n]
	}
	return orders
}

// PendingWallet is the admin review queue: wallet-paid orders awaiting a decision.
func (r *Repository) PendingWallet(ctx context.Context) []models.Order {
	var out []models.Order
	for _, o := range r.List(ctx) {
		if o.Status == models.PENDING && o.PaymentMethod == models.WALLET {
			out = append(out, o)
		}
	}
	return out
}

// Notifications returns a user's orders carrying an admin message they have not read.
func (r *Repository) Notifications(ctx context.Context, serialID string) []models.Order {
	var out []models.Order
	for _, o := range r.List(ctx) {
		if o.UserId == serialID && o.AdminMessage != "" && !o.IsRead {
			out = append(out, o)
		}
	}
	return out
}

// MarkRead flags an order's admin message as seen.
func (r *Repository) MarkRead(ctx context.Context, id string) bool {
	read := true
	_, ok := r.Patch(ctx, id, models.OrderPatch{IsRead: &read})
	return ok
}

// Stats summarises the order book for the dashboard.
func (r *Repository) Stats() models.Stats {
	orders := r.load()
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Amount)
	}
	return models.Stats{
		VisitorCount: localstore.Get(r.local, localstore.KeyVisitors, DefaultVisitorCount),
		TotalOrders:  len(orders),
		TotalAmount:  total,
	}
}

// InitVisitors seeds the visitor counter when it has never been set.
func (r *Repository) InitVisitors() {
	var n int
	if !r.local.Read(localstore.KeyVisitors, &n) {
		r.local.Write(localstore.KeyVisitors, DefaultVisitorCount)
	}
}

func (r *Repository) publish(ctx context.Context, o models.Order) {
	err := r.publisher.Publish(ctx, websockets.Message{
		Type: websockets.MessageTypeOrderUpdate,
		Payload: websockets.OrderUpdatePayload{
			OrderID:      o.Id,
			UserID:       o.UserId,
			Status:       string(o.Status),
			IsRead:       o.IsRead,
			AdminMessage: o.AdminMessage,
		},
	})
	if err != nil {
		r.logger.Warn("failed to publish order update", zap.String("orderId", o.Id), zap.Error(err))
	}
}

func sortNewestFirst(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Timestamp > orders[j].Timestamp
	})
}
