package cloudsync

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/chris/topup-storefront/pkg/clock"
	"github.com/chris/topup-storefront/pkg/localstore"
	"github.com/chris/topup-storefront/pkg/mapping"
	"github.com/chris/topup-storefront/pkg/storage"
	"go.uber.org/zap"
)

// RecentOrdersLimit caps how many orders a pull fetches.
const RecentOrdersLimit = 100

// Puller refreshes the local store from the remote store, at most once per interval.
type Puller struct {
	reader   storage.DocumentReader
	local    localstore.Store
	health   *Health
	clock    clock.Clock
	interval time.Duration
	policy   SnapshotPolicy
	logger   *zap.Logger

	mu   sync.Mutex
	last time.Time
	wg   sync.WaitGroup
}

type PullerOptions struct {
	Interval time.Duration
	Policy   SnapshotPolicy
	Clock    clock.Clock
}

func NewPuller(reader storage.DocumentReader, local localstore.Store, health *Health, opts PullerOptions, logger *zap.Logger) *Puller {
	if opts.Policy == nil {
		opts.Policy = LastWriterWins{}
	}
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	return &Puller{
		reader:   reader,
		local:    local,
		health:   health,
		clock:    opts.Clock,
		interval: opts.Interval,
		policy:   opts.Policy,
		logger:   logger,
	}
}

// MaybePull starts a background pull when sync is healthy and the interval
// has elapsed since the last one started. It reports whether it started one.
func (p *Puller) MaybePull(ctx context.Context) bool {
	if !p.health.Healthy() {
		return false
	}

	p.mu.Lock()
	now := p.clock.Now()
	if !p.last.IsZero() && now.Sub(p.last) <= p.interval {
		p.mu.Unlock()
		return false
	}
	p.last = now
	p.mu.Unlock()

	ctx = context.WithoutCancel(ctx)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if err := p.PullNow(ctx); err != nil {
			p.logger.Debug("background pull incomplete", zap.Error(err))
		}
	}()
	return true
}

// Wait blocks until every in-flight pull has finished.
func (p *Puller) Wait() {
	p.wg.Wait()
}

// PullNow fetches orders, users and every settings document and lands each
// one through the snapshot policy. A failing fetch does not stop the others.
func (p *Puller) PullNow(ctx context.Context) error {
	if !p.health.Healthy() {
		return ErrSyncDisabled
	}
	return errors.Join(
		p.pullOrders(ctx),
		p.pullUsers(ctx),
		p.pullSettings(ctx),
	)
}

func (p *Puller) pullOrders(ctx context.Context) error {
	var records []storage.OrderRecord
	q := storage.CollectionQuery{OrderBy: "timestamp", Descending: true, Limit: RecentOrdersLimit}
	if err := p.reader.PullCollection(ctx, storage.CollectionOrders, q, &records); err != nil {
		return err
	}
	orders, err := mapping.ToDomainOrders(records)
	if err != nil {
		p.logger.Warn("discarding malformed order snapshot", zap.Error(err))
		return err
	}
	p.land(localstore.KeyOrders, len(orders), orders)
	return nil
}

func (p *Puller) pullUsers(ctx context.Context) error {
	var records []storage.UserRecord
	if err := p.reader.PullCollection(ctx, storage.CollectionUsers, storage.CollectionQuery{}, &records); err != nil {
		return err
	}
	users, err := mapping.ToDomainUsers(records)
	if err != nil {
		p.logger.Warn("discarding malformed user snapshot", zap.Error(err))
		return err
	}
	p.land(localstore.KeyUsers, len(users), users)
	return nil
}

func (p *Puller) pullSettings(ctx context.Context) error {
	var errs []error

	var agency storage.AgencyRecord
	if found, err := p.reader.PullDocument(ctx, storage.SettingsPath(storage.SettingsAgency), &agency); err != nil {
		errs = append(errs, err)
	} else if found {
		p.land(localstore.KeyAgencyConfig, 1, mapping.ToDomainAgency(agency))
	}

	var banner storage.BannerRecord
	if found, err := p.reader.PullDocument(ctx, storage.SettingsPath(storage.SettingsBanner), &banner); err != nil {
		errs = append(errs, err)
	} else if found {
		p.land(localstore.KeyBannerConfig, 1, mapping.ToDomainBanner(banner))
	}

	var contact storage.ContactRecord
	if found, err := p.reader.PullDocument(ctx, storage.SettingsPath(storage.SettingsContact), &contact); err != nil {
		errs = append(errs, err)
	} else if found {
		p.land(localstore.KeyContactConfig, 1, mapping.ToDomainContact(contact))
	}

	var apps storage.AppsDocument
	if found, err := p.reader.PullDocument(ctx, storage.SettingsPath(storage.SettingsApps), &apps); err != nil {
		errs = append(errs, err)
	} else if found && apps.List != nil {
		list, err := mapping.ToDomainApps(apps)
		if err != nil {
			p.logger.Warn("discarding malformed app catalog", zap.Error(err))
			errs = append(errs, err)
		} else {
			p.land(localstore.KeyAppsConfig, 1, list)
		}
	}

	return errors.Join(errs...)
}

func (p *Puller) land(key string, n int, value any) {
	if p.policy.Land(p.local, Snapshot{Key: key, Len: n, Value: value}) {
		p.logger.Debug("local entry refreshed from remote", zap.String("key", key), zap.Int("records", n))
	}
}
