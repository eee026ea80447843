package cloudsync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chris/topup-storefront/pkg/clock"
	"github.com/chris/topup-storefront/pkg/localstore"
	"github.com/chris/topup-storefront/pkg/models"
	"github.com/chris/topup-storefront/pkg/storage"
	"github.com/chris/topup-storefront/pkg/storage/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// expectPull stubs one full pull: orders and users collections plus the four settings documents.
func expectPull(m *mocks.RemoteStore, orders []storage.OrderRecord, users []storage.UserRecord) {
	m.On("PullCollection", mock.Anything, storage.CollectionOrders, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			*args.Get(3).(*[]storage.OrderRecord) = orders
		}).Return(nil).Once()
	m.On("PullCollection", mock.Anything, storage.CollectionUsers, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			*args.Get(3).(*[]storage.UserRecord) = users
		}).Return(nil).Once()
	m.On("PullDocument", mock.Anything, mock.Anything, mock.Anything).Return(false, nil).Times(4)
}

func localOrders() []models.Order {
	return []models.Order{
		{Id: "l2", Amount: decimal.NewFromInt(2), Status: models.PENDING, Timestamp: 2},
		{Id: "l1", Amount: decimal.NewFromInt(1), Status: models.PENDING, Timestamp: 1},
	}
}

func TestPullNow(t *testing.T) {
	t.Run("Empty Remote Result Keeps Local Orders", func(t *testing.T) {
		mockStore := new(mocks.RemoteStore)
		local := localstore.NewMemory()
		local.Write(localstore.KeyOrders, localOrders())
		p := NewPuller(mockStore, local, NewHealth(true, zap.NewNop()), PullerOptions{}, zap.NewNop())

		expectPull(mockStore, nil, nil)

		require.NoError(t, p.PullNow(context.Background()))

		got := localstore.Get[[]models.Order](local, localstore.KeyOrders, nil)
		require.Len(t, got, 2)
		assert.Equal(t, "l2", got[0].Id)
		assert.Equal(t, "l1", got[1].Id)
		mockStore.AssertExpectations(t)
	})

	t.Run("Non-empty Snapshot Replaces Local", func(t *testing.T) {
		mockStore := new(mocks.RemoteStore)
		local := localstore.NewMemory()
		local.Write(localstore.KeyOrders, localOrders())
		p := NewPuller(mockStore, local, NewHealth(true, zap.NewNop()), PullerOptions{}, zap.NewNop())

		expectPull(mockStore,
			[]storage.OrderRecord{{Id: "r1", Amount: "9.99", Status: "COMPLETED", Timestamp: 10}},
			[]storage.UserRecord{{Id: "u1", SerialId: "10001", BalanceUSD: "15"}})

		require.NoError(t, p.PullNow(context.Background()))

		orders := localstore.Get[[]models.Order](local, localstore.KeyOrders, nil)
		require.Len(t, orders, 1)
		assert.Equal(t, "r1", orders[0].Id)
		assert.True(t, orders[0].Amount.Equal(decimal.RequireFromString("9.99")))

		users := localstore.Get[[]models.User](local, localstore.KeyUsers, nil)
		require.Len(t, users, 1)
		assert.True(t, users[0].BalanceUSD.Equal(decimal.NewFromInt(15)))
		mockStore.AssertExpectations(t)
	})

	t.Run("Orders Query Asks For Most Recent Hundred", func(t *testing.T) {
		mockStore := new(mocks.RemoteStore)
		p := NewPuller(mockStore, localstore.NewMemory(), NewHealth(true, zap.NewNop()), PullerOptions{}, zap.NewNop())

		mockStore.On("PullCollection", mock.Anything, storage.CollectionOrders,
			storage.CollectionQuery{OrderBy: "timestamp", Descending: true, Limit: 100}, mock.Anything).Return(nil).Once()
		mockStore.On("PullCollection", mock.Anything, storage.CollectionUsers, mock.Anything, mock.Anything).Return(nil).Once()
		mockStore.On("PullDocument", mock.Anything, mock.Anything, mock.Anything).Return(false, nil).Times(4)

		assert.NoError(t, p.PullNow(context.Background()))
		mockStore.AssertExpectations(t)
	})

	t.Run("Settings Documents Land", func(t *testing.T) {
		mockStore := new(mocks.RemoteStore)
		local := localstore.NewMemory()
		p := NewPuller(mockStore, local, NewHealth(true, zap.NewNop()), PullerOptions{}, zap.NewNop())

		mockStore.On("PullCollection", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Twice()
		mockStore.On("PullDocument", mock.Anything, storage.SettingsPath(storage.SettingsBanner), mock.Anything).
			Run(func(args mock.Arguments) {
				*args.Get(2).(*storage.BannerRecord) = storage.BannerRecord{IsVisible: true, Title: "Eid", Style: "promo"}
			}).Return(true, nil).Once()
		mockStore.On("PullDocument", mock.Anything, storage.SettingsPath(storage.SettingsApps), mock.Anything).
			Run(func(args mock.Arguments) {
				*args.Get(2).(*storage.AppsDocument) = storage.AppsDocument{List: []storage.AppRecord{{Id: "a1", Name: "Jawaker", ExchangeRate: "1000", IsActive: true}}}
			}).Return(true, nil).Once()
		mockStore.On("PullDocument", mock.Anything, mock.Anything, mock.Anything).Return(false, nil).Twice()

		require.NoError(t, p.PullNow(context.Background()))

		banner := localstore.Get(local, localstore.KeyBannerConfig, models.BannerConfig{})
		assert.Equal(t, "Eid", banner.Title)
		apps := localstore.Get[[]models.AppConfig](local, localstore.KeyAppsConfig, nil)
		require.Len(t, apps, 1)
		assert.Equal(t, "Jawaker", apps[0].Name)
		assert.False(t, local.Read(localstore.KeyAgencyConfig, &models.AgencyConfig{}))
	})

	t.Run("One Failing Fetch Does Not Stop The Rest", func(t *testing.T) {
		mockStore := new(mocks.RemoteStore)
		local := localstore.NewMemory()
		p := NewPuller(mockStore, local, NewHealth(true, zap.NewNop()), PullerOptions{}, zap.NewNop())

		mockStore.On("PullCollection", mock.Anything, storage.CollectionOrders, mock.Anything, mock.Anything).
			Return(errors.New("throttled")).Once()
		mockStore.On("PullCollection", mock.Anything, storage.CollectionUsers, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				*args.Get(3).(*[]storage.UserRecord) = []storage.UserRecord{{Id: "u1", SerialId: "10001"}}
			}).Return(nil).Once()
		mockStore.On("PullDocument", mock.Anything, mock.Anything, mock.Anything).Return(false, nil).Times(4)

		err := p.PullNow(context.Background())

		assert.ErrorContains(t, err, "throttled")
		assert.Len(t, localstore.Get[[]models.User](local, localstore.KeyUsers, nil), 1)
	})
}

func TestMaybePull(t *testing.T) {
	t.Run("Throttled To One Pull Per Interval", func(t *testing.T) {
		mockStore := new(mocks.RemoteStore)
		clk := clock.NewManual(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
		p := NewPuller(mockStore, localstore.NewMemory(), NewHealth(true, zap.NewNop()),
			PullerOptions{Interval: 5 * time.Second, Clock: clk}, zap.NewNop())
		ctx := context.Background()

		expectPull(mockStore, nil, nil)
		assert.True(t, p.MaybePull(ctx))
		p.Wait()

		clk.Advance(3 * time.Second)
		assert.False(t, p.MaybePull(ctx))
		clk.Advance(2 * time.Second)
		assert.False(t, p.MaybePull(ctx))

		expectPull(mockStore, nil, nil)
		clk.Advance(time.Millisecond)
		assert.True(t, p.MaybePull(ctx))
		p.Wait()

		mockStore.AssertNumberOfCalls(t, "PullCollection", 4)
		mockStore.AssertExpectations(t)
	})

	t.Run("Skipped While Unhealthy", func(t *testing.T) {
		mockStore := new(mocks.RemoteStore)
		p := NewPuller(mockStore, localstore.NewMemory(), NewHealth(false, zap.NewNop()), PullerOptions{}, zap.NewNop())

		assert.False(t, p.MaybePull(context.Background()))
		p.Wait()

		mockStore.AssertNotCalled(t, "PullCollection", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
