package mapping

import (
	"testing"

	"github.com/chris/topup-storefront/pkg/models"
	"github.com/chris/topup-storefront/pkg/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRecord(t *testing.T) {
	t.Run("Decimal Amount Travels As String", func(t *testing.T) {
		o := models.Order{Id: "o1", Amount: decimal.RequireFromString("12.50"), Status: models.PENDING, PaymentMethod: models.WALLET}

		r := ToOrderRecord(o)
		assert.Equal(t, "12.5", r.Amount)

		back, err := ToDomainOrder(r)
		require.NoError(t, err)
		assert.True(t, o.Amount.Equal(back.Amount))
		assert.Equal(t, models.PENDING, back.Status)
	})

	t.Run("Bad Amount Rejects Snapshot", func(t *testing.T) {
		_, err := ToDomainOrders([]storage.OrderRecord{{Id: "o1", Amount: "1"}, {Id: "o2", Amount: "abc"}})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "order o2")
	})
}

func TestOrderPatchFields(t *testing.T) {
	t.Run("Only Set Fields", func(t *testing.T) {
		status := models.COMPLETED
		read := false

		fields := OrderPatchFields(models.OrderPatch{Status: &status, IsRead: &read})

		assert.Equal(t, map[string]any{"status": "COMPLETED", "isRead": false}, fields)
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Empty(t, OrderPatchFields(models.OrderPatch{}))
	})
}

func TestApps(t *testing.T) {
	t.Run("Wrapped List", func(t *testing.T) {
		apps := []models.AppConfig{{Id: "a1", Name: "PUBG", ExchangeRate: decimal.NewFromInt(60), IsActive: true}}

		doc := ToAppsDocument(apps)
		require.Len(t, doc.List, 1)
		assert.Equal(t, "60", doc.List[0].ExchangeRate)

		back, err := ToDomainApps(doc)
		require.NoError(t, err)
		assert.Equal(t, "PUBG", back[0].Name)
		assert.True(t, back[0].ExchangeRate.Equal(decimal.NewFromInt(60)))
	})
}

func TestUserRecord(t *testing.T) {
	t.Run("Missing Balance Is Zero", func(t *testing.T) {
		u, err := ToDomainUser(storage.UserRecord{Id: "u1", SerialId: "10001"})

		require.NoError(t, err)
		assert.True(t, u.BalanceUSD.IsZero())
	})
}
