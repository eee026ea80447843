package ledger

import (
	"context"
	"testing"

	"github.com/chris/topup-storefront/pkg/models"
	"github.com/chris/topup-storefront/pkg/websockets"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerAlice(t *testing.T, f *fixture) models.User {
	t.Helper()
	u, err := f.ledger.Register(context.Background(), "a@x.com", "p", "alice")
	require.NoError(t, err)
	return u
}

func TestDeposit(t *testing.T) {
	ctx := context.Background()

	t.Run("USD And Coins", func(t *testing.T) {
		f := newFixture(Options{})
		u := registerAlice(t, f)

		_, err := f.ledger.Deposit(ctx, u.SerialId, models.USDBalance, usd("20"))
		require.NoError(t, err)
		got, err := f.ledger.Deposit(ctx, u.SerialId, models.CoinsBalance, usd("500"))
		require.NoError(t, err)

		assert.True(t, got.BalanceUSD.Equal(usd("20")))
		assert.Equal(t, int64(500), got.BalanceCoins)

		updates := f.publisher.OfType(websockets.MessageTypeWalletUpdate)
		require.Len(t, updates, 2)
		assert.Equal(t, "20", updates[0].Payload.(websockets.WalletUpdatePayload).Change)
	})

	t.Run("Non-positive Rejected By Default", func(t *testing.T) {
		f := newFixture(Options{})
		u := registerAlice(t, f)

		_, err := f.ledger.Deposit(ctx, u.SerialId, models.USDBalance, decimal.Zero)
		assert.ErrorIs(t, err, ErrInvalidAmount)
		_, err = f.ledger.Deposit(ctx, u.SerialId, models.USDBalance, usd("-5"))
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("Non-positive Allowed When Configured", func(t *testing.T) {
		f := newFixture(Options{AllowNonPositiveDeposits: true})
		u := registerAlice(t, f)
		_, err := f.ledger.Deposit(ctx, u.SerialId, models.USDBalance, usd("10"))
		require.NoError(t, err)

		got, err := f.ledger.Deposit(ctx, u.SerialId, models.USDBalance, usd("-4"))
		require.NoError(t, err)
		assert.True(t, got.BalanceUSD.Equal(usd("6")))

		_, err = f.ledger.Deposit(ctx, u.SerialId, models.USDBalance, usd("-7"))
		assert.ErrorIs(t, err, ErrInsufficientBalance)
	})

	t.Run("Fractional Coins Rejected", func(t *testing.T) {
		f := newFixture(Options{})
		u := registerAlice(t, f)

		_, err := f.ledger.Deposit(ctx, u.SerialId, models.CoinsBalance, usd("1.5"))

		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("Unknown Serial", func(t *testing.T) {
		f := newFixture(Options{})

		_, err := f.ledger.Deposit(ctx, "10001", models.USDBalance, usd("1"))

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestDeduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Exact Decrease", func(t *testing.T) {
		f := newFixture(Options{})
		u := registerAlice(t, f)
		_, err := f.ledger.Deposit(ctx, u.SerialId, models.USDBalance, usd("20"))
		require.NoError(t, err)

		got, err := f.ledger.Deduct(ctx, u.Id, usd("5"))

		require.NoError(t, err)
		assert.True(t, got.BalanceUSD.Equal(usd("15")))
		current, _ := f.ledger.CurrentUser()
		assert.True(t, current.BalanceUSD.Equal(usd("15")))
	})

	t.Run("Insufficient Balance Leaves Balance Unchanged", func(t *testing.T) {
		f := newFixture(Options{})
		u := registerAlice(t, f)
		_, err := f.ledger.Deposit(ctx, u.SerialId, models.USDBalance, usd("15"))
		require.NoError(t, err)
		mirrored := len(f.mirror.puts)

		_, err = f.ledger.Deduct(ctx, u.Id, usd("15.01"))

		assert.ErrorIs(t, err, ErrInsufficientBalance)
		got, _ := f.ledger.FindBySerial(u.SerialId)
		assert.True(t, got.BalanceUSD.Equal(usd("15")))
		assert.Len(t, f.mirror.puts, mirrored)
	})

	t.Run("Whole Balance Can Be Spent", func(t *testing.T) {
		f := newFixture(Options{})
		u := registerAlice(t, f)
		_, err := f.ledger.Deposit(ctx, u.SerialId, models.USDBalance, usd("0.3"))
		require.NoError(t, err)

		_, err = f.ledger.Deduct(ctx, u.Id, usd("0.1"))
		require.NoError(t, err)
		got, err := f.ledger.Deduct(ctx, u.Id, usd("0.2"))

		require.NoError(t, err)
		assert.True(t, got.BalanceUSD.IsZero())
	})

	t.Run("Banned User Cannot Spend", func(t *testing.T) {
		f := newFixture(Options{})
		u := registerAlice(t, f)
		_, err := f.ledger.Deposit(ctx, u.SerialId, models.USDBalance, usd("20"))
		require.NoError(t, err)
		_, err = f.ledger.ToggleBan(ctx, u.SerialId)
		require.NoError(t, err)

		_, err = f.ledger.Deduct(ctx, u.Id, usd("5"))

		assert.ErrorIs(t, err, ErrBanned)
	})

	t.Run("Non-positive Amount", func(t *testing.T) {
		f := newFixture(Options{})
		u := registerAlice(t, f)

		_, err := f.ledger.Deduct(ctx, u.Id, usd("-5"))

		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("Unknown User", func(t *testing.T) {
		f := newFixture(Options{})

		_, err := f.ledger.Deduct(ctx, "missing", usd("1"))

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestRefund(t *testing.T) {
	f := newFixture(Options{})
	u := registerAlice(t, f)

	got, err := f.ledger.Refund(context.Background(), u.SerialId, usd("5"))

	require.NoError(t, err)
	assert.True(t, got.BalanceUSD.Equal(usd("5")))
	updates := f.publisher.OfType(websockets.MessageTypeWalletUpdate)
	require.Len(t, updates, 1)
	assert.Equal(t, "refund", updates[0].Payload.(websockets.WalletUpdatePayload).Reason)
}

func TestZeroBalance(t *testing.T) {
	ctx := context.Background()
	f := newFixture(Options{})
	u := registerAlice(t, f)
	_, err := f.ledger.Deposit(ctx, u.SerialId, models.USDBalance, usd("12.75"))
	require.NoError(t, err)
	_, err = f.ledger.Deposit(ctx, u.SerialId, models.CoinsBalance, usd("40"))
	require.NoError(t, err)

	got, err := f.ledger.ZeroBalance(ctx, u.SerialId, models.USDBalance)
	require.NoError(t, err)
	assert.True(t, got.BalanceUSD.IsZero())
	assert.Equal(t, int64(40), got.BalanceCoins)

	got, err = f.ledger.ZeroBalance(ctx, u.SerialId, models.CoinsBalance)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.BalanceCoins)

	_, err = f.ledger.ZeroBalance(ctx, "10099", models.USDBalance)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
