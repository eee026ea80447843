package ledger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/chris/topup-storefront/pkg/clock"
	"github.com/chris/topup-storefront/pkg/localstore"
	"github.com/chris/topup-storefront/pkg/models"
	"github.com/chris/topup-storefront/pkg/session"
	"github.com/chris/topup-storefront/pkg/storage"
	"github.com/chris/topup-storefront/pkg/websockets"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"go.uber.org/zap"
)

type put struct {
	path  storage.DocPath
	value any
	op    string
}

type recordingMirror struct {
	puts []put
}

func (m *recordingMirror) Put(_ context.Context, path storage.DocPath, value any, op string) {
	m.puts = append(m.puts, put{path: path, value: value, op: op})
}

type fixture struct {
	ledger    *Ledger
	local     *localstore.FileStore
	session   *session.Holder
	mirror    *recordingMirror
	publisher *websockets.RecordingPublisher
}

func newFixture(opts Options) *fixture {
	local := localstore.NewMemory()
	holder := session.New(local, zap.NewNop())
	mirror := &recordingMirror{}
	publisher := &websockets.RecordingPublisher{}
	opts.HashCost = bcrypt.MinCost
	clk := clock.NewManual(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	return &fixture{
		ledger:    New(local, holder, mirror, publisher, clk, opts, zap.NewNop()),
		local:     local,
		session:   holder,
		mirror:    mirror,
		publisher: publisher,
	}
}

func usd(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Serial Ids Start At 10001 And Increase", func(t *testing.T) {
		f := newFixture(Options{})

		for i := 1; i <= 5; i++ {
			u, err := f.ledger.Register(ctx, fmt.Sprintf("user%d@x.com", i), "p", "user")
			require.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("%d", 10000+i), u.SerialId)
		}
	})

	t.Run("Serial Follows Highest Existing", func(t *testing.T) {
		f := newFixture(Options{})
		f.local.Write(localstore.KeyUsers, []models.User{
			{Id: "a", SerialId: "10007", Email: "a@x.com"},
			{Id: "b", SerialId: "10003", Email: "b@x.com"},
		})

		u, err := f.ledger.Register(ctx, "c@x.com", "p", "c")

		require.NoError(t, err)
		assert.Equal(t, "10008", u.SerialId)
	})

	t.Run("Signs In And Mirrors The New User", func(t *testing.T) {
		f := newFixture(Options{})

		u, err := f.ledger.Register(ctx, " A@X.com ", "p", "alice")
		require.NoError(t, err)

		assert.Equal(t, "a@x.com", u.Email)
		assert.Empty(t, u.Password)
		current, ok := f.ledger.CurrentUser()
		require.True(t, ok)
		assert.Equal(t, u.Id, current.Id)

		require.Len(t, f.mirror.puts, 1)
		assert.Equal(t, storage.UserPath(u.Id), f.mirror.puts[0].path)
		rec := f.mirror.puts[0].value.(storage.UserRecord)
		assert.Equal(t, "0", rec.BalanceUSD)
		assert.NotEqual(t, "p", rec.Password)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		f := newFixture(Options{})
		_, err := f.ledger.Register(ctx, "a@x.com", "p", "alice")
		require.NoError(t, err)

		_, err = f.ledger.Register(ctx, "A@x.COM", "other", "alice2")

		assert.ErrorIs(t, err, ErrDuplicateEmail)
		assert.Len(t, f.ledger.Users(), 1)
	})

	t.Run("Missing Fields", func(t *testing.T) {
		f := newFixture(Options{})

		_, err := f.ledger.Register(ctx, "", "p", "alice")

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFixture(Options{})
		_, err := f.ledger.Register(ctx, "a@x.com", "p", "alice")
		require.NoError(t, err)
		f.ledger.Logout()

		u, err := f.ledger.Login(ctx, "a@x.com", "p")

		require.NoError(t, err)
		assert.Equal(t, "10001", u.SerialId)
		_, ok := f.ledger.CurrentUser()
		assert.True(t, ok)
	})

	t.Run("Wrong Password Or Unknown Email", func(t *testing.T) {
		f := newFixture(Options{})
		_, err := f.ledger.Register(ctx, "a@x.com", "p", "alice")
		require.NoError(t, err)

		_, err = f.ledger.Login(ctx, "a@x.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = f.ledger.Login(ctx, "nobody@x.com", "p")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Ban Blocks Login And Ends Session", func(t *testing.T) {
		f := newFixture(Options{})
		u, err := f.ledger.Register(ctx, "a@x.com", "p", "alice")
		require.NoError(t, err)

		banned, err := f.ledger.ToggleBan(ctx, u.SerialId)
		require.NoError(t, err)
		assert.True(t, banned)

		_, ok := f.ledger.CurrentUser()
		assert.False(t, ok)

		_, err = f.ledger.Login(ctx, "a@x.com", "p")
		assert.ErrorIs(t, err, ErrBanned)

		unbanned, err := f.ledger.ToggleBan(ctx, u.SerialId)
		require.NoError(t, err)
		assert.False(t, unbanned)
		_, err = f.ledger.Login(ctx, "a@x.com", "p")
		assert.NoError(t, err)
	})

	t.Run("Toggle Unknown Serial", func(t *testing.T) {
		f := newFixture(Options{})

		_, err := f.ledger.ToggleBan(ctx, "99999")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Renames And Keeps Serial", func(t *testing.T) {
		f := newFixture(Options{})
		u, err := f.ledger.Register(ctx, "a@x.com", "p", "alice")
		require.NoError(t, err)

		updated, err := f.ledger.UpdateProfile(ctx, u.Id, "alicia")

		require.NoError(t, err)
		assert.Equal(t, "alicia", updated.Username)
		assert.Equal(t, u.SerialId, updated.SerialId)
		current, _ := f.ledger.CurrentUser()
		assert.Equal(t, "alicia", current.Username)
	})

	t.Run("Unknown User", func(t *testing.T) {
		f := newFixture(Options{})

		_, err := f.ledger.UpdateProfile(ctx, "missing", "x")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestFindBySerial(t *testing.T) {
	f := newFixture(Options{})
	u, err := f.ledger.Register(context.Background(), "a@x.com", "p", "alice")
	require.NoError(t, err)

	got, ok := f.ledger.FindBySerial(u.SerialId)
	assert.True(t, ok)
	assert.Equal(t, u.Id, got.Id)
	assert.Empty(t, got.Password)

	_, ok = f.ledger.FindBySerial("1")
	assert.False(t, ok)
}
