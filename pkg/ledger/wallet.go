package ledger

import (
	"context"

	"github.com/chris/topup-storefront/pkg/models"
	"github.com/chris/topup-storefront/pkg/websockets"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Deposit credits a user's USD or COINS balance.
func (l *Ledger) Deposit(ctx context.Context, serialID string, kind models.BalanceKind, amount decimal.Decimal) (models.User, error) {
	if !l.opts.AllowNonPositiveDeposits && !amount.IsPositive() {
		return models.User{}, ErrInvalidAmount
	}
	return l.credit(ctx, serialID, kind, amount, "deposit")
}

// Refund returns USD to a user, e.g. for a rejected wallet order.
func (l *Ledger) Refund(ctx context.Context, serialID string, amount decimal.Decimal) (models.User, error) {
	if !amount.IsPositive() {
		return models.User{}, ErrInvalidAmount
	}
	return l.credit(ctx, serialID, models.USDBalance, amount, "refund")
}

func (l *Ledger) credit(ctx context.Context, serialID string, kind models.BalanceKind, amount decimal.Decimal, reason string) (models.User, error) {
	if !kind.Valid() {
		return models.User{}, ErrInvalidAmount
	}
	if kind == models.CoinsBalance && !amount.Equal(amount.Truncate(0)) {
		return models.User{}, ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	users := l.loadUsers()
	i := indexOf(users, func(u models.User) bool { return u.SerialId == serialID })
	if i < 0 {
		return models.User{}, ErrUserNotFound
	}

	u := &users[i]
	switch kind {
	case models.USDBalance:
		next := u.BalanceUSD.Add(amount)
		if next.IsNegative() {
			return models.User{}, ErrInsufficientBalance
		}
		u.BalanceUSD = next
	case models.CoinsBalance:
		next := u.BalanceCoins + amount.IntPart()
		if next < 0 {
			return models.User{}, ErrInsufficientBalance
		}
		u.BalanceCoins = next
	}

	l.commit(ctx, users, *u, "ledger."+reason)
	l.refreshSession(*u)
	l.publishWallet(ctx, *u, kind, amount, reason)
	return u.Public(), nil
}

// Deduct debits a user's USD balance. The balance never goes below zero.
func (l *Ledger) Deduct(ctx context.Context, userID string, amount decimal.Decimal) (models.User, error) {
	if !amount.IsPositive() {
		return models.User{}, ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	users := l.loadUsers()
	i := indexOf(users, func(u models.User) bool { return u.Id == userID })
	if i < 0 {
		return models.User{}, ErrUserNotFound
	}

	u := &users[i]
	if u.IsBanned {
		return models.User{}, ErrBanned
	}
	if u.BalanceUSD.LessThan(amount) {
		return models.User{}, ErrInsufficientBalance
	}
	u.BalanceUSD = u.BalanceUSD.Sub(amount)

	l.commit(ctx, users, *u, "ledger.deduct")
	l.refreshSession(*u)
	l.publishWallet(ctx, *u, models.USDBalance, amount.Neg(), "deduct")
	return u.Public(), nil
}

// ZeroBalance sets one balance to exactly zero.
func (l *Ledger) ZeroBalance(ctx context.Context, serialID string, kind models.BalanceKind) (models.User, error) {
	if !kind.Valid() {
		return models.User{}, ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	users := l.loadUsers()
	i := indexOf(users, func(u models.User) bool { return u.SerialId == serialID })
	if i < 0 {
		return models.User{}, ErrUserNotFound
	}

	u := &users[i]
	var change decimal.Decimal
	switch kind {
	case models.USDBalance:
		change = u.BalanceUSD.Neg()
		u.BalanceUSD = decimal.Zero
	case models.CoinsBalance:
		change = decimal.NewFromInt(-u.BalanceCoins)
		u.BalanceCoins = 0
	}

	l.commit(ctx, users, *u, "ledger.zeroBalance")
	l.refreshSession(*u)
	l.publishWallet(ctx, *u, kind, change, "zero")
	return u.Public(), nil
}

// ToggleBan flips a user's banned flag and returns the new value.
func (l *Ledger) ToggleBan(ctx context.Context, serialID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	users := l.loadUsers()
	i := indexOf(users, func(u models.User) bool { return u.SerialId == serialID })
	if i < 0 {
		return false, ErrUserNotFound
	}

	users[i].IsBanned = !users[i].IsBanned
	l.commit(ctx, users, users[i], "ledger.toggleBan")
	l.logger.Info("user ban toggled", zap.String("serialId", serialID), zap.Bool("banned", users[i].IsBanned))
	return users[i].IsBanned, nil
}

func (l *Ledger) publishWallet(ctx context.Context, u models.User, kind models.BalanceKind, change decimal.Decimal, reason string) {
	err := l.publisher.Publish(ctx, websockets.Message{
		Type: websockets.MessageTypeWalletUpdate,
		Payload: websockets.WalletUpdatePayload{
			SerialID:     u.SerialId,
			Kind:         string(kind),
			Change:       change.String(),
			BalanceUSD:   u.BalanceUSD.String(),
			BalanceCoins: u.BalanceCoins,
			Reason:       reason,
		},
	})
	if err != nil {
		l.logger.Warn("failed to publish wallet update", zap.String("serialId", u.SerialId), zap.Error(err))
	}
}
