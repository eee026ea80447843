package storefront

import (
	"errors"

	"github.com/chris/topup-storefront/pkg/orders"
)

var (
	ErrNotSignedIn     = errors.New("sign in to pay from your wallet")
	ErrInvalidOrder    = errors.New("username, user id, app, currency and a positive amount are required")
	ErrOrderNotFound   = orders.ErrNotFound
	ErrOrderNotPending = orders.ErrStatusChanged
)
