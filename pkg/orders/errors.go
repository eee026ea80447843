package orders

import "errors"

var (
	ErrNotFound      = errors.New("order not found")
	ErrStatusChanged = errors.New("order has already been reviewed")
)
