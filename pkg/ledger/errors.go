package ledger

import "errors"

// Each error carries the message shown to the user as is.
var (
	ErrInvalidInput        = errors.New("email, password and username are required")
	ErrDuplicateEmail      = errors.New("this email is already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrBanned              = errors.New("this account has been banned")
	ErrUserNotFound        = errors.New("user not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAmount       = errors.New("invalid amount")
)
