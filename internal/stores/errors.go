package stores

import "errors"

var (
	ErrNotFound    = errors.New("record not found")
	ErrOrderClosed = errors.New("order is in a terminal state")
	ErrBadStatus   = errors.New("unknown order status")
	ErrEmailTaken  = errors.New("email already registered")
	ErrBadCreds    = errors.New("invalid email or password")
)
