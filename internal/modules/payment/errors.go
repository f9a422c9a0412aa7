package payment

import "errors"

var (
	ErrNotFound       = errors.New("order not found")
	ErrAlreadySettled = errors.New("registration already settled")
	ErrIntegrity      = errors.New("integrity check failed")
)
