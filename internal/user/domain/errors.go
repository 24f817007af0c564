package domain

import "errors"

var (
	ErrNotFound           = errors.New("customer not found")
	ErrForbidden          = errors.New("permission denied")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
