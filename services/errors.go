package services

import "errors"

// Sentinel errors surfaced to the HTTP layer. Controllers match them with
// errors.Is and map them to 404/422/401; anything else is a storage error
// and becomes a 500 after the transaction has rolled back.
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("invalid or expired session")
)
