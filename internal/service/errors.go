package service

import "errors"

// Sentinel errors the transport layer maps onto envelope codes. ErrNotFound
// is also the answer for access-scope mismatches, so probing a foreign id
// looks identical to probing an unknown one.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalid      = errors.New("invalid input")
)
