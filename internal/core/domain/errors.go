package domain

import "errors"

// Authentication. Token errors never reach the client: the identity middleware
// degrades them to an anonymous request.
var (
	ErrTokenMalformed     = errors.New("token malformed")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access forbidden")
)

// Records.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrAddressNotFound = errors.New("address not found")
)

// Validation.
var (
	ErrValidation     = errors.New("validation error")
	ErrInvalidZipCode = errors.New("zip code is required")
	ErrInvalidAddress = errors.New("invalid address")
)

// Postal lookup. ErrUpstreamFailure is what the address workflow returns; it
// always wraps one of the two postal errors so callers can tell them apart.
var (
	ErrUpstreamFailure   = errors.New("postal lookup failed")
	ErrPostalRejected    = errors.New("postal service rejected the zip code")
	ErrPostalUnreachable = errors.New("postal service unreachable")
)
