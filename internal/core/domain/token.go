package domain

import "time"

// TokenConfig is the issuer's immutable signing configuration.
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
}

// TokenClaims are the verified contents of a bearer token. Role is a hint
// only; the authoritative role is re-read from the user store.
type TokenClaims struct {
	ID        string
	Subject   string
	Role      Role
	UserID    int64
	IssuedAt  time.Time
	ExpiresAt time.Time
}
