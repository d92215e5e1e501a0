package ports

import (
	"context"
	"time"

	"github.com/muller/cepapp/internal/core/domain"
)

// TokenIssuer signs and verifies bearer tokens.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
	// Verify checks signature and expiry only. It does not check that the
	// subject still exists.
	Verify(token string) (*domain.TokenClaims, error)
}

// TokenRevocations records per-subject watermarks. Tokens issued before a
// subject's watermark are no longer honored.
type TokenRevocations interface {
	RevokeSubject(ctx context.Context, subject string, at time.Time) error
	IsRevoked(ctx context.Context, subject string, issuedAt time.Time) (bool, error)
}
