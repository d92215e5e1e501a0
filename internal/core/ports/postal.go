package ports

import (
	"context"

	"github.com/muller/cepapp/internal/core/domain"
)

// PostalResolver turns a zip code into a normalized postal record.
// Failures are domain.ErrPostalRejected or domain.ErrPostalUnreachable.
type PostalResolver interface {
	Resolve(ctx context.Context, zipCode string) (*domain.PostalRecord, error)
}
