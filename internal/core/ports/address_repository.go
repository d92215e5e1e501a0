package ports

import (
	"context"

	"github.com/muller/cepapp/internal/core/domain"
)

// AddressRepository defines persistence operations for addresses.
type AddressRepository interface {
	Create(ctx context.Context, a *domain.Address) (*domain.Address, error)
	FindByID(ctx context.Context, id int64) (*domain.Address, error)
	// Update replaces the stored record; last write wins.
	Update(ctx context.Context, a *domain.Address) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page PageRequest) ([]*domain.Address, int64, error)
	ListByOwner(ctx context.Context, ownerID int64, page PageRequest) ([]*domain.Address, int64, error)
	// DeleteByOwner removes every address owned by ownerID and returns the count.
	DeleteByOwner(ctx context.Context, ownerID int64) (int64, error)
}
