package ports

import (
	"context"

	"github.com/muller/cepapp/internal/core/domain"
)

// AddressInput is the caller-submitted address. Only ZipCode is trusted;
// the other fields are overwritten by the postal resolver.
type AddressInput struct {
	Street       string
	Number       string
	Complement   string
	Neighborhood string
	City         string
	State        string
	ZipCode      string
}

type AddressService interface {
	CreateAddress(ctx context.Context, input AddressInput, ownerID int64) (*domain.Address, error)
	UpdateAddress(ctx context.Context, id int64, input AddressInput) (*domain.Address, error)
	GetAddress(ctx context.Context, id int64) (*domain.Address, error)
	ListAddresses(ctx context.Context, page PageRequest) (Page[*domain.Address], error)
	ListUserAddresses(ctx context.Context, ownerID int64, page PageRequest) (Page[*domain.Address], error)
	DeleteAddress(ctx context.Context, id int64) error
}
