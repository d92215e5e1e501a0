package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/muller/cepapp/internal/core/domain"
	"github.com/muller/cepapp/internal/core/ports"
	"github.com/muller/cepapp/internal/pkg/metrics"
)

// AddressService runs the enrichment workflow: validate the zip code,
// resolve it, merge the postal record, check the owner, validate, persist.
type AddressService struct {
	addresses ports.AddressRepository
	users     ports.UserRepository
	resolver  ports.PostalResolver
	logger    zerolog.Logger
}

func NewAddressService(addresses ports.AddressRepository, users ports.UserRepository, resolver ports.PostalResolver, logger zerolog.Logger) *AddressService {
	return &AddressService{addresses: addresses, users: users, resolver: resolver, logger: logger}
}

// CreateAddress enriches input from the postal resolver and stores it for ownerID.
func (s *AddressService) CreateAddress(ctx context.Context, input ports.AddressInput, ownerID int64) (*domain.Address, error) {
	addr := &domain.Address{OwnerUserID: ownerID}
	if err := s.enrich(ctx, addr, input.ZipCode); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	if err := addr.Validate(); err != nil {
		return nil, err
	}

	created, err := s.addresses.Create(ctx, addr)
	if err != nil {
		s.logger.Error().Err(err).Int64("owner_id", ownerID).Msg("failed to create address")
		return nil, err
	}

	metrics.AddressesCreatedTotal.WithLabelValues(created.State).Inc()
	s.logger.Info().Int64("address_id", created.ID).Int64("owner_id", ownerID).Str("zip_code", created.ZipCode).Msg("address created")
	return created, nil
}

// UpdateAddress re-resolves the zip code and merges the result onto the
// stored record. The id and owner never change.
func (s *AddressService) UpdateAddress(ctx context.Context, id int64, input ports.AddressInput) (*domain.Address, error) {
	existing, err := s.addresses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.enrich(ctx, existing, input.ZipCode); err != nil {
		return nil, err
	}

	if err := existing.Validate(); err != nil {
		return nil, err
	}

	if err := s.addresses.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *AddressService) GetAddress(ctx context.Context, id int64) (*domain.Address, error) {
	return s.addresses.FindByID(ctx, id)
}

func (s *AddressService) ListAddresses(ctx context.Context, page ports.PageRequest) (ports.Page[*domain.Address], error) {
	page = page.Normalize()
	items, total, err := s.addresses.List(ctx, page)
	if err != nil {
		return ports.Page[*domain.Address]{}, err
	}
	return ports.NewPage(items, total, page), nil
}

func (s *AddressService) ListUserAddresses(ctx context.Context, ownerID int64, page ports.PageRequest) (ports.Page[*domain.Address], error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return ports.Page[*domain.Address]{}, err
	}

	page = page.Normalize()
	items, total, err := s.addresses.ListByOwner(ctx, ownerID, page)
	if err != nil {
		return ports.Page[*domain.Address]{}, err
	}
	return ports.NewPage(items, total, page), nil
}

func (s *AddressService) DeleteAddress(ctx context.Context, id int64) error {
	return s.addresses.Delete(ctx, id)
}

// enrich validates zipCode, resolves it and overwrites the resolver-owned
// fields of addr.
func (s *AddressService) enrich(ctx context.Context, addr *domain.Address, zipCode string) error {
	zipCode = strings.TrimSpace(zipCode)
	if zipCode == "" {
		return domain.ErrInvalidZipCode
	}

	record, err := s.resolver.Resolve(ctx, zipCode)
	if err != nil {
		s.logger.Warn().Err(err).Str("zip_code", zipCode).Msg("postal lookup failed")
		return fmt.Errorf("%w: %w", domain.ErrUpstreamFailure, err)
	}

	addr.ApplyPostalRecord(record)
	return nil
}
