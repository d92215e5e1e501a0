package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/muller/cepapp/internal/core/domain"
	"github.com/muller/cepapp/internal/core/ports"
)

// UserService implements account administration. revocations may be nil,
// in which case credential changes do not invalidate issued tokens.
type UserService struct {
	users       ports.UserRepository
	addresses   ports.AddressRepository
	revocations ports.TokenRevocations
	logger      zerolog.Logger
}

func NewUserService(users ports.UserRepository, addresses ports.AddressRepository, revocations ports.TokenRevocations, logger zerolog.Logger) *UserService {
	return &UserService{users: users, addresses: addresses, revocations: revocations, logger: logger}
}

func (s *UserService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return nil, domain.ErrValidation
	}
	if input.Role == "" {
		input.Role = domain.RoleUser
	}
	if !input.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, input.Role)
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("user created")
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, domain.ErrUserNotFound
	}
	return s.users.FindByEmail(ctx, email)
}

func (s *UserService) ListUsers(ctx context.Context, page ports.PageRequest) (ports.Page[*domain.User], error) {
	page = page.Normalize()
	items, total, err := s.users.List(ctx, page)
	if err != nil {
		return ports.Page[*domain.User]{}, err
	}
	return ports.NewPage(items, total, page), nil
}

// UpdateUser replaces name and email, and the password when one is given.
// Changing the email or password revokes tokens already issued to the
// previous identity.
func (s *UserService) UpdateUser(ctx context.Context, id int64, input ports.UpdateUserInput) (*domain.User, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Email) == "" {
		return nil, domain.ErrValidation
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previousEmail := user.Email
	credentialsChanged := previousEmail != input.Email

	user.Name = input.Name
	user.Email = input.Email
	if input.Password != "" {
		hash, err := hashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
		credentialsChanged = true
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	if credentialsChanged {
		s.revoke(ctx, previousEmail)
	}
	return user, nil
}

// DeleteUser removes the user and every address it owns.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	removed, err := s.addresses.DeleteByOwner(ctx, id)
	if err != nil {
		return fmt.Errorf("delete addresses of user %d: %w", id, err)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.revoke(ctx, user.Email)
	s.logger.Info().Int64("user_id", id).Int64("addresses_removed", removed).Msg("user deleted")
	return nil
}

// revoke records a watermark for subject. The account change has already
// been persisted, so a failure here is logged rather than returned.
func (s *UserService) revoke(ctx context.Context, subject string) {
	if s.revocations == nil {
		return
	}
	if err := s.revocations.RevokeSubject(ctx, subject, time.Now().UTC()); err != nil {
		s.logger.Error().Err(err).Str("subject", subject).Msg("failed to record token revocation")
	}
}
