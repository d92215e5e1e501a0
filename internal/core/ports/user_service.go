package ports

import (
	"context"

	"github.com/muller/cepapp/internal/core/domain"
)

// CreateUserInput is used by admins; Role may be any known role.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// UpdateUserInput replaces name and email. Password is re-hashed only when
// non-empty.
type UpdateUserInput struct {
	Name     string
	Email    string
	Password string
}

type UserService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context, page PageRequest) (Page[*domain.User], error)
	UpdateUser(ctx context.Context, id int64, input UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
}
