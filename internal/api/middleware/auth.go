package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/muller/cepapp/internal/core/domain"
	"github.com/muller/cepapp/internal/core/ports"
)

// UserLookup is the slice of the user store the identity middleware needs.
type UserLookup interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Authenticate resolves the bearer token into a domain.Principal stored on
// the request context. Any token problem leaves the request anonymous; only
// a failing user store aborts it. revocations may be nil.
func Authenticate(tokens ports.TokenIssuer, users UserLookup, revocations ports.TokenRevocations, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return next(c)
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				log.Debug().Err(err).Str("path", c.Path()).Msg("ignoring invalid bearer token")
				return next(c)
			}

			ctx := c.Request().Context()
			user, err := users.FindByEmail(ctx, claims.Subject)
			if errors.Is(err, domain.ErrUserNotFound) {
				log.Debug().Str("subject", claims.Subject).Msg("token subject no longer exists")
				return next(c)
			}
			if err != nil {
				return err
			}

			if claims.UserID != 0 && claims.UserID != user.ID {
				log.Debug().Str("subject", claims.Subject).Int64("uid", claims.UserID).Msg("token uid does not match subject")
				return next(c)
			}

			if revocations != nil {
				revoked, err := revocations.IsRevoked(ctx, claims.Subject, claims.IssuedAt)
				if err != nil {
					return err
				}
				if revoked {
					log.Debug().Str("subject", claims.Subject).Str("jti", claims.ID).Msg("token revoked")
					return next(c)
				}
			}

			principal := domain.NewPrincipal(user.ID, user.Role)
			c.SetRequest(c.Request().WithContext(domain.WithPrincipal(ctx, principal)))
			return next(c)
		}
	}
}

// bearerToken extracts t from "Bearer t". The scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
