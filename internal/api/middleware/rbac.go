package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/muller/cepapp/internal/core/domain"
	"github.com/muller/cepapp/internal/pkg/metrics"
)

// Authorize enforces policy for a single route. It must run after
// Authenticate and be attached per route so that path parameters are bound.
func Authorize(policy domain.Policy) echo.MiddlewareFunc {
	label := policy.String()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, _ := domain.PrincipalFromContext(c.Request().Context())

			if domain.Decide(principal, policy, pathVars(c)) {
				metrics.AuthzDecisionsTotal.WithLabelValues(label, "allow").Inc()
				return next(c)
			}

			if principal == nil {
				metrics.AuthzDecisionsTotal.WithLabelValues(label, "unauthenticated").Inc()
				return domain.ErrUnauthenticated
			}
			metrics.AuthzDecisionsTotal.WithLabelValues(label, "forbidden").Inc()
			return domain.ErrForbidden
		}
	}
}

func pathVars(c echo.Context) map[string]string {
	names := c.ParamNames()
	values := c.ParamValues()
	vars := make(map[string]string, len(names))
	for i, name := range names {
		if i < len(values) {
			vars[name] = values[i]
		}
	}
	return vars
}
