package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/muller/cepapp/internal/api/handler"
	"github.com/muller/cepapp/internal/core/domain"
)

// route binds one (verb, path template) to its handler and access policy.
type route struct {
	Method  string
	Path    string
	Policy  domain.Policy
	Handler echo.HandlerFunc
}

// Routes under /health, /metrics and /swagger are registered separately and
// are always public. Anything not listed falls through to echo's 404.
func routeTable(auth *handler.AuthHandler, users *handler.UserHandler, addresses *handler.AddressHandler) []route {
	adminOnly := domain.RequireRole(domain.RoleAdmin)
	anyUser := domain.RequireAnyRole(domain.RoleUser, domain.RoleAdmin)
	selfOrAdmin := domain.SelfOrAdmin()

	return []route{
		{http.MethodGet, "/users/login", domain.Public(), auth.Login},
		{http.MethodPost, "/users/login", domain.Public(), auth.Login},
		{http.MethodGet, "/users/register", domain.Public(), auth.Register},
		{http.MethodPost, "/users/register", domain.Public(), auth.Register},

		{http.MethodGet, "/users", adminOnly, users.List},
		{http.MethodPost, "/users", adminOnly, users.Create},
		// No :id on this path, so only admins pass SelfOrAdmin.
		{http.MethodGet, "/users/email", selfOrAdmin, users.GetByEmail},
		{http.MethodGet, "/users/:id", selfOrAdmin, users.Get},
		{http.MethodPut, "/users/:id", selfOrAdmin, users.Update},
		{http.MethodDelete, "/users/:id", selfOrAdmin, users.Delete},
		{http.MethodGet, "/users/:id/addresses", selfOrAdmin, addresses.ListByUser},

		{http.MethodGet, "/addresses", adminOnly, addresses.List},
		{http.MethodPost, "/addresses", anyUser, addresses.Create},
		// The handler also checks ownership of the loaded record.
		{http.MethodGet, "/addresses/:id", anyUser, addresses.Get},
		{http.MethodPut, "/addresses/:id", anyUser, addresses.Update},
		{http.MethodDelete, "/addresses/:id", adminOnly, addresses.Delete},
	}
}
