package domain

import "context"

// Principal is the authenticated identity attached to a single request.
type Principal struct {
	UserID      int64
	Authorities map[Role]struct{}
}

// NewPrincipal builds a principal holding the given roles.
func NewPrincipal(userID int64, roles ...Role) *Principal {
	auth := make(map[Role]struct{}, len(roles))
	for _, r := range roles {
		auth[r] = struct{}{}
	}
	return &Principal{UserID: userID, Authorities: auth}
}

// HasAuthority reports whether p holds r. A nil principal holds nothing.
func (p *Principal) HasAuthority(r Role) bool {
	if p == nil {
		return false
	}
	_, ok := p.Authorities[r]
	return ok
}

// HasAnyAuthority reports whether p holds at least one of roles.
func (p *Principal) HasAnyAuthority(roles ...Role) bool {
	for _, r := range roles {
		if p.HasAuthority(r) {
			return true
		}
	}
	return false
}

// IsAdmin is shorthand for HasAuthority(RoleAdmin).
func (p *Principal) IsAdmin() bool {
	return p.HasAuthority(RoleAdmin)
}

type principalContextKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext returns the principal stored on ctx, if any.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalContextKey{}).(*Principal)
	return p, ok && p != nil
}
