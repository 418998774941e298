package auth

import (
	"context"
	"slices"
)

// Permission actions seeded into the access_levels catalogue.
const (
	PermManageUsers = "manage_users"
	PermManageRoles = "manage_roles"
	PermCreatePosts = "create_posts"
)

// AuthContext names the tenant and caller a request runs as.
//
// Verified is true only when the context was derived from a signed access
// token. Header-derived contexts carry a tenant id and nothing else.
type AuthContext struct {
	TenantID    uint
	UserID      uint
	Permissions []string
	Verified    bool
}

// Can reports whether the context grants the permission action.
// Unverified contexts carry no identity, so no permission is evaluated.
func (a AuthContext) Can(action string) bool {
	if !a.Verified {
		return true
	}
	return slices.Contains(a.Permissions, action)
}

type contextKey struct{}

// WithContext returns a copy of ctx carrying ac.
func WithContext(ctx context.Context, ac AuthContext) context.Context {
	return context.WithValue(ctx, contextKey{}, ac)
}

// FromContext extracts the AuthContext stored by WithContext.
func FromContext(ctx context.Context) (AuthContext, bool) {
	ac, ok := ctx.Value(contextKey{}).(AuthContext)
	return ac, ok
}
