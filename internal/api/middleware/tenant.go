package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/d9705996/teamconnect/internal/api/respond"
	"github.com/d9705996/teamconnect/internal/apperr"
	"github.com/d9705996/teamconnect/internal/auth"
	"github.com/d9705996/teamconnect/internal/config"
)

// TenantHeader carries the company id on requests without a bearer token.
const TenantHeader = "x-company-id"

// TenantChecker reports whether a company exists.
type TenantChecker interface {
	CompanyExists(ctx context.Context, id uint) (bool, error)
}

// RequireTenant resolves the auth.AuthContext of a tenant-scoped request.
//
// A bearer token, when present, is authoritative: the tenant comes from its
// claims and an x-company-id header that names another tenant is rejected.
// Without a token the header is used when source is config.TenantSourceHeader
// and the request is rejected when source is config.TenantSourceToken.
// Either way the tenant must exist.
func RequireTenant(tenants TenantChecker, source, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(TenantHeader)

			var ac auth.AuthContext
			if token := extractBearerToken(r); token != "" {
				var ok bool
				if ac, ok = verifiedContext(w, token, secret); !ok {
					return
				}
				if header != "" {
					id, err := parseTenantID(header)
					if err != nil {
						respond.Error(w, r, err)
						return
					}
					if id != ac.TenantID {
						respond.Error(w, r, apperr.ErrTenantMismatch)
						return
					}
				}
			} else {
				if source == config.TenantSourceToken {
					respond.ErrorMessage(w, http.StatusUnauthorized, "missing_token", "Authorization header is required")
					return
				}
				if header == "" {
					respond.ErrorMessage(w, http.StatusBadRequest, "missing_tenant", "x-company-id header is required")
					return
				}
				id, err := parseTenantID(header)
				if err != nil {
					respond.Error(w, r, err)
					return
				}
				ac = auth.AuthContext{TenantID: id}
			}

			exists, err := tenants.CompanyExists(r.Context(), ac.TenantID)
			if err != nil {
				respond.Error(w, r, fmt.Errorf("resolve tenant: %w", err))
				return
			}
			if !exists {
				respond.Error(w, r, apperr.ErrTenantNotFound)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithContext(r.Context(), ac)))
		})
	}
}

func parseTenantID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return 0, apperr.New(apperr.KindValidation, "invalid_tenant", "x-company-id must be a positive integer")
	}
	return uint(id), nil
}
