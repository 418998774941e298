// Package middleware provides HTTP middleware for TeamConnect.
package middleware

import (
	"net/http"
	"strings"

	"github.com/d9705996/teamconnect/internal/api/respond"
	"github.com/d9705996/teamconnect/internal/apperr"
	"github.com/d9705996/teamconnect/internal/auth"
)

// RequireAuth validates the Bearer JWT in the Authorization header.
// On success it injects a verified auth.AuthContext into the request context.
// On failure it writes a 401 response.
func RequireAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				respond.ErrorMessage(w, http.StatusUnauthorized, "missing_token", "Authorization header is required")
				return
			}
			ac, ok := verifiedContext(w, token, secret)
			if !ok {
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithContext(r.Context(), ac)))
		})
	}
}

// RequirePermission checks that the request's access level grants action.
// Must be chained after RequireAuth or RequireTenant. Header-derived
// contexts carry no identity and always pass.
func RequirePermission(action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ac, ok := auth.FromContext(r.Context())
			if !ok {
				respond.ErrorMessage(w, http.StatusUnauthorized, "missing_token", "authentication required")
				return
			}
			if !ac.Can(action) {
				respond.Error(w, r, apperr.New(apperr.KindForbidden, apperr.ErrPermissionDenied.Code,
					"your access level does not grant the '"+action+"' permission"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// verifiedContext parses token and writes a 401 when it is not valid.
func verifiedContext(w http.ResponseWriter, token, secret string) (auth.AuthContext, bool) {
	claims, err := auth.ParseAccessToken(token, secret)
	if err != nil {
		respond.ErrorMessage(w, http.StatusUnauthorized, "invalid_token", "access token is invalid or expired")
		return auth.AuthContext{}, false
	}
	return auth.AuthContext{
		TenantID:    claims.CompanyID,
		UserID:      claims.UserID,
		Permissions: claims.Permissions,
		Verified:    true,
	}, true
}

func extractBearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
