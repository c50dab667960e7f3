package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/heartmarshall/glossary/internal/auth"
	"github.com/heartmarshall/glossary/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateToken(token string) (auth.Claims, error)
}

// AdminAuth admits only requests carrying a valid bearer token with the admin
// role. A nil validator means admin access is not configured and every request
// is refused with 503.
func AdminAuth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if validator == nil {
				http.Error(w, "admin access is not configured", http.StatusServiceUnavailable)
				return
			}

			claims, err := validator.ValidateToken(extractBearerToken(r))
			if err != nil {
				if !errors.Is(err, auth.ErrEmptyToken) {
					w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				} else {
					w.Header().Set("WWW-Authenticate", "Bearer")
				}
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if claims.Role != auth.RoleAdmin {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			noteOperator(w, claims.Subject)
			ctx := ctxutil.WithOperator(r.Context(), claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}
