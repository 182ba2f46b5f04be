package httpapi

import (
	"net/http"
	"strings"

	"github.com/browncherrycoffee/gwanak-church/internal/platform/auth/hmactoken"
)

// AuthCookieName is the session cookie the records UI stores its token in.
const AuthCookieName = "auth-token"

// NewAuthMiddleware enforces a valid session token on the records routes.
//
// The token is read from Authorization: Bearer <token> first, then from the
// auth cookie; the web UI uses the cookie, scripted clients use the header.
func NewAuthMiddleware(tokens *hmactoken.Signer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				if c, err := r.Cookie(AuthCookieName); err == nil {
					raw = c.Value
				}
			}
			if raw == "" {
				writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing token")
				return
			}
			if err := tokens.Verify(raw); err != nil {
				writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(authz, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authz, prefix))
}
