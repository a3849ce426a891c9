package auth

import (
	"net/http"
	"strings"

	"github.com/atelier-hq/atelier/internal/platform/httpx"
)

// Middleware guards route groups with bearer-token resolution.
type Middleware struct {
	Resolver *Resolver
}

// BearerToken extracts the credential from the Authorization header,
// empty string when absent.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequireUser resolves the bearer token strictly and injects the user
// into the request context. Failures end the request at the boundary.
func (m Middleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.Resolver.ResolveStrict(r.Context(), BearerToken(r))
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
	})
}

// RequireSuperuser is RequireUser plus a superuser check.
func (m Middleware) RequireSuperuser(next http.Handler) http.Handler {
	return m.RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := UserFromContext(r.Context()); user == nil || !user.IsSuperuser {
			httpx.Problem(w, http.StatusForbidden, "Forbidden", "The user doesn't have enough privileges")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// OptionalUser resolves the bearer token leniently: any failure leaves the
// request anonymous and indistinguishable from one with no token at all.
func (m Middleware) OptionalUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user := m.Resolver.ResolveOptional(r.Context(), BearerToken(r)); user != nil {
			r = r.WithContext(ContextWithUser(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}
