package middleware

import (
	"context"
	"net/http"

	"github.com/schoolboard/backend/internal/models"
	"go.uber.org/zap"
)

// SessionCookie is the name of the HTTP-only cookie holding the opaque session token
const SessionCookie = "session_token"

const identityKey contextKey = "identity"

// IdentityResolver resolves an opaque session token to the caller's identity.
// A nil identity with a nil error means the token is absent, unknown or expired.
type IdentityResolver interface {
	CurrentIdentity(ctx context.Context, token string) (*models.Identity, error)
}

// SessionMiddleware resolves the session cookie to an Identity and stores it
// in the request context. Requests without a valid session proceed anonymously;
// rejecting them is left to RequireAuth or to the service layer.
func SessionMiddleware(resolver IdentityResolver, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := resolver.CurrentIdentity(r.Context(), cookie.Value)
			if err != nil {
				// Lookup failure degrades to an anonymous request; protected
				// routes still answer 401 instead of leaking a 500
				logger.Error("failed to resolve session",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.Error(err),
				)
				next.ServeHTTP(w, r)
				return
			}
			if identity == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests that carry no resolved identity
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetIdentity(r.Context()); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"ok":false,"msg":"authentication required"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetIdentity retrieves the resolved identity from context
func GetIdentity(ctx context.Context) (*models.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*models.Identity)
	return identity, ok
}
