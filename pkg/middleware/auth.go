package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"venuedesk/pkg/auth"
	"venuedesk/pkg/logger"
)

const PrincipalKey contextKey = "principal"

// Principal is the authenticated account attached to the request context.
type Principal struct {
	AccountID string
	Kind      string
}

// PrincipalFrom returns the authenticated principal, if any.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(PrincipalKey).(Principal)
	return p, ok
}

// Authenticator wraps individual routes that require a valid bearer token.
// Only part of the surface is private, so this is applied per route rather
// than on the whole middleware chain.
type Authenticator struct {
	issuer *auth.TokenIssuer
	log    *logger.Logger
}

func NewAuthenticator(issuer *auth.TokenIssuer, log *logger.Logger) *Authenticator {
	return &Authenticator{issuer: issuer, log: log}
}

// Require rejects the request with 401 before the handler runs when the
// token is missing or invalid. Both the Authorization header and the legacy
// x-auth-token header are accepted.
func (a *Authenticator) Require(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		token := extractToken(r)
		if token == "" {
			writeUnauthorized(w, "Token not found, access denied")
			return
		}

		claims, err := a.issuer.Verify(token)
		if err != nil {
			a.log.Warn("Token verification failed",
				"request_id", requestIDFrom(r.Context()),
				"path", r.URL.Path,
				"error", err,
			)
			writeUnauthorized(w, "Token is invalid")
			return
		}

		principal := Principal{AccountID: claims.Subject, Kind: claims.Kind}
		ctx := context.WithValue(r.Context(), PrincipalKey, principal)
		next(w, r.WithContext(ctx), ps)
	}
}

func extractToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return r.Header.Get("x-auth-token")
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
