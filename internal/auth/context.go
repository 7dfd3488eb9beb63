package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const claimsKey = contextKey("claims")

func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// ClaimsFrom returns the claims stored by the auth middleware.
func ClaimsFrom(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(claimsKey).(Claims)
	return c, ok
}

// BearerToken returns the token of an "Authorization: Bearer" header, or the
// access_token query parameter when allowQuery is set (browsers cannot add
// headers to a websocket handshake). It returns "" when neither is present.
func BearerToken(r *http.Request, allowQuery bool) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if allowQuery {
		return r.URL.Query().Get("access_token")
	}
	return ""
}
