package middleware

import (
	"context"
	"net/http"

	"fintrack/internal/shared/auth"
)

type ContextKey string

const (
	AccountIDKey ContextKey = "account_id"
	EmailKey     ContextKey = "email"
)

// LoginPath is where rejected requests are sent. The redirect carries no
// indication of why the request was rejected.
const LoginPath = "/login"

// Auth guards protected routes. It extracts the session token from the
// token cookie, verifies it through the codec, and attaches the decoded
// identity to the request context. A request with a missing, tampered or
// expired token is redirected to the login page; the token value itself
// is never logged.
func Auth(codec auth.TokenCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.TokenCookie)
			if err != nil {
				http.Redirect(w, r, LoginPath, http.StatusFound)
				return
			}

			claims, err := codec.Verify(cookie.Value)
			if err != nil {
				http.Redirect(w, r, LoginPath, http.StatusFound)
				return
			}

			ctx := context.WithValue(r.Context(), AccountIDKey, claims.AccountID)
			ctx = context.WithValue(ctx, EmailKey, claims.Email)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccountID returns the authenticated account ID stored by Auth.
func AccountID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(AccountIDKey).(int64)
	return id, ok
}
