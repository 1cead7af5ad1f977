package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"poppes-store/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey int

const (
	sessionKeyContextKey contextKey = iota
	claimsContextKey
)

// SessionCookie is the cookie naming the browser's cart slot.
const SessionCookie = "cart_session"

// sessionMaxAge matches the cart slot TTL.
const sessionMaxAge = 30 * 24 * time.Hour

// Session ensures every request carries a cart session id, minting a new
// cookie when none is present, and puts the id on the request context.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var key string
		if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
			key = cookie.Value
		} else {
			key = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    key,
				Path:     "/",
				MaxAge:   int(sessionMaxAge.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionKeyContextKey, key)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionKey returns the cart session id stored on the context, or "".
func SessionKey(ctx context.Context) string {
	key, _ := ctx.Value(sessionKeyContextKey).(string)
	return key
}

// Authenticate parses an optional Bearer token and puts the verified
// claims on the request context. Requests without a token pass through
// unauthenticated; requests with an invalid token are rejected.
func Authenticate(auth service.AuthService, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorised(w, "invalid authorization header")
				return
			}

			claims, err := auth.Verify(parts[1])
			if err != nil {
				logger.Warn().Err(err).Str("path", r.URL.Path).Msg("invalid session token")
				unauthorised(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserClaims returns the verified identity on the context, or nil for
// unauthenticated requests.
func UserClaims(ctx context.Context) *service.Claims {
	claims, _ := ctx.Value(claimsContextKey).(*service.Claims)
	return claims
}

// RequireAuth rejects requests without a verified identity.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserClaims(r.Context()) == nil {
			unauthorised(w, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests whose identity does not carry the admin
// role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := UserClaims(r.Context())
		if claims == nil {
			unauthorised(w, "authentication required")
			return
		}
		if !claims.IsAdmin() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error": "admin access required"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorised(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error": "` + message + `"}`))
}
