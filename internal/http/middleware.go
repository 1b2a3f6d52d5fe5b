package http

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/HARSHPATEL-54/SGP4/internal/auth"
)

type contextKey string

const (
	actorContextKey   contextKey = "actor"
	requestIDKey      contextKey = "request_id"
	authCookieName               = "token"
	oauthStateCookie             = "oauthstate"
)

// Authenticator verifies the session cookie and threads an explicit Actor
// value through the request context.
func Authenticator(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(authCookieName)
			if err != nil || cookie.Value == "" {
				respondError(w, http.StatusUnauthorized, "User not authenticated")
				return
			}

			claims, err := tokens.Verify(cookie.Value)
			if err != nil {
				clearAuthCookie(w)
				respondError(w, http.StatusUnauthorized, "Invalid authentication token")
				return
			}

			actor := auth.Actor{ID: claims.UserID, Admin: claims.IsAdmin}
			ctx := context.WithValue(r.Context(), actorContextKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func actorFromContext(ctx context.Context) (auth.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey).(auth.Actor)
	return actor, ok
}

// RequestIDMiddleware adds a unique request ID to each request.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func setAuthCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
