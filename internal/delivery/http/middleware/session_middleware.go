package middleware

import (
	"net/http"
	"time"

	"candleshop-backend/internal/domain"
	"candleshop-backend/pkg/logger"
	"candleshop-backend/pkg/utils"
)

const (
	SessionTokenHeader = "X-Session-Token"
	SessionIDHeader    = "X-Session-ID"
	SessionCookieName  = "session_token"
)

// SessionTokenService issues and verifies session tokens.
type SessionTokenService interface {
	Issue() (sessionID, token string, err error)
	Validate(token string) (sessionID string, err error)
	TTL() time.Duration
}

// NewSessionMiddleware resolves the storefront session of every request.
// A valid token from the header or cookie is reused; anything else starts a
// new session and hands its token back in both places.
func NewSessionMiddleware(tokens SessionTokenService, secureCookie bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Get Token from Header or Cookie
			tokenString := r.Header.Get(SessionTokenHeader)
			if tokenString == "" {
				if cookie, err := r.Cookie(SessionCookieName); err == nil {
					tokenString = cookie.Value
				}
			}

			// 2. Validate Token, or start a new session
			sessionID := ""
			if tokenString != "" {
				id, err := tokens.Validate(tokenString)
				if err == nil {
					sessionID = id
				} else {
					logger.WithContext(r.Context()).Debug().Err(err).Msg("Ignoring invalid session token")
				}
			}
			if sessionID == "" {
				id, token, err := tokens.Issue()
				if err != nil {
					logger.WithContext(r.Context()).Error().Err(err).Msg("Failed to issue session token")
					utils.WriteError(w, http.StatusInternalServerError, "Failed to start session")
					return
				}
				sessionID = id
				w.Header().Set(SessionTokenHeader, token)
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookieName,
					Value:    token,
					Path:     "/",
					MaxAge:   int(tokens.TTL().Seconds()),
					HttpOnly: true,
					Secure:   secureCookie,
					SameSite: http.SameSiteLaxMode,
				})
			}
			w.Header().Set(SessionIDHeader, sessionID)

			// 3. Set Context
			sessionLogger := logger.WithSessionID(*logger.WithContext(r.Context()), sessionID)
			ctx := domain.ContextWithSessionID(r.Context(), sessionID)
			ctx = logger.NewContext(ctx, &sessionLogger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
