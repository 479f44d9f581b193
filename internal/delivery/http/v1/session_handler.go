package v1

import (
	"net/http"

	"candleshop-backend/internal/delivery/http/middleware"
	"candleshop-backend/internal/usecase"
	"candleshop-backend/pkg/utils"
)

type SessionHandler struct {
	sessions     *usecase.SessionUsecase
	secureCookie bool
}

func NewSessionHandler(sessions *usecase.SessionUsecase, secureCookie bool) *SessionHandler {
	return &SessionHandler{sessions: sessions, secureCookie: secureCookie}
}

// EndSession drops the live store and its snapshots and expires the cookie.
func (h *SessionHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	h.sessions.End(r.Context(), sid)

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Session ended"})
}
