package v1

import (
	"net/http"

	"candleshop-backend/pkg/utils"
)

// SessionCounter reports how many sessions are live.
type SessionCounter interface {
	ActiveSessions() int
}

type HealthHandler struct {
	sessions      SessionCounter
	storageDriver string
}

func NewHealthHandler(sessions SessionCounter, storageDriver string) *HealthHandler {
	return &HealthHandler{sessions: sessions, storageDriver: storageDriver}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"storage":        h.storageDriver,
		"activeSessions": h.sessions.ActiveSessions(),
	})
}
