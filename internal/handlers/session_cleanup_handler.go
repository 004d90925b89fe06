package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/schoolboard/backend/internal/services"
	"go.uber.org/zap"
)

// SessionCleanupHandler handles expired-session purge requests
type SessionCleanupHandler struct {
	BaseHandler
	sessionRepo services.SessionRepository
}

// NewSessionCleanupHandler creates a new session cleanup handler
func NewSessionCleanupHandler(sessionRepo services.SessionRepository, logger *zap.Logger) *SessionCleanupHandler {
	return &SessionCleanupHandler{
		BaseHandler: BaseHandler{logger: logger},
		sessionRepo: sessionRepo,
	}
}

// RegisterRoutes registers session cleanup handler routes
func (h *SessionCleanupHandler) RegisterRoutes(r chi.Router) {
	r.Post("/internal/sessions/cleanup", h.Cleanup)
}

// Cleanup handles POST /api/internal/sessions/cleanup
// @Summary Purge expired sessions
// @Description Removes all sessions past their expiry
// @Tags sessions
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]any "Cleanup completed"
// @Failure 500 {object} map[string]any "Internal server error"
// @Router /api/internal/sessions/cleanup [post]
func (h *SessionCleanupHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	deletedCount, err := h.sessionRepo.DeleteExpired(r.Context(), time.Now().UTC())
	if err != nil {
		h.logger.Error("failed to delete expired sessions", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// 0 deleted rows is not an error
	h.logger.Info("session cleanup completed", zap.Int("deletedCount", deletedCount))
	h.respondJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": deletedCount})
}
