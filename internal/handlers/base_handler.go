package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/schoolboard/backend/internal/models"
	"go.uber.org/zap"
)

type BaseHandler struct {
	logger *zap.Logger
}

// respondJSON sends a JSON response
func (h *BaseHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// respondError sends an error JSON response with the {ok:false, msg} envelope
func (h *BaseHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]any{"ok": false, "msg": message})
}

// respondDomainError maps a domain error to its HTTP status and message.
// Unclassified errors are logged and surface as a generic 500 without
// leaking internals.
func (h *BaseHandler) respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrDuplicateUsername):
		h.respondError(w, http.StatusBadRequest, models.ErrDuplicateUsername.Error())
	case errors.Is(err, models.ErrInvalidCredentials):
		h.respondError(w, http.StatusUnauthorized, models.ErrInvalidCredentials.Error())
	case errors.Is(err, models.ErrUnauthenticated):
		h.respondError(w, http.StatusUnauthorized, models.ErrUnauthenticated.Error())
	case errors.Is(err, models.ErrForbidden):
		h.respondError(w, http.StatusForbidden, models.ErrForbidden.Error())
	case errors.Is(err, models.ErrNotFound):
		h.respondError(w, http.StatusNotFound, models.ErrNotFound.Error())
	default:
		h.logger.Error("request failed", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
