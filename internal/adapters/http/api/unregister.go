// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mergington/activities/internal/adapters/repository"
)

// UnregisterDependencies defines the interface for participant removal.
type UnregisterDependencies interface {
	RemoveParticipant(ctx context.Context, name, email string) error
}

// UnregisterHandler handles participant removal requests.
type UnregisterHandler struct {
	deps UnregisterDependencies
}

// NewUnregisterHandler creates a new unregister handler.
func NewUnregisterHandler(deps UnregisterDependencies) *UnregisterHandler {
	return &UnregisterHandler{deps: deps}
}

// HandleRemove handles DELETE /activities/{name}/participants/{email}
// requests. Both path parameters arrive already extracted.
func (h *UnregisterHandler) HandleRemove(w http.ResponseWriter, r *http.Request, name, email string) {
	if r.Method != http.MethodDelete {
		http.NotFound(w, r)
		return
	}

	if err := h.deps.RemoveParticipant(r.Context(), name, email); err != nil {
		switch {
		case errors.Is(err, repository.ErrActivityNotFound):
			writeError(w, http.StatusNotFound, "not_found", detailActivityNotFound)
		case errors.Is(err, repository.ErrParticipantNotFound):
			writeError(w, http.StatusNotFound, "not_found", detailParticipantNotFound)
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Removed %s from %s", email, name),
	})
}
