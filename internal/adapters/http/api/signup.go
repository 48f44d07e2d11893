// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mergington/activities/internal/adapters/repository"
)

// SignupDependencies defines the interface for signup operations.
type SignupDependencies interface {
	Signup(ctx context.Context, name, email string) error
}

// SignupHandler handles signup requests.
type SignupHandler struct {
	deps SignupDependencies
}

// NewSignupHandler creates a new signup handler.
func NewSignupHandler(deps SignupDependencies) *SignupHandler {
	return &SignupHandler{deps: deps}
}

// HandleSignup handles POST /activities/{name}/signup?email=... requests.
// The activity name arrives already extracted from the path.
func (h *SignupHandler) HandleSignup(w http.ResponseWriter, r *http.Request, name string) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrMissingEmail.Error())
		return
	}

	if err := h.deps.Signup(r.Context(), name, email); err != nil {
		switch {
		case errors.Is(err, repository.ErrActivityNotFound):
			writeError(w, http.StatusNotFound, "not_found", detailActivityNotFound)
		case errors.Is(err, repository.ErrAlreadyRegistered):
			writeError(w, http.StatusBadRequest, "already_registered", detailAlreadyRegistered)
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Signed up %s for %s", email, name),
	})
}
