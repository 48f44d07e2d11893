// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/mergington/activities/internal/domain/model"
)

// ActivityLister defines the interface for roster reads.
type ActivityLister interface {
	ListActivities(ctx context.Context) model.Roster
}

// ActivitiesHandler handles roster listing requests.
type ActivitiesHandler struct {
	deps ActivityLister
}

// NewActivitiesHandler creates a new activities handler.
func NewActivitiesHandler(deps ActivityLister) *ActivitiesHandler {
	return &ActivitiesHandler{deps: deps}
}

// HandleList handles GET /activities requests.
func (h *ActivitiesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.ListActivities(r.Context()))
}
