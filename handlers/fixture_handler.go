package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/padelops/tournament-engine/services"
)

type FixtureHandler struct {
	fixtures *services.FixtureService
}

func NewFixtureHandler(fixtures *services.FixtureService) *FixtureHandler {
	return &FixtureHandler{fixtures: fixtures}
}

// GenerateGroupMatches creates missing round-robin matches for a category.
func (h *FixtureHandler) GenerateGroupMatches(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryID")
	created, err := h.fixtures.GenerateGroupMatches(r.Context(), categoryID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// RegenerateGroupMatches wipes and rebuilds the category's group stage.
func (h *FixtureHandler) RegenerateGroupMatches(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryID")
	created, err := h.fixtures.RegenerateGroupMatches(r.Context(), categoryID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

type saveDrawRequest struct {
	Assignments []services.GroupAssignment `json:"assignments"`
}

// SaveGroupDraw bulk-assigns registrations to groups.
func (h *FixtureHandler) SaveGroupDraw(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryID")
	var req saveDrawRequest
	if !readJSON(w, r, &req) {
		return
	}
	if err := h.fixtures.SaveGroupDraw(r.Context(), categoryID, req.Assignments); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
