package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/padelops/tournament-engine/services"
)

type BracketHandler struct {
	brackets *services.BracketService
}

func NewBracketHandler(brackets *services.BracketService) *BracketHandler {
	return &BracketHandler{brackets: brackets}
}

// GeneratePlayoffs builds the playoff bracket; 409 if one already exists.
func (h *BracketHandler) GeneratePlayoffs(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryID")
	created, err := h.brackets.GeneratePlayoffs(r.Context(), categoryID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// RegeneratePlayoffs deletes and rebuilds the bracket.
func (h *BracketHandler) RegeneratePlayoffs(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryID")
	created, err := h.brackets.RegeneratePlayoffs(r.Context(), categoryID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}
