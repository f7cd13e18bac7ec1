package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/padelops/tournament-engine/models"
	"github.com/padelops/tournament-engine/repositories"
	"github.com/padelops/tournament-engine/services"
)

type MatchHandler struct {
	matchRepo repositories.MatchRepository
	scores    *services.ScoreService
}

func NewMatchHandler(matchRepo repositories.MatchRepository, scores *services.ScoreService) *MatchHandler {
	return &MatchHandler{matchRepo: matchRepo, scores: scores}
}

// ListByCategory returns a category's matches, optionally filtered by the
// stage query parameter (GROUP or PLAYOFF).
func (h *MatchHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryID")

	var stage *models.Stage
	if raw := r.URL.Query().Get("stage"); raw != "" {
		s := models.Stage(raw)
		if !s.Valid() {
			respondError(w, http.StatusBadRequest, "stage must be GROUP or PLAYOFF")
			return
		}
		stage = &s
	}

	matches, err := h.matchRepo.ListByCategory(r.Context(), categoryID, stage)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, matches)
}

func (h *MatchHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	match, err := h.matchRepo.GetByID(r.Context(), chi.URLParam(r, "matchID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, match)
}

// SubmitScore records a result and runs bracket propagation.
func (h *MatchHandler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "matchID")
	var input services.ScoreInput
	if !readJSON(w, r, &input) {
		return
	}
	match, err := h.scores.SubmitScore(r.Context(), matchID, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, match)
}
