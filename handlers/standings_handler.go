package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/padelops/tournament-engine/services"
)

type StandingsHandler struct {
	standings *services.StandingsService
}

func NewStandingsHandler(standings *services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standings: standings}
}

// GetStandings returns the ordered group tables of a category.
func (h *StandingsHandler) GetStandings(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryID")
	tables, err := h.standings.Standings(r.Context(), categoryID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tables)
}

// GetQualifiers returns the seeded playoff entrant list.
func (h *StandingsHandler) GetQualifiers(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryID")
	qualifiers, err := h.standings.Qualifiers(r.Context(), categoryID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string][]string{"qualifiers": qualifiers})
}
