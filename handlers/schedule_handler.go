package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/padelops/tournament-engine/services"
)

type ScheduleHandler struct {
	schedules *services.ScheduleService
}

func NewScheduleHandler(schedules *services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules}
}

// GenerateSchedule plans and persists the tournament calendar.
func (h *ScheduleHandler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "tournamentID")
	assignments, err := h.schedules.GenerateSchedule(r.Context(), tournamentID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, assignments)
}
