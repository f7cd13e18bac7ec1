package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/padelops/tournament-engine/engine"
	"github.com/padelops/tournament-engine/repositories"
	"github.com/padelops/tournament-engine/services"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// respondServiceError translates the service and repository error taxonomy
// into HTTP statuses. Anything unrecognized is a 500 with a generic message.
func respondServiceError(w http.ResponseWriter, err error) {
	var capErr *engine.DayCapacityError

	switch {
	case errors.Is(err, repositories.ErrTournamentNotFound),
		errors.Is(err, repositories.ErrCategoryNotFound),
		errors.Is(err, repositories.ErrMatchNotFound),
		errors.Is(err, repositories.ErrRegistrationNotFound),
		errors.Is(err, repositories.ErrClubNotFound),
		errors.Is(err, repositories.ErrUserNotFound):
		respondError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, services.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, err.Error())

	case errors.Is(err, services.ErrUserExists),
		errors.Is(err, services.ErrPlayoffsAlreadyExist),
		errors.Is(err, repositories.ErrMatchSlotAlreadyCreated):
		respondError(w, http.StatusConflict, err.Error())

	case errors.Is(err, services.ErrInvalidScorePayload),
		errors.Is(err, services.ErrDrawRegistrationStray),
		errors.Is(err, services.ErrNotEnoughEntrants),
		errors.Is(err, services.ErrNoQualifiers):
		respondError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, services.ErrMatchNotEditable),
		errors.Is(err, engine.ErrNoCourts),
		errors.Is(err, engine.ErrNoPlayDays),
		errors.Is(err, engine.ErrNoGroupDays),
		errors.Is(err, engine.ErrPlayoffsOverflow),
		errors.As(err, &capErr):
		respondError(w, http.StatusUnprocessableEntity, err.Error())

	case errors.Is(err, services.ErrLogoStorageDisabled):
		respondError(w, http.StatusServiceUnavailable, err.Error())

	default:
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
