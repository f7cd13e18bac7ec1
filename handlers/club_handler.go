package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/padelops/tournament-engine/services"
)

// maxLogoSize caps logo uploads at 2 MiB.
const maxLogoSize = 2 << 20

type ClubHandler struct {
	clubs *services.ClubService
}

func NewClubHandler(clubs *services.ClubService) *ClubHandler {
	return &ClubHandler{clubs: clubs}
}

func (h *ClubHandler) ListByTournament(w http.ResponseWriter, r *http.Request) {
	tournamentID := chi.URLParam(r, "tournamentID")
	clubs, err := h.clubs.ListByTournament(r.Context(), tournamentID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, clubs)
}

// UploadLogo accepts a multipart "logo" file and stores it as the club logo.
func (h *ClubHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	clubID := chi.URLParam(r, "clubID")

	r.Body = http.MaxBytesReader(w, r.Body, maxLogoSize)
	if err := r.ParseMultipartForm(maxLogoSize); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}
	file, header, err := r.FormFile("logo")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing logo file")
		return
	}
	defer file.Close()

	club, err := h.clubs.UploadLogo(r.Context(), clubID, file, header.Header.Get("Content-Type"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, club)
}
