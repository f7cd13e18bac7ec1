package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/padelops/tournament-engine/models"
	"github.com/padelops/tournament-engine/repositories"
	"github.com/padelops/tournament-engine/storage"
)

// ClubService lists venue clubs and manages their logos. The uploader is
// optional; without one, logo uploads fail and clubs come back without URLs.
type ClubService struct {
	clubRepo repositories.ClubRepository
	uploader storage.Uploader
	logger   *slog.Logger
}

func NewClubService(clubRepo repositories.ClubRepository, uploader storage.Uploader, logger *slog.Logger) *ClubService {
	return &ClubService{clubRepo: clubRepo, uploader: uploader, logger: logger}
}

func (s *ClubService) ListByTournament(ctx context.Context, tournamentID string) ([]models.Club, error) {
	clubs, err := s.clubRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	for i := range clubs {
		s.fillLogoURL(&clubs[i])
	}
	return clubs, nil
}

var allowedLogoTypes = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

// UploadLogo stores a club logo and records its key. A previous logo with a
// different key is deleted best-effort after the new one is in place.
func (s *ClubService) UploadLogo(ctx context.Context, clubID string, file io.Reader, contentType string) (*models.Club, error) {
	if s.uploader == nil {
		return nil, ErrLogoStorageDisabled
	}
	ext, ok := allowedLogoTypes[strings.ToLower(contentType)]
	if !ok {
		return nil, fmt.Errorf("unsupported logo content type %q", contentType)
	}

	club, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}

	key := path.Join("clubs", clubID, "logo"+ext)
	if err := s.uploader.Upload(ctx, key, file, contentType); err != nil {
		return nil, err
	}
	if err := s.clubRepo.UpdateLogoKey(ctx, clubID, &key); err != nil {
		return nil, err
	}

	if club.LogoKey != nil && *club.LogoKey != key {
		if err := s.uploader.Delete(ctx, *club.LogoKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete previous logo",
				"club_id", clubID, "key", *club.LogoKey, "error", err)
		}
	}

	club.LogoKey = &key
	s.fillLogoURL(club)
	return club, nil
}

func (s *ClubService) fillLogoURL(club *models.Club) {
	if s.uploader == nil || club.LogoKey == nil {
		return
	}
	url := s.uploader.PublicURL(*club.LogoKey)
	club.LogoURL = &url
}
