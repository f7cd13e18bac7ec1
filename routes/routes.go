package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/padelops/tournament-engine/handlers"
	"github.com/padelops/tournament-engine/middleware"
	"github.com/padelops/tournament-engine/models"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Fixtures  *handlers.FixtureHandler
	Brackets  *handlers.BracketHandler
	Standings *handlers.StandingsHandler
	Matches   *handlers.MatchHandler
	Schedules *handlers.ScheduleHandler
	Clubs     *handlers.ClubHandler
}

// SetupRoutes wires the public read API and the organizer-guarded mutating
// API onto one chi router.
func SetupRoutes(h Handlers, auth *middleware.Authenticator) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)

		// Public reads.
		r.Get("/categories/{categoryID}/matches", h.Matches.ListByCategory)
		r.Get("/categories/{categoryID}/standings", h.Standings.GetStandings)
		r.Get("/categories/{categoryID}/qualifiers", h.Standings.GetQualifiers)
		r.Get("/matches/{matchID}", h.Matches.GetByID)
		r.Get("/tournaments/{tournamentID}/clubs", h.Clubs.ListByTournament)

		// Organizer-only mutations.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth)
			r.Use(middleware.Authorize(models.RoleOrganizer, models.RoleAdmin))

			r.Put("/categories/{categoryID}/groups", h.Fixtures.SaveGroupDraw)
			r.Post("/categories/{categoryID}/group-matches", h.Fixtures.GenerateGroupMatches)
			r.Post("/categories/{categoryID}/group-matches/regenerate", h.Fixtures.RegenerateGroupMatches)
			r.Post("/categories/{categoryID}/playoffs", h.Brackets.GeneratePlayoffs)
			r.Post("/categories/{categoryID}/playoffs/regenerate", h.Brackets.RegeneratePlayoffs)
			r.Put("/matches/{matchID}/score", h.Matches.SubmitScore)
			r.Post("/tournaments/{tournamentID}/schedule", h.Schedules.GenerateSchedule)
			r.Post("/clubs/{clubID}/logo", h.Clubs.UploadLogo)
		})
	})

	return r
}
