package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(s.corsMiddleware())

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/leaderboards", s.handleLeaderboard)
		r.Get("/leaderboards/weekly-growth", s.handleGrowthLeaderboard)
		r.Get("/leaderboards/mastery", s.handleMasteryLeaderboard)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Post("/attempts/submit", s.handleSubmitAttempt)
			r.Get("/me/wallet", s.handleWallet)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errNotFound(r))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errMethodNotAllowed(r))
	})
	return r
}
