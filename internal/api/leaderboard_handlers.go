package api

import (
	"net/http"
	"strconv"

	"github.com/vytor/questledger/internal/errors"
	"github.com/vytor/questledger/internal/models"
)

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	s.serveLeaderboard(w, r, models.LeaderboardType(r.URL.Query().Get("type")))
}

func (s *Server) handleGrowthLeaderboard(w http.ResponseWriter, r *http.Request) {
	s.serveLeaderboard(w, r, models.LeaderboardGrowth)
}

func (s *Server) handleMasteryLeaderboard(w http.ResponseWriter, r *http.Request) {
	s.serveLeaderboard(w, r, models.LeaderboardMastery)
}

func (s *Server) serveLeaderboard(w http.ResponseWriter, r *http.Request, t models.LeaderboardType) {
	q := models.LeaderboardQuery{
		Type:      t,
		WeekStart: r.URL.Query().Get("weekStart"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			handleError(w, r, errors.NewValidationError("limit", "must be a positive integer"))
			return
		}
		q.Limit = limit
	}

	lb, err := s.Leaderboards.Leaderboard(r.Context(), q)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, lb)
}
