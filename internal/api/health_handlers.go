package api

import (
	"context"
	"net/http"
	"time"

	"github.com/vytor/questledger/internal/logger"
)

// handleHealth reports liveness. It always returns 200.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady returns 200 only when the database answers a ping.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if err := s.checkDatabase(r.Context()); err != nil {
		log.Warn("readiness check failed - database: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, envelope{
			OK:    false,
			Error: &errorBody{Code: "UNAVAILABLE", Message: "database unavailable"},
		})
		return
	}
	writeData(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) checkDatabase(ctx context.Context) error {
	if s.DB == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.DB.PingContext(ctx)
}
