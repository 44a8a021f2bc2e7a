package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/vytor/questledger/internal/auth"
	"github.com/vytor/questledger/internal/errors"
	"github.com/vytor/questledger/internal/models"
)

const (
	maxSubmitBodyBytes = 1 << 20
	replayedHeader     = "Idempotent-Replayed"
)

type submitResponse struct {
	models.SubmitResult
	Duplicate bool `json:"duplicate"`
}

func (s *Server) handleSubmitAttempt(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		handleError(w, r, errors.NewUnauthorizedError("missing user identity"))
		return
	}

	var req models.SubmitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	res, err := s.Attempts.Submit(r.Context(), userID, req)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if res.Replayed {
		w.Header().Set(replayedHeader, "true")
	}
	writeData(w, http.StatusOK, submitResponse{SubmitResult: *res, Duplicate: res.Replayed})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSubmitBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if err == io.EOF {
			return errors.NewValidationError("body", "request body is required")
		}
		return errors.NewValidationError("body", "malformed JSON: "+err.Error())
	}
	return nil
}
