// Package handler provides HTTP handlers for the review service.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sevigo/review-relay/internal/core"
)

// maxBodyBytes caps the accepted request body.
const maxBodyBytes = 1 << 20

type reviewResponse struct {
	Review string `json:"review"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ReviewHandler accepts code snippets and answers with the model's review.
type ReviewHandler struct {
	reviewer core.Reviewer
	logger   *slog.Logger
}

// NewReviewHandler creates a new review handler backed by reviewer.
func NewReviewHandler(reviewer core.Reviewer, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewer: reviewer,
		logger:   logger,
	}
}

// Handle processes POST requests carrying {"code": ..., "language": ...}.
func (h *ReviewHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req core.ReviewRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.logger.Debug("could not decode review request", "error", err)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	result, err := h.reviewer.Review(r.Context(), req)
	if err != nil {
		se := core.AsServiceError(err)
		status := se.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusInternalServerError
		}
		h.logger.Error("review request failed", "status", status, "kind", se.Kind, "error", se.Err)
		writeJSON(w, status, errorResponse{Error: se.Message})
		return
	}

	writeJSON(w, http.StatusOK, reviewResponse{Review: result.Text})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
