package httpd

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tartil-app/recital-service/internal/models"
	"github.com/tartil-app/recital-service/internal/validation"
)

func (h *Handler) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.CreateFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg := validation.Struct(&req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	ctx := r.Context()
	feedback, err := h.feedbackService.CreateFeedback(ctx, claims.Subject, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeData(w, http.StatusCreated, feedback)
}

func (h *Handler) GetFeedback(w http.ResponseWriter, r *http.Request) {
	submissionID := chi.URLParam(r, "submissionId")
	if submissionID == "" {
		writeError(w, http.StatusBadRequest, "Submission ID is required")
		return
	}

	ctx := r.Context()
	entries, err := h.feedbackService.GetFeedbackBySubmission(ctx, submissionID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, entries)
}
