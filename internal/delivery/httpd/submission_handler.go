package httpd

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tartil-app/recital-service/internal/models"
	"github.com/tartil-app/recital-service/internal/validation"
)

func (h *Handler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.CreateSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg := validation.Struct(&req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	// The student identity always comes from the session, never the payload.
	ctx := r.Context()
	response, err := h.submissionService.CreateSubmission(ctx, claims.Subject, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeData(w, http.StatusCreated, response)
}

// ListSubmissions is role-scoped: instructors see the review queue, students
// see their own submissions.
func (h *Handler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx := r.Context()

	if claims.IsAdmin() {
		submissions, err := h.submissionService.GetPendingReview(ctx)
		if err != nil {
			h.handleServiceError(w, err)
			return
		}
		writeSuccess(w, submissions)
		return
	}

	submissions, err := h.submissionService.GetSubmissionsByStudent(ctx, claims.Subject)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, submissions)
}

func (h *Handler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	submissionID := chi.URLParam(r, "id")
	if submissionID == "" {
		writeError(w, http.StatusBadRequest, "Submission ID is required")
		return
	}

	ctx := r.Context()
	submission, err := h.submissionService.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	if !claims.IsAdmin() && submission.StudentID != claims.Subject {
		writeError(w, http.StatusForbidden, "Access denied")
		return
	}

	writeSuccess(w, submission)
}

func (h *Handler) ReviewSubmission(w http.ResponseWriter, r *http.Request) {
	submissionID := chi.URLParam(r, "id")
	if submissionID == "" {
		writeError(w, http.StatusBadRequest, "Submission ID is required")
		return
	}

	var req models.ReviewSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg := validation.Struct(&req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	ctx := r.Context()
	submission, err := h.submissionService.ReviewSubmission(ctx, submissionID, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, submission)
}
