package httpd

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tartil-app/recital-service/internal/models"
	"github.com/tartil-app/recital-service/internal/validation"
)

func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg := validation.Struct(&req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	ctx := r.Context()
	assignment, err := h.assignmentService.CreateAssignment(ctx, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeData(w, http.StatusCreated, assignment)
}

func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	assignments, err := h.assignmentService.GetAssignments(ctx)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, assignments)
}

func (h *Handler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	assignmentID := chi.URLParam(r, "id")
	if assignmentID == "" {
		writeError(w, http.StatusBadRequest, "Assignment ID is required")
		return
	}

	ctx := r.Context()
	assignment, err := h.assignmentService.GetAssignmentByID(ctx, assignmentID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, assignment)
}
