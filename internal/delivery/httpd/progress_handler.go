package httpd

import (
	"encoding/json"
	"net/http"

	"github.com/tartil-app/recital-service/internal/models"
	"github.com/tartil-app/recital-service/internal/validation"
)

func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx := r.Context()
	entries, err := h.progressService.GetProgressByStudent(ctx, claims.Subject)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, entries)
}

func (h *Handler) UpsertProgress(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.UpsertProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg := validation.Struct(&req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	ctx := r.Context()
	progress, err := h.progressService.UpsertProgress(ctx, claims.Subject, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, progress)
}
