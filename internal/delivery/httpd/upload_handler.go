package httpd

import (
	"encoding/json"
	"net/http"

	"github.com/tartil-app/recital-service/internal/models"
	"github.com/tartil-app/recital-service/internal/validation"
)

// CreateUploadURL hands the client a presigned PUT URL so the recording goes
// directly to object storage without passing through this server.
func (h *Handler) CreateUploadURL(w http.ResponseWriter, r *http.Request) {
	var req models.UploadURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg := validation.Struct(&req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	ctx := r.Context()
	response, err := h.uploadService.CreateUploadURL(ctx, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, response)
}
