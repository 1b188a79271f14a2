package httpd

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/tartil-app/recital-service/internal/models"
	"github.com/tartil-app/recital-service/internal/validation"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg := validation.Struct(&req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	ctx := r.Context()
	user, err := h.authService.Register(ctx, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeData(w, http.StatusCreated, authResponse(user))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg := validation.Struct(&req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	ctx := r.Context()
	user, err := h.authService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to sign session token")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.setSessionCookie(w, token)
	writeSuccess(w, authResponse(user))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	writeSuccess(w, map[string]interface{}{
		"message": "Logged out",
	})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	ctx := r.Context()
	user, err := h.authService.GetUserByID(ctx, claims.Subject)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, authResponse(user))
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.authConfig.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokens.TTL() / time.Second),
		HttpOnly: true,
		Secure:   h.authConfig.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.authConfig.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.authConfig.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func authResponse(user *models.User) *models.AuthResponse {
	return &models.AuthResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		Level: user.Level,
	}
}
