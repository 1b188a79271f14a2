package httpd

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/tartil-app/recital-service/internal/auth"
	"github.com/tartil-app/recital-service/internal/config"
	"github.com/tartil-app/recital-service/internal/service"
)

type Handler struct {
	authService       service.AuthService
	submissionService service.SubmissionService
	feedbackService   service.FeedbackService
	progressService   service.ProgressService
	statsService      service.StatsService
	uploadService     service.UploadService
	assignmentService service.AssignmentService
	tokens            *auth.TokenManager
	authConfig        config.AuthConfig
	logger            zerolog.Logger
}

func NewHandler(
	authService service.AuthService,
	submissionService service.SubmissionService,
	feedbackService service.FeedbackService,
	progressService service.ProgressService,
	statsService service.StatsService,
	uploadService service.UploadService,
	assignmentService service.AssignmentService,
	tokens *auth.TokenManager,
	authConfig config.AuthConfig,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		authService:       authService,
		submissionService: submissionService,
		feedbackService:   feedbackService,
		progressService:   progressService,
		statsService:      statsService,
		uploadService:     uploadService,
		assignmentService: assignmentService,
		tokens:            tokens,
		authConfig:        authConfig,
		logger:            logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)

	router.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.Post("/logout", h.Logout)
			r.With(h.SessionAuth).Get("/me", h.Me)
		})

		api.Group(func(r chi.Router) {
			r.Use(h.SessionAuth)

			r.Route("/submissions", func(r chi.Router) {
				r.With(h.RequireStudent).Post("/", h.CreateSubmission)
				r.Get("/", h.ListSubmissions)
				r.Get("/{id}", h.GetSubmission)
				r.With(h.RequireAdmin).Patch("/{id}", h.ReviewSubmission)
			})

			r.Route("/feedback", func(r chi.Router) {
				r.With(h.RequireAdmin).Post("/", h.CreateFeedback)
				r.Get("/{submissionId}", h.GetFeedback)
			})

			r.Route("/progress", func(r chi.Router) {
				r.Get("/", h.GetProgress)
				r.Put("/", h.UpsertProgress)
			})

			r.Route("/stats", func(r chi.Router) {
				r.With(h.RequireStudent).Get("/student", h.StudentStats)
				r.With(h.RequireAdmin).Get("/admin", h.AdminStats)
			})

			r.Route("/assignments", func(r chi.Router) {
				r.Get("/", h.ListAssignments)
				r.Get("/{id}", h.GetAssignment)
				r.With(h.RequireAdmin).Post("/", h.CreateAssignment)
			})

			r.Post("/upload", h.CreateUploadURL)
		})
	})
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "recital-service",
		"timestamp": time.Now().UTC(),
	}

	writeJSON(w, http.StatusOK, response)
}

// handleServiceError maps domain errors onto HTTP statuses. Anything
// unrecognized is logged and reported as a generic 500.
func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSubmissionNotFound),
		errors.Is(err, service.ErrAssignmentNotFound),
		errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrGradeRequired),
		errors.Is(err, service.ErrGradeOutOfRange),
		errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrTimestampOutOfRange),
		errors.Is(err, service.ErrInvalidSurah),
		errors.Is(err, service.ErrInvalidVerseRange),
		errors.Is(err, service.ErrInvalidAssignmentType),
		errors.Is(err, service.ErrInvalidFileType):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("Service error")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error":   http.StatusText(status),
		"message": message,
	})
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	writeData(w, http.StatusOK, data)
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	response := map[string]interface{}{
		"success": true,
		"data":    data,
	}
	writeJSON(w, status, response)
}
