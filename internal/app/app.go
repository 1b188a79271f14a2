package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/tartil-app/recital-service/internal/auth"
	"github.com/tartil-app/recital-service/internal/config"
	"github.com/tartil-app/recital-service/internal/delivery/httpd"
	"github.com/tartil-app/recital-service/internal/repository"
	"github.com/tartil-app/recital-service/internal/service"
	"github.com/tartil-app/recital-service/internal/service/integration"
	"github.com/tartil-app/recital-service/internal/storage"
)

type App struct {
	server *http.Server
	logger zerolog.Logger
	config *config.Config
	db     *sql.DB
	events integration.EventPublisher
}

func New(cfg *config.Config, log zerolog.Logger, db *sql.DB) (*App, error) {
	audioStore, err := storage.NewAudioStore(cfg.Storage, log)
	if err != nil {
		return nil, err
	}

	events, err := integration.NewRabbitMQPublisher(
		cfg.RabbitMQ.URL,
		cfg.RabbitMQ.Exchange,
		cfg.RabbitMQ.RoutingKey,
		cfg.RabbitMQ.QueueName,
		log,
	)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create RabbitMQ publisher; continuing without events")
		events = nil
	}

	userRepo := repository.NewUserRepository(db, log)
	assignmentRepo := repository.NewAssignmentRepository(db, log)
	submissionRepo := repository.NewSubmissionRepository(db, log)
	feedbackRepo := repository.NewFeedbackRepository(db, log)
	progressRepo := repository.NewProgressRepository(db, log)

	tokens := auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	authService := service.NewAuthService(userRepo, log)
	assignmentService := service.NewAssignmentService(assignmentRepo, log)
	submissionService := service.NewSubmissionService(submissionRepo, assignmentRepo, feedbackRepo, events, log)
	feedbackService := service.NewFeedbackService(feedbackRepo, submissionRepo, log)
	progressService := service.NewProgressService(progressRepo, log)
	statsService := service.NewStatsService(submissionRepo, progressRepo, feedbackRepo, userRepo, log)
	uploadService := service.NewUploadService(audioStore, cfg.Upload, log)

	handler := httpd.NewHandler(
		authService,
		submissionService,
		feedbackService,
		progressService,
		statsService,
		uploadService,
		assignmentService,
		tokens,
		cfg.Auth,
		log,
	)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		server: server,
		logger: log,
		config: cfg,
		db:     db,
		events: events,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info().Msgf("Starting recital service on %s", a.config.Server.Address)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down recital service...")

	if a.events != nil {
		if err := a.events.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close RabbitMQ connection")
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close database connection")
		}
	}

	return a.server.Shutdown(ctx)
}
