package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tartil-app/recital-service/internal/models"
	"github.com/tartil-app/recital-service/internal/repository"
)

type ProgressService interface {
	UpsertProgress(ctx context.Context, studentID string, req *models.UpsertProgressRequest) (*models.Progress, error)
	GetProgressByStudent(ctx context.Context, studentID string) ([]models.Progress, error)
}

type progressService struct {
	progressRepo repository.ProgressRepository
	logger       zerolog.Logger
}

func NewProgressService(progressRepo repository.ProgressRepository, logger zerolog.Logger) ProgressService {
	return &progressService{
		progressRepo: progressRepo,
		logger:       logger,
	}
}

func (s *progressService) UpsertProgress(ctx context.Context, studentID string, req *models.UpsertProgressRequest) (*models.Progress, error) {
	if !models.IsValidSurah(req.Surah) {
		return nil, ErrInvalidSurah
	}

	if req.Grade != nil && (*req.Grade < 0 || *req.Grade > maxGrade) {
		return nil, ErrGradeOutOfRange
	}

	progress := &models.Progress{
		ID:        uuid.New().String(),
		StudentID: studentID,
		Surah:     req.Surah,
		Completed: req.Completed,
		Grade:     req.Grade,
		UpdatedAt: time.Now(),
	}

	if err := s.progressRepo.Upsert(ctx, progress); err != nil {
		return nil, fmt.Errorf("failed to upsert progress: %w", err)
	}

	s.logger.Info().
		Str("student_id", studentID).
		Int("surah", req.Surah).
		Bool("completed", req.Completed).
		Msg("Progress updated")

	return progress, nil
}

func (s *progressService) GetProgressByStudent(ctx context.Context, studentID string) ([]models.Progress, error) {
	entries, err := s.progressRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}

	return entries, nil
}
