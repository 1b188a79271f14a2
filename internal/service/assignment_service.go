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

type AssignmentService interface {
	CreateAssignment(ctx context.Context, req *models.CreateAssignmentRequest) (*models.Assignment, error)
	GetAssignments(ctx context.Context) ([]models.AssignmentWithCount, error)
	GetAssignmentByID(ctx context.Context, id string) (*models.Assignment, error)
}

type assignmentService struct {
	assignmentRepo repository.AssignmentRepository
	logger         zerolog.Logger
}

func NewAssignmentService(assignmentRepo repository.AssignmentRepository, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		logger:         logger,
	}
}

func (s *assignmentService) CreateAssignment(ctx context.Context, req *models.CreateAssignmentRequest) (*models.Assignment, error) {
	if !models.IsValidAssignmentType(req.Type) {
		return nil, ErrInvalidAssignmentType
	}

	verseCount, ok := models.SurahVerseCount(req.Surah)
	if !ok {
		return nil, ErrInvalidSurah
	}

	if req.StartVerse < 1 || req.StartVerse > req.EndVerse || req.EndVerse > verseCount {
		return nil, ErrInvalidVerseRange
	}

	now := time.Now()
	assignment := &models.Assignment{
		ID:          uuid.New().String(),
		Type:        req.Type,
		Surah:       req.Surah,
		StartVerse:  req.StartVerse,
		EndVerse:    req.EndVerse,
		Description: req.Description,
		DueDate:     req.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	s.logger.Info().
		Str("assignment_id", assignment.ID).
		Str("type", assignment.Type).
		Int("surah", assignment.Surah).
		Msg("Assignment created")

	return assignment, nil
}

func (s *assignmentService) GetAssignments(ctx context.Context) ([]models.AssignmentWithCount, error) {
	assignments, err := s.assignmentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignments: %w", err)
	}

	return assignments, nil
}

func (s *assignmentService) GetAssignmentByID(ctx context.Context, id string) (*models.Assignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	if assignment == nil {
		return nil, ErrAssignmentNotFound
	}

	return assignment, nil
}
