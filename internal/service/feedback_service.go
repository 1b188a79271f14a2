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

type FeedbackService interface {
	CreateFeedback(ctx context.Context, adminID string, req *models.CreateFeedbackRequest) (*models.Feedback, error)
	GetFeedbackBySubmission(ctx context.Context, submissionID string) ([]models.FeedbackWithAdmin, error)
}

type feedbackService struct {
	feedbackRepo   repository.FeedbackRepository
	submissionRepo repository.SubmissionRepository
	logger         zerolog.Logger
}

func NewFeedbackService(
	feedbackRepo repository.FeedbackRepository,
	submissionRepo repository.SubmissionRepository,
	logger zerolog.Logger,
) FeedbackService {
	return &feedbackService{
		feedbackRepo:   feedbackRepo,
		submissionRepo: submissionRepo,
		logger:         logger,
	}
}

// CreateFeedback anchors a comment to a point on the submission's audio
// timeline. The timestamp must fall within [0, duration]; several entries may
// share the same instant.
func (s *feedbackService) CreateFeedback(ctx context.Context, adminID string, req *models.CreateFeedbackRequest) (*models.Feedback, error) {
	submission, err := s.submissionRepo.GetByID(ctx, req.SubmissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if submission == nil {
		return nil, ErrSubmissionNotFound
	}

	if req.Category != nil && !models.IsValidFeedbackCategory(*req.Category) {
		return nil, ErrInvalidCategory
	}

	timestamp := *req.Timestamp
	if timestamp < 0 || timestamp > float64(submission.Duration) {
		return nil, ErrTimestampOutOfRange
	}

	feedback := &models.Feedback{
		ID:           uuid.New().String(),
		SubmissionID: req.SubmissionID,
		AdminID:      adminID,
		Timestamp:    timestamp,
		Comment:      req.Comment,
		Category:     req.Category,
		AudioURL:     req.AudioURL,
		CreatedAt:    time.Now(),
	}

	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}

	s.logger.Info().
		Str("feedback_id", feedback.ID).
		Str("submission_id", req.SubmissionID).
		Float64("timestamp", timestamp).
		Msg("Feedback created")

	return feedback, nil
}

func (s *feedbackService) GetFeedbackBySubmission(ctx context.Context, submissionID string) ([]models.FeedbackWithAdmin, error) {
	submission, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if submission == nil {
		return nil, ErrSubmissionNotFound
	}

	entries, err := s.feedbackRepo.GetBySubmissionID(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}

	return entries, nil
}
