package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tartil-app/recital-service/internal/models"
	"github.com/tartil-app/recital-service/internal/repository"
	"github.com/tartil-app/recital-service/internal/service/integration"
)

const (
	minGrade = 1
	maxGrade = 10
)

type SubmissionService interface {
	CreateSubmission(ctx context.Context, studentID string, req *models.CreateSubmissionRequest) (*models.SubmissionResponse, error)
	GetSubmissionByID(ctx context.Context, id string) (*models.SubmissionWithDetails, error)
	GetSubmissionsByStudent(ctx context.Context, studentID string) ([]models.SubmissionWithDetails, error)
	GetPendingReview(ctx context.Context) ([]models.SubmissionWithDetails, error)
	ReviewSubmission(ctx context.Context, id string, req *models.ReviewSubmissionRequest) (*models.SubmissionWithDetails, error)
}

type submissionService struct {
	submissionRepo repository.SubmissionRepository
	assignmentRepo repository.AssignmentRepository
	feedbackRepo   repository.FeedbackRepository
	events         integration.EventPublisher
	logger         zerolog.Logger
}

func NewSubmissionService(
	submissionRepo repository.SubmissionRepository,
	assignmentRepo repository.AssignmentRepository,
	feedbackRepo repository.FeedbackRepository,
	events integration.EventPublisher,
	logger zerolog.Logger,
) SubmissionService {
	return &submissionService{
		submissionRepo: submissionRepo,
		assignmentRepo: assignmentRepo,
		feedbackRepo:   feedbackRepo,
		events:         events,
		logger:         logger,
	}
}

// CreateSubmission registers an already-uploaded recording against an
// assignment. The audio blob itself went straight to object storage via a
// presigned URL, so the record only carries the resulting URL and duration.
func (s *submissionService) CreateSubmission(ctx context.Context, studentID string, req *models.CreateSubmissionRequest) (*models.SubmissionResponse, error) {
	exists, err := s.assignmentRepo.Exists(ctx, req.AssignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check assignment existence: %w", err)
	}
	if !exists {
		return nil, ErrAssignmentNotFound
	}

	now := time.Now()
	submission := &models.Submission{
		ID:           uuid.New().String(),
		StudentID:    studentID,
		AssignmentID: req.AssignmentID,
		AudioURL:     req.AudioURL,
		Duration:     req.Duration,
		Status:       models.SubmissionPending.String(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	s.logger.Info().
		Str("submission_id", submission.ID).
		Str("student_id", studentID).
		Str("assignment_id", req.AssignmentID).
		Msg("Submission created")

	if s.events != nil {
		event := &models.SubmissionCreatedEvent{
			SubmissionID: submission.ID,
			StudentID:    studentID,
			AssignmentID: req.AssignmentID,
			Timestamp:    now.Unix(),
		}
		if err := s.events.PublishSubmissionCreated(ctx, event); err != nil {
			s.logger.Error().Err(err).Msg("Failed to publish submission created event")
		}
	}

	return &models.SubmissionResponse{
		ID:        submission.ID,
		Status:    submission.Status,
		CreatedAt: submission.CreatedAt,
	}, nil
}

func (s *submissionService) GetSubmissionByID(ctx context.Context, id string) (*models.SubmissionWithDetails, error) {
	submission, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if submission == nil {
		return nil, ErrSubmissionNotFound
	}

	if err := s.attachFeedback(ctx, submission); err != nil {
		return nil, err
	}

	return submission, nil
}

func (s *submissionService) GetSubmissionsByStudent(ctx context.Context, studentID string) ([]models.SubmissionWithDetails, error) {
	submissions, err := s.submissionRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submissions by student: %w", err)
	}

	for i := range submissions {
		if err := s.attachFeedback(ctx, &submissions[i]); err != nil {
			return nil, err
		}
	}

	return submissions, nil
}

// attachFeedback loads the submission's feedback entries, ordered by their
// position on the audio timeline. The student dashboard and the review player
// both render from this embedded list.
func (s *submissionService) attachFeedback(ctx context.Context, submission *models.SubmissionWithDetails) error {
	entries, err := s.feedbackRepo.GetBySubmissionID(ctx, submission.ID)
	if err != nil {
		return fmt.Errorf("failed to get feedback: %w", err)
	}
	submission.Feedback = entries
	return nil
}

func (s *submissionService) GetPendingReview(ctx context.Context) ([]models.SubmissionWithDetails, error) {
	submissions, err := s.submissionRepo.GetPendingReview(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending submissions: %w", err)
	}

	return submissions, nil
}

// ReviewSubmission transitions a submission's status. Any status may follow
// any other; the single guard is that APPROVED requires a grade. A provided
// grade is persisted on every transition, a nil grade leaves the stored one
// untouched.
func (s *submissionService) ReviewSubmission(ctx context.Context, id string, req *models.ReviewSubmissionRequest) (*models.SubmissionWithDetails, error) {
	submission, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if submission == nil {
		return nil, ErrSubmissionNotFound
	}

	if !models.IsValidSubmissionStatus(req.Status) {
		return nil, ErrInvalidStatus
	}

	if req.Status == models.SubmissionApproved.String() && req.Grade == nil {
		return nil, ErrGradeRequired
	}

	if req.Grade != nil && (*req.Grade < minGrade || *req.Grade > maxGrade) {
		return nil, ErrGradeOutOfRange
	}

	if err := s.submissionRepo.UpdateReview(ctx, id, req.Status, req.Grade); err != nil {
		return nil, fmt.Errorf("failed to update submission: %w", err)
	}

	s.logger.Info().
		Str("submission_id", id).
		Str("status", req.Status).
		Msg("Submission reviewed")

	if s.events != nil {
		event := &models.SubmissionReviewedEvent{
			SubmissionID: id,
			StudentID:    submission.StudentID,
			Status:       req.Status,
			Grade:        req.Grade,
			Timestamp:    time.Now().Unix(),
		}
		if err := s.events.PublishSubmissionReviewed(ctx, event); err != nil {
			s.logger.Error().Err(err).Msg("Failed to publish submission reviewed event")
		}
	}

	return s.GetSubmissionByID(ctx, id)
}
