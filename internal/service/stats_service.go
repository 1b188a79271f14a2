package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tartil-app/recital-service/internal/models"
	"github.com/tartil-app/recital-service/internal/repository"
)

const (
	studentRecentLimit = 5
	adminRecentLimit   = 10
)

type StatsService interface {
	GetStudentStats(ctx context.Context, studentID string) (*models.StudentStats, error)
	GetAdminStats(ctx context.Context) (*models.AdminStats, error)
}

type statsService struct {
	submissionRepo repository.SubmissionRepository
	progressRepo   repository.ProgressRepository
	feedbackRepo   repository.FeedbackRepository
	userRepo       repository.UserRepository
	logger         zerolog.Logger
}

func NewStatsService(
	submissionRepo repository.SubmissionRepository,
	progressRepo repository.ProgressRepository,
	feedbackRepo repository.FeedbackRepository,
	userRepo repository.UserRepository,
	logger zerolog.Logger,
) StatsService {
	return &statsService{
		submissionRepo: submissionRepo,
		progressRepo:   progressRepo,
		feedbackRepo:   feedbackRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

// GetStudentStats aggregates the dashboard figures for one student. Counts
// are computed from the stored rows on every call; nothing is cached.
func (s *statsService) GetStudentStats(ctx context.Context, studentID string) (*models.StudentStats, error) {
	total, err := s.submissionRepo.CountByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to count submissions: %w", err)
	}

	pending, err := s.submissionRepo.CountByStudentAndStatus(ctx, studentID, models.SubmissionPending.String())
	if err != nil {
		return nil, fmt.Errorf("failed to count pending submissions: %w", err)
	}

	approved, err := s.submissionRepo.CountByStudentAndStatus(ctx, studentID, models.SubmissionApproved.String())
	if err != nil {
		return nil, fmt.Errorf("failed to count approved submissions: %w", err)
	}

	retry, err := s.submissionRepo.CountByStudentAndStatus(ctx, studentID, models.SubmissionRetryRequested.String())
	if err != nil {
		return nil, fmt.Errorf("failed to count retry submissions: %w", err)
	}

	averageGrade, err := s.submissionRepo.AverageGradeByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute average grade: %w", err)
	}

	completedSurahs, err := s.progressRepo.CountCompleted(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed surahs: %w", err)
	}

	recent, err := s.submissionRepo.GetRecent(ctx, studentID, studentRecentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent submissions: %w", err)
	}

	return &models.StudentStats{
		TotalSubmissions:    total,
		PendingSubmissions:  pending,
		ApprovedSubmissions: approved,
		RetrySubmissions:    retry,
		AverageGrade:        averageGrade,
		CompletedSurahs:     completedSurahs,
		TotalSurahs:         models.TotalSurahs,
		RecentActivity:      recent,
	}, nil
}

func (s *statsService) GetAdminStats(ctx context.Context) (*models.AdminStats, error) {
	totalStudents, err := s.userRepo.CountByRole(ctx, models.RoleStudent.String())
	if err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}

	pendingReviews, err := s.submissionRepo.CountPendingReview(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending reviews: %w", err)
	}

	totalSubmissions, err := s.submissionRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count submissions: %w", err)
	}

	averageGrade, err := s.submissionRepo.AverageGrade(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute average grade: %w", err)
	}

	recent, err := s.submissionRepo.GetRecent(ctx, "", adminRecentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent submissions: %w", err)
	}

	categoryStats, err := s.feedbackRepo.CountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count feedback categories: %w", err)
	}

	return &models.AdminStats{
		TotalStudents:     totalStudents,
		PendingReviews:    pendingReviews,
		TotalSubmissions:  totalSubmissions,
		AverageGrade:      averageGrade,
		RecentSubmissions: recent,
		CategoryStats:     categoryStats,
	}, nil
}
