package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"

	"github.com/tartil-app/recital-service/internal/models"
)

type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	GetByID(ctx context.Context, id string) (*models.SubmissionWithDetails, error)
	GetByStudentID(ctx context.Context, studentID string) ([]models.SubmissionWithDetails, error)
	GetPendingReview(ctx context.Context) ([]models.SubmissionWithDetails, error)
	GetRecent(ctx context.Context, studentID string, limit int) ([]models.SubmissionWithDetails, error)
	UpdateReview(ctx context.Context, id, status string, grade *float64) error
	CountByStudent(ctx context.Context, studentID string) (int, error)
	CountByStudentAndStatus(ctx context.Context, studentID, status string) (int, error)
	CountAll(ctx context.Context) (int, error)
	CountPendingReview(ctx context.Context) (int, error)
	AverageGrade(ctx context.Context) (float64, error)
	AverageGradeByStudent(ctx context.Context, studentID string) (float64, error)
}

type submissionRepository struct {
	*PostgresRepository
}

func NewSubmissionRepository(db *sql.DB, logger zerolog.Logger) SubmissionRepository {
	return &submissionRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

const submissionDetailsSelect = `
	SELECT
		s.id, s.student_id, s.assignment_id, s.audio_url, s.duration, s.status, s.grade, s.created_at, s.updated_at,
		u.name AS student_name, u.email AS student_email, u.level AS student_level,
		a.type AS assignment_type, a.surah, a.start_verse, a.end_verse
	FROM submissions s
	JOIN users u ON s.student_id = u.id
	JOIN assignments a ON s.assignment_id = a.id
`

func scanSubmissionDetails(scanner interface{ Scan(...interface{}) error }) (*models.SubmissionWithDetails, error) {
	submission := &models.SubmissionWithDetails{}
	err := scanner.Scan(
		&submission.ID,
		&submission.StudentID,
		&submission.AssignmentID,
		&submission.AudioURL,
		&submission.Duration,
		&submission.Status,
		&submission.Grade,
		&submission.CreatedAt,
		&submission.UpdatedAt,
		&submission.StudentName,
		&submission.StudentEmail,
		&submission.StudentLevel,
		&submission.AssignmentType,
		&submission.Surah,
		&submission.StartVerse,
		&submission.EndVerse,
	)
	return submission, err
}

func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	query := `
		INSERT INTO submissions (id, student_id, assignment_id, audio_url, duration, status, grade, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		submission.ID,
		submission.StudentID,
		submission.AssignmentID,
		submission.AudioURL,
		submission.Duration,
		submission.Status,
		submission.Grade,
		submission.CreatedAt,
		submission.UpdatedAt,
	)

	return err
}

func (r *submissionRepository) GetByID(ctx context.Context, id string) (*models.SubmissionWithDetails, error) {
	query := submissionDetailsSelect + ` WHERE s.id = $1`

	submission, err := scanSubmissionDetails(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return submission, nil
}

func (r *submissionRepository) GetByStudentID(ctx context.Context, studentID string) ([]models.SubmissionWithDetails, error) {
	query := submissionDetailsSelect + `
		WHERE s.student_id = $1
		ORDER BY s.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSubmissionDetails(rows)
}

// GetPendingReview lists the instructor review queue, oldest first.
func (r *submissionRepository) GetPendingReview(ctx context.Context) ([]models.SubmissionWithDetails, error) {
	query := submissionDetailsSelect + `
		WHERE s.status IN ('PENDING', 'IN_REVIEW')
		ORDER BY s.created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSubmissionDetails(rows)
}

func (r *submissionRepository) GetRecent(ctx context.Context, studentID string, limit int) ([]models.SubmissionWithDetails, error) {
	var rows *sql.Rows
	var err error

	if studentID != "" {
		query := submissionDetailsSelect + `
			WHERE s.student_id = $1
			ORDER BY s.created_at DESC
			LIMIT $2
		`
		rows, err = r.db.QueryContext(ctx, query, studentID, limit)
	} else {
		query := submissionDetailsSelect + `
			ORDER BY s.created_at DESC
			LIMIT $1
		`
		rows, err = r.db.QueryContext(ctx, query, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSubmissionDetails(rows)
}

func collectSubmissionDetails(rows *sql.Rows) ([]models.SubmissionWithDetails, error) {
	var submissions []models.SubmissionWithDetails
	for rows.Next() {
		submission, err := scanSubmissionDetails(rows)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, *submission)
	}

	return submissions, rows.Err()
}

// UpdateReview sets the status and, when provided, the grade. A nil grade
// leaves the stored grade untouched.
func (r *submissionRepository) UpdateReview(ctx context.Context, id, status string, grade *float64) error {
	query := `
		UPDATE submissions
		SET status = $1, grade = COALESCE($2, grade), updated_at = $3
		WHERE id = $4
	`

	_, err := r.db.ExecContext(ctx, query, status, grade, time.Now(), id)
	return err
}

func (r *submissionRepository) CountByStudent(ctx context.Context, studentID string) (int, error) {
	query := `SELECT COUNT(*) FROM submissions WHERE student_id = $1`

	var count int
	err := r.db.QueryRowContext(ctx, query, studentID).Scan(&count)
	return count, err
}

func (r *submissionRepository) CountByStudentAndStatus(ctx context.Context, studentID, status string) (int, error) {
	query := `SELECT COUNT(*) FROM submissions WHERE student_id = $1 AND status = $2`

	var count int
	err := r.db.QueryRowContext(ctx, query, studentID, status).Scan(&count)
	return count, err
}

func (r *submissionRepository) CountAll(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM submissions`

	var count int
	err := r.db.QueryRowContext(ctx, query).Scan(&count)
	return count, err
}

func (r *submissionRepository) CountPendingReview(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM submissions WHERE status IN ('PENDING', 'IN_REVIEW')`

	var count int
	err := r.db.QueryRowContext(ctx, query).Scan(&count)
	return count, err
}

func (r *submissionRepository) AverageGrade(ctx context.Context) (float64, error) {
	query := `SELECT COALESCE(AVG(grade), 0) FROM submissions WHERE grade IS NOT NULL`

	var avg float64
	err := r.db.QueryRowContext(ctx, query).Scan(&avg)
	return avg, err
}

func (r *submissionRepository) AverageGradeByStudent(ctx context.Context, studentID string) (float64, error) {
	query := `SELECT COALESCE(AVG(grade), 0) FROM submissions WHERE student_id = $1 AND grade IS NOT NULL`

	var avg float64
	err := r.db.QueryRowContext(ctx, query, studentID).Scan(&avg)
	return avg, err
}
