package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/tartil-app/recital-service/internal/models"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	GetBySubmissionID(ctx context.Context, submissionID string) ([]models.FeedbackWithAdmin, error)
	CountByCategory(ctx context.Context) ([]models.CategoryCount, error)
}

type feedbackRepository struct {
	*PostgresRepository
}

func NewFeedbackRepository(db *sql.DB, logger zerolog.Logger) FeedbackRepository {
	return &feedbackRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	query := `
		INSERT INTO feedback (id, submission_id, admin_id, ts, comment, category, audio_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		feedback.ID,
		feedback.SubmissionID,
		feedback.AdminID,
		feedback.Timestamp,
		feedback.Comment,
		feedback.Category,
		feedback.AudioURL,
		feedback.CreatedAt,
	)

	return err
}

// GetBySubmissionID returns feedback entries ordered by their position on the
// audio timeline. Entries may share a timestamp.
func (r *feedbackRepository) GetBySubmissionID(ctx context.Context, submissionID string) ([]models.FeedbackWithAdmin, error) {
	query := `
		SELECT
			f.id, f.submission_id, f.admin_id, f.ts, f.comment, f.category, f.audio_url, f.created_at,
			u.name AS admin_name, u.email AS admin_email
		FROM feedback f
		JOIN users u ON f.admin_id = u.id
		WHERE f.submission_id = $1
		ORDER BY f.ts ASC, f.created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, submissionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.FeedbackWithAdmin
	for rows.Next() {
		var entry models.FeedbackWithAdmin
		err := rows.Scan(
			&entry.ID,
			&entry.SubmissionID,
			&entry.AdminID,
			&entry.Timestamp,
			&entry.Comment,
			&entry.Category,
			&entry.AudioURL,
			&entry.CreatedAt,
			&entry.AdminName,
			&entry.AdminEmail,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (r *feedbackRepository) CountByCategory(ctx context.Context) ([]models.CategoryCount, error) {
	query := `
		SELECT category, COUNT(*) AS count
		FROM feedback
		WHERE category IS NOT NULL
		GROUP BY category
		ORDER BY count DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []models.CategoryCount
	for rows.Next() {
		var c models.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}
