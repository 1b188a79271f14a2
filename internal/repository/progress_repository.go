package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/tartil-app/recital-service/internal/models"
)

type ProgressRepository interface {
	Upsert(ctx context.Context, progress *models.Progress) error
	GetByStudentID(ctx context.Context, studentID string) ([]models.Progress, error)
	CountCompleted(ctx context.Context, studentID string) (int, error)
}

type progressRepository struct {
	*PostgresRepository
}

func NewProgressRepository(db *sql.DB, logger zerolog.Logger) ProgressRepository {
	return &progressRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

// Upsert writes the (student, surah) row, creating it on first write and
// replacing completed thereafter. A nil grade leaves the stored grade
// untouched. The unique constraint on (student_id, surah) guarantees a single
// row per pair; the returned id and grade reflect the stored row.
func (r *progressRepository) Upsert(ctx context.Context, progress *models.Progress) error {
	query := `
		INSERT INTO progress (id, student_id, surah, completed, grade, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (student_id, surah)
		DO UPDATE SET completed = EXCLUDED.completed, grade = COALESCE(EXCLUDED.grade, progress.grade), updated_at = EXCLUDED.updated_at
		RETURNING id, grade
	`

	return r.db.QueryRowContext(ctx, query,
		progress.ID,
		progress.StudentID,
		progress.Surah,
		progress.Completed,
		progress.Grade,
		progress.UpdatedAt,
	).Scan(&progress.ID, &progress.Grade)
}

func (r *progressRepository) GetByStudentID(ctx context.Context, studentID string) ([]models.Progress, error) {
	query := `
		SELECT id, student_id, surah, completed, grade, updated_at
		FROM progress
		WHERE student_id = $1
		ORDER BY surah ASC
	`

	rows, err := r.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.Progress
	for rows.Next() {
		var entry models.Progress
		err := rows.Scan(
			&entry.ID,
			&entry.StudentID,
			&entry.Surah,
			&entry.Completed,
			&entry.Grade,
			&entry.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (r *progressRepository) CountCompleted(ctx context.Context, studentID string) (int, error) {
	query := `SELECT COUNT(*) FROM progress WHERE student_id = $1 AND completed = TRUE`

	var count int
	err := r.db.QueryRowContext(ctx, query, studentID).Scan(&count)
	return count, err
}
