package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/tartil-app/recital-service/internal/models"
)

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	GetByID(ctx context.Context, id string) (*models.Assignment, error)
	GetAll(ctx context.Context) ([]models.AssignmentWithCount, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type assignmentRepository struct {
	*PostgresRepository
}

func NewAssignmentRepository(db *sql.DB, logger zerolog.Logger) AssignmentRepository {
	return &assignmentRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	query := `
		INSERT INTO assignments (id, type, surah, start_verse, end_verse, description, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		assignment.ID,
		assignment.Type,
		assignment.Surah,
		assignment.StartVerse,
		assignment.EndVerse,
		assignment.Description,
		assignment.DueDate,
		assignment.CreatedAt,
		assignment.UpdatedAt,
	)

	return err
}

func (r *assignmentRepository) GetByID(ctx context.Context, id string) (*models.Assignment, error) {
	query := `
		SELECT id, type, surah, start_verse, end_verse, description, due_date, created_at, updated_at
		FROM assignments
		WHERE id = $1
	`

	assignment := &models.Assignment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&assignment.ID,
		&assignment.Type,
		&assignment.Surah,
		&assignment.StartVerse,
		&assignment.EndVerse,
		&assignment.Description,
		&assignment.DueDate,
		&assignment.CreatedAt,
		&assignment.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return assignment, err
}

func (r *assignmentRepository) GetAll(ctx context.Context) ([]models.AssignmentWithCount, error) {
	query := `
		SELECT
			a.id, a.type, a.surah, a.start_verse, a.end_verse, a.description, a.due_date, a.created_at, a.updated_at,
			COUNT(s.id) AS submission_count
		FROM assignments a
		LEFT JOIN submissions s ON s.assignment_id = a.id
		GROUP BY a.id
		ORDER BY a.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []models.AssignmentWithCount
	for rows.Next() {
		var assignment models.AssignmentWithCount
		err := rows.Scan(
			&assignment.ID,
			&assignment.Type,
			&assignment.Surah,
			&assignment.StartVerse,
			&assignment.EndVerse,
			&assignment.Description,
			&assignment.DueDate,
			&assignment.CreatedAt,
			&assignment.UpdatedAt,
			&assignment.SubmissionCount,
		)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	return assignments, rows.Err()
}

func (r *assignmentRepository) Exists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM assignments WHERE id = $1)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	return exists, err
}
