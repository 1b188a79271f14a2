package models

import (
	"time"
)

// Progress tracks one surah for one student. One row per (student, surah),
// maintained by upsert.
type Progress struct {
	ID        string    `json:"id" db:"id"`
	StudentID string    `json:"student_id" db:"student_id"`
	Surah     int       `json:"surah" db:"surah"`
	Completed bool      `json:"completed" db:"completed"`
	Grade     *float64  `json:"grade" db:"grade"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
