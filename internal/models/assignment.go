package models

import (
	"time"
)

type Assignment struct {
	ID          string     `json:"id" db:"id"`
	Type        string     `json:"type" db:"type"`
	Surah       int        `json:"surah" db:"surah"`
	StartVerse  int        `json:"start_verse" db:"start_verse"`
	EndVerse    int        `json:"end_verse" db:"end_verse"`
	Description *string    `json:"description,omitempty" db:"description"`
	DueDate     *time.Time `json:"due_date,omitempty" db:"due_date"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

type AssignmentWithCount struct {
	Assignment
	SubmissionCount int `json:"submission_count" db:"submission_count"`
}

type AssignmentType string

const (
	AssignmentHifz       AssignmentType = "HIFZ"
	AssignmentRecitation AssignmentType = "RECITATION"
	AssignmentTajweed    AssignmentType = "TAJWEED"
)

func (t AssignmentType) String() string {
	return string(t)
}

func IsValidAssignmentType(assignmentType string) bool {
	switch assignmentType {
	case "HIFZ", "RECITATION", "TAJWEED":
		return true
	default:
		return false
	}
}
