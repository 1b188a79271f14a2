package models

import (
	"time"
)

type Submission struct {
	ID           string    `json:"id" db:"id"`
	StudentID    string    `json:"student_id" db:"student_id"`
	AssignmentID string    `json:"assignment_id" db:"assignment_id"`
	AudioURL     string    `json:"audio_url" db:"audio_url"`
	Duration     int       `json:"duration" db:"duration"`
	Status       string    `json:"status" db:"status"` // PENDING, IN_REVIEW, APPROVED, RETRY_REQUESTED
	Grade        *float64  `json:"grade" db:"grade"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type SubmissionWithDetails struct {
	Submission
	StudentName    string              `json:"student_name" db:"student_name"`
	StudentEmail   string              `json:"student_email" db:"student_email"`
	StudentLevel   *string             `json:"student_level,omitempty" db:"student_level"`
	AssignmentType string              `json:"assignment_type" db:"assignment_type"`
	Surah          int                 `json:"surah" db:"surah"`
	StartVerse     int                 `json:"start_verse" db:"start_verse"`
	EndVerse       int                 `json:"end_verse" db:"end_verse"`
	Feedback       []FeedbackWithAdmin `json:"feedback"`
}

type SubmissionStatus string

const (
	SubmissionPending        SubmissionStatus = "PENDING"
	SubmissionInReview       SubmissionStatus = "IN_REVIEW"
	SubmissionApproved       SubmissionStatus = "APPROVED"
	SubmissionRetryRequested SubmissionStatus = "RETRY_REQUESTED"
)

func (s SubmissionStatus) String() string {
	return string(s)
}

func IsValidSubmissionStatus(status string) bool {
	switch status {
	case "PENDING", "IN_REVIEW", "APPROVED", "RETRY_REQUESTED":
		return true
	default:
		return false
	}
}
