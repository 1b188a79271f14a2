package models

import (
	"time"
)

type Feedback struct {
	ID           string    `json:"id" db:"id"`
	SubmissionID string    `json:"submission_id" db:"submission_id"`
	AdminID      string    `json:"admin_id" db:"admin_id"`
	Timestamp    float64   `json:"timestamp" db:"timestamp"` // seconds into the audio track
	Comment      string    `json:"comment" db:"comment"`
	Category     *string   `json:"category,omitempty" db:"category"`
	AudioURL     *string   `json:"audio_url,omitempty" db:"audio_url"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type FeedbackWithAdmin struct {
	Feedback
	AdminName  string `json:"admin_name" db:"admin_name"`
	AdminEmail string `json:"admin_email" db:"admin_email"`
}

// FeedbackCategory names the Tajweed rule (or pronunciation issue) an
// annotation refers to.
type FeedbackCategory string

const (
	CategoryMadd          FeedbackCategory = "MADD"
	CategoryGhunnah       FeedbackCategory = "GHUNNAH"
	CategoryIkhfa         FeedbackCategory = "IKHFA"
	CategoryIzhar         FeedbackCategory = "IZHAR"
	CategoryIdgham        FeedbackCategory = "IDGHAM"
	CategoryQalqalah      FeedbackCategory = "QALQALAH"
	CategoryPronunciation FeedbackCategory = "PRONUNCIATION"
	CategoryOther         FeedbackCategory = "OTHER"
)

func (c FeedbackCategory) String() string {
	return string(c)
}

func IsValidFeedbackCategory(category string) bool {
	switch category {
	case "MADD", "GHUNNAH", "IKHFA", "IZHAR", "IDGHAM", "QALQALAH", "PRONUNCIATION", "OTHER":
		return true
	default:
		return false
	}
}
