package models

import "time"

// Data Transfer Objects

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Role  string  `json:"role"`
	Level *string `json:"level,omitempty"`
}

type CreateSubmissionRequest struct {
	AssignmentID string `json:"assignment_id" validate:"required,uuid"`
	AudioURL     string `json:"audio_url" validate:"required,url"`
	Duration     int    `json:"duration" validate:"required,gt=0"`
}

type ReviewSubmissionRequest struct {
	Status string   `json:"status" validate:"required"`
	Grade  *float64 `json:"grade,omitempty"`
}

type SubmissionResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateFeedbackRequest struct {
	SubmissionID string   `json:"submission_id" validate:"required,uuid"`
	Timestamp    *float64 `json:"timestamp" validate:"required"`
	Comment      string   `json:"comment" validate:"required,max=2000"`
	Category     *string  `json:"category,omitempty"`
	AudioURL     *string  `json:"audio_url,omitempty"`
}

type UpsertProgressRequest struct {
	Surah     int      `json:"surah" validate:"required"`
	Completed bool     `json:"completed"`
	Grade     *float64 `json:"grade,omitempty"`
}

type CreateAssignmentRequest struct {
	Type        string     `json:"type" validate:"required"`
	Surah       int        `json:"surah" validate:"required"`
	StartVerse  int        `json:"start_verse" validate:"required,gte=1"`
	EndVerse    int        `json:"end_verse" validate:"required,gte=1"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=1000"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

type UploadURLRequest struct {
	FileName string `json:"file_name" validate:"required,max=255"`
	FileType string `json:"file_type" validate:"required,max=100"`
}

type UploadURLResponse struct {
	UploadURL string `json:"upload_url"`
	FileURL   string `json:"file_url"`
	Key       string `json:"key"`
}

type CategoryCount struct {
	Category string `json:"category" db:"category"`
	Count    int    `json:"count" db:"count"`
}

type StudentStats struct {
	TotalSubmissions    int                     `json:"total_submissions"`
	PendingSubmissions  int                     `json:"pending_submissions"`
	ApprovedSubmissions int                     `json:"approved_submissions"`
	RetrySubmissions    int                     `json:"retry_submissions"`
	AverageGrade        float64                 `json:"average_grade"`
	CompletedSurahs     int                     `json:"completed_surahs"`
	TotalSurahs         int                     `json:"total_surahs"`
	RecentActivity      []SubmissionWithDetails `json:"recent_activity"`
}

type AdminStats struct {
	TotalStudents     int                     `json:"total_students"`
	PendingReviews    int                     `json:"pending_reviews"`
	TotalSubmissions  int                     `json:"total_submissions"`
	AverageGrade      float64                 `json:"average_grade"`
	RecentSubmissions []SubmissionWithDetails `json:"recent_submissions"`
	CategoryStats     []CategoryCount         `json:"category_stats"`
}
