package models

type SubmissionCreatedEvent struct {
	SubmissionID string `json:"submission_id"`
	StudentID    string `json:"student_id"`
	AssignmentID string `json:"assignment_id"`
	Timestamp    int64  `json:"timestamp"`
}

type SubmissionReviewedEvent struct {
	SubmissionID string   `json:"submission_id"`
	StudentID    string   `json:"student_id"`
	Status       string   `json:"status"`
	Grade        *float64 `json:"grade,omitempty"`
	Timestamp    int64    `json:"timestamp"`
}
