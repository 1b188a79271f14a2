package service

import "errors"

// Domain errors. The handler layer maps these onto HTTP statuses.
var (
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")

	ErrAssignmentNotFound    = errors.New("assignment not found")
	ErrInvalidAssignmentType = errors.New("invalid assignment type")
	ErrInvalidSurah          = errors.New("surah must be between 1 and 114")
	ErrInvalidVerseRange     = errors.New("verse range is invalid for this surah")

	ErrSubmissionNotFound = errors.New("submission not found")
	ErrInvalidStatus      = errors.New("invalid submission status")
	ErrGradeRequired      = errors.New("grade is required for approval")
	ErrGradeOutOfRange    = errors.New("grade must be between 1 and 10")

	ErrInvalidCategory     = errors.New("invalid feedback category")
	ErrTimestampOutOfRange = errors.New("timestamp must be within the audio duration")

	ErrInvalidFileType = errors.New("file type is not an allowed audio type")
)
