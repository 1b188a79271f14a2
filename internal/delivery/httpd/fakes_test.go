package httpd

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tartil-app/recital-service/internal/models"
)

// In-memory repository fakes backing the handler tests. The handlers run
// against real services so the tests exercise the full request path.

type memUserRepo struct {
	users map[string]models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]models.User)}
}

func (r *memUserRepo) Create(ctx context.Context, user *models.User) error {
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	user, err := r.GetByEmail(ctx, email)
	return user != nil, err
}

func (r *memUserRepo) CountByRole(ctx context.Context, role string) (int, error) {
	count := 0
	for _, u := range r.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

type memAssignmentRepo struct {
	assignments map[string]models.Assignment
}

func newMemAssignmentRepo() *memAssignmentRepo {
	return &memAssignmentRepo{assignments: make(map[string]models.Assignment)}
}

func (r *memAssignmentRepo) Create(ctx context.Context, assignment *models.Assignment) error {
	r.assignments[assignment.ID] = *assignment
	return nil
}

func (r *memAssignmentRepo) GetByID(ctx context.Context, id string) (*models.Assignment, error) {
	assignment, ok := r.assignments[id]
	if !ok {
		return nil, nil
	}
	return &assignment, nil
}

func (r *memAssignmentRepo) GetAll(ctx context.Context) ([]models.AssignmentWithCount, error) {
	var out []models.AssignmentWithCount
	for _, a := range r.assignments {
		out = append(out, models.AssignmentWithCount{Assignment: a})
	}
	return out, nil
}

func (r *memAssignmentRepo) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := r.assignments[id]
	return ok, nil
}

type memSubmissionRepo struct {
	submissions map[string]models.SubmissionWithDetails
}

func newMemSubmissionRepo() *memSubmissionRepo {
	return &memSubmissionRepo{submissions: make(map[string]models.SubmissionWithDetails)}
}

func (r *memSubmissionRepo) Create(ctx context.Context, submission *models.Submission) error {
	r.submissions[submission.ID] = models.SubmissionWithDetails{Submission: *submission}
	return nil
}

func (r *memSubmissionRepo) GetByID(ctx context.Context, id string) (*models.SubmissionWithDetails, error) {
	submission, ok := r.submissions[id]
	if !ok {
		return nil, nil
	}
	return &submission, nil
}

func (r *memSubmissionRepo) GetByStudentID(ctx context.Context, studentID string) ([]models.SubmissionWithDetails, error) {
	var out []models.SubmissionWithDetails
	for _, s := range r.submissions {
		if s.StudentID == studentID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memSubmissionRepo) GetPendingReview(ctx context.Context) ([]models.SubmissionWithDetails, error) {
	var out []models.SubmissionWithDetails
	for _, s := range r.submissions {
		if s.Status == "PENDING" || s.Status == "IN_REVIEW" {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memSubmissionRepo) GetRecent(ctx context.Context, studentID string, limit int) ([]models.SubmissionWithDetails, error) {
	var out []models.SubmissionWithDetails
	for _, s := range r.submissions {
		if studentID == "" || s.StudentID == studentID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memSubmissionRepo) UpdateReview(ctx context.Context, id, status string, grade *float64) error {
	submission, ok := r.submissions[id]
	if !ok {
		return fmt.Errorf("submission %s does not exist", id)
	}
	submission.Status = status
	if grade != nil {
		g := *grade
		submission.Grade = &g
	}
	submission.UpdatedAt = time.Now()
	r.submissions[id] = submission
	return nil
}

func (r *memSubmissionRepo) CountByStudent(ctx context.Context, studentID string) (int, error) {
	count := 0
	for _, s := range r.submissions {
		if s.StudentID == studentID {
			count++
		}
	}
	return count, nil
}

func (r *memSubmissionRepo) CountByStudentAndStatus(ctx context.Context, studentID, status string) (int, error) {
	count := 0
	for _, s := range r.submissions {
		if s.StudentID == studentID && s.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *memSubmissionRepo) CountAll(ctx context.Context) (int, error) {
	return len(r.submissions), nil
}

func (r *memSubmissionRepo) CountPendingReview(ctx context.Context) (int, error) {
	count := 0
	for _, s := range r.submissions {
		if s.Status == "PENDING" || s.Status == "IN_REVIEW" {
			count++
		}
	}
	return count, nil
}

func (r *memSubmissionRepo) AverageGrade(ctx context.Context) (float64, error) {
	return r.averageGrade(""), nil
}

func (r *memSubmissionRepo) AverageGradeByStudent(ctx context.Context, studentID string) (float64, error) {
	return r.averageGrade(studentID), nil
}

func (r *memSubmissionRepo) averageGrade(studentID string) float64 {
	var sum float64
	var count int
	for _, s := range r.submissions {
		if studentID != "" && s.StudentID != studentID {
			continue
		}
		if s.Grade != nil {
			sum += *s.Grade
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

type memFeedbackRepo struct {
	entries []models.FeedbackWithAdmin
}

func (r *memFeedbackRepo) Create(ctx context.Context, feedback *models.Feedback) error {
	r.entries = append(r.entries, models.FeedbackWithAdmin{Feedback: *feedback})
	return nil
}

func (r *memFeedbackRepo) GetBySubmissionID(ctx context.Context, submissionID string) ([]models.FeedbackWithAdmin, error) {
	var out []models.FeedbackWithAdmin
	for _, e := range r.entries {
		if e.SubmissionID == submissionID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out, nil
}

func (r *memFeedbackRepo) CountByCategory(ctx context.Context) ([]models.CategoryCount, error) {
	counts := make(map[string]int)
	for _, e := range r.entries {
		if e.Category != nil {
			counts[*e.Category]++
		}
	}
	var out []models.CategoryCount
	for category, count := range counts {
		out = append(out, models.CategoryCount{Category: category, Count: count})
	}
	return out, nil
}

type memProgressRepo struct {
	rows map[string]models.Progress
}

func newMemProgressRepo() *memProgressRepo {
	return &memProgressRepo{rows: make(map[string]models.Progress)}
}

func (r *memProgressRepo) Upsert(ctx context.Context, progress *models.Progress) error {
	key := fmt.Sprintf("%s:%d", progress.StudentID, progress.Surah)
	if existing, ok := r.rows[key]; ok {
		existing.Completed = progress.Completed
		if progress.Grade != nil {
			g := *progress.Grade
			existing.Grade = &g
		}
		existing.UpdatedAt = progress.UpdatedAt
		r.rows[key] = existing
		*progress = existing
		return nil
	}
	r.rows[key] = *progress
	return nil
}

func (r *memProgressRepo) GetByStudentID(ctx context.Context, studentID string) ([]models.Progress, error) {
	var out []models.Progress
	for _, p := range r.rows {
		if p.StudentID == studentID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Surah < out[j].Surah })
	return out, nil
}

func (r *memProgressRepo) CountCompleted(ctx context.Context, studentID string) (int, error) {
	count := 0
	for _, p := range r.rows {
		if p.StudentID == studentID && p.Completed {
			count++
		}
	}
	return count, nil
}

type memPresigner struct{}

func (memPresigner) PresignedUpload(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "http://localhost:9000/recital-audio/" + key + "?signature=test", nil
}

func (memPresigner) PublicURL(key string) string {
	return "http://localhost:9000/recital-audio/" + key
}
