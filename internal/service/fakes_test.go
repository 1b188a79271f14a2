package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tartil-app/recital-service/internal/models"
)

// In-memory repository fakes shared by the service tests.

type fakeSubmissionRepo struct {
	submissions map[string]models.SubmissionWithDetails
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{submissions: make(map[string]models.SubmissionWithDetails)}
}

func (r *fakeSubmissionRepo) Create(ctx context.Context, submission *models.Submission) error {
	r.submissions[submission.ID] = models.SubmissionWithDetails{Submission: *submission}
	return nil
}

func (r *fakeSubmissionRepo) GetByID(ctx context.Context, id string) (*models.SubmissionWithDetails, error) {
	submission, ok := r.submissions[id]
	if !ok {
		return nil, nil
	}
	return &submission, nil
}

func (r *fakeSubmissionRepo) GetByStudentID(ctx context.Context, studentID string) ([]models.SubmissionWithDetails, error) {
	var out []models.SubmissionWithDetails
	for _, s := range r.submissions {
		if s.StudentID == studentID {
			out = append(out, s)
		}
	}
	sortByCreatedDesc(out)
	return out, nil
}

func (r *fakeSubmissionRepo) GetPendingReview(ctx context.Context) ([]models.SubmissionWithDetails, error) {
	var out []models.SubmissionWithDetails
	for _, s := range r.submissions {
		if s.Status == models.SubmissionPending.String() || s.Status == models.SubmissionInReview.String() {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeSubmissionRepo) GetRecent(ctx context.Context, studentID string, limit int) ([]models.SubmissionWithDetails, error) {
	var out []models.SubmissionWithDetails
	for _, s := range r.submissions {
		if studentID == "" || s.StudentID == studentID {
			out = append(out, s)
		}
	}
	sortByCreatedDesc(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeSubmissionRepo) UpdateReview(ctx context.Context, id, status string, grade *float64) error {
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

func (r *fakeSubmissionRepo) CountByStudent(ctx context.Context, studentID string) (int, error) {
	count := 0
	for _, s := range r.submissions {
		if s.StudentID == studentID {
			count++
		}
	}
	return count, nil
}

func (r *fakeSubmissionRepo) CountByStudentAndStatus(ctx context.Context, studentID, status string) (int, error) {
	count := 0
	for _, s := range r.submissions {
		if s.StudentID == studentID && s.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *fakeSubmissionRepo) CountAll(ctx context.Context) (int, error) {
	return len(r.submissions), nil
}

func (r *fakeSubmissionRepo) CountPendingReview(ctx context.Context) (int, error) {
	count := 0
	for _, s := range r.submissions {
		if s.Status == models.SubmissionPending.String() || s.Status == models.SubmissionInReview.String() {
			count++
		}
	}
	return count, nil
}

func (r *fakeSubmissionRepo) AverageGrade(ctx context.Context) (float64, error) {
	return r.averageGrade(""), nil
}

func (r *fakeSubmissionRepo) AverageGradeByStudent(ctx context.Context, studentID string) (float64, error) {
	return r.averageGrade(studentID), nil
}

func (r *fakeSubmissionRepo) averageGrade(studentID string) float64 {
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

func sortByCreatedDesc(submissions []models.SubmissionWithDetails) {
	sort.Slice(submissions, func(i, j int) bool {
		return submissions[i].CreatedAt.After(submissions[j].CreatedAt)
	})
}

type fakeAssignmentRepo struct {
	assignments map[string]models.Assignment
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{assignments: make(map[string]models.Assignment)}
}

func (r *fakeAssignmentRepo) Create(ctx context.Context, assignment *models.Assignment) error {
	r.assignments[assignment.ID] = *assignment
	return nil
}

func (r *fakeAssignmentRepo) GetByID(ctx context.Context, id string) (*models.Assignment, error) {
	assignment, ok := r.assignments[id]
	if !ok {
		return nil, nil
	}
	return &assignment, nil
}

func (r *fakeAssignmentRepo) GetAll(ctx context.Context) ([]models.AssignmentWithCount, error) {
	var out []models.AssignmentWithCount
	for _, a := range r.assignments {
		out = append(out, models.AssignmentWithCount{Assignment: a})
	}
	return out, nil
}

func (r *fakeAssignmentRepo) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := r.assignments[id]
	return ok, nil
}

type fakeFeedbackRepo struct {
	entries []models.FeedbackWithAdmin
}

func (r *fakeFeedbackRepo) Create(ctx context.Context, feedback *models.Feedback) error {
	r.entries = append(r.entries, models.FeedbackWithAdmin{Feedback: *feedback})
	return nil
}

func (r *fakeFeedbackRepo) GetBySubmissionID(ctx context.Context, submissionID string) ([]models.FeedbackWithAdmin, error) {
	var out []models.FeedbackWithAdmin
	for _, e := range r.entries {
		if e.SubmissionID == submissionID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out, nil
}

func (r *fakeFeedbackRepo) CountByCategory(ctx context.Context) ([]models.CategoryCount, error) {
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

type fakeProgressRepo struct {
	rows map[string]models.Progress
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{rows: make(map[string]models.Progress)}
}

func progressKey(studentID string, surah int) string {
	return fmt.Sprintf("%s:%d", studentID, surah)
}

func (r *fakeProgressRepo) Upsert(ctx context.Context, progress *models.Progress) error {
	key := progressKey(progress.StudentID, progress.Surah)
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

func (r *fakeProgressRepo) GetByStudentID(ctx context.Context, studentID string) ([]models.Progress, error) {
	var out []models.Progress
	for _, p := range r.rows {
		if p.StudentID == studentID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Surah < out[j].Surah })
	return out, nil
}

func (r *fakeProgressRepo) CountCompleted(ctx context.Context, studentID string) (int, error) {
	count := 0
	for _, p := range r.rows {
		if p.StudentID == studentID && p.Completed {
			count++
		}
	}
	return count, nil
}

type fakeUserRepo struct {
	users map[string]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	user, err := r.GetByEmail(ctx, email)
	return user != nil, err
}

func (r *fakeUserRepo) CountByRole(ctx context.Context, role string) (int, error) {
	count := 0
	for _, u := range r.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

type fakeEventPublisher struct {
	created  []*models.SubmissionCreatedEvent
	reviewed []*models.SubmissionReviewedEvent
}

func (p *fakeEventPublisher) PublishSubmissionCreated(ctx context.Context, event *models.SubmissionCreatedEvent) error {
	p.created = append(p.created, event)
	return nil
}

func (p *fakeEventPublisher) PublishSubmissionReviewed(ctx context.Context, event *models.SubmissionReviewedEvent) error {
	p.reviewed = append(p.reviewed, event)
	return nil
}

func (p *fakeEventPublisher) Close() error { return nil }
