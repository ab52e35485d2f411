package submission_test

import (
	"context"
	"errors"
	"testing"

	"github.com/studyhall/studyhall-lms/internal/catalog"
	"github.com/studyhall/studyhall-lms/internal/errs"
	"github.com/studyhall/studyhall-lms/internal/identity"
	"github.com/studyhall/studyhall-lms/internal/submission"
)

type fakeUsers map[string]identity.User

func (f fakeUsers) GetByID(_ context.Context, id string) (identity.User, error) {
	u, ok := f[id]
	if !ok {
		return identity.User{}, errs.NotFoundf("user %s not found", id)
	}
	return u, nil
}

type fakeAssignments map[string]catalog.Assignment

func (f fakeAssignments) GetAssignment(_ context.Context, id string) (catalog.Assignment, error) {
	a, ok := f[id]
	if !ok {
		return catalog.Assignment{}, errs.NotFoundf("assignment %s not found", id)
	}
	return a, nil
}

func newService() *submission.Service {
	users := fakeUsers{
		"stu-1": {ID: "stu-1", Username: "alice", Name: "Alice", Role: identity.RoleStudent},
		"tea-1": {ID: "tea-1", Username: "carol", Name: "Carol", Role: identity.RoleTeacher},
	}
	assignments := fakeAssignments{
		"asg-1": {ID: "asg-1", Title: "Essay One", MaxScore: 100},
		"asg-2": {ID: "asg-2", Title: "Short Quiz Writeup", MaxScore: 20},
	}
	return submission.NewService(submission.NewInMemoryStore(), users, assignments)
}

func mustSubmit(t *testing.T, svc *submission.Service, studentID, assignmentID string) submission.View {
	t.Helper()
	v, err := svc.Submit(context.Background(), submission.SubmitInput{
		StudentID:    studentID,
		AssignmentID: assignmentID,
		Content:      "my work",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	return v
}

func TestSubmit(t *testing.T) {
	svc := newService()
	v := mustSubmit(t, svc, "stu-1", "asg-1")

	if v.Status != submission.StatusSubmitted {
		t.Fatalf("status = %s, want submitted", v.Status)
	}
	if v.Score != nil {
		t.Fatalf("score should be nil before grading")
	}
	if v.SubmittedAt == 0 {
		t.Fatalf("submitted_at not stamped")
	}
	if v.AssignmentTitle != "Essay One" || v.StudentName != "Alice" {
		t.Fatalf("view not denormalized: %+v", v)
	}
}

func TestSubmitTeacherForbidden(t *testing.T) {
	svc := newService()
	_, err := svc.Submit(context.Background(), submission.SubmitInput{StudentID: "tea-1", AssignmentID: "asg-1"})
	if errs.KindOf(err) != errs.KindRoleViolation {
		t.Fatalf("err = %v, want role violation", err)
	}
}

func TestSubmitTwiceConflicts(t *testing.T) {
	svc := newService()
	mustSubmit(t, svc, "stu-1", "asg-1")
	_, err := svc.Submit(context.Background(), submission.SubmitInput{StudentID: "stu-1", AssignmentID: "asg-1"})
	if errs.KindOf(err) != errs.KindDuplicate {
		t.Fatalf("err = %v, want duplicate", err)
	}
	// Same student, different assignment is fine.
	mustSubmit(t, svc, "stu-1", "asg-2")
}

func TestGrade(t *testing.T) {
	svc := newService()
	v := mustSubmit(t, svc, "stu-1", "asg-1")

	g, err := svc.Grade(context.Background(), v.ID, 85, "solid")
	if err != nil {
		t.Fatalf("grade: %v", err)
	}
	if g.Status != submission.StatusReviewed {
		t.Fatalf("status = %s, want reviewed", g.Status)
	}
	if g.Score == nil || *g.Score != 85 {
		t.Fatalf("score = %v, want 85", g.Score)
	}
	if g.Feedback != "solid" || g.ReviewedAt == 0 {
		t.Fatalf("review fields not set: %+v", g)
	}
}

func TestGradeScoreBounds(t *testing.T) {
	svc := newService()
	v := mustSubmit(t, svc, "stu-1", "asg-2") // max score 20

	for _, score := range []int{-1, 21} {
		if _, err := svc.Grade(context.Background(), v.ID, score, ""); errs.KindOf(err) != errs.KindValidation {
			t.Fatalf("score %d: err = %v, want validation", score, err)
		}
	}
	// Rejected grade attempts leave the submission untouched.
	got, err := svc.Get(context.Background(), v.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != submission.StatusSubmitted || got.Score != nil {
		t.Fatalf("submission changed by rejected grade: %+v", got)
	}

	// Max score itself is a legal grade.
	if _, err := svc.Grade(context.Background(), v.ID, 20, ""); err != nil {
		t.Fatalf("grade at max: %v", err)
	}
}

func TestAcceptKeepsScore(t *testing.T) {
	svc := newService()
	v := mustSubmit(t, svc, "stu-1", "asg-1")
	if _, err := svc.Grade(context.Background(), v.ID, 90, "good"); err != nil {
		t.Fatalf("grade: %v", err)
	}
	a, err := svc.Accept(context.Background(), v.ID)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if a.Status != submission.StatusAccepted {
		t.Fatalf("status = %s, want accepted", a.Status)
	}
	if a.Score == nil || *a.Score != 90 {
		t.Fatalf("accept dropped the score: %+v", a)
	}
}

func TestRejectThenRegrade(t *testing.T) {
	svc := newService()
	v := mustSubmit(t, svc, "stu-1", "asg-1")

	rej, err := svc.Reject(context.Background(), v.ID, "missing sources")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rej.Status != submission.StatusRejected || rej.Feedback != "missing sources" {
		t.Fatalf("got %+v, want rejected with feedback", rej)
	}

	// A rejected submission can go back through grading.
	g, err := svc.Grade(context.Background(), v.ID, 70, "fixed")
	if err != nil {
		t.Fatalf("regrade: %v", err)
	}
	if g.Status != submission.StatusReviewed {
		t.Fatalf("status = %s, want reviewed after regrade", g.Status)
	}
}

func TestListPending(t *testing.T) {
	svc := newService()
	a := mustSubmit(t, svc, "stu-1", "asg-1")
	mustSubmit(t, svc, "stu-1", "asg-2")

	if _, err := svc.Grade(context.Background(), a.ID, 50, ""); err != nil {
		t.Fatalf("grade: %v", err)
	}
	pending, err := svc.ListPending(context.Background())
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 || pending[0].AssignmentID != "asg-2" {
		t.Fatalf("pending = %+v, want only the ungraded one", pending)
	}
}

type failingListStore struct {
	submission.Store
}

func (failingListStore) ListByStatus(_ context.Context, _ submission.Status) ([]submission.Submission, error) {
	return nil, errors.New("query failed")
}

func TestListSurfacesStoreError(t *testing.T) {
	users := fakeUsers{"tea-1": {ID: "tea-1", Username: "carol", Name: "Carol", Role: identity.RoleTeacher}}
	store := failingListStore{Store: submission.NewInMemoryStore()}
	svc := submission.NewService(store, users, fakeAssignments{})

	if _, err := svc.ListPending(context.Background()); err == nil {
		t.Fatalf("expected store error to surface")
	}
}
