package enrollment_test

import (
	"context"
	"errors"
	"testing"

	"github.com/studyhall/studyhall-lms/internal/catalog"
	"github.com/studyhall/studyhall-lms/internal/enrollment"
	"github.com/studyhall/studyhall-lms/internal/errs"
	"github.com/studyhall/studyhall-lms/internal/identity"
)

type fakeUsers map[string]identity.User

func (f fakeUsers) GetByID(_ context.Context, id string) (identity.User, error) {
	u, ok := f[id]
	if !ok {
		return identity.User{}, errs.NotFoundf("user %s not found", id)
	}
	return u, nil
}

type fakeCourses map[string]catalog.Course

func (f fakeCourses) GetCourse(_ context.Context, id string) (catalog.Course, error) {
	c, ok := f[id]
	if !ok {
		return catalog.Course{}, errs.NotFoundf("course %s not found", id)
	}
	return c, nil
}

func newService() *enrollment.Service {
	users := fakeUsers{
		"stu-1": {ID: "stu-1", Username: "alice", Name: "Alice", Role: identity.RoleStudent},
		"stu-2": {ID: "stu-2", Username: "bob", Name: "Bob", Role: identity.RoleStudent},
		"tea-1": {ID: "tea-1", Username: "carol", Name: "Carol", Role: identity.RoleTeacher},
	}
	courses := fakeCourses{
		"crs-pub":   {ID: "crs-pub", Title: "Go Basics", IsPublished: true},
		"crs-draft": {ID: "crs-draft", Title: "Drafts", IsPublished: false},
	}
	return enrollment.NewService(enrollment.NewInMemoryStore(), users, courses)
}

func mustEnroll(t *testing.T, svc *enrollment.Service, studentID, courseID string) enrollment.View {
	t.Helper()
	v, err := svc.Enroll(context.Background(), studentID, courseID)
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	return v
}

func TestEnroll(t *testing.T) {
	svc := newService()
	v := mustEnroll(t, svc, "stu-1", "crs-pub")

	if v.Status != enrollment.StatusActive {
		t.Fatalf("status = %s, want active", v.Status)
	}
	if v.Progress != 0 {
		t.Fatalf("progress = %d, want 0", v.Progress)
	}
	if v.EnrolledAt == 0 {
		t.Fatalf("enrolled_at not stamped")
	}
	if v.StudentName != "Alice" || v.CourseTitle != "Go Basics" {
		t.Fatalf("view not denormalized: %+v", v)
	}
}

func TestEnrollTeacherForbidden(t *testing.T) {
	svc := newService()
	_, err := svc.Enroll(context.Background(), "tea-1", "crs-pub")
	if errs.KindOf(err) != errs.KindRoleViolation {
		t.Fatalf("err = %v, want role violation", err)
	}
}

func TestEnrollUnpublishedCourse(t *testing.T) {
	svc := newService()
	_, err := svc.Enroll(context.Background(), "stu-1", "crs-draft")
	if errs.KindOf(err) != errs.KindBusinessRule {
		t.Fatalf("err = %v, want business rule", err)
	}
}

func TestEnrollTwiceConflicts(t *testing.T) {
	svc := newService()
	mustEnroll(t, svc, "stu-1", "crs-pub")
	_, err := svc.Enroll(context.Background(), "stu-1", "crs-pub")
	if errs.KindOf(err) != errs.KindDuplicate {
		t.Fatalf("err = %v, want duplicate", err)
	}
	// A different student on the same course is fine.
	mustEnroll(t, svc, "stu-2", "crs-pub")
}

func TestUpdateProgressBounds(t *testing.T) {
	svc := newService()
	v := mustEnroll(t, svc, "stu-1", "crs-pub")
	for _, p := range []int{-1, 101} {
		if _, err := svc.UpdateProgress(context.Background(), v.ID, p); errs.KindOf(err) != errs.KindValidation {
			t.Fatalf("progress %d: err = %v, want validation", p, err)
		}
	}
	// Failed updates leave the record untouched.
	got, err := svc.Get(context.Background(), v.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Progress != 0 || got.Status != enrollment.StatusActive {
		t.Fatalf("record changed by rejected update: %+v", got)
	}
}

func TestUpdateProgressAutoCompletes(t *testing.T) {
	svc := newService()
	v := mustEnroll(t, svc, "stu-1", "crs-pub")

	mid, err := svc.UpdateProgress(context.Background(), v.ID, 40)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if mid.Status != enrollment.StatusActive || mid.CompletedAt != 0 {
		t.Fatalf("40%% should stay active: %+v", mid)
	}

	done, err := svc.UpdateProgress(context.Background(), v.ID, 100)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if done.Status != enrollment.StatusCompleted {
		t.Fatalf("status = %s, want completed", done.Status)
	}
	if done.CompletedAt == 0 {
		t.Fatalf("completed_at not stamped")
	}
}

func TestProgressAfterCompletionKeepsStatus(t *testing.T) {
	svc := newService()
	v := mustEnroll(t, svc, "stu-1", "crs-pub")
	if _, err := svc.UpdateProgress(context.Background(), v.ID, 100); err != nil {
		t.Fatalf("update: %v", err)
	}
	first, _ := svc.Get(context.Background(), v.ID)

	// Moving progress back down never reverts the completed status, and
	// re-hitting 100 does not restamp the completion time.
	back, err := svc.UpdateProgress(context.Background(), v.ID, 50)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if back.Status != enrollment.StatusCompleted || back.Progress != 50 {
		t.Fatalf("got %+v, want completed at 50%%", back)
	}
	again, err := svc.UpdateProgress(context.Background(), v.ID, 100)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if again.CompletedAt != first.CompletedAt {
		t.Fatalf("completed_at restamped: %d != %d", again.CompletedAt, first.CompletedAt)
	}
}

func TestDropKeepsRecordAndProgress(t *testing.T) {
	svc := newService()
	v := mustEnroll(t, svc, "stu-1", "crs-pub")
	if _, err := svc.UpdateProgress(context.Background(), v.ID, 30); err != nil {
		t.Fatalf("update: %v", err)
	}
	d, err := svc.Drop(context.Background(), v.ID)
	if err != nil {
		t.Fatalf("drop: %v", err)
	}
	if d.Status != enrollment.StatusDropped || d.Progress != 30 {
		t.Fatalf("got %+v, want dropped at 30%%", d)
	}
	// Dropped records do not auto-complete.
	done, err := svc.UpdateProgress(context.Background(), v.ID, 100)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if done.Status != enrollment.StatusDropped {
		t.Fatalf("status = %s, want dropped to stick", done.Status)
	}
}

func TestCompleteIsExplicitOverride(t *testing.T) {
	svc := newService()
	v := mustEnroll(t, svc, "stu-1", "crs-pub")
	if _, err := svc.Drop(context.Background(), v.ID); err != nil {
		t.Fatalf("drop: %v", err)
	}
	c, err := svc.Complete(context.Background(), v.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if c.Status != enrollment.StatusCompleted || c.Progress != 100 || c.CompletedAt == 0 {
		t.Fatalf("got %+v, want forced completion", c)
	}
}

func TestUnenrollDeletes(t *testing.T) {
	svc := newService()
	mustEnroll(t, svc, "stu-1", "crs-pub")
	if err := svc.Unenroll(context.Background(), "stu-1", "crs-pub"); err != nil {
		t.Fatalf("unenroll: %v", err)
	}
	ok, err := svc.IsEnrolled(context.Background(), "stu-1", "crs-pub")
	if err != nil {
		t.Fatalf("is enrolled: %v", err)
	}
	if ok {
		t.Fatalf("still enrolled after unenroll")
	}
	// Re-enrolling after unenroll is allowed.
	mustEnroll(t, svc, "stu-1", "crs-pub")

	if err := svc.Unenroll(context.Background(), "stu-2", "crs-pub"); errs.KindOf(err) != errs.KindNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestListByStudentFiltersActive(t *testing.T) {
	svc := newService()
	v := mustEnroll(t, svc, "stu-1", "crs-pub")

	all, err := svc.ListByStudent(context.Background(), "stu-1")
	if err != nil || len(all) != 1 {
		t.Fatalf("list = %v, %v", all, err)
	}
	if _, err := svc.Drop(context.Background(), v.ID); err != nil {
		t.Fatalf("drop: %v", err)
	}
	active, err := svc.ListActiveByStudent(context.Background(), "stu-1")
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("dropped enrollment listed as active")
	}
}

type failingListStore struct {
	enrollment.Store
}

func (failingListStore) ListByStudent(_ context.Context, _ string, _ enrollment.Status) ([]enrollment.Enrollment, error) {
	return nil, errors.New("query failed")
}

func TestListSurfacesStoreError(t *testing.T) {
	users := fakeUsers{"stu-1": {ID: "stu-1", Username: "alice", Name: "Alice", Role: identity.RoleStudent}}
	store := failingListStore{Store: enrollment.NewInMemoryStore()}
	svc := enrollment.NewService(store, users, fakeCourses{})

	if _, err := svc.ListByStudent(context.Background(), "stu-1"); err == nil {
		t.Fatalf("expected store error to surface")
	}
	if _, err := svc.ListActiveByStudent(context.Background(), "stu-1"); err == nil {
		t.Fatalf("expected store error to surface")
	}
}
