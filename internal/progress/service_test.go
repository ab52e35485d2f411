package progress_test

import (
	"context"
	"testing"

	"github.com/studyhall/studyhall-lms/internal/catalog"
	"github.com/studyhall/studyhall-lms/internal/errs"
	"github.com/studyhall/studyhall-lms/internal/identity"
	"github.com/studyhall/studyhall-lms/internal/progress"
)

type fakeUsers map[string]identity.User

func (f fakeUsers) GetByID(_ context.Context, id string) (identity.User, error) {
	u, ok := f[id]
	if !ok {
		return identity.User{}, errs.NotFoundf("user %s not found", id)
	}
	return u, nil
}

// fakeLessons maps lesson id → course id.
type fakeLessons map[string]string

func (f fakeLessons) GetLesson(_ context.Context, id string) (catalog.Lesson, error) {
	if _, ok := f[id]; !ok {
		return catalog.Lesson{}, errs.NotFoundf("lesson %s not found", id)
	}
	return catalog.Lesson{ID: id}, nil
}

func (f fakeLessons) CountLessonsByCourse(_ context.Context, courseID string) (int, error) {
	n := 0
	for _, c := range f {
		if c == courseID {
			n++
		}
	}
	return n, nil
}

func newService(lessons fakeLessons) *progress.Service {
	users := fakeUsers{
		"stu-1": {ID: "stu-1", Username: "alice", Name: "Alice", Role: identity.RoleStudent},
		"tea-1": {ID: "tea-1", Username: "carol", Name: "Carol", Role: identity.RoleTeacher},
	}
	store := progress.NewInMemoryStore(func(lessonID string) string { return lessons[lessonID] })
	return progress.NewService(store, users, lessons)
}

func threeLessonCourse() fakeLessons {
	return fakeLessons{"les-1": "crs-1", "les-2": "crs-1", "les-3": "crs-1"}
}

func TestStartLesson(t *testing.T) {
	svc := newService(threeLessonCourse())
	p, err := svc.StartLesson(context.Background(), "stu-1", "les-1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if p.IsCompleted || p.StartedAt == 0 {
		t.Fatalf("got %+v, want started and incomplete", p)
	}
	if _, err := svc.StartLesson(context.Background(), "stu-1", "les-1"); errs.KindOf(err) != errs.KindDuplicate {
		t.Fatalf("restart: err = %v, want duplicate", err)
	}
	if _, err := svc.StartLesson(context.Background(), "tea-1", "les-1"); errs.KindOf(err) != errs.KindRoleViolation {
		t.Fatalf("teacher start: err = %v, want role violation", err)
	}
	if _, err := svc.StartLesson(context.Background(), "stu-1", "nope"); errs.KindOf(err) != errs.KindNotFound {
		t.Fatalf("unknown lesson: err = %v, want not found", err)
	}
}

func TestCompleteLessonAccumulatesTime(t *testing.T) {
	svc := newService(threeLessonCourse())
	if _, err := svc.StartLesson(context.Background(), "stu-1", "les-1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	p, err := svc.CompleteLesson(context.Background(), "stu-1", "les-1", 25)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !p.IsCompleted || p.CompletedAt == 0 || p.TimeSpentMin != 25 {
		t.Fatalf("got %+v", p)
	}
	// A second completion only adds time; the timestamp stays put.
	again, err := svc.CompleteLesson(context.Background(), "stu-1", "les-1", 10)
	if err != nil {
		t.Fatalf("complete again: %v", err)
	}
	if again.TimeSpentMin != 35 || again.CompletedAt != p.CompletedAt {
		t.Fatalf("got %+v, want 35 min and original timestamp", again)
	}
	if _, err := svc.CompleteLesson(context.Background(), "stu-1", "les-1", -1); errs.KindOf(err) != errs.KindValidation {
		t.Fatalf("negative time: err = %v, want validation", err)
	}
	if _, err := svc.CompleteLesson(context.Background(), "stu-1", "les-2", 5); errs.KindOf(err) != errs.KindNotFound {
		t.Fatalf("unstarted lesson: err = %v, want not found", err)
	}
}

func TestCoursePercentTruncates(t *testing.T) {
	svc := newService(threeLessonCourse())
	ctx := context.Background()

	pct, err := svc.CoursePercent(ctx, "stu-1", "crs-1")
	if err != nil || pct != 0 {
		t.Fatalf("pct = %d, %v; want 0", pct, err)
	}

	if _, err := svc.StartLesson(ctx, "stu-1", "les-1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.CompleteLesson(ctx, "stu-1", "les-1", 5); err != nil {
		t.Fatalf("complete: %v", err)
	}
	// 1 of 3 lessons: 33, not 34.
	if pct, err = svc.CoursePercent(ctx, "stu-1", "crs-1"); err != nil || pct != 33 {
		t.Fatalf("pct = %d, %v; want 33", pct, err)
	}

	// Started-but-incomplete lessons do not count.
	if _, err := svc.StartLesson(ctx, "stu-1", "les-2"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if pct, err = svc.CoursePercent(ctx, "stu-1", "crs-1"); err != nil || pct != 33 {
		t.Fatalf("pct = %d, %v; want 33", pct, err)
	}
}

func TestCoursePercentEmptyCourse(t *testing.T) {
	svc := newService(fakeLessons{})
	pct, err := svc.CoursePercent(context.Background(), "stu-1", "crs-empty")
	if err != nil || pct != 0 {
		t.Fatalf("pct = %d, %v; want 0 for empty course", pct, err)
	}
}
