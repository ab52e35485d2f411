package db_test

import (
	"context"
	"testing"

	"github.com/studyhall/studyhall-lms/internal/catalog"
	"github.com/studyhall/studyhall-lms/internal/db"
	"github.com/studyhall/studyhall-lms/internal/enrollment"
	"github.com/studyhall/studyhall-lms/internal/errs"
	"github.com/studyhall/studyhall-lms/internal/identity"
	"github.com/studyhall/studyhall-lms/internal/review"
)

// Each test opens its own shared-cache in-memory database so the pool's
// connections all see the same schema.

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := db.Open(context.Background(), db.Driver("oracle"), "")
	if err == nil {
		t.Fatalf("unknown driver accepted")
	}
}

func TestUniqueEnrollmentConstraint(t *testing.T) {
	ctx := context.Background()
	dbh, err := db.Open(ctx, db.DriverSQLite, "file:enroll_unique?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer dbh.Close()

	users := identity.NewSQLStore(dbh)
	courses := catalog.NewSQLStore(dbh)
	enrollments := enrollment.NewSQLStore(dbh)

	stu, err := users.Create(ctx, identity.User{
		Username: "alice", Name: "Alice", Email: "alice@example.com", Role: identity.RoleStudent,
	})
	if err != nil {
		t.Fatalf("create student: %v", err)
	}
	tea, err := users.Create(ctx, identity.User{
		Username: "carol", Name: "Carol", Email: "carol@example.com", Role: identity.RoleTeacher,
	})
	if err != nil {
		t.Fatalf("create teacher: %v", err)
	}
	crs, err := courses.CreateCourse(ctx, catalog.Course{Title: "Go Basics", TeacherID: tea.ID})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}

	if _, err := enrollments.Create(ctx, enrollment.Enrollment{
		StudentID: stu.ID, CourseID: crs.ID, Status: enrollment.StatusActive,
	}); err != nil {
		t.Fatalf("first enroll: %v", err)
	}
	// The second insert loses at the UNIQUE constraint, not at a prior check.
	_, err = enrollments.Create(ctx, enrollment.Enrollment{
		StudentID: stu.ID, CourseID: crs.ID, Status: enrollment.StatusActive,
	})
	if errs.KindOf(err) != errs.KindDuplicate {
		t.Fatalf("err = %v, want duplicate", err)
	}
}

func TestReviewConstraints(t *testing.T) {
	ctx := context.Background()
	dbh, err := db.Open(ctx, db.DriverSQLite, "file:review_constraints?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer dbh.Close()

	users := identity.NewSQLStore(dbh)
	courses := catalog.NewSQLStore(dbh)
	reviews := review.NewSQLStore(dbh)

	stu, err := users.Create(ctx, identity.User{
		Username: "alice", Name: "Alice", Email: "alice@example.com", Role: identity.RoleStudent,
	})
	if err != nil {
		t.Fatalf("create student: %v", err)
	}
	tea, err := users.Create(ctx, identity.User{
		Username: "carol", Name: "Carol", Email: "carol@example.com", Role: identity.RoleTeacher,
	})
	if err != nil {
		t.Fatalf("create teacher: %v", err)
	}
	crs, err := courses.CreateCourse(ctx, catalog.Course{Title: "Go Basics", TeacherID: tea.ID})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}

	// The rating CHECK fires for out-of-band values that bypass the service.
	_, err = reviews.Create(ctx, review.Review{CourseID: crs.ID, StudentID: stu.ID, Rating: 7})
	if errs.KindOf(err) != errs.KindValidation {
		t.Fatalf("rating 7: err = %v, want validation", err)
	}

	if _, err := reviews.Create(ctx, review.Review{CourseID: crs.ID, StudentID: stu.ID, Rating: 4}); err != nil {
		t.Fatalf("create review: %v", err)
	}
	_, err = reviews.Create(ctx, review.Review{CourseID: crs.ID, StudentID: stu.ID, Rating: 5})
	if errs.KindOf(err) != errs.KindDuplicate {
		t.Fatalf("second review: err = %v, want duplicate", err)
	}

	avg, err := reviews.AverageRating(ctx, crs.ID)
	if err != nil {
		t.Fatalf("average: %v", err)
	}
	if avg != 4 {
		t.Fatalf("avg = %v, want 4", avg)
	}
}

func TestUniqueUsernameConstraint(t *testing.T) {
	ctx := context.Background()
	dbh, err := db.Open(ctx, db.DriverSQLite, "file:user_unique?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer dbh.Close()

	users := identity.NewSQLStore(dbh)
	if _, err := users.Create(ctx, identity.User{
		Username: "alice", Name: "Alice", Email: "alice@example.com", Role: identity.RoleStudent,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err = users.Create(ctx, identity.User{
		Username: "alice", Name: "Other", Email: "other@example.com", Role: identity.RoleStudent,
	})
	if errs.KindOf(err) != errs.KindDuplicate {
		t.Fatalf("err = %v, want duplicate", err)
	}
}
