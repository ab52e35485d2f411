package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	api "github.com/studyhall/studyhall-lms/internal/api/http"
	"github.com/studyhall/studyhall-lms/internal/auth"
	"github.com/studyhall/studyhall-lms/internal/catalog"
	"github.com/studyhall/studyhall-lms/internal/enrollment"
	"github.com/studyhall/studyhall-lms/internal/identity"
	"github.com/studyhall/studyhall-lms/internal/rbac"
	"github.com/studyhall/studyhall-lms/internal/review"
)

type fixture struct {
	router  chi.Router
	student identity.User
	course  catalog.Course
}

// newFixture wires mem stores behind the enrollment and review routes with
// one published course and one enrolled-ready student.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	users := identity.NewInMemoryStore()
	cats := catalog.NewInMemoryStore()

	stu, err := users.Create(context.Background(), identity.User{
		Username: "alice", Name: "Alice", Email: "alice@example.com", Role: identity.RoleStudent,
	})
	if err != nil {
		t.Fatalf("seed student: %v", err)
	}
	tea, err := users.Create(context.Background(), identity.User{
		Username: "carol", Name: "Carol", Email: "carol@example.com", Role: identity.RoleTeacher,
	})
	if err != nil {
		t.Fatalf("seed teacher: %v", err)
	}
	crs, err := cats.CreateCourse(context.Background(), catalog.Course{Title: "Go Basics", TeacherID: tea.ID, IsPublished: true})
	if err != nil {
		t.Fatalf("seed course: %v", err)
	}

	enrs := enrollment.NewService(enrollment.NewInMemoryStore(), users, cats)
	revs := review.NewService(review.NewInMemoryStore(), users, cats, enrs)

	r := chi.NewRouter()
	r.Post("/enrollments", api.EnrollHandler(enrs))
	r.Post("/reviews", api.CreateReviewHandler(revs))
	return &fixture{router: r, student: stu, course: crs}
}

// do issues a request with subject and role stamped into the context the way
// the JWT middleware would.
func (f *fixture) do(method, path, body, sub, role string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	ctx := auth.WithSubject(req.Context(), sub)
	ctx = rbac.WithRole(ctx, role)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req.WithContext(ctx))
	return rec
}

func TestEnrollEndpoint(t *testing.T) {
	f := newFixture(t)
	body := `{"course_id":"` + f.course.ID + `"}`

	rec := f.do("POST", "/enrollments", body, f.student.ID, "student")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var v enrollment.View
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.Status != enrollment.StatusActive || v.CourseTitle != "Go Basics" {
		t.Fatalf("view = %+v", v)
	}

	// A duplicate enroll maps to 409.
	if rec := f.do("POST", "/enrollments", body, f.student.ID, "student"); rec.Code != http.StatusConflict {
		t.Fatalf("duplicate status = %d, want 409", rec.Code)
	}
}

func TestEnrollEndpointBadBody(t *testing.T) {
	f := newFixture(t)
	if rec := f.do("POST", "/enrollments", `{`, f.student.ID, "student"); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad json status = %d, want 422", rec.Code)
	}
	if rec := f.do("POST", "/enrollments", `{"course_id":""}`, f.student.ID, "student"); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("missing course status = %d, want 422", rec.Code)
	}
	if rec := f.do("POST", "/enrollments", `{"course_id":"nope"}`, f.student.ID, "student"); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown course status = %d, want 404", rec.Code)
	}
}

func TestReviewEndpointStatusMapping(t *testing.T) {
	f := newFixture(t)
	reviewBody := `{"course_id":"` + f.course.ID + `","rating":4,"comment":"nice"}`

	// Not enrolled yet: the business rule maps to 422.
	if rec := f.do("POST", "/reviews", reviewBody, f.student.ID, "student"); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unenrolled review status = %d, want 422", rec.Code)
	}

	enroll := `{"course_id":"` + f.course.ID + `"}`
	if rec := f.do("POST", "/enrollments", enroll, f.student.ID, "student"); rec.Code != http.StatusCreated {
		t.Fatalf("enroll status = %d", rec.Code)
	}

	if rec := f.do("POST", "/reviews", reviewBody, f.student.ID, "student"); rec.Code != http.StatusCreated {
		t.Fatalf("review status = %d, body = %s", rec.Code, rec.Body.String())
	}
	// One review per course.
	if rec := f.do("POST", "/reviews", reviewBody, f.student.ID, "student"); rec.Code != http.StatusConflict {
		t.Fatalf("second review status = %d, want 409", rec.Code)
	}
	// Rating outside 1..5 never reaches the service.
	bad := `{"course_id":"` + f.course.ID + `","rating":6}`
	if rec := f.do("POST", "/reviews", bad, f.student.ID, "student"); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("rating 6 status = %d, want 422", rec.Code)
	}
}
