package review

import (
	"context"
	"log"

	"github.com/studyhall/studyhall-lms/internal/catalog"
	"github.com/studyhall/studyhall-lms/internal/errs"
	"github.com/studyhall/studyhall-lms/internal/identity"
)

type Users interface {
	GetByID(ctx context.Context, id string) (identity.User, error)
}

type Courses interface {
	GetCourse(ctx context.Context, id string) (catalog.Course, error)
}

// Enrollments is the only fact this package needs from the enrollment
// engine: whether the pair exists.
type Enrollments interface {
	IsEnrolled(ctx context.Context, studentID, courseID string) (bool, error)
}

type Service struct {
	store       Store
	users       Users
	courses     Courses
	enrollments Enrollments
}

func NewService(store Store, users Users, courses Courses, enrollments Enrollments) *Service {
	return &Service{store: store, users: users, courses: courses, enrollments: enrollments}
}

type CreateInput struct {
	StudentID string
	CourseID  string
	Rating    int
	Comment   string
}

// Create enforces the one-review-per-student-per-course rule and requires an
// existing enrollment. The rating bound is validated here and re-checked by
// the table's CHECK constraint.
func (s *Service) Create(ctx context.Context, in CreateInput) (View, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return View{}, errs.Validationf("rating must be between 1 and 5")
	}
	student, err := s.users.GetByID(ctx, in.StudentID)
	if err != nil {
		return View{}, err
	}
	if err := identity.RequireRole(student, identity.RoleStudent); err != nil {
		return View{}, err
	}
	course, err := s.courses.GetCourse(ctx, in.CourseID)
	if err != nil {
		return View{}, err
	}
	enrolled, err := s.enrollments.IsEnrolled(ctx, in.StudentID, in.CourseID)
	if err != nil {
		return View{}, err
	}
	if !enrolled {
		return View{}, errs.BusinessRule("student must be enrolled in the course to leave a review")
	}
	exists, err := s.store.ExistsPair(ctx, in.StudentID, in.CourseID)
	if err != nil {
		return View{}, err
	}
	if exists {
		return View{}, errs.Duplicate("review already exists for this student and course")
	}
	r, err := s.store.Create(ctx, Review{
		CourseID:  in.CourseID,
		StudentID: in.StudentID,
		Rating:    in.Rating,
		Comment:   in.Comment,
	})
	if err != nil {
		return View{}, err
	}
	log.Printf("review: %s rated %s %d/5", student.Username, course.Title, r.Rating)
	return View{Review: r, CourseTitle: course.Title, StudentName: student.Name}, nil
}

func (s *Service) Update(ctx context.Context, id string, rating int, comment string) (View, error) {
	if rating < 1 || rating > 5 {
		return View{}, errs.Validationf("rating must be between 1 and 5")
	}
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return View{}, err
	}
	r.Rating = rating
	r.Comment = comment
	r, err = s.store.Update(ctx, r)
	if err != nil {
		return View{}, err
	}
	return s.toView(ctx, r)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id string) (View, error) {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return View{}, err
	}
	return s.toView(ctx, r)
}

func (s *Service) ListByCourse(ctx context.Context, courseID string) ([]View, error) {
	recs, err := s.store.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, recs)
}

func (s *Service) ListByStudent(ctx context.Context, studentID string) ([]View, error) {
	recs, err := s.store.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, recs)
}

func (s *Service) AverageRating(ctx context.Context, courseID string) (float64, error) {
	return s.store.AverageRating(ctx, courseID)
}

func (s *Service) toView(ctx context.Context, r Review) (View, error) {
	v := View{Review: r}
	if c, err := s.courses.GetCourse(ctx, r.CourseID); err == nil {
		v.CourseTitle = c.Title
	}
	if u, err := s.users.GetByID(ctx, r.StudentID); err == nil {
		v.StudentName = u.Name
	}
	return v, nil
}

func (s *Service) toViews(ctx context.Context, recs []Review) ([]View, error) {
	out := make([]View, 0, len(recs))
	for _, r := range recs {
		v, err := s.toView(ctx, r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
