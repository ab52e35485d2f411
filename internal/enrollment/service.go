package enrollment

import (
	"context"
	"log"
	"time"

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

type Service struct {
	store   Store
	users   Users
	courses Courses
}

func NewService(store Store, users Users, courses Courses) *Service {
	return &Service{store: store, users: users, courses: courses}
}

// Enroll creates an active enrollment at progress 0. Only students can
// enroll, only in published courses, and only once per course — the store's
// uniqueness constraint backs the duplicate check under concurrency.
func (s *Service) Enroll(ctx context.Context, studentID, courseID string) (View, error) {
	student, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		return View{}, err
	}
	if err := identity.RequireRole(student, identity.RoleStudent); err != nil {
		return View{}, err
	}
	course, err := s.courses.GetCourse(ctx, courseID)
	if err != nil {
		return View{}, err
	}
	if !course.IsPublished {
		return View{}, errs.BusinessRule("cannot enroll in unpublished course")
	}
	exists, err := s.store.ExistsPair(ctx, studentID, courseID)
	if err != nil {
		return View{}, err
	}
	if exists {
		return View{}, errs.Duplicate("enrollment already exists for this student and course")
	}
	e, err := s.store.Create(ctx, Enrollment{
		StudentID:  studentID,
		CourseID:   courseID,
		Status:     StatusActive,
		Progress:   0,
		EnrolledAt: time.Now().Unix(),
	})
	if err != nil {
		return View{}, err
	}
	log.Printf("enrollment: %s enrolled in %s (%s)", student.Username, course.Title, e.ID)
	return View{Enrollment: e, StudentName: student.Name, CourseTitle: course.Title}, nil
}

// UpdateProgress sets the progress percentage. Hitting 100 on an active
// enrollment completes it and stamps the completion time; the transition
// never fires again for completed or dropped records. Progress can still
// move after completion — the status just never reverts.
func (s *Service) UpdateProgress(ctx context.Context, enrollmentID string, progress int) (View, error) {
	if progress < 0 || progress > 100 {
		return View{}, errs.Validationf("progress must be between 0 and 100")
	}
	e, err := s.store.Get(ctx, enrollmentID)
	if err != nil {
		return View{}, err
	}
	e.Progress = progress
	if progress == 100 && e.Status == StatusActive {
		e.Status = StatusCompleted
		e.CompletedAt = time.Now().Unix()
		log.Printf("enrollment: %s auto-completed", e.ID)
	}
	e, err = s.store.Update(ctx, e)
	if err != nil {
		return View{}, err
	}
	return s.toView(ctx, e)
}

// Complete forces the terminal completed state regardless of the current one.
// This is the explicit override path, distinct from the 100%-progress one,
// and is idempotent.
func (s *Service) Complete(ctx context.Context, enrollmentID string) (View, error) {
	e, err := s.store.Get(ctx, enrollmentID)
	if err != nil {
		return View{}, err
	}
	e.Status = StatusCompleted
	e.Progress = 100
	e.CompletedAt = time.Now().Unix()
	e, err = s.store.Update(ctx, e)
	if err != nil {
		return View{}, err
	}
	return s.toView(ctx, e)
}

// Drop marks the enrollment dropped but keeps progress and any completion
// timestamp for the record.
func (s *Service) Drop(ctx context.Context, enrollmentID string) (View, error) {
	e, err := s.store.Get(ctx, enrollmentID)
	if err != nil {
		return View{}, err
	}
	e.Status = StatusDropped
	e, err = s.store.Update(ctx, e)
	if err != nil {
		return View{}, err
	}
	return s.toView(ctx, e)
}

// Unenroll deletes the record entirely, unlike Drop which retains history.
func (s *Service) Unenroll(ctx context.Context, studentID, courseID string) error {
	e, err := s.store.GetByPair(ctx, studentID, courseID)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, e.ID); err != nil {
		return err
	}
	log.Printf("enrollment: %s deleted", e.ID)
	return nil
}

func (s *Service) IsEnrolled(ctx context.Context, studentID, courseID string) (bool, error) {
	return s.store.ExistsPair(ctx, studentID, courseID)
}

func (s *Service) Get(ctx context.Context, id string) (View, error) {
	e, err := s.store.Get(ctx, id)
	if err != nil {
		return View{}, err
	}
	return s.toView(ctx, e)
}

func (s *Service) GetByStudentAndCourse(ctx context.Context, studentID, courseID string) (View, error) {
	e, err := s.store.GetByPair(ctx, studentID, courseID)
	if err != nil {
		return View{}, err
	}
	return s.toView(ctx, e)
}

func (s *Service) ListByStudent(ctx context.Context, studentID string) ([]View, error) {
	recs, err := s.store.ListByStudent(ctx, studentID, "")
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, recs)
}

func (s *Service) ListActiveByStudent(ctx context.Context, studentID string) ([]View, error) {
	recs, err := s.store.ListByStudent(ctx, studentID, StatusActive)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, recs)
}

func (s *Service) ListByCourse(ctx context.Context, courseID string) ([]View, error) {
	recs, err := s.store.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, recs)
}

func (s *Service) toView(ctx context.Context, e Enrollment) (View, error) {
	v := View{Enrollment: e}
	if u, err := s.users.GetByID(ctx, e.StudentID); err == nil {
		v.StudentName = u.Name
	}
	if c, err := s.courses.GetCourse(ctx, e.CourseID); err == nil {
		v.CourseTitle = c.Title
	}
	return v, nil
}

func (s *Service) toViews(ctx context.Context, recs []Enrollment) ([]View, error) {
	out := make([]View, 0, len(recs))
	for _, e := range recs {
		v, err := s.toView(ctx, e)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
