package progress

import (
	"context"
	"log"
	"time"

	"github.com/studyhall/studyhall-lms/internal/catalog"
	"github.com/studyhall/studyhall-lms/internal/errs"
	"github.com/studyhall/studyhall-lms/internal/identity"
)

// Users is the slice of the identity store the service needs.
type Users interface {
	GetByID(ctx context.Context, id string) (identity.User, error)
}

// Lessons resolves catalog lookups for progress bookkeeping.
type Lessons interface {
	GetLesson(ctx context.Context, id string) (catalog.Lesson, error)
	CountLessonsByCourse(ctx context.Context, courseID string) (int, error)
}

type Service struct {
	store   Store
	users   Users
	lessons Lessons
}

func NewService(store Store, users Users, lessons Lessons) *Service {
	return &Service{store: store, users: users, lessons: lessons}
}

// StartLesson opens a progress record for the student on the lesson.
// Starting the same lesson twice is a conflict.
func (s *Service) StartLesson(ctx context.Context, studentID, lessonID string) (LessonProgress, error) {
	student, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		return LessonProgress{}, err
	}
	if err := identity.RequireRole(student, identity.RoleStudent); err != nil {
		return LessonProgress{}, err
	}
	if _, err := s.lessons.GetLesson(ctx, lessonID); err != nil {
		return LessonProgress{}, err
	}
	p, err := s.store.Create(ctx, LessonProgress{
		StudentID: studentID,
		LessonID:  lessonID,
		StartedAt: time.Now().Unix(),
	})
	if err != nil {
		return LessonProgress{}, err
	}
	log.Printf("progress: student %s started lesson %s", studentID, lessonID)
	return p, nil
}

// CompleteLesson stamps the record completed and accumulates time spent.
// Completing an already-completed lesson only adds time.
func (s *Service) CompleteLesson(ctx context.Context, studentID, lessonID string, timeSpentMin int) (LessonProgress, error) {
	if timeSpentMin < 0 {
		return LessonProgress{}, errs.Validationf("time spent must not be negative")
	}
	p, err := s.store.GetByPair(ctx, studentID, lessonID)
	if err != nil {
		return LessonProgress{}, err
	}
	if !p.IsCompleted {
		p.IsCompleted = true
		p.CompletedAt = time.Now().Unix()
	}
	p.TimeSpentMin += timeSpentMin
	return s.store.Update(ctx, p)
}

// CoursePercent reports completed lessons over total lessons for the course,
// truncated to a whole percent. A course with no lessons reads as zero.
func (s *Service) CoursePercent(ctx context.Context, studentID, courseID string) (int, error) {
	total, err := s.lessons.CountLessonsByCourse(ctx, courseID)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	done, err := s.store.CountCompletedInCourse(ctx, studentID, courseID)
	if err != nil {
		return 0, err
	}
	return done * 100 / total, nil
}

// ListByStudent returns the student's progress records, newest first.
func (s *Service) ListByStudent(ctx context.Context, studentID string) ([]LessonProgress, error) {
	return s.store.ListByStudent(ctx, studentID)
}
