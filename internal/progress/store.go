package progress

import "context"

type Store interface {
	Create(ctx context.Context, p LessonProgress) (LessonProgress, error)
	GetByPair(ctx context.Context, studentID, lessonID string) (LessonProgress, error)
	Update(ctx context.Context, p LessonProgress) (LessonProgress, error)
	ListByStudent(ctx context.Context, studentID string) ([]LessonProgress, error)
	// CountCompletedInCourse counts the student's completed lessons within
	// one course.
	CountCompletedInCourse(ctx context.Context, studentID, courseID string) (int, error)
}
