package catalog

import "context"

type ListOpts struct {
	Q             string
	PublishedOnly bool
	TeacherID     string
	Limit         int
	Offset        int
}

type Store interface {
	CreateCourse(ctx context.Context, c Course) (Course, error)
	GetCourse(ctx context.Context, id string) (Course, error)
	UpdateCourse(ctx context.Context, c Course) (Course, error)
	DeleteCourse(ctx context.Context, id string) error
	ListCourses(ctx context.Context, opts ListOpts) ([]Course, error)

	CreateModule(ctx context.Context, m Module) (Module, error)
	GetModule(ctx context.Context, id string) (Module, error)
	ListModules(ctx context.Context, courseID string) ([]Module, error)

	CreateLesson(ctx context.Context, l Lesson) (Lesson, error)
	GetLesson(ctx context.Context, id string) (Lesson, error)
	ListLessons(ctx context.Context, moduleID string) ([]Lesson, error)
	CountLessonsByCourse(ctx context.Context, courseID string) (int, error)

	CreateAssignment(ctx context.Context, a Assignment) (Assignment, error)
	GetAssignment(ctx context.Context, id string) (Assignment, error)
	ListAssignmentsByLesson(ctx context.Context, lessonID string) ([]Assignment, error)

	CreateQuiz(ctx context.Context, q Quiz) (Quiz, error)
	GetQuiz(ctx context.Context, id string) (Quiz, error)
	GetQuizWithQuestions(ctx context.Context, id string) (Quiz, error)
	GetQuizByModule(ctx context.Context, moduleID string) (Quiz, error)
	AddQuestion(ctx context.Context, q Question) (Question, error)
	AddAnswerOption(ctx context.Context, o AnswerOption) (AnswerOption, error)
}
