package catalog

import (
	"context"
	"log"

	"github.com/studyhall/studyhall-lms/internal/errs"
	"github.com/studyhall/studyhall-lms/internal/identity"
)

// Users is the slice of the identity store the catalog needs.
type Users interface {
	GetByID(ctx context.Context, id string) (identity.User, error)
}

type Service struct {
	store Store
	users Users
}

func NewService(store Store, users Users) *Service {
	return &Service{store: store, users: users}
}

func (s *Service) CreateCourse(ctx context.Context, actorID string, c Course) (Course, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return Course{}, err
	}
	if err := identity.RequireAnyRole(actor, identity.RoleTeacher, identity.RoleAdmin); err != nil {
		return Course{}, err
	}
	if c.Title == "" {
		return Course{}, errs.Validationf("course title is required")
	}
	c.TeacherID = actor.ID
	c.IsPublished = false
	created, err := s.store.CreateCourse(ctx, c)
	if err != nil {
		return Course{}, err
	}
	log.Printf("catalog: course %s created by %s", created.ID, actor.Username)
	return created, nil
}

func (s *Service) UpdateCourse(ctx context.Context, c Course) (Course, error) {
	existing, err := s.store.GetCourse(ctx, c.ID)
	if err != nil {
		return Course{}, err
	}
	if c.Title == "" {
		return Course{}, errs.Validationf("course title is required")
	}
	existing.Title = c.Title
	existing.Description = c.Description
	existing.DurationHours = c.DurationHours
	existing.StartDate = c.StartDate
	existing.EndDate = c.EndDate
	return s.store.UpdateCourse(ctx, existing)
}

// Publish opens a course for enrollment. Unpublish is deliberate too: an
// unpublished course keeps existing enrollments but rejects new ones.
func (s *Service) Publish(ctx context.Context, courseID string, published bool) (Course, error) {
	c, err := s.store.GetCourse(ctx, courseID)
	if err != nil {
		return Course{}, err
	}
	c.IsPublished = published
	return s.store.UpdateCourse(ctx, c)
}

func (s *Service) DeleteCourse(ctx context.Context, courseID string) error {
	return s.store.DeleteCourse(ctx, courseID)
}

func (s *Service) GetCourse(ctx context.Context, id string) (Course, error) {
	return s.store.GetCourse(ctx, id)
}

func (s *Service) ListCourses(ctx context.Context, opts ListOpts) ([]Course, error) {
	return s.store.ListCourses(ctx, opts)
}

func (s *Service) AddModule(ctx context.Context, m Module) (Module, error) {
	if _, err := s.store.GetCourse(ctx, m.CourseID); err != nil {
		return Module{}, err
	}
	if m.Title == "" {
		return Module{}, errs.Validationf("module title is required")
	}
	return s.store.CreateModule(ctx, m)
}

func (s *Service) ListModules(ctx context.Context, courseID string) ([]Module, error) {
	return s.store.ListModules(ctx, courseID)
}

func (s *Service) AddLesson(ctx context.Context, l Lesson) (Lesson, error) {
	if _, err := s.store.GetModule(ctx, l.ModuleID); err != nil {
		return Lesson{}, err
	}
	if l.Title == "" {
		return Lesson{}, errs.Validationf("lesson title is required")
	}
	return s.store.CreateLesson(ctx, l)
}

func (s *Service) ListLessons(ctx context.Context, moduleID string) ([]Lesson, error) {
	return s.store.ListLessons(ctx, moduleID)
}

func (s *Service) AddAssignment(ctx context.Context, a Assignment) (Assignment, error) {
	if _, err := s.store.GetLesson(ctx, a.LessonID); err != nil {
		return Assignment{}, err
	}
	if a.Title == "" {
		return Assignment{}, errs.Validationf("assignment title is required")
	}
	if a.MaxScore <= 0 {
		a.MaxScore = 100
	}
	return s.store.CreateAssignment(ctx, a)
}

func (s *Service) GetAssignment(ctx context.Context, id string) (Assignment, error) {
	return s.store.GetAssignment(ctx, id)
}

func (s *Service) ListAssignments(ctx context.Context, lessonID string) ([]Assignment, error) {
	return s.store.ListAssignmentsByLesson(ctx, lessonID)
}

// AddQuiz enforces the one-quiz-per-module rule (also a UNIQUE column in the
// schema, so a racing second insert still loses).
func (s *Service) AddQuiz(ctx context.Context, q Quiz) (Quiz, error) {
	if _, err := s.store.GetModule(ctx, q.ModuleID); err != nil {
		return Quiz{}, err
	}
	if q.Title == "" {
		return Quiz{}, errs.Validationf("quiz title is required")
	}
	if q.PassingScore == 0 {
		q.PassingScore = 70
	}
	if q.PassingScore < 0 || q.PassingScore > 100 {
		return Quiz{}, errs.Validationf("passing score must be between 0 and 100")
	}
	created, err := s.store.CreateQuiz(ctx, q)
	if err != nil {
		return Quiz{}, err
	}
	log.Printf("catalog: quiz %s created for module %s", created.ID, created.ModuleID)
	return created, nil
}

func (s *Service) GetQuiz(ctx context.Context, id string) (Quiz, error) {
	return s.store.GetQuiz(ctx, id)
}

// GetQuizForStudent returns questions with correctness flags stripped.
func (s *Service) GetQuizForStudent(ctx context.Context, id string) (Quiz, error) {
	q, err := s.store.GetQuizWithQuestions(ctx, id)
	if err != nil {
		return Quiz{}, err
	}
	return q.StudentView(), nil
}

func (s *Service) GetQuizByModule(ctx context.Context, moduleID string) (Quiz, error) {
	return s.store.GetQuizByModule(ctx, moduleID)
}

func (s *Service) AddQuestion(ctx context.Context, q Question) (Question, error) {
	if _, err := s.store.GetQuiz(ctx, q.QuizID); err != nil {
		return Question{}, err
	}
	if q.Text == "" {
		return Question{}, errs.Validationf("question text is required")
	}
	if q.Type == "" {
		q.Type = QuestionSingleChoice
	}
	if q.Points <= 0 {
		q.Points = 1
	}
	return s.store.AddQuestion(ctx, q)
}

func (s *Service) AddAnswerOption(ctx context.Context, o AnswerOption) (AnswerOption, error) {
	if o.Text == "" {
		return AnswerOption{}, errs.Validationf("option text is required")
	}
	return s.store.AddAnswerOption(ctx, o)
}
