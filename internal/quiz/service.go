package quiz

import (
	"context"
	"log"
	"time"

	"github.com/studyhall/studyhall-lms/internal/catalog"
	"github.com/studyhall/studyhall-lms/internal/identity"
)

type Users interface {
	GetByID(ctx context.Context, id string) (identity.User, error)
}

// Quizzes resolves the full definition, answer keys included.
type Quizzes interface {
	GetQuizWithQuestions(ctx context.Context, id string) (catalog.Quiz, error)
}

type Service struct {
	store   Store
	users   Users
	quizzes Quizzes
}

func NewService(store Store, users Users, quizzes Quizzes) *Service {
	return &Service{store: store, users: users, quizzes: quizzes}
}

type TakeInput struct {
	StudentID    string
	QuizID       string
	Answers      map[string]string // question id -> chosen option id
	TimeSpentSec int
}

// Take grades an attempt and persists the snapshot. There is no attempt
// limit; every call appends a new submission.
func (s *Service) Take(ctx context.Context, in TakeInput) (View, error) {
	student, err := s.users.GetByID(ctx, in.StudentID)
	if err != nil {
		return View{}, err
	}
	if err := identity.RequireRole(student, identity.RoleStudent); err != nil {
		return View{}, err
	}
	q, err := s.quizzes.GetQuizWithQuestions(ctx, in.QuizID)
	if err != nil {
		return View{}, err
	}

	res := Score(q, in.Answers)

	sub, err := s.store.Create(ctx, Submission{
		QuizID:         q.ID,
		StudentID:      student.ID,
		ScorePercent:   res.ScorePercent,
		CorrectCount:   res.CorrectCount,
		TotalQuestions: res.TotalQuestions,
		Passed:         res.Passed,
		TakenAt:        time.Now().Unix(),
		TimeSpentSec:   in.TimeSpentSec,
	})
	if err != nil {
		return View{}, err
	}
	log.Printf("quiz: %s scored %d%% on %s (passed=%t)", student.Username, res.ScorePercent, q.Title, res.Passed)
	return View{Submission: sub, QuizTitle: q.Title, StudentName: student.Name}, nil
}

func (s *Service) Get(ctx context.Context, id string) (View, error) {
	sub, err := s.store.Get(ctx, id)
	if err != nil {
		return View{}, err
	}
	return s.toView(ctx, sub)
}

// ListByStudent returns attempts newest first.
func (s *Service) ListByStudent(ctx context.Context, studentID string) ([]View, error) {
	recs, err := s.store.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, recs)
}

func (s *Service) ListByQuiz(ctx context.Context, quizID string) ([]View, error) {
	recs, err := s.store.ListByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, recs)
}

func (s *Service) toView(ctx context.Context, sub Submission) (View, error) {
	v := View{Submission: sub}
	if q, err := s.quizzes.GetQuizWithQuestions(ctx, sub.QuizID); err == nil {
		v.QuizTitle = q.Title
	}
	if u, err := s.users.GetByID(ctx, sub.StudentID); err == nil {
		v.StudentName = u.Name
	}
	return v, nil
}

func (s *Service) toViews(ctx context.Context, recs []Submission) ([]View, error) {
	out := make([]View, 0, len(recs))
	for _, sub := range recs {
		v, err := s.toView(ctx, sub)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
