package submission

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

type Assignments interface {
	GetAssignment(ctx context.Context, id string) (catalog.Assignment, error)
}

type Service struct {
	store       Store
	users       Users
	assignments Assignments
}

func NewService(store Store, users Users, assignments Assignments) *Service {
	return &Service{store: store, users: users, assignments: assignments}
}

type SubmitInput struct {
	StudentID    string
	AssignmentID string
	Content      string
	FileURL      string
}

// Submit creates the single submission a student gets per assignment. The
// pair uniqueness is re-checked by the store's constraint, so two racing
// submits cannot both land.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (View, error) {
	student, err := s.users.GetByID(ctx, in.StudentID)
	if err != nil {
		return View{}, err
	}
	if err := identity.RequireRole(student, identity.RoleStudent); err != nil {
		return View{}, err
	}
	a, err := s.assignments.GetAssignment(ctx, in.AssignmentID)
	if err != nil {
		return View{}, err
	}
	exists, err := s.store.ExistsPair(ctx, in.StudentID, in.AssignmentID)
	if err != nil {
		return View{}, err
	}
	if exists {
		return View{}, errs.Duplicate("submission already exists for this student and assignment")
	}
	sub, err := s.store.Create(ctx, Submission{
		AssignmentID: in.AssignmentID,
		StudentID:    in.StudentID,
		Content:      in.Content,
		FileURL:      in.FileURL,
		SubmittedAt:  time.Now().Unix(),
		Status:       StatusSubmitted,
	})
	if err != nil {
		return View{}, err
	}
	log.Printf("submission: %s submitted %s (%s)", student.Username, a.Title, sub.ID)
	return View{Submission: sub, AssignmentTitle: a.Title, StudentName: student.Name}, nil
}

// Grade scores a submission against its assignment's max score and moves it
// to reviewed. No status guard: a rejected submission may be re-graded.
func (s *Service) Grade(ctx context.Context, submissionID string, score int, feedback string) (View, error) {
	sub, err := s.store.Get(ctx, submissionID)
	if err != nil {
		return View{}, err
	}
	a, err := s.assignments.GetAssignment(ctx, sub.AssignmentID)
	if err != nil {
		return View{}, err
	}
	if score < 0 || score > a.MaxScore {
		return View{}, errs.Validationf("score must be between 0 and %d", a.MaxScore)
	}
	sub.Score = &score
	sub.Feedback = feedback
	sub.Status = StatusReviewed
	sub.ReviewedAt = time.Now().Unix()
	sub, err = s.store.Update(ctx, sub)
	if err != nil {
		return View{}, err
	}
	log.Printf("submission: %s graded %d/%d", sub.ID, score, a.MaxScore)
	return s.toView(ctx, sub)
}

// Accept flips the status only; score and review timestamp are untouched.
func (s *Service) Accept(ctx context.Context, submissionID string) (View, error) {
	sub, err := s.store.Get(ctx, submissionID)
	if err != nil {
		return View{}, err
	}
	sub.Status = StatusAccepted
	sub, err = s.store.Update(ctx, sub)
	if err != nil {
		return View{}, err
	}
	return s.toView(ctx, sub)
}

func (s *Service) Reject(ctx context.Context, submissionID, feedback string) (View, error) {
	sub, err := s.store.Get(ctx, submissionID)
	if err != nil {
		return View{}, err
	}
	sub.Status = StatusRejected
	sub.Feedback = feedback
	sub.ReviewedAt = time.Now().Unix()
	sub, err = s.store.Update(ctx, sub)
	if err != nil {
		return View{}, err
	}
	return s.toView(ctx, sub)
}

func (s *Service) Get(ctx context.Context, id string) (View, error) {
	sub, err := s.store.Get(ctx, id)
	if err != nil {
		return View{}, err
	}
	return s.toView(ctx, sub)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func (s *Service) ListByStudent(ctx context.Context, studentID string) ([]View, error) {
	recs, err := s.store.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, recs)
}

func (s *Service) ListByAssignment(ctx context.Context, assignmentID string) ([]View, error) {
	recs, err := s.store.ListByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, recs)
}

// ListPending returns submissions still waiting for a review.
func (s *Service) ListPending(ctx context.Context) ([]View, error) {
	recs, err := s.store.ListByStatus(ctx, StatusSubmitted)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, recs)
}

func (s *Service) toView(ctx context.Context, sub Submission) (View, error) {
	v := View{Submission: sub}
	if a, err := s.assignments.GetAssignment(ctx, sub.AssignmentID); err == nil {
		v.AssignmentTitle = a.Title
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
