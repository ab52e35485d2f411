package quiz

import "context"

type Store interface {
	Create(ctx context.Context, sub Submission) (Submission, error)
	Get(ctx context.Context, id string) (Submission, error)
	ListByStudent(ctx context.Context, studentID string) ([]Submission, error)
	ListByQuiz(ctx context.Context, quizID string) ([]Submission, error)
}
