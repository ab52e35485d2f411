package submission

import "context"

type Store interface {
	// Create assigns the id; a second submission for the same
	// (student, assignment) pair is rejected as duplicate state, enforced by
	// the UNIQUE constraint underneath.
	Create(ctx context.Context, sub Submission) (Submission, error)
	Get(ctx context.Context, id string) (Submission, error)
	ExistsPair(ctx context.Context, studentID, assignmentID string) (bool, error)
	Update(ctx context.Context, sub Submission) (Submission, error)
	Delete(ctx context.Context, id string) error
	ListByStudent(ctx context.Context, studentID string) ([]Submission, error)
	ListByAssignment(ctx context.Context, assignmentID string) ([]Submission, error)
	ListByStatus(ctx context.Context, status Status) ([]Submission, error)
}
