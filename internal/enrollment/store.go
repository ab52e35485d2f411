package enrollment

import "context"

type Store interface {
	// Create assigns the id and rejects a second record for the same
	// (student, course) pair with a duplicate-state error, backed by the
	// UNIQUE constraint so concurrent creates cannot both win.
	Create(ctx context.Context, e Enrollment) (Enrollment, error)
	Get(ctx context.Context, id string) (Enrollment, error)
	GetByPair(ctx context.Context, studentID, courseID string) (Enrollment, error)
	ExistsPair(ctx context.Context, studentID, courseID string) (bool, error)
	Update(ctx context.Context, e Enrollment) (Enrollment, error)
	Delete(ctx context.Context, id string) error
	ListByStudent(ctx context.Context, studentID string, status Status) ([]Enrollment, error)
	ListByCourse(ctx context.Context, courseID string) ([]Enrollment, error)
}
