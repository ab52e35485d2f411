package review

import "context"

type Store interface {
	Create(ctx context.Context, r Review) (Review, error)
	Get(ctx context.Context, id string) (Review, error)
	ExistsPair(ctx context.Context, studentID, courseID string) (bool, error)
	Update(ctx context.Context, r Review) (Review, error)
	Delete(ctx context.Context, id string) error
	ListByCourse(ctx context.Context, courseID string) ([]Review, error)
	ListByStudent(ctx context.Context, studentID string) ([]Review, error)
	AverageRating(ctx context.Context, courseID string) (float64, error)
}
