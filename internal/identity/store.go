package identity

import "context"

type Store interface {
	Create(ctx context.Context, u User) (User, error)
	Upsert(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	List(ctx context.Context, role string) ([]User, error)
}
