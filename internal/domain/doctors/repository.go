package doctors

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Doctor, error)
	List(ctx context.Context) ([]Doctor, error)
	Count(ctx context.Context) (int, error)
}
