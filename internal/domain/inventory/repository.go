package inventory

import "context"

type Repository interface {
	List(ctx context.Context) ([]Item, error)
	Count(ctx context.Context) (int, error)

	// CountLowStock cuenta items con quantity <= threshold.
	CountLowStock(ctx context.Context, threshold int) (int, error)
}
