package postgres

import (
	"context"
	"database/sql"

	"vetclinic-api/internal/domain/inventory"
)

type InventoryRepo struct {
	db *sql.DB
}

func NewInventoryRepo(db *sql.DB) *InventoryRepo {
	return &InventoryRepo{db: db}
}

func (r *InventoryRepo) List(ctx context.Context) ([]inventory.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, quantity, reorder_level, created_at, updated_at
		FROM inventory
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]inventory.Item, 0)
	for rows.Next() {
		var it inventory.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Quantity, &it.ReorderLevel, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *InventoryRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM inventory`).Scan(&n)
	return n, err
}

func (r *InventoryRepo) CountLowStock(ctx context.Context, threshold int) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM inventory WHERE quantity <= $1
	`, threshold).Scan(&n)
	return n, err
}
