package postgres

import (
	"context"
	"database/sql"
	"errors"

	"vetclinic-api/internal/domain/clients"
)

type ClientsRepo struct {
	db *sql.DB
}

func NewClientsRepo(db *sql.DB) *ClientsRepo {
	return &ClientsRepo{db: db}
}

func (r *ClientsRepo) Create(ctx context.Context, c clients.Client) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clients (id, name, phone, email, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		c.ID, c.Name, c.Phone, c.Email, c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (r *ClientsRepo) Update(ctx context.Context, c clients.Client) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE clients
		SET name = $2, phone = $3, email = $4, updated_at = $5
		WHERE id = $1
	`,
		c.ID, c.Name, c.Phone, c.Email, c.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return clients.ErrNotFound
	}
	return nil
}

func (r *ClientsRepo) GetByID(ctx context.Context, id string) (clients.Client, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, name, phone, email, created_at, updated_at
		FROM clients
		WHERE id = $1
	`, id))
}

func (r *ClientsRepo) GetByPhone(ctx context.Context, phone string) (clients.Client, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, name, phone, email, created_at, updated_at
		FROM clients
		WHERE phone = $1
	`, phone))
}

func (r *ClientsRepo) List(ctx context.Context) ([]clients.Client, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, phone, email, created_at, updated_at
		FROM clients
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]clients.Client, 0)
	for rows.Next() {
		var c clients.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ClientsRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&n)
	return n, err
}

// FindOrCreateByPhone se apoya en el unique de clients.phone: el insert
// ON CONFLICT DO NOTHING no falla si otro request ganó, y el re-select
// devuelve la fila ganadora sea cual sea.
func (r *ClientsRepo) FindOrCreateByPhone(ctx context.Context, c clients.Client) (clients.Client, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clients (id, name, phone, email, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (phone) DO NOTHING
	`,
		c.ID, c.Name, c.Phone, c.Email, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return clients.Client{}, err
	}
	return r.GetByPhone(ctx, c.Phone)
}

func (r *ClientsRepo) scanOne(row *sql.Row) (clients.Client, error) {
	var c clients.Client
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return clients.Client{}, clients.ErrNotFound
		}
		return clients.Client{}, err
	}
	return c, nil
}
