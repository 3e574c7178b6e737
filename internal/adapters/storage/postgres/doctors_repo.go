package postgres

import (
	"context"
	"database/sql"
	"errors"

	"vetclinic-api/internal/domain/doctors"
)

type DoctorsRepo struct {
	db *sql.DB
}

func NewDoctorsRepo(db *sql.DB) *DoctorsRepo {
	return &DoctorsRepo{db: db}
}

func (r *DoctorsRepo) GetByID(ctx context.Context, id string) (doctors.Doctor, error) {
	var d doctors.Doctor
	err := r.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, created_at
		FROM doctors
		WHERE id = $1
	`, id).Scan(&d.ID, &d.FirstName, &d.LastName, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return doctors.Doctor{}, doctors.ErrNotFound
		}
		return doctors.Doctor{}, err
	}
	return d, nil
}

func (r *DoctorsRepo) List(ctx context.Context) ([]doctors.Doctor, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, created_at
		FROM doctors
		ORDER BY first_name, last_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]doctors.Doctor, 0)
	for rows.Next() {
		var d doctors.Doctor
		if err := rows.Scan(&d.ID, &d.FirstName, &d.LastName, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DoctorsRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM doctors`).Scan(&n)
	return n, err
}
