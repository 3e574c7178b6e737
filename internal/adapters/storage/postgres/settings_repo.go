package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"vetclinic-api/internal/domain/settings"
)

type SettingsRepo struct {
	db *sql.DB
}

func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// Get lee la fila singleton (id = 1), creándola con defaults si no existe.
func (r *SettingsRepo) Get(ctx context.Context) (settings.Settings, error) {
	s, err := r.get(ctx)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return settings.Settings{}, err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO settings (id, clinic_name, phone, email, address, updated_at)
		VALUES (1, 'Veterinary Clinic', '', '', '', $1)
		ON CONFLICT (id) DO NOTHING
	`, time.Now())
	if err != nil {
		return settings.Settings{}, err
	}
	return r.get(ctx)
}

func (r *SettingsRepo) Save(ctx context.Context, s settings.Settings) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (id, clinic_name, phone, email, address, updated_at)
		VALUES (1, $1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			clinic_name = EXCLUDED.clinic_name,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			address = EXCLUDED.address,
			updated_at = EXCLUDED.updated_at
	`,
		s.ClinicName, s.Phone, s.Email, s.Address, s.UpdatedAt,
	)
	return err
}

func (r *SettingsRepo) get(ctx context.Context) (settings.Settings, error) {
	var s settings.Settings
	err := r.db.QueryRowContext(ctx, `
		SELECT clinic_name, phone, email, address, updated_at
		FROM settings
		WHERE id = 1
	`).Scan(&s.ClinicName, &s.Phone, &s.Email, &s.Address, &s.UpdatedAt)
	return s, err
}
