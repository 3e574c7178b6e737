package postgres

import (
	"context"
	"database/sql"
	"errors"

	"vetclinic-api/internal/domain/appointments"
)

type AppointmentsRepo struct {
	db *sql.DB
}

func NewAppointmentsRepo(db *sql.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

const apptColumns = `
	a.id, a.pet_id, a.client_id, a.doctor_id,
	to_char(a.appointment_date, 'YYYY-MM-DD'), a.appointment_time,
	a.reason, a.status, a.notes,
	a.created_at, a.updated_at,
	COALESCE(p.name, ''),
	COALESCE(c.name, ''),
	COALESCE(s.name, ''),
	COALESCE(b.name, ''),
	COALESCE(d.first_name || ' ' || d.last_name, '')`

const apptJoins = `
	FROM appointments a
	LEFT JOIN pets p ON p.id = a.pet_id
	LEFT JOIN clients c ON c.id = a.client_id
	LEFT JOIN doctors d ON d.id = a.doctor_id
	LEFT JOIN species s ON s.id = p.species_id
	LEFT JOIN breeds b ON b.id = p.breed_id`

// Create se apoya en el índice único parcial sobre
// (doctor_id, appointment_date, appointment_time) WHERE status = 'scheduled':
// de dos inserts concurrentes por el mismo slot uno recibe 23505.
func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointments (
			id, pet_id, client_id, doctor_id,
			appointment_date, appointment_time,
			reason, status, notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		a.ID, a.PetID, a.ClientID, a.DoctorID,
		a.Date, a.Time,
		a.Reason, a.Status, a.Notes,
		a.CreatedAt, a.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return appointments.ErrSlotTaken
	}
	return err
}

func (r *AppointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE appointments
		SET
			pet_id = $2,
			client_id = $3,
			doctor_id = $4,
			appointment_date = $5,
			appointment_time = $6,
			reason = $7,
			status = $8,
			notes = $9,
			updated_at = $10
		WHERE id = $1
	`,
		a.ID, a.PetID, a.ClientID, a.DoctorID,
		a.Date, a.Time,
		a.Reason, a.Status, a.Notes,
		a.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return appointments.ErrSlotTaken
	}
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return appointments.ErrNotFound
	}
	return nil
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT`+apptColumns+apptJoins+`
		WHERE a.id = $1
	`, id)

	a, err := scanAppointment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appointments.Appointment{}, appointments.ErrNotFound
		}
		return appointments.Appointment{}, err
	}
	return a, nil
}

func (r *AppointmentsRepo) List(ctx context.Context) ([]appointments.Appointment, error) {
	return r.query(ctx, `SELECT`+apptColumns+apptJoins+`
		ORDER BY a.appointment_date, a.appointment_time
	`)
}

func (r *AppointmentsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return appointments.ErrNotFound
	}
	return nil
}

func (r *AppointmentsRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM appointments`).Scan(&n)
	return n, err
}

func (r *AppointmentsRepo) Search(ctx context.Context, query string) ([]appointments.Appointment, error) {
	pattern := "%" + query + "%"
	return r.query(ctx, `SELECT`+apptColumns+apptJoins+`
		WHERE p.name ILIKE $1 OR c.name ILIKE $1 OR a.reason ILIKE $1
		ORDER BY a.appointment_date, a.appointment_time
	`, pattern)
}

func (r *AppointmentsRepo) ListByDate(ctx context.Context, date string) ([]appointments.Appointment, error) {
	return r.query(ctx, `SELECT`+apptColumns+apptJoins+`
		WHERE a.appointment_date = $1::date
		ORDER BY a.appointment_time
	`, date)
}

func (r *AppointmentsRepo) ListBetween(ctx context.Context, from, to string) ([]appointments.Appointment, error) {
	return r.query(ctx, `SELECT`+apptColumns+apptJoins+`
		WHERE a.appointment_date BETWEEN $1::date AND $2::date
		ORDER BY a.appointment_date, a.appointment_time
	`, from, to)
}

func (r *AppointmentsRepo) SlotAvailable(ctx context.Context, doctorID, date, timeSlot, excludeID string) (bool, error) {
	var taken bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE doctor_id = $1
			  AND appointment_date = $2::date
			  AND appointment_time = $3
			  AND status = 'scheduled'
			  AND ($4 = '' OR id <> $4)
		)
	`, doctorID, date, timeSlot, excludeID).Scan(&taken)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

func (r *AppointmentsRepo) query(ctx context.Context, q string, args ...any) ([]appointments.Appointment, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAppointment(row rowScanner) (appointments.Appointment, error) {
	var a appointments.Appointment
	if err := row.Scan(
		&a.ID, &a.PetID, &a.ClientID, &a.DoctorID,
		&a.Date, &a.Time,
		&a.Reason, &a.Status, &a.Notes,
		&a.CreatedAt, &a.UpdatedAt,
		&a.PetName, &a.ClientName, &a.SpeciesName, &a.BreedName, &a.DoctorName,
	); err != nil {
		return appointments.Appointment{}, err
	}
	return a, nil
}
