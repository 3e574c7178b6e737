package postgres

import (
	"context"
	"database/sql"

	"vetclinic-api/internal/domain/dashboard"
)

type DashboardRepo struct {
	db *sql.DB
}

func NewDashboardRepo(db *sql.DB) *DashboardRepo {
	return &DashboardRepo{db: db}
}

// AppointmentsByDoctor: LEFT JOIN para que doctores sin turnos salgan con 0.
func (r *DashboardRepo) AppointmentsByDoctor(ctx context.Context) ([]dashboard.DoctorCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT d.first_name || ' ' || d.last_name, COUNT(a.id)
		FROM doctors d
		LEFT JOIN appointments a ON a.doctor_id = d.id
		GROUP BY d.id, d.first_name, d.last_name
		ORDER BY d.first_name, d.last_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]dashboard.DoctorCount, 0)
	for rows.Next() {
		var dc dashboard.DoctorCount
		if err := rows.Scan(&dc.DoctorName, &dc.AppointmentCount); err != nil {
			return nil, err
		}
		out = append(out, dc)
	}
	return out, rows.Err()
}

func (r *DashboardRepo) AppointmentsByStatus(ctx context.Context) ([]dashboard.GroupCount, error) {
	return r.groups(ctx, `
		SELECT status, COUNT(*)
		FROM appointments
		GROUP BY status
		ORDER BY status
	`)
}

func (r *DashboardRepo) AppointmentsByRecentDate(ctx context.Context, since string) ([]dashboard.GroupCount, error) {
	return r.groups(ctx, `
		SELECT to_char(appointment_date, 'YYYY-MM-DD'), COUNT(*)
		FROM appointments
		WHERE appointment_date >= $1::date
		GROUP BY appointment_date
		ORDER BY appointment_date
	`, since)
}

func (r *DashboardRepo) PendingAppointments(ctx context.Context, limit int) ([]dashboard.PendingAppointment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.id, a.pet_id, a.appointment_time, COALESCE(p.name, '')
		FROM appointments a
		LEFT JOIN pets p ON p.id = a.pet_id
		WHERE a.status = 'scheduled'
		ORDER BY a.appointment_date, a.appointment_time
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]dashboard.PendingAppointment, 0)
	for rows.Next() {
		var pa dashboard.PendingAppointment
		if err := rows.Scan(&pa.ID, &pa.PetID, &pa.Time, &pa.PetName); err != nil {
			return nil, err
		}
		out = append(out, pa)
	}
	return out, rows.Err()
}

func (r *DashboardRepo) groups(ctx context.Context, q string, args ...any) ([]dashboard.GroupCount, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]dashboard.GroupCount, 0)
	for rows.Next() {
		var gc dashboard.GroupCount
		if err := rows.Scan(&gc.Label, &gc.Count); err != nil {
			return nil, err
		}
		out = append(out, gc)
	}
	return out, rows.Err()
}

// Counters implementa los conteos del dashboard con COUNT(*) directos.
type Counters struct {
	DB *sql.DB
}

func (c Counters) CountPets(ctx context.Context) (int, error)    { return c.count(ctx, "pets") }
func (c Counters) CountClients(ctx context.Context) (int, error) { return c.count(ctx, "clients") }
func (c Counters) CountAppointments(ctx context.Context) (int, error) {
	return c.count(ctx, "appointments")
}
func (c Counters) CountDoctors(ctx context.Context) (int, error)   { return c.count(ctx, "doctors") }
func (c Counters) CountInventory(ctx context.Context) (int, error) { return c.count(ctx, "inventory") }

func (c Counters) CountLowStock(ctx context.Context, threshold int) (int, error) {
	var n int
	err := c.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM inventory WHERE quantity <= $1`, threshold).Scan(&n)
	return n, err
}

func (c Counters) count(ctx context.Context, table string) (int, error) {
	var n int
	err := c.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n)
	return n, err
}
