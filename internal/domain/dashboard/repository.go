package dashboard

import "context"

// Repository expone las queries agregadas que no pertenecen a ningún
// agregado en particular. Sin caching: cada request recomputa del store.
type Repository interface {
	AppointmentsByDoctor(ctx context.Context) ([]DoctorCount, error)
	AppointmentsByStatus(ctx context.Context) ([]GroupCount, error)

	// AppointmentsByRecentDate agrupa por fecha los turnos con
	// appointment_date >= since (YYYY-MM-DD).
	AppointmentsByRecentDate(ctx context.Context, since string) ([]GroupCount, error)

	// PendingAppointments: próximos turnos scheduled ordenados por
	// (fecha, hora), con el nombre de la mascota joineado.
	PendingAppointments(ctx context.Context, limit int) ([]PendingAppointment, error)
}
