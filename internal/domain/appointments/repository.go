package appointments

import "context"

type Repository interface {
	// Create inserta el turno. La implementación debe re-chequear el slot
	// de forma atómica con el insert y devolver ErrSlotTaken si otro turno
	// scheduled ya lo ocupa (cierra la carrera check-then-act).
	Create(ctx context.Context, a Appointment) error

	// Update reemplaza la fila; mismo chequeo atómico de slot excluyendo a.ID.
	Update(ctx context.Context, a Appointment) error

	GetByID(ctx context.Context, id string) (Appointment, error)
	List(ctx context.Context) ([]Appointment, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)

	// Search matchea nombre de mascota, nombre de cliente o reason.
	Search(ctx context.Context, query string) ([]Appointment, error)

	ListByDate(ctx context.Context, date string) ([]Appointment, error)
	ListBetween(ctx context.Context, from, to string) ([]Appointment, error)

	// SlotAvailable: true si ningún turno scheduled ocupa
	// (doctorID, date, timeSlot), ignorando excludeID (vacío = sin exclusión).
	SlotAvailable(ctx context.Context, doctorID, date, timeSlot, excludeID string) (bool, error)
}
