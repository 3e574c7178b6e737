package appointments

import "time"

// Status del turno.
// @Enum scheduled, completed, cancelled, no-show
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no-show"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Appointment es un turno puntual: el slot (doctor, fecha, hora) es la unidad
// reservable, sin duración ni solapamiento. Invariante: a lo sumo un turno
// "scheduled" por slot.
type Appointment struct {
	ID       string
	PetID    string
	ClientID string
	DoctorID string

	Date   string // YYYY-MM-DD
	Time   string // HH:MM
	Reason string
	Status Status
	Notes  string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Campos de display que llenan las queries con join (no se persisten).
	PetName     string
	ClientName  string
	SpeciesName string
	BreedName   string
	DoctorName  string
}

// Tipos de mascota que acepta el formulario público.
var allowedPetTypes = map[string]struct{}{
	"dog": {}, "cat": {}, "bird": {}, "rabbit": {},
	"hamster": {}, "guinea-pig": {}, "other": {},
}

// Tipos de servicio del formulario público; se guardan como reason.
var allowedServiceTypes = map[string]struct{}{
	"checkup": {}, "vaccination": {}, "surgery": {}, "dental": {},
	"grooming": {}, "emergency": {}, "consultation": {},
}
