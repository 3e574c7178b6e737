package pets

import "time"

// Gender de la mascota según lo carga recepción.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

// Pet es el paciente de la clínica. Referencia species/breed/client por FK;
// next_appointment es un campo desnormalizado que el booking mantiene.
type Pet struct {
	ID        string
	Name      string
	SpeciesID string
	BreedID   string
	ClientID  string

	Age          *int
	Weight       *float64
	Color        string
	Gender       Gender
	MicrochipID  string
	MedicalNotes string

	LastVisit       *string // YYYY-MM-DD
	NextAppointment *string // YYYY-MM-DD

	CreatedAt time.Time
	UpdatedAt time.Time

	// Campos de display que llenan las queries con join (no se persisten).
	SpeciesName string
	BreedName   string
	ClientName  string
}
