package dashboard

// Agregados que devuelven las queries de rollup del dashboard.

// DoctorCount: turnos por doctor (LEFT JOIN: doctores sin turnos salen en 0).
type DoctorCount struct {
	DoctorName       string
	AppointmentCount int
}

// GroupCount agrupa turnos por status o por fecha reciente según el filtro.
type GroupCount struct {
	Label string
	Count int
}

// PendingAppointment es una fila del "próximos cinco scheduled".
type PendingAppointment struct {
	ID      string
	PetID   string
	Time    string
	PetName string
}
