package settings

import "time"

// Settings es una fila singleton con los datos de la clínica.
// Se crea lazy con defaults la primera vez que alguien la lee.
type Settings struct {
	ClinicName string
	Phone      string
	Email      string
	Address    string

	UpdatedAt time.Time
}
