package clients

import "time"

// Client es el dueño/responsable de una o más mascotas.
// El teléfono es la clave natural de lookup para el booking público.
type Client struct {
	ID    string
	Name  string
	Phone string
	Email string

	CreatedAt time.Time
	UpdatedAt time.Time
}
