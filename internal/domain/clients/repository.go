package clients

import "context"

type Repository interface {
	Create(ctx context.Context, c Client) error
	Update(ctx context.Context, c Client) error
	GetByID(ctx context.Context, id string) (Client, error)
	GetByPhone(ctx context.Context, phone string) (Client, error)
	List(ctx context.Context) ([]Client, error)
	Count(ctx context.Context) (int, error)

	// FindOrCreateByPhone inserta c solo si no existe un cliente con ese
	// teléfono y devuelve la fila ganadora. Debe ser atómico: dos bookings
	// concurrentes con el mismo teléfono no pueden crear dos filas.
	FindOrCreateByPhone(ctx context.Context, c Client) (Client, error)
}
