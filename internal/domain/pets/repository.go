package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	List(ctx context.Context) ([]Pet, error)
	Count(ctx context.Context) (int, error)

	// FindOrCreateByNameAndClient inserta p solo si el cliente no tiene ya
	// una mascota con ese nombre; atómico sobre (client_id, name).
	FindOrCreateByNameAndClient(ctx context.Context, p Pet) (Pet, error)
}
