package settings

import "context"

type Repository interface {
	// Get devuelve la fila singleton, creándola con defaults si no existe.
	Get(ctx context.Context) (Settings, error)
	// Save upserta la fila singleton.
	Save(ctx context.Context, s Settings) error
}
