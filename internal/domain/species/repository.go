package species

import "context"

type Repository interface {
	GetSpeciesByID(ctx context.Context, id string) (Species, error)
	GetBreedByID(ctx context.Context, id string) (Breed, error)

	// Ambos find-or-create son insert-if-absent atómicos sobre la clave
	// natural (name / species_id+name); devuelven la fila ganadora.
	FindOrCreateSpecies(ctx context.Context, s Species) (Species, error)
	FindOrCreateBreed(ctx context.Context, b Breed) (Breed, error)
}
