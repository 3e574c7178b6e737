package memory

import (
	"context"
	"strings"
	"sync"

	"vetclinic-api/internal/domain/species"
)

type SpeciesRepo struct {
	mu      sync.RWMutex
	species map[string]species.Species
	breeds  map[string]species.Breed
}

func NewSpeciesRepo() *SpeciesRepo {
	return &SpeciesRepo{
		species: make(map[string]species.Species),
		breeds:  make(map[string]species.Breed),
	}
}

func (r *SpeciesRepo) GetSpeciesByID(ctx context.Context, id string) (species.Species, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.species[id]
	if !ok {
		return species.Species{}, species.ErrNotFound
	}
	return s, nil
}

func (r *SpeciesRepo) GetBreedByID(ctx context.Context, id string) (species.Breed, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.breeds[id]
	if !ok {
		return species.Breed{}, species.ErrNotFound
	}
	return b, nil
}

func (r *SpeciesRepo) FindOrCreateSpecies(ctx context.Context, s species.Species) (species.Species, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.species {
		if strings.EqualFold(existing.Name, s.Name) {
			return existing, nil
		}
	}
	r.species[s.ID] = s
	return s, nil
}

func (r *SpeciesRepo) FindOrCreateBreed(ctx context.Context, b species.Breed) (species.Breed, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.breeds {
		if existing.SpeciesID == b.SpeciesID && strings.EqualFold(existing.Name, b.Name) {
			return existing, nil
		}
	}
	r.breeds[b.ID] = b
	return b, nil
}

// speciesName / breedName resuelven nombres para los joins de los otros
// repos in-memory. caller no necesita lock (toman RLock propio).
func (r *SpeciesRepo) speciesName(id string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.species[id].Name
}

func (r *SpeciesRepo) breedName(id string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.breeds[id].Name
}
