package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"vetclinic-api/internal/domain/pets"
)

type PetsRepo struct {
	mu   sync.RWMutex
	byID map[string]pets.Pet

	clients *ClientsRepo
	species *SpeciesRepo
}

func NewPetsRepo(clients *ClientsRepo, species *SpeciesRepo) *PetsRepo {
	return &PetsRepo{
		byID:    make(map[string]pets.Pet),
		clients: clients,
		species: species,
	}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("pet already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; !exists {
		return pets.ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	p, ok := r.byID[id]
	r.mu.RUnlock()

	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return r.withJoins(p), nil
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	r.mu.RLock()
	out := make([]pets.Pet, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	r.mu.RUnlock()

	// recientes primero
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	for i := range out {
		out[i] = r.withJoins(out[i])
	}
	return out, nil
}

func (r *PetsRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}

func (r *PetsRepo) FindOrCreateByNameAndClient(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	r.mu.Lock()

	for _, existing := range r.byID {
		if existing.ClientID == p.ClientID && strings.EqualFold(existing.Name, p.Name) {
			r.mu.Unlock()
			return r.withJoins(existing), nil
		}
	}
	r.byID[p.ID] = p
	r.mu.Unlock()

	return r.withJoins(p), nil
}

// petName lo usan los joins del repo de turnos.
func (r *PetsRepo) petName(id string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byID[id].Name
}

func (r *PetsRepo) withJoins(p pets.Pet) pets.Pet {
	p.SpeciesName = r.species.speciesName(p.SpeciesID)
	p.BreedName = r.species.breedName(p.BreedID)
	if c, err := r.clients.GetByID(context.Background(), p.ClientID); err == nil {
		p.ClientName = c.Name
	}
	return p
}
