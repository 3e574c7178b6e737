package species

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("species not found")
)

// Service no expone rutas propias: especies y razas solo se crean desde el
// booking público y se leen vía joins de pets/appointments.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) FindOrCreateSpecies(ctx context.Context, name string) (Species, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Species{}, ErrInvalidInput
	}

	return s.repo.FindOrCreateSpecies(ctx, Species{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: s.now(),
	})
}

func (s *Service) FindOrCreateBreed(ctx context.Context, speciesID, name string) (Breed, error) {
	speciesID = strings.TrimSpace(speciesID)
	name = strings.TrimSpace(name)
	if speciesID == "" {
		return Breed{}, ErrInvalidInput
	}
	if name == "" {
		name = DefaultBreedName
	}

	return s.repo.FindOrCreateBreed(ctx, Breed{
		ID:        uuid.NewString(),
		SpeciesID: speciesID,
		Name:      name,
		CreatedAt: s.now(),
	})
}
