package postgres

import (
	"context"
	"database/sql"
	"errors"

	"vetclinic-api/internal/domain/species"
)

type SpeciesRepo struct {
	db *sql.DB
}

func NewSpeciesRepo(db *sql.DB) *SpeciesRepo {
	return &SpeciesRepo{db: db}
}

func (r *SpeciesRepo) GetSpeciesByID(ctx context.Context, id string) (species.Species, error) {
	var s species.Species
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, created_at
		FROM species
		WHERE id = $1
	`, id).Scan(&s.ID, &s.Name, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return species.Species{}, species.ErrNotFound
		}
		return species.Species{}, err
	}
	return s, nil
}

func (r *SpeciesRepo) GetBreedByID(ctx context.Context, id string) (species.Breed, error) {
	var b species.Breed
	err := r.db.QueryRowContext(ctx, `
		SELECT id, species_id, name, created_at
		FROM breeds
		WHERE id = $1
	`, id).Scan(&b.ID, &b.SpeciesID, &b.Name, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return species.Breed{}, species.ErrNotFound
		}
		return species.Breed{}, err
	}
	return b, nil
}

// FindOrCreateSpecies: unique sobre species.name; insert-if-absent + re-select.
func (r *SpeciesRepo) FindOrCreateSpecies(ctx context.Context, s species.Species) (species.Species, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO species (id, name, created_at)
		VALUES ($1,$2,$3)
		ON CONFLICT (name) DO NOTHING
	`, s.ID, s.Name, s.CreatedAt)
	if err != nil {
		return species.Species{}, err
	}

	var out species.Species
	err = r.db.QueryRowContext(ctx, `
		SELECT id, name, created_at
		FROM species
		WHERE name = $1
	`, s.Name).Scan(&out.ID, &out.Name, &out.CreatedAt)
	return out, err
}

// FindOrCreateBreed: unique sobre (species_id, name).
func (r *SpeciesRepo) FindOrCreateBreed(ctx context.Context, b species.Breed) (species.Breed, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO breeds (id, species_id, name, created_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (species_id, name) DO NOTHING
	`, b.ID, b.SpeciesID, b.Name, b.CreatedAt)
	if err != nil {
		return species.Breed{}, err
	}

	var out species.Breed
	err = r.db.QueryRowContext(ctx, `
		SELECT id, species_id, name, created_at
		FROM breeds
		WHERE species_id = $1 AND name = $2
	`, b.SpeciesID, b.Name).Scan(&out.ID, &out.SpeciesID, &out.Name, &out.CreatedAt)
	return out, err
}
