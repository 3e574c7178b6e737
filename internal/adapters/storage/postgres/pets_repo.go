package postgres

import (
	"context"
	"database/sql"
	"errors"

	"vetclinic-api/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

// petColumns es la proyección con joins que llena los campos de display.
const petColumns = `
	p.id, p.name, p.species_id, p.breed_id, p.client_id,
	p.age, p.weight, p.color, p.gender, p.microchip_id, p.medical_notes,
	to_char(p.last_visit, 'YYYY-MM-DD'),
	to_char(p.next_appointment, 'YYYY-MM-DD'),
	p.created_at, p.updated_at,
	COALESCE(s.name, ''), COALESCE(b.name, ''), COALESCE(c.name, '')`

const petJoins = `
	FROM pets p
	LEFT JOIN species s ON s.id = p.species_id
	LEFT JOIN breeds b ON b.id = p.breed_id
	LEFT JOIN clients c ON c.id = p.client_id`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, name, species_id, breed_id, client_id,
			age, weight, color, gender, microchip_id, medical_notes,
			last_visit, next_appointment,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		p.ID, p.Name, p.SpeciesID, p.BreedID, p.ClientID,
		toNullInt(p.Age), toNullFloat(p.Weight), p.Color, p.Gender, p.MicrochipID, p.MedicalNotes,
		toNullString(p.LastVisit), toNullString(p.NextAppointment),
		p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			species_id = $3,
			breed_id = $4,
			client_id = $5,
			age = $6,
			weight = $7,
			color = $8,
			gender = $9,
			microchip_id = $10,
			medical_notes = $11,
			last_visit = $12,
			next_appointment = $13,
			updated_at = $14
		WHERE id = $1
	`,
		p.ID, p.Name, p.SpeciesID, p.BreedID, p.ClientID,
		toNullInt(p.Age), toNullFloat(p.Weight), p.Color, p.Gender, p.MicrochipID, p.MedicalNotes,
		toNullString(p.LastVisit), toNullString(p.NextAppointment),
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `SELECT`+petColumns+petJoins+`
		WHERE p.id = $1
	`, id)

	p, err := scanPet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT`+petColumns+petJoins+`
		ORDER BY p.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PetsRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pets`).Scan(&n)
	return n, err
}

// FindOrCreateByNameAndClient: unique sobre (client_id, name).
func (r *PetsRepo) FindOrCreateByNameAndClient(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, name, species_id, breed_id, client_id,
			age, weight, color, gender, microchip_id, medical_notes,
			last_visit, next_appointment,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		ON CONFLICT (client_id, name) DO NOTHING
	`,
		p.ID, p.Name, p.SpeciesID, p.BreedID, p.ClientID,
		toNullInt(p.Age), toNullFloat(p.Weight), p.Color, p.Gender, p.MicrochipID, p.MedicalNotes,
		toNullString(p.LastVisit), toNullString(p.NextAppointment),
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return pets.Pet{}, err
	}

	row := r.db.QueryRowContext(ctx, `SELECT`+petColumns+petJoins+`
		WHERE p.client_id = $1 AND p.name = $2
	`, p.ClientID, p.Name)
	return scanPet(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var age sql.NullInt64
	var weight sql.NullFloat64
	var lastVisit, nextAppt sql.NullString

	if err := row.Scan(
		&p.ID, &p.Name, &p.SpeciesID, &p.BreedID, &p.ClientID,
		&age, &weight, &p.Color, &p.Gender, &p.MicrochipID, &p.MedicalNotes,
		&lastVisit, &nextAppt,
		&p.CreatedAt, &p.UpdatedAt,
		&p.SpeciesName, &p.BreedName, &p.ClientName,
	); err != nil {
		return pets.Pet{}, err
	}

	if age.Valid {
		v := int(age.Int64)
		p.Age = &v
	}
	if weight.Valid {
		v := weight.Float64
		p.Weight = &v
	}
	if lastVisit.Valid {
		v := lastVisit.String
		p.LastVisit = &v
	}
	if nextAppt.Valid {
		v := nextAppt.String
		p.NextAppointment = &v
	}
	return p, nil
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func toNullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}

func toNullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
