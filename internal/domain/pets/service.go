package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
)

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

type Input struct {
	Name      string
	SpeciesID string
	BreedID   string
	ClientID  string

	Age          *int
	Weight       *float64
	Color        string
	Gender       string
	MicrochipID  string
	MedicalNotes string

	LastVisit       *string
	NextAppointment *string
}

func (s *Service) Create(ctx context.Context, in Input) (Pet, error) {
	if err := validate(in); err != nil {
		return Pet{}, err
	}

	now := s.now()
	p := Pet{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(in.Name),
		SpeciesID:       strings.TrimSpace(in.SpeciesID),
		BreedID:         strings.TrimSpace(in.BreedID),
		ClientID:        strings.TrimSpace(in.ClientID),
		Age:             in.Age,
		Weight:          in.Weight,
		Color:           strings.TrimSpace(in.Color),
		Gender:          Gender(strings.TrimSpace(in.Gender)),
		MicrochipID:     strings.TrimSpace(in.MicrochipID),
		MedicalNotes:    strings.TrimSpace(in.MedicalNotes),
		LastVisit:       in.LastVisit,
		NextAppointment: in.NextAppointment,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return s.repo.GetByID(ctx, p.ID)
}

// Update reemplaza la fila completa: el caller manda todos los campos.
func (s *Service) Update(ctx context.Context, id string, in Input) (Pet, error) {
	if err := validate(in); err != nil {
		return Pet{}, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	current.Name = strings.TrimSpace(in.Name)
	current.SpeciesID = strings.TrimSpace(in.SpeciesID)
	current.BreedID = strings.TrimSpace(in.BreedID)
	current.ClientID = strings.TrimSpace(in.ClientID)
	current.Age = in.Age
	current.Weight = in.Weight
	current.Color = strings.TrimSpace(in.Color)
	current.Gender = Gender(strings.TrimSpace(in.Gender))
	current.MicrochipID = strings.TrimSpace(in.MicrochipID)
	current.MedicalNotes = strings.TrimSpace(in.MedicalNotes)
	current.LastVisit = in.LastVisit
	current.NextAppointment = in.NextAppointment
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Pet{}, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx)
}

// SetNextAppointment actualiza solo el campo desnormalizado next_appointment
// arrastrando el resto de la fila sin cambios.
func (s *Service) SetNextAppointment(ctx context.Context, petID, date string) error {
	current, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return err
	}

	current.NextAppointment = &date
	current.UpdatedAt = s.now()
	return s.repo.Update(ctx, current)
}

// FindOrCreate busca la mascota por (nombre, cliente) y la crea si no existe.
// Usado por el booking público.
func (s *Service) FindOrCreate(ctx context.Context, name, speciesID, breedID, clientID string) (Pet, error) {
	name = strings.TrimSpace(name)
	if name == "" || speciesID == "" || breedID == "" || clientID == "" {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	candidate := Pet{
		ID:        uuid.NewString(),
		Name:      name,
		SpeciesID: speciesID,
		BreedID:   breedID,
		ClientID:  clientID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return s.repo.FindOrCreateByNameAndClient(ctx, candidate)
}

func validate(in Input) error {
	if strings.TrimSpace(in.Name) == "" ||
		strings.TrimSpace(in.SpeciesID) == "" ||
		strings.TrimSpace(in.BreedID) == "" ||
		strings.TrimSpace(in.ClientID) == "" {
		return ErrInvalidInput
	}
	return nil
}
