package appointments

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"vetclinic-api/internal/domain/clients"
	"vetclinic-api/internal/domain/pets"
	"vetclinic-api/internal/domain/species"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("appointment not found")
	ErrSlotTaken     = errors.New("the selected doctor is not available at this date and time")
	ErrUnknownPet    = errors.New("pet not found")
	ErrUnknownClient = errors.New("client not found")
)

const dateLayout = "2006-01-02"

var timeRe = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// Directorios de los otros agregados que el workflow necesita.
// Los *Service de pets/clients/species los satisfacen tal cual.
type (
	PetDirectory interface {
		GetByID(ctx context.Context, id string) (pets.Pet, error)
		FindOrCreate(ctx context.Context, name, speciesID, breedID, clientID string) (pets.Pet, error)
		SetNextAppointment(ctx context.Context, petID, date string) error
	}

	ClientDirectory interface {
		GetByID(ctx context.Context, id string) (clients.Client, error)
		FindOrCreateByPhone(ctx context.Context, name, phone, email string) (clients.Client, error)
	}

	Catalog interface {
		FindOrCreateSpecies(ctx context.Context, name string) (species.Species, error)
		FindOrCreateBreed(ctx context.Context, speciesID, name string) (species.Breed, error)
	}
)

type Service struct {
	repo    Repository
	pets    PetDirectory
	clients ClientDirectory
	catalog Catalog
	now     func() time.Time
}

func NewService(repo Repository, petDir PetDirectory, clientDir ClientDirectory, catalog Catalog) *Service {
	return &Service{
		repo:    repo,
		pets:    petDir,
		clients: clientDir,
		catalog: catalog,
		now:     time.Now,
	}
}

func (s *Service) List(ctx context.Context) ([]Appointment, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Search(ctx context.Context, query string) ([]Appointment, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrInvalidInput)
	}
	return s.repo.Search(ctx, strings.TrimSpace(query))
}

func (s *Service) Today(ctx context.Context) ([]Appointment, error) {
	return s.repo.ListByDate(ctx, s.now().Format(dateLayout))
}

func (s *Service) Upcoming(ctx context.Context, days int) ([]Appointment, error) {
	if days <= 0 {
		days = 7
	}
	today := s.now()
	return s.repo.ListBetween(ctx,
		today.Format(dateLayout),
		today.AddDate(0, 0, days).Format(dateLayout),
	)
}

// CheckAvailability: true sii ningún turno scheduled ocupa el slot exacto.
// La igualdad de hora es exacta, no hay razonamiento de solapamiento.
func (s *Service) CheckAvailability(ctx context.Context, doctorID, date, timeSlot string) (bool, error) {
	if err := validateSlot(doctorID, date, timeSlot); err != nil {
		return false, err
	}
	return s.repo.SlotAvailable(ctx, doctorID, date, timeSlot, "")
}

type CreateInput struct {
	PetID    string
	ClientID string
	DoctorID string
	Date     string
	Time     string
	Reason   string
	Status   string
	Notes    string
}

// Create aplica las precondiciones en orden: slot libre, pet existe,
// cliente existe. Cualquier falla aborta sin insertar.
func (s *Service) Create(ctx context.Context, in CreateInput) (Appointment, error) {
	if err := validateSlot(in.DoctorID, in.Date, in.Time); err != nil {
		return Appointment{}, err
	}
	if strings.TrimSpace(in.PetID) == "" || strings.TrimSpace(in.ClientID) == "" {
		return Appointment{}, fmt.Errorf("%w: pet_id and client_id are required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Reason) == "" {
		return Appointment{}, fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}

	status := Status(strings.TrimSpace(in.Status))
	if status == "" {
		status = StatusScheduled
	}
	if !ValidStatus(status) {
		return Appointment{}, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, in.Status)
	}

	available, err := s.repo.SlotAvailable(ctx, in.DoctorID, in.Date, in.Time, "")
	if err != nil {
		return Appointment{}, err
	}
	if !available {
		return Appointment{}, ErrSlotTaken
	}

	if _, err := s.pets.GetByID(ctx, in.PetID); err != nil {
		if errors.Is(err, pets.ErrNotFound) {
			return Appointment{}, ErrUnknownPet
		}
		return Appointment{}, err
	}
	if _, err := s.clients.GetByID(ctx, in.ClientID); err != nil {
		if errors.Is(err, clients.ErrNotFound) {
			return Appointment{}, ErrUnknownClient
		}
		return Appointment{}, err
	}

	now := s.now()
	a := Appointment{
		ID:        uuid.NewString(),
		PetID:     strings.TrimSpace(in.PetID),
		ClientID:  strings.TrimSpace(in.ClientID),
		DoctorID:  strings.TrimSpace(in.DoctorID),
		Date:      strings.TrimSpace(in.Date),
		Time:      strings.TrimSpace(in.Time),
		Reason:    strings.TrimSpace(in.Reason),
		Status:    status,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, err
	}
	// re-lectura con joins para los campos de display
	return s.repo.GetByID(ctx, a.ID)
}

type UpdateInput struct {
	// Punteros para update parcial: nil = no tocar.
	PetID    *string
	ClientID *string
	DoctorID *string
	Date     *string
	Time     *string
	Reason   *string
	Status   *string
	Notes    *string
}

// Update aplica solo los campos enviados. Si cambia doctor, fecha u hora,
// re-chequea el slot con la terna efectiva (nuevo valor si vino, sino el
// actual) excluyendo el propio turno del scan.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Appointment, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Appointment{}, err
	}

	merged := current
	slotChanged := false

	if in.DoctorID != nil {
		merged.DoctorID = strings.TrimSpace(*in.DoctorID)
		slotChanged = true
	}
	if in.Date != nil {
		merged.Date = strings.TrimSpace(*in.Date)
		slotChanged = true
	}
	if in.Time != nil {
		merged.Time = strings.TrimSpace(*in.Time)
		slotChanged = true
	}
	if err := validateSlot(merged.DoctorID, merged.Date, merged.Time); err != nil {
		return Appointment{}, err
	}

	if in.Reason != nil {
		if strings.TrimSpace(*in.Reason) == "" {
			return Appointment{}, fmt.Errorf("%w: reason cannot be empty", ErrInvalidInput)
		}
		merged.Reason = strings.TrimSpace(*in.Reason)
	}
	if in.Status != nil {
		st := Status(strings.TrimSpace(*in.Status))
		if !ValidStatus(st) {
			return Appointment{}, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *in.Status)
		}
		merged.Status = st
	}
	if in.Notes != nil {
		merged.Notes = strings.TrimSpace(*in.Notes)
	}

	if slotChanged {
		available, err := s.repo.SlotAvailable(ctx, merged.DoctorID, merged.Date, merged.Time, id)
		if err != nil {
			return Appointment{}, err
		}
		if !available {
			return Appointment{}, ErrSlotTaken
		}
	}

	if in.PetID != nil {
		merged.PetID = strings.TrimSpace(*in.PetID)
		if _, err := s.pets.GetByID(ctx, merged.PetID); err != nil {
			if errors.Is(err, pets.ErrNotFound) {
				return Appointment{}, ErrUnknownPet
			}
			return Appointment{}, err
		}
	}
	if in.ClientID != nil {
		merged.ClientID = strings.TrimSpace(*in.ClientID)
		if _, err := s.clients.GetByID(ctx, merged.ClientID); err != nil {
			if errors.Is(err, clients.ErrNotFound) {
				return Appointment{}, ErrUnknownClient
			}
			return Appointment{}, err
		}
	}

	merged.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, merged); err != nil {
		return Appointment{}, err
	}
	return s.repo.GetByID(ctx, id)
}

type BookingInput struct {
	ClientName  string
	ClientPhone string
	ClientEmail string
	PetName     string
	PetType     string
	DoctorID    string
	Date        string
	Time        string
	ServiceType string
	Notes       string
	Status      string
}

// Book es el flujo de booking público: el request trae datos humanos
// (nombre, teléfono, tipo de mascota) en vez de foreign keys, y el workflow
// resuelve cliente/especie/raza/mascota con find-or-create antes de crear
// el turno. Como efecto, actualiza next_appointment de la mascota.
func (s *Service) Book(ctx context.Context, in BookingInput) (Appointment, error) {
	if err := s.validateBooking(in); err != nil {
		return Appointment{}, err
	}

	available, err := s.repo.SlotAvailable(ctx, in.DoctorID, in.Date, in.Time, "")
	if err != nil {
		return Appointment{}, err
	}
	if !available {
		return Appointment{}, ErrSlotTaken
	}

	client, err := s.clients.FindOrCreateByPhone(ctx, in.ClientName, in.ClientPhone, in.ClientEmail)
	if err != nil {
		return Appointment{}, fmt.Errorf("resolve client: %w", err)
	}

	sp, err := s.catalog.FindOrCreateSpecies(ctx, in.PetType)
	if err != nil {
		return Appointment{}, fmt.Errorf("resolve species: %w", err)
	}

	// El formulario no trae raza: va la default bajo la especie.
	breed, err := s.catalog.FindOrCreateBreed(ctx, sp.ID, "")
	if err != nil {
		return Appointment{}, fmt.Errorf("resolve breed: %w", err)
	}

	pet, err := s.pets.FindOrCreate(ctx, in.PetName, sp.ID, breed.ID, client.ID)
	if err != nil {
		return Appointment{}, fmt.Errorf("resolve pet: %w", err)
	}

	status := Status(strings.TrimSpace(in.Status))
	if status == "" {
		status = StatusScheduled
	}

	now := s.now()
	a := Appointment{
		ID:        uuid.NewString(),
		PetID:     pet.ID,
		ClientID:  client.ID,
		DoctorID:  strings.TrimSpace(in.DoctorID),
		Date:      strings.TrimSpace(in.Date),
		Time:      strings.TrimSpace(in.Time),
		Reason:    strings.TrimSpace(in.ServiceType),
		Status:    status,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, err
	}

	if err := s.pets.SetNextAppointment(ctx, pet.ID, a.Date); err != nil {
		return Appointment{}, fmt.Errorf("update next appointment: %w", err)
	}

	return s.repo.GetByID(ctx, a.ID)
}

func (s *Service) validateBooking(in BookingInput) error {
	if strings.TrimSpace(in.ClientName) == "" {
		return fmt.Errorf("%w: client_name is required", ErrInvalidInput)
	}
	if len(strings.TrimSpace(in.ClientPhone)) < 10 {
		return fmt.Errorf("%w: client_phone must have at least 10 characters", ErrInvalidInput)
	}
	if strings.TrimSpace(in.PetName) == "" {
		return fmt.Errorf("%w: pet_name is required", ErrInvalidInput)
	}
	if _, ok := allowedPetTypes[strings.TrimSpace(in.PetType)]; !ok {
		return fmt.Errorf("%w: invalid pet_type %q", ErrInvalidInput, in.PetType)
	}
	if _, ok := allowedServiceTypes[strings.TrimSpace(in.ServiceType)]; !ok {
		return fmt.Errorf("%w: invalid service_type %q", ErrInvalidInput, in.ServiceType)
	}
	if st := strings.TrimSpace(in.Status); st != "" && !ValidStatus(Status(st)) {
		return fmt.Errorf("%w: invalid status %q", ErrInvalidInput, in.Status)
	}
	return validateSlot(in.DoctorID, in.Date, in.Time)
}

func validateSlot(doctorID, date, timeSlot string) error {
	if strings.TrimSpace(doctorID) == "" {
		return fmt.Errorf("%w: doctor_id is required", ErrInvalidInput)
	}
	if _, err := time.Parse(dateLayout, strings.TrimSpace(date)); err != nil {
		return fmt.Errorf("%w: appointment_date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if !timeRe.MatchString(strings.TrimSpace(timeSlot)) {
		return fmt.Errorf("%w: appointment_time must be HH:MM", ErrInvalidInput)
	}
	return nil
}
