package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"vetclinic-api/internal/domain/appointments"
)

type AppointmentsRepo struct {
	mu   sync.RWMutex
	byID map[string]appointments.Appointment

	pets    *PetsRepo
	clients *ClientsRepo
	doctors *DoctorsRepo
	species *SpeciesRepo
}

func NewAppointmentsRepo(pets *PetsRepo, clients *ClientsRepo, doctors *DoctorsRepo, species *SpeciesRepo) *AppointmentsRepo {
	return &AppointmentsRepo{
		byID:    make(map[string]appointments.Appointment),
		pets:    pets,
		clients: clients,
		doctors: doctors,
		species: species,
	}
}

// Create chequea el slot e inserta bajo el mismo lock: dos requests
// concurrentes por el mismo slot no pueden pasar ambos.
func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("appointment id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("appointment already exists")
	}
	if a.Status == appointments.StatusScheduled && !r.slotFree(a.DoctorID, a.Date, a.Time, "") {
		return appointments.ErrSlotTaken
	}
	r.byID[a.ID] = a
	return nil
}

func (r *AppointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; !exists {
		return appointments.ErrNotFound
	}
	if a.Status == appointments.StatusScheduled && !r.slotFree(a.DoctorID, a.Date, a.Time, a.ID) {
		return appointments.ErrSlotTaken
	}
	r.byID[a.ID] = a
	return nil
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	r.mu.RLock()
	a, ok := r.byID[id]
	r.mu.RUnlock()

	if !ok {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	return r.withJoins(a), nil
}

func (r *AppointmentsRepo) List(ctx context.Context) ([]appointments.Appointment, error) {
	return r.filtered(func(appointments.Appointment) bool { return true })
}

func (r *AppointmentsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return appointments.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *AppointmentsRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}

func (r *AppointmentsRepo) Search(ctx context.Context, query string) ([]appointments.Appointment, error) {
	q := strings.ToLower(strings.TrimSpace(query))

	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]appointments.Appointment, 0)
	for _, a := range items {
		if strings.Contains(strings.ToLower(a.PetName), q) ||
			strings.Contains(strings.ToLower(a.ClientName), q) ||
			strings.Contains(strings.ToLower(a.Reason), q) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *AppointmentsRepo) ListByDate(ctx context.Context, date string) ([]appointments.Appointment, error) {
	return r.filtered(func(a appointments.Appointment) bool { return a.Date == date })
}

func (r *AppointmentsRepo) ListBetween(ctx context.Context, from, to string) ([]appointments.Appointment, error) {
	// fechas ISO: la comparación lexicográfica es cronológica
	return r.filtered(func(a appointments.Appointment) bool {
		return a.Date >= from && a.Date <= to
	})
}

func (r *AppointmentsRepo) SlotAvailable(ctx context.Context, doctorID, date, timeSlot, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.slotFree(doctorID, date, timeSlot, excludeID), nil
}

// caller debe tener el lock
func (r *AppointmentsRepo) slotFree(doctorID, date, timeSlot, excludeID string) bool {
	for _, a := range r.byID {
		if a.ID == excludeID {
			continue
		}
		if a.DoctorID == doctorID && a.Date == date && a.Time == timeSlot && a.Status == appointments.StatusScheduled {
			return false
		}
	}
	return true
}

func (r *AppointmentsRepo) filtered(keep func(appointments.Appointment) bool) ([]appointments.Appointment, error) {
	r.mu.RLock()
	out := make([]appointments.Appointment, 0)
	for _, a := range r.byID {
		if keep(a) {
			out = append(out, a)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})

	for i := range out {
		out[i] = r.withJoins(out[i])
	}
	return out, nil
}

func (r *AppointmentsRepo) withJoins(a appointments.Appointment) appointments.Appointment {
	a.PetName = r.pets.petName(a.PetID)
	a.DoctorName = r.doctors.doctorName(a.DoctorID)
	if c, err := r.clients.GetByID(context.Background(), a.ClientID); err == nil {
		a.ClientName = c.Name
	}
	if p, err := r.pets.GetByID(context.Background(), a.PetID); err == nil {
		a.SpeciesName = p.SpeciesName
		a.BreedName = p.BreedName
	}
	return a
}
