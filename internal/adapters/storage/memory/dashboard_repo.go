package memory

import (
	"context"
	"sort"

	"vetclinic-api/internal/domain/appointments"
	"vetclinic-api/internal/domain/dashboard"
)

// DashboardRepo computa los rollups recorriendo los repos in-memory.
// En postgres esto son queries agregadas; acá alcanza con iterar los maps.
type DashboardRepo struct {
	appts   *AppointmentsRepo
	pets    *PetsRepo
	doctors *DoctorsRepo
}

func NewDashboardRepo(appts *AppointmentsRepo, pets *PetsRepo, doctors *DoctorsRepo) *DashboardRepo {
	return &DashboardRepo{appts: appts, pets: pets, doctors: doctors}
}

func (r *DashboardRepo) AppointmentsByDoctor(ctx context.Context) ([]dashboard.DoctorCount, error) {
	docs, err := r.doctors.List(ctx)
	if err != nil {
		return nil, err
	}

	r.appts.mu.RLock()
	counts := make(map[string]int)
	for _, a := range r.appts.byID {
		counts[a.DoctorID]++
	}
	r.appts.mu.RUnlock()

	out := make([]dashboard.DoctorCount, 0, len(docs))
	for _, d := range docs {
		out = append(out, dashboard.DoctorCount{
			DoctorName:       d.DisplayName(),
			AppointmentCount: counts[d.ID],
		})
	}
	return out, nil
}

func (r *DashboardRepo) AppointmentsByStatus(ctx context.Context) ([]dashboard.GroupCount, error) {
	r.appts.mu.RLock()
	counts := make(map[string]int)
	for _, a := range r.appts.byID {
		counts[string(a.Status)]++
	}
	r.appts.mu.RUnlock()

	return sortedGroups(counts), nil
}

func (r *DashboardRepo) AppointmentsByRecentDate(ctx context.Context, since string) ([]dashboard.GroupCount, error) {
	r.appts.mu.RLock()
	counts := make(map[string]int)
	for _, a := range r.appts.byID {
		if a.Date >= since {
			counts[a.Date]++
		}
	}
	r.appts.mu.RUnlock()

	return sortedGroups(counts), nil
}

func (r *DashboardRepo) PendingAppointments(ctx context.Context, limit int) ([]dashboard.PendingAppointment, error) {
	r.appts.mu.RLock()
	pending := make([]appointments.Appointment, 0)
	for _, a := range r.appts.byID {
		if a.Status == appointments.StatusScheduled {
			pending = append(pending, a)
		}
	}
	r.appts.mu.RUnlock()

	sort.Slice(pending, func(i, j int) bool {
		if pending[i].Date != pending[j].Date {
			return pending[i].Date < pending[j].Date
		}
		return pending[i].Time < pending[j].Time
	})

	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}

	out := make([]dashboard.PendingAppointment, 0, len(pending))
	for _, a := range pending {
		out = append(out, dashboard.PendingAppointment{
			ID:      a.ID,
			PetID:   a.PetID,
			Time:    a.Time,
			PetName: r.pets.petName(a.PetID),
		})
	}
	return out, nil
}

func sortedGroups(counts map[string]int) []dashboard.GroupCount {
	out := make([]dashboard.GroupCount, 0, len(counts))
	for label, count := range counts {
		out = append(out, dashboard.GroupCount{Label: label, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// Counters junta los conteos de los repos para el dashboard.
type Counters struct {
	Pets      *PetsRepo
	Clients   *ClientsRepo
	Appts     *AppointmentsRepo
	Doctors   *DoctorsRepo
	Inventory *InventoryRepo
}

func (c Counters) CountPets(ctx context.Context) (int, error)         { return c.Pets.Count(ctx) }
func (c Counters) CountClients(ctx context.Context) (int, error)      { return c.Clients.Count(ctx) }
func (c Counters) CountAppointments(ctx context.Context) (int, error) { return c.Appts.Count(ctx) }
func (c Counters) CountDoctors(ctx context.Context) (int, error)      { return c.Doctors.Count(ctx) }
func (c Counters) CountInventory(ctx context.Context) (int, error)    { return c.Inventory.Count(ctx) }
func (c Counters) CountLowStock(ctx context.Context, threshold int) (int, error) {
	return c.Inventory.CountLowStock(ctx, threshold)
}
