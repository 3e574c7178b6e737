package dashboard

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"vetclinic-api/internal/domain/appointments"
	"vetclinic-api/internal/domain/pets"
)

// -------------------------
// Fakes
// -------------------------

type fakeRepo struct {
	byDoctor []DoctorCount
	byStatus []GroupCount
	byDate   []GroupCount
	pending  []PendingAppointment

	lastSince string
}

func (r *fakeRepo) AppointmentsByDoctor(ctx context.Context) ([]DoctorCount, error) {
	return r.byDoctor, nil
}

func (r *fakeRepo) AppointmentsByStatus(ctx context.Context) ([]GroupCount, error) {
	return r.byStatus, nil
}

func (r *fakeRepo) AppointmentsByRecentDate(ctx context.Context, since string) ([]GroupCount, error) {
	r.lastSince = since
	return r.byDate, nil
}

func (r *fakeRepo) PendingAppointments(ctx context.Context, limit int) ([]PendingAppointment, error) {
	if len(r.pending) > limit {
		return r.pending[:limit], nil
	}
	return r.pending, nil
}

type fakeCounters struct {
	pets, clients, appts, doctors, inventory, lowStock int

	lastThreshold int
	failLowStock  error
}

func (c *fakeCounters) CountPets(ctx context.Context) (int, error)         { return c.pets, nil }
func (c *fakeCounters) CountClients(ctx context.Context) (int, error)      { return c.clients, nil }
func (c *fakeCounters) CountAppointments(ctx context.Context) (int, error) { return c.appts, nil }
func (c *fakeCounters) CountDoctors(ctx context.Context) (int, error)      { return c.doctors, nil }
func (c *fakeCounters) CountInventory(ctx context.Context) (int, error)    { return c.inventory, nil }

func (c *fakeCounters) CountLowStock(ctx context.Context, threshold int) (int, error) {
	c.lastThreshold = threshold
	if c.failLowStock != nil {
		return 0, c.failLowStock
	}
	return c.lowStock, nil
}

type fakeFeeds struct {
	all      []appointments.Appointment
	today    []appointments.Appointment
	upcoming []appointments.Appointment
}

func (f *fakeFeeds) List(ctx context.Context) ([]appointments.Appointment, error) { return f.all, nil }
func (f *fakeFeeds) Today(ctx context.Context) ([]appointments.Appointment, error) {
	return f.today, nil
}
func (f *fakeFeeds) Upcoming(ctx context.Context, days int) ([]appointments.Appointment, error) {
	return f.upcoming, nil
}

type fakePetFeed struct {
	items []pets.Pet
}

func (f *fakePetFeed) List(ctx context.Context) ([]pets.Pet, error) { return f.items, nil }

func manyAppointments(n int) []appointments.Appointment {
	out := make([]appointments.Appointment, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, appointments.Appointment{ID: fmt.Sprintf("a-%d", i)})
	}
	return out
}

func manyPets(n int) []pets.Pet {
	out := make([]pets.Pet, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, pets.Pet{ID: fmt.Sprintf("p-%d", i)})
	}
	return out
}

// -------------------------
// Tests
// -------------------------

func TestService_Stats_MergesAllCounters(t *testing.T) {
	repo := &fakeRepo{byDoctor: []DoctorCount{{DoctorName: "Ana García", AppointmentCount: 2}}}
	counters := &fakeCounters{pets: 4, clients: 3, appts: 7, doctors: 2, inventory: 12, lowStock: 1}
	feeds := &fakeFeeds{today: manyAppointments(2)}

	svc := NewService(repo, counters, feeds, &fakePetFeed{}, 5)

	data, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}

	s := data.Stats
	if s.TotalPets != 4 || s.TotalClients != 3 || s.TotalAppointments != 7 || s.TotalDoctors != 2 {
		t.Fatalf("unexpected totals: %+v", s)
	}
	if s.TotalInventory != 12 || s.LowStockInventory != 1 {
		t.Fatalf("unexpected inventory counts: %+v", s)
	}
	if len(s.TodaysAppointments) != 2 {
		t.Fatalf("expected 2 today, got %d", len(s.TodaysAppointments))
	}
	if len(data.AppointmentsByDoctor) != 1 {
		t.Fatalf("expected doctor rollup, got %+v", data.AppointmentsByDoctor)
	}
	if counters.lastThreshold != 5 {
		t.Fatalf("expected low stock threshold 5, got %d", counters.lastThreshold)
	}
}

func TestService_Stats_PropagatesFailure(t *testing.T) {
	boom := errors.New("boom")
	counters := &fakeCounters{failLowStock: boom}

	svc := NewService(&fakeRepo{}, counters, &fakeFeeds{}, &fakePetFeed{}, 0)

	if _, err := svc.Stats(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped failure, got %v", err)
	}
}

func TestService_Recent_CapsLists(t *testing.T) {
	feeds := &fakeFeeds{
		all:      manyAppointments(9),
		upcoming: manyAppointments(3),
	}
	petFeed := &fakePetFeed{items: manyPets(8)}

	svc := NewService(&fakeRepo{}, &fakeCounters{}, feeds, petFeed, 0)

	out, err := svc.Recent(context.Background())
	if err != nil {
		t.Fatalf("Recent error: %v", err)
	}
	if len(out.RecentPets) != 5 {
		t.Fatalf("expected 5 recent pets, got %d", len(out.RecentPets))
	}
	if len(out.RecentAppointments) != 5 {
		t.Fatalf("expected 5 recent appointments, got %d", len(out.RecentAppointments))
	}
	if len(out.UpcomingAppointments) != 3 {
		t.Fatalf("expected 3 upcoming, got %d", len(out.UpcomingAppointments))
	}
}

func TestService_Overview_GroupsByStatusByDefault(t *testing.T) {
	repo := &fakeRepo{
		byStatus: []GroupCount{{Label: "scheduled", Count: 3}},
		byDate:   []GroupCount{{Label: "2026-03-10", Count: 1}},
	}

	svc := NewService(repo, &fakeCounters{}, &fakeFeeds{}, &fakePetFeed{}, 0)

	out, err := svc.Overview(context.Background(), GroupFilter("bogus"))
	if err != nil {
		t.Fatalf("Overview error: %v", err)
	}
	if len(out.Grouping) != 1 || out.Grouping[0].Label != "scheduled" {
		t.Fatalf("expected status grouping fallback, got %+v", out.Grouping)
	}
}

func TestService_Overview_ByDate_UsesRecentWindow(t *testing.T) {
	repo := &fakeRepo{byDate: []GroupCount{{Label: "2026-03-08", Count: 2}}}

	svc := NewService(repo, &fakeCounters{}, &fakeFeeds{}, &fakePetFeed{}, 0)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	}

	out, err := svc.Overview(context.Background(), GroupByDate)
	if err != nil {
		t.Fatalf("Overview error: %v", err)
	}
	if repo.lastSince != "2026-03-03" {
		t.Fatalf("expected since 7 days back, got %q", repo.lastSince)
	}
	if len(out.Grouping) != 1 || out.Grouping[0].Label != "2026-03-08" {
		t.Fatalf("expected date grouping, got %+v", out.Grouping)
	}
}

func TestService_Overview_CapsUpcomingAndPending(t *testing.T) {
	repo := &fakeRepo{
		pending: []PendingAppointment{
			{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}, {ID: "5"}, {ID: "6"}, {ID: "7"},
		},
	}
	feeds := &fakeFeeds{upcoming: manyAppointments(14)}

	svc := NewService(repo, &fakeCounters{}, feeds, &fakePetFeed{}, 0)

	out, err := svc.Overview(context.Background(), GroupByStatus)
	if err != nil {
		t.Fatalf("Overview error: %v", err)
	}
	if len(out.UpcomingAppointments) != 10 {
		t.Fatalf("expected upcoming capped at 10, got %d", len(out.UpcomingAppointments))
	}
	if len(out.PendingAppointments) != 5 {
		t.Fatalf("expected pending capped at 5, got %d", len(out.PendingAppointments))
	}
}
