package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"vetclinic-api/internal/domain/appointments"
	"vetclinic-api/internal/domain/pets"
)

const (
	recentLimit   = 5
	pendingLimit  = 5
	upcomingDays  = 7
	upcomingCap   = 10
	recentDateWin = 7
)

// Counters son los conteos simples que viven en los repos de cada agregado.
type Counters interface {
	CountPets(ctx context.Context) (int, error)
	CountClients(ctx context.Context) (int, error)
	CountAppointments(ctx context.Context) (int, error)
	CountDoctors(ctx context.Context) (int, error)
	CountInventory(ctx context.Context) (int, error)
	CountLowStock(ctx context.Context, threshold int) (int, error)
}

// AppointmentFeed y PetFeed: lecturas que el dashboard toma prestadas de los
// otros módulos. *appointments.Service y *pets.Service las satisfacen.
type AppointmentFeed interface {
	List(ctx context.Context) ([]appointments.Appointment, error)
	Today(ctx context.Context) ([]appointments.Appointment, error)
	Upcoming(ctx context.Context, days int) ([]appointments.Appointment, error)
}

type PetFeed interface {
	List(ctx context.Context) ([]pets.Pet, error)
}

type Service struct {
	repo     Repository
	counters Counters
	appts    AppointmentFeed
	pets     PetFeed

	lowStockThreshold int
	now               func() time.Time
}

func NewService(repo Repository, counters Counters, appts AppointmentFeed, petFeed PetFeed, lowStockThreshold int) *Service {
	if lowStockThreshold <= 0 {
		lowStockThreshold = 10
	}
	return &Service{
		repo:              repo,
		counters:          counters,
		appts:             appts,
		pets:              petFeed,
		lowStockThreshold: lowStockThreshold,
		now:               time.Now,
	}
}

type Stats struct {
	TotalPets          int
	TotalClients       int
	TotalAppointments  int
	TodaysAppointments []appointments.Appointment
	TotalInventory     int
	LowStockInventory  int
	TotalDoctors       int
}

type StatsData struct {
	Stats                Stats
	AppointmentsByDoctor []DoctorCount
}

// Stats dispara el batch fijo de lecturas independientes en paralelo y
// mergea los resultados. Son solo lecturas, sin orden requerido entre sí.
func (s *Service) Stats(ctx context.Context) (StatsData, error) {
	var out StatsData

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) { out.Stats.TotalPets, err = s.counters.CountPets(ctx); return })
	g.Go(func() (err error) { out.Stats.TotalClients, err = s.counters.CountClients(ctx); return })
	g.Go(func() (err error) { out.Stats.TotalAppointments, err = s.counters.CountAppointments(ctx); return })
	g.Go(func() (err error) { out.Stats.TotalDoctors, err = s.counters.CountDoctors(ctx); return })
	g.Go(func() (err error) { out.Stats.TotalInventory, err = s.counters.CountInventory(ctx); return })
	g.Go(func() (err error) {
		out.Stats.LowStockInventory, err = s.counters.CountLowStock(ctx, s.lowStockThreshold)
		return
	})
	g.Go(func() (err error) { out.Stats.TodaysAppointments, err = s.appts.Today(ctx); return })
	g.Go(func() (err error) { out.AppointmentsByDoctor, err = s.repo.AppointmentsByDoctor(ctx); return })

	if err := g.Wait(); err != nil {
		return StatsData{}, err
	}
	return out, nil
}

type RecentActivity struct {
	RecentPets           []pets.Pet
	RecentAppointments   []appointments.Appointment
	UpcomingAppointments []appointments.Appointment
}

func (s *Service) Recent(ctx context.Context) (RecentActivity, error) {
	var out RecentActivity

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		items, err := s.pets.List(ctx)
		if err != nil {
			return err
		}
		out.RecentPets = head(items, recentLimit)
		return nil
	})
	g.Go(func() error {
		items, err := s.appts.List(ctx)
		if err != nil {
			return err
		}
		out.RecentAppointments = head(items, recentLimit)
		return nil
	})
	g.Go(func() (err error) { out.UpcomingAppointments, err = s.appts.Upcoming(ctx, upcomingDays); return })

	if err := g.Wait(); err != nil {
		return RecentActivity{}, err
	}
	return out, nil
}

func (s *Service) TodaysSchedule(ctx context.Context) ([]appointments.Appointment, error) {
	return s.appts.Today(ctx)
}

// GroupFilter selecciona el modo de agrupación del overview.
type GroupFilter string

const (
	GroupByStatus GroupFilter = "status"
	GroupByDate   GroupFilter = "date"
)

type Overview struct {
	Statistics           Stats
	AppointmentsByDoctor []DoctorCount
	RecentPets           []pets.Pet
	TodaysAppointments   []appointments.Appointment
	UpcomingAppointments []appointments.Appointment
	Grouping             []GroupCount
	PendingAppointments  []PendingAppointment
}

func (s *Service) Overview(ctx context.Context, filter GroupFilter) (Overview, error) {
	if filter != GroupByDate {
		filter = GroupByStatus
	}

	var out Overview

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		data, err := s.Stats(ctx)
		if err != nil {
			return err
		}
		out.Statistics = data.Stats
		out.AppointmentsByDoctor = data.AppointmentsByDoctor
		return nil
	})
	g.Go(func() error {
		items, err := s.pets.List(ctx)
		if err != nil {
			return err
		}
		out.RecentPets = head(items, recentLimit)
		return nil
	})
	g.Go(func() (err error) { out.TodaysAppointments, err = s.appts.Today(ctx); return })
	g.Go(func() error {
		items, err := s.appts.Upcoming(ctx, upcomingDays)
		if err != nil {
			return err
		}
		out.UpcomingAppointments = head(items, upcomingCap)
		return nil
	})
	g.Go(func() error {
		if filter == GroupByDate {
			since := s.now().AddDate(0, 0, -recentDateWin).Format("2006-01-02")
			items, err := s.repo.AppointmentsByRecentDate(ctx, since)
			if err != nil {
				return err
			}
			out.Grouping = items
			return nil
		}
		items, err := s.repo.AppointmentsByStatus(ctx)
		if err != nil {
			return err
		}
		out.Grouping = items
		return nil
	})
	g.Go(func() (err error) { out.PendingAppointments, err = s.repo.PendingAppointments(ctx, pendingLimit); return })

	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	return out, nil
}

func head[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
