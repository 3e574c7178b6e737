package dashboard

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"vetclinic-api/internal/domain/appointments"
	"vetclinic-api/internal/domain/pets"
	"vetclinic-api/internal/middleware"
	"vetclinic-api/internal/platform/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/dashboard", func(dr chi.Router) {
		dr.Get("/stats", statsHandler(svc))
		dr.Get("/recent", recentHandler(svc))
		dr.Get("/schedule", scheduleHandler(svc))
		dr.Get("/overview", overviewHandler(svc))
	})
}

// Vistas propias del dashboard: el payload es más chato que los responses
// de cada módulo.
type apptView struct {
	ID              string    `json:"id"`
	PetID           string    `json:"pet_id"`
	ClientID        string    `json:"client_id"`
	DoctorID        string    `json:"doctor_id"`
	AppointmentDate string    `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	Reason          string    `json:"reason"`
	Status          string    `json:"status"`
	PetName         string    `json:"pet_name,omitempty"`
	ClientName      string    `json:"client_name,omitempty"`
	DoctorName      string    `json:"doctor_name,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type petView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SpeciesName string    `json:"species_name,omitempty"`
	BreedName   string    `json:"breed_name,omitempty"`
	ClientName  string    `json:"client_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type doctorCountView struct {
	DoctorName       string `json:"doctor_name"`
	AppointmentCount int    `json:"appointment_count"`
}

type groupCountView struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type pendingView struct {
	ID              string `json:"id"`
	PetID           string `json:"pet_id"`
	AppointmentTime string `json:"appointment_time"`
	PetName         string `json:"pet_name"`
}

type statsView struct {
	TotalPets          int        `json:"total_pets"`
	TotalClients       int        `json:"total_clients"`
	TotalAppointments  int        `json:"total_appointments"`
	TodaysAppointments int        `json:"todays_appointments"`
	AppointmentsToday  []apptView `json:"appointments_today"`
	TotalInventory     int        `json:"total_inventory"`
	LowStockInventory  int        `json:"low_stock_inventory"`
	TotalDoctors       int        `json:"total_doctors"`
}

func statsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		data, err := svc.Stats(r.Context())
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.OK(w, http.StatusOK, map[string]any{
			"stats":                  toStatsView(data.Stats),
			"appointments_by_doctor": toDoctorCounts(data.AppointmentsByDoctor),
		})
	}
}

func recentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		data, err := svc.Recent(r.Context())
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.OK(w, http.StatusOK, map[string]any{
			"recent_pets":           toPetViews(data.RecentPets),
			"recent_appointments":   toApptViews(data.RecentAppointments),
			"upcoming_appointments": toApptViews(data.UpcomingAppointments),
		})
	}
}

func scheduleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		items, err := svc.TodaysSchedule(r.Context())
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := toApptViews(items)
		httpx.OKList(w, http.StatusOK, len(out), out)
	}
}

func overviewHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		data, err := svc.Overview(r.Context(), GroupFilter(r.URL.Query().Get("filter")))
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.OK(w, http.StatusOK, map[string]any{
			"statistics":             toStatsView(data.Statistics),
			"appointments_by_doctor": toDoctorCounts(data.AppointmentsByDoctor),
			"recent_pets":            toPetViews(data.RecentPets),
			"todays_appointments":    toApptViews(data.TodaysAppointments),
			"upcoming_appointments":  toApptViews(data.UpcomingAppointments),
			"appointments_by_status": toGroupCounts(data.Grouping),
			"pending_appointments":   toPendingViews(data.PendingAppointments),
		})
	}
}

func toStatsView(s Stats) statsView {
	return statsView{
		TotalPets:          s.TotalPets,
		TotalClients:       s.TotalClients,
		TotalAppointments:  s.TotalAppointments,
		TodaysAppointments: len(s.TodaysAppointments),
		AppointmentsToday:  toApptViews(s.TodaysAppointments),
		TotalInventory:     s.TotalInventory,
		LowStockInventory:  s.LowStockInventory,
		TotalDoctors:       s.TotalDoctors,
	}
}

func toApptViews(items []appointments.Appointment) []apptView {
	out := make([]apptView, 0, len(items))
	for _, a := range items {
		out = append(out, apptView{
			ID:              a.ID,
			PetID:           a.PetID,
			ClientID:        a.ClientID,
			DoctorID:        a.DoctorID,
			AppointmentDate: a.Date,
			AppointmentTime: a.Time,
			Reason:          a.Reason,
			Status:          string(a.Status),
			PetName:         a.PetName,
			ClientName:      a.ClientName,
			DoctorName:      a.DoctorName,
			CreatedAt:       a.CreatedAt,
		})
	}
	return out
}

func toPetViews(items []pets.Pet) []petView {
	out := make([]petView, 0, len(items))
	for _, p := range items {
		out = append(out, petView{
			ID:          p.ID,
			Name:        p.Name,
			SpeciesName: p.SpeciesName,
			BreedName:   p.BreedName,
			ClientName:  p.ClientName,
			CreatedAt:   p.CreatedAt,
		})
	}
	return out
}

func toDoctorCounts(items []DoctorCount) []doctorCountView {
	out := make([]doctorCountView, 0, len(items))
	for _, d := range items {
		out = append(out, doctorCountView{DoctorName: d.DoctorName, AppointmentCount: d.AppointmentCount})
	}
	return out
}

func toGroupCounts(items []GroupCount) []groupCountView {
	out := make([]groupCountView, 0, len(items))
	for _, g := range items {
		out = append(out, groupCountView{Label: g.Label, Count: g.Count})
	}
	return out
}

func toPendingViews(items []PendingAppointment) []pendingView {
	out := make([]pendingView, 0, len(items))
	for _, p := range items {
		out = append(out, pendingView{
			ID:              p.ID,
			PetID:           p.PetID,
			AppointmentTime: p.Time,
			PetName:         p.PetName,
		})
	}
	return out
}

func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		httpx.Fail(w, http.StatusUnauthorized, "unauthorized")
		return false
	}
	return true
}
