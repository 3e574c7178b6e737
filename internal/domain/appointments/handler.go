package appointments

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"vetclinic-api/internal/middleware"
	"vetclinic-api/internal/platform/httpx"
)

// RegisterRoutes monta el módulo. check-availability y public son las dos
// rutas sin auth (las usa el formulario de booking del sitio).
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.Get("/", listAppointmentsHandler(svc))
		ar.Post("/", createAppointmentHandler(svc))
		ar.Get("/search", searchAppointmentsHandler(svc))
		ar.Get("/today", todaysAppointmentsHandler(svc))
		ar.Get("/upcoming", upcomingAppointmentsHandler(svc))
		ar.Post("/check-availability", checkAvailabilityHandler(svc))
		ar.Post("/public", publicBookingHandler(svc))

		ar.Get("/{appointmentID}", getAppointmentHandler(svc))
		ar.Put("/{appointmentID}", updateAppointmentHandler(svc))
		ar.Delete("/{appointmentID}", deleteAppointmentHandler(svc))
	})
}

type appointmentResponse struct {
	ID       string `json:"id"`
	PetID    string `json:"pet_id"`
	ClientID string `json:"client_id"`
	DoctorID string `json:"doctor_id"`

	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	Reason          string `json:"reason"`
	Status          string `json:"status"`
	Notes           string `json:"notes,omitempty"`

	PetName     string `json:"pet_name,omitempty"`
	ClientName  string `json:"client_name,omitempty"`
	SpeciesName string `json:"species_name,omitempty"`
	BreedName   string `json:"breed_name,omitempty"`
	DoctorName  string `json:"doctor_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type createAppointmentRequest struct {
	PetID           string `json:"pet_id"`
	ClientID        string `json:"client_id"`
	DoctorID        string `json:"doctor_id"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	Reason          string `json:"reason"`
	Status          string `json:"status"`
	Notes           string `json:"notes"`
}

type updateAppointmentRequest struct {
	PetID           *string `json:"pet_id"`
	ClientID        *string `json:"client_id"`
	DoctorID        *string `json:"doctor_id"`
	AppointmentDate *string `json:"appointment_date"`
	AppointmentTime *string `json:"appointment_time"`
	Reason          *string `json:"reason"`
	Status          *string `json:"status"`
	Notes           *string `json:"notes"`
}

type bookingRequest struct {
	ClientName      string `json:"client_name"`
	ClientPhone     string `json:"client_phone"`
	ClientEmail     string `json:"client_email"`
	PetName         string `json:"pet_name"`
	PetType         string `json:"pet_type"`
	DoctorID        string `json:"doctor_id"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	ServiceType     string `json:"service_type"`
	Notes           string `json:"notes"`
	Status          string `json:"status"`
}

type availabilityRequest struct {
	DoctorID        string `json:"doctor_id"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
}

func listAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}
		respondList(w, items)
	}
}

func getAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "appointmentID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				httpx.Fail(w, http.StatusNotFound, "Appointment not found")
				return
			}
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}
		httpx.OK(w, http.StatusOK, toResponse(a))
	}
}

func createAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		var req createAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}

		a, err := svc.Create(r.Context(), CreateInput{
			PetID:    req.PetID,
			ClientID: req.ClientID,
			DoctorID: req.DoctorID,
			Date:     req.AppointmentDate,
			Time:     req.AppointmentTime,
			Reason:   req.Reason,
			Status:   req.Status,
			Notes:    req.Notes,
		})
		if err != nil {
			failAppointment(w, err)
			return
		}
		httpx.OK(w, http.StatusCreated, toResponse(a))
	}
}

func updateAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		var req updateAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}

		a, err := svc.Update(r.Context(), chi.URLParam(r, "appointmentID"), UpdateInput{
			PetID:    req.PetID,
			ClientID: req.ClientID,
			DoctorID: req.DoctorID,
			Date:     req.AppointmentDate,
			Time:     req.AppointmentTime,
			Reason:   req.Reason,
			Status:   req.Status,
			Notes:    req.Notes,
		})
		if err != nil {
			failAppointment(w, err)
			return
		}
		httpx.OK(w, http.StatusOK, toResponse(a))
	}
}

func deleteAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		err := svc.Delete(r.Context(), chi.URLParam(r, "appointmentID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				httpx.Fail(w, http.StatusNotFound, "Appointment not found")
				return
			}
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}
		httpx.OK(w, http.StatusOK, struct{}{})
	}
}

func searchAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		items, err := svc.Search(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				httpx.Fail(w, http.StatusBadRequest, "Search query is required")
				return
			}
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}
		respondList(w, items)
	}
}

func todaysAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		items, err := svc.Today(r.Context())
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}
		respondList(w, items)
	}
}

func upcomingAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		days := 7
		if v := r.URL.Query().Get("days"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				httpx.Fail(w, http.StatusBadRequest, "days must be a positive integer")
				return
			}
			days = n
		}

		items, err := svc.Upcoming(r.Context(), days)
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}
		respondList(w, items)
	}
}

func checkAvailabilityHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req availabilityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}

		available, err := svc.CheckAvailability(r.Context(), req.DoctorID, req.AppointmentDate, req.AppointmentTime)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				httpx.Fail(w, http.StatusBadRequest, err.Error())
				return
			}
			httpx.Fail(w, http.StatusInternalServerError, "Failed to check availability")
			return
		}
		httpx.OKFields(w, http.StatusOK, map[string]any{"available": available})
	}
}

func publicBookingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}

		a, err := svc.Book(r.Context(), BookingInput{
			ClientName:  req.ClientName,
			ClientPhone: req.ClientPhone,
			ClientEmail: req.ClientEmail,
			PetName:     req.PetName,
			PetType:     req.PetType,
			DoctorID:    req.DoctorID,
			Date:        req.AppointmentDate,
			Time:        req.AppointmentTime,
			ServiceType: req.ServiceType,
			Notes:       req.Notes,
			Status:      req.Status,
		})
		if err != nil {
			failAppointment(w, err)
			return
		}
		httpx.OK(w, http.StatusCreated, toResponse(a))
	}
}

// failAppointment mapea los sentinels del servicio a status codes.
func failAppointment(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSlotTaken):
		httpx.Fail(w, http.StatusBadRequest, "The selected doctor is not available at this date and time")
	case errors.Is(err, ErrUnknownPet):
		httpx.Fail(w, http.StatusBadRequest, "Pet not found")
	case errors.Is(err, ErrUnknownClient):
		httpx.Fail(w, http.StatusBadRequest, "Client not found")
	case errors.Is(err, ErrInvalidInput):
		httpx.Fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		httpx.Fail(w, http.StatusNotFound, "Appointment not found")
	default:
		httpx.Fail(w, http.StatusInternalServerError, "internal error")
	}
}

func respondList(w http.ResponseWriter, items []Appointment) {
	out := make([]appointmentResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toResponse(a))
	}
	httpx.OKList(w, http.StatusOK, len(out), out)
}

func toResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:              a.ID,
		PetID:           a.PetID,
		ClientID:        a.ClientID,
		DoctorID:        a.DoctorID,
		AppointmentDate: a.Date,
		AppointmentTime: a.Time,
		Reason:          a.Reason,
		Status:          string(a.Status),
		Notes:           a.Notes,
		PetName:         a.PetName,
		ClientName:      a.ClientName,
		SpeciesName:     a.SpeciesName,
		BreedName:       a.BreedName,
		DoctorName:      a.DoctorName,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		httpx.Fail(w, http.StatusUnauthorized, "unauthorized")
		return false
	}
	return true
}
