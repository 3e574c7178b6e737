package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"vetclinic-api/internal/middleware"
	"vetclinic-api/internal/platform/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc))
		pr.Post("/", createPetHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Put("/{petID}", updatePetHandler(svc))
	})
}

type petRequest struct {
	Name      string `json:"name"`
	SpeciesID string `json:"species_id"`
	BreedID   string `json:"breed_id"`
	ClientID  string `json:"client_id"`

	Age          *int     `json:"age"`
	Weight       *float64 `json:"weight"`
	Color        string   `json:"color"`
	Gender       string   `json:"gender"`
	MicrochipID  string   `json:"microchip_id"`
	MedicalNotes string   `json:"medical_notes"`

	LastVisit       *string `json:"last_visit"`       // YYYY-MM-DD
	NextAppointment *string `json:"next_appointment"` // YYYY-MM-DD
}

type petResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SpeciesID string `json:"species_id"`
	BreedID   string `json:"breed_id"`
	ClientID  string `json:"client_id"`

	Age          *int     `json:"age,omitempty"`
	Weight       *float64 `json:"weight,omitempty"`
	Color        string   `json:"color,omitempty"`
	Gender       string   `json:"gender,omitempty"`
	MicrochipID  string   `json:"microchip_id,omitempty"`
	MedicalNotes string   `json:"medical_notes,omitempty"`

	LastVisit       *string `json:"last_visit,omitempty"`
	NextAppointment *string `json:"next_appointment,omitempty"`

	SpeciesName string `json:"species_name,omitempty"`
	BreedName   string `json:"breed_name,omitempty"`
	ClientName  string `json:"client_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		httpx.OKList(w, http.StatusOK, len(out), out)
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				httpx.Fail(w, http.StatusNotFound, "Pet not found")
				return
			}
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}
		httpx.OK(w, http.StatusOK, toPetResponse(p))
	}
}

func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		var req petRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}

		p, err := svc.Create(r.Context(), toInput(req))
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				httpx.Fail(w, http.StatusBadRequest, "name, species_id, breed_id and client_id are required")
				return
			}
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}
		httpx.OK(w, http.StatusCreated, toPetResponse(p))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		var req petRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), toInput(req))
		switch {
		case err == nil:
			httpx.OK(w, http.StatusOK, toPetResponse(p))
		case errors.Is(err, ErrInvalidInput):
			httpx.Fail(w, http.StatusBadRequest, "name, species_id, breed_id and client_id are required")
		case errors.Is(err, ErrNotFound):
			httpx.Fail(w, http.StatusNotFound, "Pet not found")
		default:
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
		}
	}
}

func toInput(req petRequest) Input {
	return Input{
		Name:            req.Name,
		SpeciesID:       req.SpeciesID,
		BreedID:         req.BreedID,
		ClientID:        req.ClientID,
		Age:             req.Age,
		Weight:          req.Weight,
		Color:           req.Color,
		Gender:          req.Gender,
		MicrochipID:     req.MicrochipID,
		MedicalNotes:    req.MedicalNotes,
		LastVisit:       req.LastVisit,
		NextAppointment: req.NextAppointment,
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:              p.ID,
		Name:            p.Name,
		SpeciesID:       p.SpeciesID,
		BreedID:         p.BreedID,
		ClientID:        p.ClientID,
		Age:             p.Age,
		Weight:          p.Weight,
		Color:           p.Color,
		Gender:          string(p.Gender),
		MicrochipID:     p.MicrochipID,
		MedicalNotes:    p.MedicalNotes,
		LastVisit:       p.LastVisit,
		NextAppointment: p.NextAppointment,
		SpeciesName:     p.SpeciesName,
		BreedName:       p.BreedName,
		ClientName:      p.ClientName,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
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
