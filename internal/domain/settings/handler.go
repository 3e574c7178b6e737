package settings

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
	r.Get("/settings", getSettingsHandler(svc))
	r.Post("/settings", saveSettingsHandler(svc))
}

type settingsPayload struct {
	ClinicName string    `json:"clinic_name"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	Address    string    `json:"address"`
	UpdatedAt  time.Time `json:"updated_at,omitzero"`
}

func getSettingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		s, err := svc.Get(r.Context())
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}
		httpx.OK(w, http.StatusOK, toPayload(s))
	}
}

func saveSettingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		var req settingsPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}

		s, err := svc.Save(r.Context(), Input{
			ClinicName: req.ClinicName,
			Phone:      req.Phone,
			Email:      req.Email,
			Address:    req.Address,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				httpx.Fail(w, http.StatusBadRequest, "clinic_name is required")
				return
			}
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}
		httpx.OK(w, http.StatusOK, toPayload(s))
	}
}

func toPayload(s Settings) settingsPayload {
	return settingsPayload{
		ClinicName: s.ClinicName,
		Phone:      s.Phone,
		Email:      s.Email,
		Address:    s.Address,
		UpdatedAt:  s.UpdatedAt,
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
