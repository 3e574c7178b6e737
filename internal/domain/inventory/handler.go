package inventory

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"vetclinic-api/internal/middleware"
	"vetclinic-api/internal/platform/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/inventory", listInventoryHandler(svc))
}

type itemResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Quantity     int       `json:"quantity"`
	ReorderLevel int       `json:"reorder_level"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func listInventoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.Fail(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]itemResponse, 0, len(items))
		for _, it := range items {
			out = append(out, itemResponse{
				ID:           it.ID,
				Name:         it.Name,
				Quantity:     it.Quantity,
				ReorderLevel: it.ReorderLevel,
				CreatedAt:    it.CreatedAt,
				UpdatedAt:    it.UpdatedAt,
			})
		}
		httpx.OKList(w, http.StatusOK, len(out), out)
	}
}
