package doctors

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"vetclinic-api/internal/platform/httpx"
)

// RegisterRoutes expone el listado público de doctores que consume el
// formulario de booking (sin auth, igual que en el sitio original).
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/doctors", listDoctorsHandler(svc))
}

type doctorResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Name      string `json:"name"`
}

func listDoctorsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpx.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]doctorResponse, 0, len(items))
		for _, d := range items {
			out = append(out, doctorResponse{
				ID:        d.ID,
				FirstName: d.FirstName,
				LastName:  d.LastName,
				Name:      d.DisplayName(),
			})
		}
		httpx.OKList(w, http.StatusOK, len(out), out)
	}
}
