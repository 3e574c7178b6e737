package memory

import (
	"context"
	"sort"
	"sync"

	"vetclinic-api/internal/domain/doctors"
)

type DoctorsRepo struct {
	mu   sync.RWMutex
	byID map[string]doctors.Doctor
}

// NewDoctorsRepo acepta un seed inicial: en modo dev la clínica arranca
// con doctores de ejemplo porque no hay endpoint de alta.
func NewDoctorsRepo(seed ...doctors.Doctor) *DoctorsRepo {
	r := &DoctorsRepo{byID: make(map[string]doctors.Doctor)}
	for _, d := range seed {
		r.byID[d.ID] = d
	}
	return r
}

func (r *DoctorsRepo) GetByID(ctx context.Context, id string) (doctors.Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return doctors.Doctor{}, doctors.ErrNotFound
	}
	return d, nil
}

func (r *DoctorsRepo) List(ctx context.Context) ([]doctors.Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]doctors.Doctor, 0, len(r.byID))
	for _, d := range r.byID {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DisplayName() < out[j].DisplayName()
	})
	return out, nil
}

func (r *DoctorsRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}

func (r *DoctorsRepo) doctorName(id string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return ""
	}
	return d.DisplayName()
}
