package memory

import (
	"context"
	"sync"
	"time"

	"vetclinic-api/internal/domain/settings"
)

type SettingsRepo struct {
	mu      sync.RWMutex
	current *settings.Settings
}

func NewSettingsRepo() *SettingsRepo {
	return &SettingsRepo{}
}

func (r *SettingsRepo) Get(ctx context.Context) (settings.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// fila singleton lazy, igual que el GET original contra la DB
	if r.current == nil {
		r.current = &settings.Settings{
			ClinicName: "Veterinary Clinic",
			UpdatedAt:  time.Now(),
		}
	}
	return *r.current, nil
}

func (r *SettingsRepo) Save(ctx context.Context, s settings.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = &s
	return nil
}
