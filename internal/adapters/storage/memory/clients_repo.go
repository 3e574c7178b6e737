// Package memory implementa los repositorios sobre maps con mutex.
// Se usa en modo dev (sin DB_DSN) y en los tests end-to-end del router.
// El lock por repo hace atómicos los find-or-create y el chequeo de slot.
package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"vetclinic-api/internal/domain/clients"
)

type ClientsRepo struct {
	mu   sync.RWMutex
	byID map[string]clients.Client
}

func NewClientsRepo() *ClientsRepo {
	return &ClientsRepo{byID: make(map[string]clients.Client)}
}

func (r *ClientsRepo) Create(ctx context.Context, c clients.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("client id required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return errors.New("client already exists")
	}
	r.byID[c.ID] = c
	return nil
}

func (r *ClientsRepo) Update(ctx context.Context, c clients.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[c.ID]; !exists {
		return clients.ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *ClientsRepo) GetByID(ctx context.Context, id string) (clients.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return clients.Client{}, clients.ErrNotFound
	}
	return c, nil
}

func (r *ClientsRepo) GetByPhone(ctx context.Context, phone string) (clients.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.findByPhone(phone); ok {
		return c, nil
	}
	return clients.Client{}, clients.ErrNotFound
}

func (r *ClientsRepo) List(ctx context.Context) ([]clients.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]clients.Client, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *ClientsRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}

func (r *ClientsRepo) FindOrCreateByPhone(ctx context.Context, c clients.Client) (clients.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.findByPhone(c.Phone); ok {
		return existing, nil
	}
	r.byID[c.ID] = c
	return c, nil
}

// caller debe tener el lock
func (r *ClientsRepo) findByPhone(phone string) (clients.Client, bool) {
	phone = strings.TrimSpace(phone)
	for _, c := range r.byID {
		if c.Phone == phone {
			return c, true
		}
	}
	return clients.Client{}, false
}
