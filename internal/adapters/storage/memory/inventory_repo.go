package memory

import (
	"context"
	"sort"
	"sync"

	"vetclinic-api/internal/domain/inventory"
)

type InventoryRepo struct {
	mu   sync.RWMutex
	byID map[string]inventory.Item
}

func NewInventoryRepo(seed ...inventory.Item) *InventoryRepo {
	r := &InventoryRepo{byID: make(map[string]inventory.Item)}
	for _, it := range seed {
		r.byID[it.ID] = it
	}
	return r
}

func (r *InventoryRepo) List(ctx context.Context) ([]inventory.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]inventory.Item, 0, len(r.byID))
	for _, it := range r.byID {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *InventoryRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}

func (r *InventoryRepo) CountLowStock(ctx context.Context, threshold int) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, it := range r.byID {
		if it.Quantity <= threshold {
			count++
		}
	}
	return count, nil
}
