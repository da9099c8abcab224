package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/pscheid92/hxdemo/internal/domain"
)

type ItemRepo struct {
	mu    sync.RWMutex
	items []string
}

func NewItemRepo() *ItemRepo {
	return &ItemRepo{}
}

func (r *ItemRepo) List(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.items), nil
}

func (r *ItemRepo) Append(_ context.Context, item string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, item)
	return slices.Clone(r.items), nil
}

func (r *ItemRepo) RemoveAt(_ context.Context, index int) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index >= len(r.items) {
		return nil, fmt.Errorf("%w: index %d, length %d", domain.ErrItemIndexOutOfRange, index, len(r.items))
	}
	r.items = slices.Delete(r.items, index, index+1)
	return slices.Clone(r.items), nil
}
