package products

import (
	"context"
	"sort"
	"sync"
)

// MemStore keeps products in a map guarded by a single RWMutex.
// Mutations hold the write lock across id allocation and the map write.
type MemStore struct {
	mu     sync.RWMutex
	m      map[int64]Product
	nextID int64
}

func NewMemStore() *MemStore {
	return &MemStore{m: map[int64]Product{}, nextID: 1}
}

func NewStore() Store {
	return NewMemStore()
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Create(ctx context.Context, f Fields) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := Product{
		ID:       s.nextID,
		Name:     f.Name.clone(),
		Price:    f.Price.clone(),
		Quantity: f.Quantity.clone(),
	}
	s.m[p.ID] = p
	s.nextID++

	return p.copy(), nil
}

func (s *MemStore) List(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.m))
	for _, p := range s.m {
		out = append(out, p.copy())
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) Get(ctx context.Context, id int64) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.m[id]
	if !ok {
		return Product{}, false, nil
	}
	return p.copy(), true, nil
}

func (s *MemStore) Update(ctx context.Context, id int64, patch Patch) (Product, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.m[id]
	if !ok {
		return Product{}, false, nil
	}

	next := patch.apply(cur)
	s.m[id] = next
	return next.copy(), true, nil
}

func (s *MemStore) Delete(ctx context.Context, id int64) (Product, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.m[id]
	if !ok {
		return Product{}, false, nil
	}
	delete(s.m, id)
	return p, true, nil
}

func (s *MemStore) Len(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m), nil
}

func (p Product) copy() Product {
	p.Name = p.Name.clone()
	p.Price = p.Price.clone()
	p.Quantity = p.Quantity.clone()
	return p
}
