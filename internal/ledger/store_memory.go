package ledger

import (
	"context"
	"sync"
)

// MemStore keeps cart and orders in process memory. State lasts as long
// as the process does; useful for tests and throwaway runs.
type MemStore struct {
	mu     sync.RWMutex
	lines  []CartLine
	orders []Order
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) LoadCart(ctx context.Context) ([]CartLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneLines(s.lines), nil
}

func (s *MemStore) SaveCart(ctx context.Context, lines []CartLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = cloneLines(lines)
	return nil
}

func (s *MemStore) LoadOrders(ctx context.Context) ([]Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Order, len(s.orders))
	copy(out, s.orders)
	return out, nil
}

func (s *MemStore) AppendOrder(ctx context.Context, o Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, o)
	return nil
}
