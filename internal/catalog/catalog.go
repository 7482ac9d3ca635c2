package catalog

import (
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Brand       string          `json:"brand"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Features    []string        `json:"features"`
	ImageURL    string          `json:"image_url"`
	InStock     bool            `json:"in_stock"`
	Category    string          `json:"category"`
}

// Clone copies the product including its features slice, so holders of
// the copy are isolated from later catalog edits.
func (p Product) Clone() Product {
	out := p
	if p.Features != nil {
		out.Features = make([]string, len(p.Features))
		copy(out.Features, p.Features)
	}
	return out
}

// Store is the in-memory product catalog. Listing and search results
// follow insertion order, so products live in a slice with a side index
// by id. The catalog is seeded on every start and never persisted.
type Store struct {
	mu       sync.RWMutex
	products []Product
	byID     map[string]int
	lastID   int64
}

func NewStore(seed []Product) *Store {
	s := &Store{
		products: make([]Product, 0, len(seed)),
		byID:     make(map[string]int, len(seed)),
	}
	for _, p := range seed {
		s.byID[p.ID] = len(s.products)
		s.products = append(s.products, p.Clone())
	}
	s.lastID = int64(len(s.products))
	return s
}

// List returns the full catalog in insertion order.
func (s *Store) List() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyAll()
}

// Search matches query case-insensitively against name, brand,
// description and category. A blank query returns the whole catalog.
func (s *Store) Search(query string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))

	s.mu.RLock()
	defer s.mu.RUnlock()

	if q == "" {
		return s.copyAll()
	}

	out := make([]Product, 0)
	for _, p := range s.products {
		if matches(p, q) {
			out = append(out, p.Clone())
		}
	}
	return out
}

func matches(p Product, q string) bool {
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Brand), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Category), q)
}

func (s *Store) Get(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return Product{}, false
	}
	return s.products[i].Clone(), true
}

// Add appends a product, assigning the next id from a monotonic counter.
// The counter starts at the seed size, so ids stay sequential; unlike
// deriving ids from the current length it cannot collide if removal is
// ever introduced.
func (s *Store) Add(p Product) Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	p.ID = strconv.FormatInt(s.lastID, 10)

	stored := p.Clone()
	s.byID[stored.ID] = len(s.products)
	s.products = append(s.products, stored)
	return stored.Clone()
}

func (s *Store) copyAll() []Product {
	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p.Clone())
	}
	return out
}
