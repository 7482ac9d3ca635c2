package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// stateDoc is the on-disk layout: one JSON document holding both
// collections under their fixed keys.
type stateDoc struct {
	CartItems []CartLine `json:"cartItems"`
	Orders    []Order    `json:"orders"`
}

// FileStore persists the ledger to a single JSON file. Writes go
// through a temp file and rename, so a crash mid-write leaves the
// previous state intact. An unreadable or corrupt file is logged and
// treated as empty rather than surfaced.
type FileStore struct {
	mu   sync.Mutex
	path string
	log  *zap.Logger
}

func NewFileStore(path string, log *zap.Logger) *FileStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &FileStore{path: path, log: log}
}

func (s *FileStore) Ping(ctx context.Context) error {
	dir := filepath.Dir(s.path)
	_, err := os.Stat(dir)
	return err
}

func (s *FileStore) LoadCart(ctx context.Context) ([]CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().CartItems, nil
}

func (s *FileStore) SaveCart(ctx context.Context, lines []CartLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	doc.CartItems = lines
	return s.save(doc)
}

func (s *FileStore) LoadOrders(ctx context.Context) ([]Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().Orders, nil
}

func (s *FileStore) AppendOrder(ctx context.Context, o Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	doc.Orders = append(doc.Orders, o)
	return s.save(doc)
}

// load reads the document, falling back to empty on absence or parse
// failure. Callers hold s.mu.
func (s *FileStore) load() stateDoc {
	var doc stateDoc

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn("state file unreadable, starting empty", zap.String("path", s.path), zap.Error(err))
		}
		return doc
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		s.log.Warn("state file corrupt, starting empty", zap.String("path", s.path), zap.Error(err))
		return stateDoc{}
	}
	return doc
}

func (s *FileStore) save(doc stateDoc) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
