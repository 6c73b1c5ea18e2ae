package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"springjewels-storefront/internal/domain"
)

// FileStore keeps the cart as a JSON array in a single file, the durable
// local-storage equivalent for one owner. Safe for concurrent use.
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger *log.Logger
}

func NewFileStore(path string, logger *log.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

func (s *FileStore) List(_ context.Context) []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) Add(_ context.Context, p domain.Product, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.load()
	for i := range lines {
		if lines[i].ProductID == p.ID {
			lines[i].Quantity += quantity
			return s.save(lines)
		}
	}
	return s.save(append(lines, lineFromProduct(p, quantity)))
}

func (s *FileStore) SetQuantity(_ context.Context, productID int64, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.load()
	for i := range lines {
		if lines[i].ProductID != productID {
			continue
		}
		if quantity > 0 {
			lines[i].Quantity = quantity
		} else {
			lines = append(lines[:i], lines[i+1:]...)
		}
		return s.save(lines)
	}
	return nil
}

func (s *FileStore) Remove(_ context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.load()
	kept := lines[:0]
	for _, l := range lines {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(lines) {
		return nil
	}
	return s.save(kept)
}

func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (s *FileStore) Total(_ context.Context) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sumLines(s.load())
}

// load reads the line list. A missing file is an empty cart; a corrupt or
// unreadable file is logged and also treated as empty.
func (s *FileStore) load() []domain.CartLine {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Printf("read cart %s: %v", s.path, err)
		}
		return nil
	}
	var lines []domain.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		s.logger.Printf("decode cart %s: %v", s.path, err)
		return nil
	}
	return lines
}

func (s *FileStore) save(lines []domain.CartLine) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create cart dir: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write cart %s: %w", s.path, err)
	}
	return nil
}
