package cart

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"springjewels-storefront/internal/domain"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cart.json")
	return NewFileStore(path, log.New(io.Discard, "", 0))
}

func TestAddMergesQuantities(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	p := domain.Product{ID: 7, Name: "Ring", Price: 100000}

	if err := s.Add(ctx, p, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Add(ctx, p, 3); err != nil {
		t.Fatalf("add: %v", err)
	}

	lines := s.List(ctx)
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	if lines[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", lines[0].Quantity)
	}
}

func TestAddAppendsDistinctProducts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Add(ctx, domain.Product{ID: 1, Name: "Ring", Price: 100}, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Add(ctx, domain.Product{ID: 2, Name: "Chain", Price: 200}, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := len(s.List(ctx)); got != 2 {
		t.Fatalf("expected two lines, got %d", got)
	}
}

func TestSetQuantityRemovesOnZeroOrNegative(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.Add(ctx, domain.Product{ID: 1, Price: 100}, 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := s.SetQuantity(ctx, 1, 0); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if got := len(s.List(ctx)); got != 0 {
		t.Fatalf("expected empty cart, got %d lines", got)
	}
	if got := s.Total(ctx); got != 0 {
		t.Fatalf("expected total 0, got %d", got)
	}

	if err := s.Add(ctx, domain.Product{ID: 1, Price: 100}, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.SetQuantity(ctx, 1, -3); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if got := len(s.List(ctx)); got != 0 {
		t.Fatalf("expected empty cart after negative quantity, got %d lines", got)
	}
}

func TestSetQuantityMissingLineIsNoop(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.SetQuantity(ctx, 99, 5); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if got := len(s.List(ctx)); got != 0 {
		t.Fatalf("expected empty cart, got %d lines", got)
	}
}

func TestRemoveDeletesLine(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.Add(ctx, domain.Product{ID: 1, Price: 100}, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Remove(ctx, 1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := len(s.List(ctx)); got != 0 {
		t.Fatalf("expected empty cart, got %d lines", got)
	}
	if err := s.Remove(ctx, 1); err != nil {
		t.Fatalf("remove absent line: %v", err)
	}
}

func TestTotalSumsLines(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if got := s.Total(ctx); got != 0 {
		t.Fatalf("expected empty total 0, got %d", got)
	}

	if err := s.Add(ctx, domain.Product{ID: 7, Price: 100000}, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Add(ctx, domain.Product{ID: 8, Price: 50000}, 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := s.Total(ctx); got != 350000 {
		t.Fatalf("expected total 350000, got %d", got)
	}
}

func TestClearEmptiesCart(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.Add(ctx, domain.Product{ID: 1, Price: 100}, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got := len(s.List(ctx)); got != 0 {
		t.Fatalf("expected empty cart, got %d lines", got)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear empty cart: %v", err)
	}
}

func TestCorruptFileDegradesToEmptyCart(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(s.path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if got := len(s.List(ctx)); got != 0 {
		t.Fatalf("expected empty cart from corrupt storage, got %d lines", got)
	}

	// Writes recover the file.
	if err := s.Add(ctx, domain.Product{ID: 1, Price: 100}, 1); err != nil {
		t.Fatalf("add after corruption: %v", err)
	}
	if got := len(s.List(ctx)); got != 1 {
		t.Fatalf("expected one line, got %d", got)
	}
}
