package cart

import (
	"context"
	"io"
	"log"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"springjewels-storefront/internal/domain"
	"springjewels-storefront/internal/migrate"
)

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetCartLines(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE cart_lines`); err != nil {
		t.Fatalf("truncate cart_lines: %v", err)
	}
}

func TestPostgres_AddMergesAndRemoves(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetCartLines(ctx, t, pool)

	store := NewPostgresStore(pool, "owner-a", log.New(io.Discard, "", 0))
	p := domain.Product{ID: 7, Name: "Ring", Price: 100000, ImageURL: "/img/ring.jpg"}

	if err := store.Add(ctx, p, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.Add(ctx, p, 3); err != nil {
		t.Fatalf("add: %v", err)
	}

	lines := store.List(ctx)
	if len(lines) != 1 || lines[0].Quantity != 5 {
		t.Fatalf("expected one line with quantity 5, got %+v", lines)
	}
	if total := store.Total(ctx); total != 500000 {
		t.Fatalf("expected total 500000, got %d", total)
	}

	if err := store.SetQuantity(ctx, 7, 0); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if lines := store.List(ctx); len(lines) != 0 {
		t.Fatalf("expected empty cart after zero quantity, got %+v", lines)
	}
}

func TestPostgres_ConcurrentAddsDoNotLoseUpdates(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetCartLines(ctx, t, pool)

	store := NewPostgresStore(pool, "owner-b", log.New(io.Discard, "", 0))
	p := domain.Product{ID: 1, Name: "Ring", Price: 100}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := store.Add(ctx, p, 1); err != nil {
				t.Errorf("add: %v", err)
			}
		}()
	}
	wg.Wait()

	lines := store.List(ctx)
	if len(lines) != 1 || lines[0].Quantity != 20 {
		t.Fatalf("expected one line with quantity 20, got %+v", lines)
	}
}

func TestPostgres_OwnersIsolated(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetCartLines(ctx, t, pool)

	logger := log.New(io.Discard, "", 0)
	a := NewPostgresStore(pool, "owner-a", logger)
	b := NewPostgresStore(pool, "owner-b", logger)

	if err := a.Add(ctx, domain.Product{ID: 1, Name: "Ring", Price: 100}, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := a.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := b.Add(ctx, domain.Product{ID: 2, Name: "Chain", Price: 200}, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	if lines := a.List(ctx); len(lines) != 0 {
		t.Fatalf("expected owner-a cleared, got %+v", lines)
	}
	if lines := b.List(ctx); len(lines) != 1 || lines[0].ProductID != 2 {
		t.Fatalf("expected owner-b untouched, got %+v", lines)
	}
}
