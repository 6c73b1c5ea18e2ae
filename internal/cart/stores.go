package cart

import (
	"log"
	"path/filepath"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Stores hands out the cart store for one owner. The gateway keys carts by
// the browser's cart cookie, one store per owner.
type Stores interface {
	For(owner string) Store
}

// FileStores maps each owner to one JSON file under dir. Stores are memoized
// per owner so every request for the same cart shares one FileStore and its
// mutex serializes their read-modify-write cycles.
type FileStores struct {
	dir    string
	logger *log.Logger

	mu     sync.Mutex
	stores map[string]*FileStore
}

func NewFileStores(dir string, logger *log.Logger) *FileStores {
	return &FileStores{dir: dir, logger: logger, stores: make(map[string]*FileStore)}
}

func (f *FileStores) For(owner string) Store {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.stores[owner]
	if !ok {
		s = NewFileStore(filepath.Join(f.dir, owner+".json"), f.logger)
		f.stores[owner] = s
	}
	return s
}

// PostgresStores maps each owner to rows in the shared cart_lines table.
type PostgresStores struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgresStores(pool *pgxpool.Pool, logger *log.Logger) *PostgresStores {
	return &PostgresStores{pool: pool, logger: logger}
}

func (p *PostgresStores) For(owner string) Store {
	return NewPostgresStore(p.pool, owner, p.logger)
}
