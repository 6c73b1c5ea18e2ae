package cart

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"springjewels-storefront/internal/domain"
)

// PostgresStore keeps one owner's cart as rows in cart_lines, for deployments
// where gateway instances cannot share a filesystem.
type PostgresStore struct {
	pool   *pgxpool.Pool
	owner  string
	logger *log.Logger
}

func NewPostgresStore(pool *pgxpool.Pool, owner string, logger *log.Logger) *PostgresStore {
	return &PostgresStore{pool: pool, owner: owner, logger: logger}
}

func (s *PostgresStore) List(ctx context.Context) []domain.CartLine {
	const q = `
SELECT product_id, name, price, image_url, quantity
FROM cart_lines
WHERE owner = $1
ORDER BY added_at
`
	rows, err := s.pool.Query(ctx, q, s.owner)
	if err != nil {
		s.logger.Printf("list cart %s: %v", s.owner, err)
		return nil
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var l domain.CartLine
		if err := rows.Scan(&l.ProductID, &l.Name, &l.Price, &l.ImageURL, &l.Quantity); err != nil {
			s.logger.Printf("scan cart line %s: %v", s.owner, err)
			return nil
		}
		lines = append(lines, l)
	}
	if rows.Err() != nil {
		s.logger.Printf("list cart %s: %v", s.owner, rows.Err())
		return nil
	}
	return lines
}

// Add merges atomically through the (owner, product_id) primary key, so
// concurrent adds of the same product accumulate instead of overwriting.
func (s *PostgresStore) Add(ctx context.Context, p domain.Product, quantity int) error {
	_, err := s.pool.Exec(ctx, `
INSERT INTO cart_lines (owner, product_id, name, price, image_url, quantity)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (owner, product_id)
DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity
`, s.owner, p.ID, p.Name, p.Price, p.ImageURL, quantity)
	return err
}

func (s *PostgresStore) SetQuantity(ctx context.Context, productID int64, quantity int) error {
	if quantity <= 0 {
		_, err := s.pool.Exec(ctx, `
DELETE FROM cart_lines
WHERE owner = $1 AND product_id = $2
`, s.owner, productID)
		return err
	}
	_, err := s.pool.Exec(ctx, `
UPDATE cart_lines
SET quantity = $1
WHERE owner = $2 AND product_id = $3
`, quantity, s.owner, productID)
	return err
}

func (s *PostgresStore) Remove(ctx context.Context, productID int64) error {
	_, err := s.pool.Exec(ctx, `
DELETE FROM cart_lines
WHERE owner = $1 AND product_id = $2
`, s.owner, productID)
	return err
}

func (s *PostgresStore) Clear(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
DELETE FROM cart_lines
WHERE owner = $1
`, s.owner)
	return err
}

func (s *PostgresStore) Total(ctx context.Context) int64 {
	var total int64
	err := s.pool.QueryRow(ctx, `
SELECT COALESCE(SUM(price * quantity), 0)
FROM cart_lines
WHERE owner = $1
`, s.owner).Scan(&total)
	if err != nil {
		s.logger.Printf("total cart %s: %v", s.owner, err)
		return 0
	}
	return total
}
