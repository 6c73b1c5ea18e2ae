// Package cart holds the buyer's local cart: a flat list of lines keyed by
// product ID, persisted outside the backend. The backend only ever sees the
// cart at order time, as {productId, quantity} pairs.
package cart

import (
	"context"

	"springjewels-storefront/internal/domain"
)

// Store is the cart contract. Reads favor availability: List and Total never
// fail, degrading to an empty cart when the underlying storage is unreadable.
type Store interface {
	// List returns the current lines. Order of insertion is preserved but
	// carries no meaning.
	List(ctx context.Context) []domain.CartLine

	// Add merges quantity into an existing line for the product or appends a
	// new one. The quantity is applied as-is, without clamping.
	Add(ctx context.Context, p domain.Product, quantity int) error

	// SetQuantity sets the line's quantity, removing the line when the new
	// quantity is zero or negative. No-op when the line does not exist.
	SetQuantity(ctx context.Context, productID int64, quantity int) error

	// Remove deletes the line unconditionally. No-op when absent.
	Remove(ctx context.Context, productID int64) error

	// Clear deletes every line. Called only after a confirmed order.
	Clear(ctx context.Context) error

	// Total is the sum of price*quantity over all lines, zero when empty.
	Total(ctx context.Context) int64
}

func lineFromProduct(p domain.Product, quantity int) domain.CartLine {
	return domain.CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		Quantity:  quantity,
	}
}

func sumLines(lines []domain.CartLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.Price * int64(l.Quantity)
	}
	return total
}
