package backend

import (
	"context"
	"fmt"

	"springjewels-storefront/internal/domain"
)

// Wishlist returns the caller's full wishlist as product projections.
func (c *Client) Wishlist(ctx context.Context, token string) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, "GET", "/api/wishlist", token, nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) AddToWishlist(ctx context.Context, token string, productID int64) error {
	return c.do(ctx, "POST", fmt.Sprintf("/api/wishlist/%d", productID), token, nil, nil, nil)
}

func (c *Client) RemoveFromWishlist(ctx context.Context, token string, productID int64) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/api/wishlist/%d", productID), token, nil, nil, nil)
}
