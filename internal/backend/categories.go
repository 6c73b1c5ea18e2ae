package backend

import (
	"context"

	"springjewels-storefront/internal/domain"
)

// ListCategories returns the public, tree-structured category list.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var cats []domain.Category
	if err := c.do(ctx, "GET", "/api/categories", "", nil, nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}
