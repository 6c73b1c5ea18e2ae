package backend

import (
	"context"
	"fmt"

	"springjewels-storefront/internal/domain"
)

func (c *Client) ListReviews(ctx context.Context, productID int64) ([]domain.Review, error) {
	var reviews []domain.Review
	if err := c.do(ctx, "GET", fmt.Sprintf("/api/products/%d/reviews", productID), "", nil, nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *Client) CreateReview(ctx context.Context, token string, productID int64, review domain.Review) (*domain.Review, error) {
	var created domain.Review
	if err := c.do(ctx, "POST", fmt.Sprintf("/api/products/%d/reviews", productID), token, nil, review, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
