package backend

import (
	"context"
	"errors"
	"fmt"

	"springjewels-storefront/internal/domain"
)

func (c *Client) CreateOrder(ctx context.Context, token string, req domain.CreateOrderRequest) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, "POST", "/api/orders", token, nil, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) OrderHistory(ctx context.Context, token string) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.do(ctx, "GET", "/api/orders/my-history", token, nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CancelOrder cancels the caller's own order. The backend only accepts this
// for pending orders; any other state comes back as an error which is folded
// into ErrNotFound, the taxonomy bucket for gone-or-illegal-state.
func (c *Client) CancelOrder(ctx context.Context, token string, id int64) (*domain.Order, error) {
	var order domain.Order
	err := c.do(ctx, "PUT", fmt.Sprintf("/api/orders/%d/cancel", id), token, nil, nil, &order)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Err == nil {
			se.Err = domain.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}
