package backend

import (
	"context"
	"fmt"

	"springjewels-storefront/internal/domain"
)

func (c *Client) ListAddresses(ctx context.Context, token string) ([]domain.Address, error) {
	var addrs []domain.Address
	if err := c.do(ctx, "GET", "/api/addresses", token, nil, nil, &addrs); err != nil {
		return nil, err
	}
	return addrs, nil
}

func (c *Client) CreateAddress(ctx context.Context, token string, addr domain.Address) (*domain.Address, error) {
	var created domain.Address
	if err := c.do(ctx, "POST", "/api/addresses", token, nil, addr, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateAddress(ctx context.Context, token string, id int64, addr domain.Address) (*domain.Address, error) {
	var updated domain.Address
	if err := c.do(ctx, "PUT", fmt.Sprintf("/api/addresses/%d", id), token, nil, addr, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteAddress(ctx context.Context, token string, id int64) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/api/addresses/%d", id), token, nil, nil, nil)
}
