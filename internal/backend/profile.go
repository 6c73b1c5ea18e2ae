package backend

import (
	"context"

	"springjewels-storefront/internal/domain"
)

func (c *Client) GetProfile(ctx context.Context, token string) (*domain.User, error) {
	var u domain.User
	if err := c.do(ctx, "GET", "/api/profile", token, nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateProfile(ctx context.Context, token string, u domain.User) (*domain.User, error) {
	var updated domain.User
	if err := c.do(ctx, "PUT", "/api/profile", token, nil, u, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) ChangePassword(ctx context.Context, token string, req domain.ChangePasswordRequest) error {
	return c.do(ctx, "PUT", "/api/profile/change-password", token, nil, req, nil)
}
