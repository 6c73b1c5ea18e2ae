package backend

import (
	"context"

	"springjewels-storefront/internal/domain"
)

type tokenResponse struct {
	Token string `json:"token"`
}

func (c *Client) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	var resp tokenResponse
	if err := c.do(ctx, "POST", "/api/auth/login", "", nil, creds, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *Client) Register(ctx context.Context, reg domain.Registration) (string, error) {
	var resp tokenResponse
	if err := c.do(ctx, "POST", "/api/auth/register", "", nil, reg, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}
