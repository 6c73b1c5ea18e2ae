package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"springjewels-storefront/internal/domain"
)

// ProductInput is the admin create/update payload for a product.
type ProductInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       int64  `json:"price"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Quantity    int    `json:"quantity"`
	CategoryID  int64  `json:"categoryId"`
}

// CategoryInput is the admin create/update payload for a category.
type CategoryInput struct {
	Name     string `json:"name"`
	ParentID *int64 `json:"parentId,omitempty"`
}

func (c *Client) AdminListProducts(ctx context.Context, token string, q ListQuery) (*domain.ProductPage, error) {
	var page domain.ProductPage
	if err := c.do(ctx, "GET", "/api/admin/products", token, q.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) AdminCreateProduct(ctx context.Context, token string, in ProductInput) (*domain.Product, error) {
	var p domain.Product
	if err := c.do(ctx, "POST", "/api/admin/products", token, nil, in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) AdminUpdateProduct(ctx context.Context, token string, id int64, in ProductInput) (*domain.Product, error) {
	var p domain.Product
	if err := c.do(ctx, "PUT", fmt.Sprintf("/api/admin/products/%d", id), token, nil, in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) AdminDeleteProduct(ctx context.Context, token string, id int64) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/api/admin/products/%d", id), token, nil, nil, nil)
}

// AdminListCategories returns the flat category list used by the admin table.
func (c *Client) AdminListCategories(ctx context.Context, token string) ([]domain.Category, error) {
	var cats []domain.Category
	if err := c.do(ctx, "GET", "/api/admin/categories", token, nil, nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (c *Client) AdminCreateCategory(ctx context.Context, token string, in CategoryInput) (*domain.Category, error) {
	var cat domain.Category
	if err := c.do(ctx, "POST", "/api/admin/categories", token, nil, in, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Client) AdminUpdateCategory(ctx context.Context, token string, id int64, in CategoryInput) (*domain.Category, error) {
	var cat domain.Category
	if err := c.do(ctx, "PUT", fmt.Sprintf("/api/admin/categories/%d", id), token, nil, in, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Client) AdminDeleteCategory(ctx context.Context, token string, id int64) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/api/admin/categories/%d", id), token, nil, nil, nil)
}

func (c *Client) AdminListOrders(ctx context.Context, token string, page, size int) (*OrderPage, error) {
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	if size <= 0 {
		size = 20
	}
	v.Set("size", strconv.Itoa(size))
	var out OrderPage
	if err := c.do(ctx, "GET", "/api/admin/orders", token, v, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type OrderPage struct {
	Content       []domain.Order `json:"content"`
	TotalPages    int            `json:"totalPages"`
	TotalElements int64          `json:"totalElements"`
	Number        int            `json:"number"`
	Size          int            `json:"size"`
}

func (c *Client) AdminUpdateOrderStatus(ctx context.Context, token string, id int64, status string) (*domain.Order, error) {
	var order domain.Order
	body := map[string]string{"status": status}
	if err := c.do(ctx, "PUT", fmt.Sprintf("/api/admin/orders/%d/status", id), token, nil, body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) AdminUpdateOrderAddress(ctx context.Context, token string, id int64, shippingAddress string) (*domain.Order, error) {
	var order domain.Order
	body := map[string]string{"shippingAddress": shippingAddress}
	if err := c.do(ctx, "PUT", fmt.Sprintf("/api/admin/orders/%d/address", id), token, nil, body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
