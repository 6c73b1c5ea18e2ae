package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"springjewels-storefront/internal/domain"
)

// ListQuery is the query-parameter contract of GET /api/products.
type ListQuery struct {
	Page       int
	Size       int
	SortBy     string
	SortOrder  string
	CategoryID *int64
	Search     string
}

func (q ListQuery) values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	size := q.Size
	if size <= 0 {
		size = 20
	}
	v.Set("size", strconv.Itoa(size))
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "id"
	}
	v.Set("sortBy", sortBy)
	sortOrder := q.SortOrder
	if sortOrder == "" {
		sortOrder = "asc"
	}
	v.Set("sortOrder", sortOrder)
	if q.CategoryID != nil {
		v.Set("categoryId", strconv.FormatInt(*q.CategoryID, 10))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}

func (c *Client) ListProducts(ctx context.Context, q ListQuery) (*domain.ProductPage, error) {
	var page domain.ProductPage
	if err := c.do(ctx, "GET", "/api/products", "", q.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	if err := c.do(ctx, "GET", fmt.Sprintf("/api/products/%d", id), "", nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
