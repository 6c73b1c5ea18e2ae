package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"springjewels-storefront/internal/backend"
	"springjewels-storefront/internal/domain"
)

// listQueryFromContext mirrors the backend's paging contract one to one so
// storefront query strings pass straight through.
func listQueryFromContext(c *gin.Context) backend.ListQuery {
	q := backend.ListQuery{
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Search:    c.Query("search"),
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "0")); err == nil && page >= 0 {
		q.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("size", "20")); err == nil && size > 0 {
		q.Size = size
	}
	if raw := c.Query("categoryId"); raw != "" {
		if id, err := parseInt64(raw); err == nil && id > 0 {
			q.CategoryID = &id
		}
	}
	return q
}

func (h *handlers) listProducts(c *gin.Context) {
	page, err := h.deps.Backend.ListProducts(c.Request.Context(), listQueryFromContext(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *handlers) getProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	product, err := h.deps.Backend.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *handlers) listReviews(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	reviews, err := h.deps.Backend.ListReviews(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *handlers) createReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var review domain.Review
	if err := c.ShouldBindJSON(&review); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review payload"})
		return
	}
	created, err := h.deps.Backend.CreateReview(c.Request.Context(), bearerToken(c), id, review)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handlers) listCategories(c *gin.Context) {
	categories, err := h.deps.Backend.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	c.JSON(http.StatusOK, categories)
}
