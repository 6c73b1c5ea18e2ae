package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"springjewels-storefront/internal/backend"
)

func (h *handlers) adminListProducts(c *gin.Context) {
	page, err := h.deps.Backend.AdminListProducts(c.Request.Context(), bearerToken(c), listQueryFromContext(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *handlers) adminCreateProduct(c *gin.Context) {
	var in backend.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product payload"})
		return
	}
	created, err := h.deps.Backend.AdminCreateProduct(c.Request.Context(), bearerToken(c), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handlers) adminUpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in backend.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product payload"})
		return
	}
	updated, err := h.deps.Backend.AdminUpdateProduct(c.Request.Context(), bearerToken(c), id, in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *handlers) adminDeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.deps.Backend.AdminDeleteProduct(c.Request.Context(), bearerToken(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) adminListCategories(c *gin.Context) {
	categories, err := h.deps.Backend.AdminListCategories(c.Request.Context(), bearerToken(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *handlers) adminCreateCategory(c *gin.Context) {
	var in backend.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category payload"})
		return
	}
	created, err := h.deps.Backend.AdminCreateCategory(c.Request.Context(), bearerToken(c), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handlers) adminUpdateCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in backend.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category payload"})
		return
	}
	updated, err := h.deps.Backend.AdminUpdateCategory(c.Request.Context(), bearerToken(c), id, in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *handlers) adminDeleteCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.deps.Backend.AdminDeleteCategory(c.Request.Context(), bearerToken(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) adminListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	orders, err := h.deps.Backend.AdminListOrders(c.Request.Context(), bearerToken(c), page, size)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *handlers) adminUpdateOrderStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status payload"})
		return
	}
	order, err := h.deps.Backend.AdminUpdateOrderStatus(c.Request.Context(), bearerToken(c), id, req.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *handlers) adminUpdateOrderAddress(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		ShippingAddress string `json:"shippingAddress" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address payload"})
		return
	}
	order, err := h.deps.Backend.AdminUpdateOrderAddress(c.Request.Context(), bearerToken(c), id, req.ShippingAddress)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
