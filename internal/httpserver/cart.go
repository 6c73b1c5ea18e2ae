package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"springjewels-storefront/internal/domain"
)

type addItemRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *handlers) cartView(c *gin.Context) gin.H {
	store := h.deps.Carts.For(ownerID(c))
	lines := store.List(c.Request.Context())
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return gin.H{
		"items": lines,
		"total": store.Total(c.Request.Context()),
	}
}

func (h *handlers) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.cartView(c))
}

// addCartItem snapshots the product at add time. Name, price and image are
// frozen into the line so the cart still renders if the product changes.
func (h *handlers) addCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart item payload"})
		return
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	product, err := h.deps.Backend.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	store := h.deps.Carts.For(ownerID(c))
	if err := store.Add(c.Request.Context(), *product, quantity); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, h.cartView(c))
}

func (h *handlers) setCartQuantity(c *gin.Context) {
	id, ok := parseID(c, "productId")
	if !ok {
		return
	}
	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quantity payload"})
		return
	}
	store := h.deps.Carts.For(ownerID(c))
	if err := store.SetQuantity(c.Request.Context(), id, req.Quantity); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, h.cartView(c))
}

func (h *handlers) removeCartItem(c *gin.Context) {
	id, ok := parseID(c, "productId")
	if !ok {
		return
	}
	store := h.deps.Carts.For(ownerID(c))
	if err := store.Remove(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, h.cartView(c))
}

func (h *handlers) clearCart(c *gin.Context) {
	store := h.deps.Carts.For(ownerID(c))
	if err := store.Clear(c.Request.Context()); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
