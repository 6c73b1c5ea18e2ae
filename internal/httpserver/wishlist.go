package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"springjewels-storefront/internal/domain"
)

// getWishlist returns the full product list straight from the backend. The
// cached ID set only serves heart-icon lookups, the page itself wants fresh
// product data.
func (h *handlers) getWishlist(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		respondError(c, h.logger, domain.ErrUnauthorized)
		return
	}
	products, err := h.deps.Backend.Wishlist(c.Request.Context(), token)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	c.JSON(http.StatusOK, products)
}

func (h *handlers) wishlistStatus(c *gin.Context) {
	id, ok := parseID(c, "productId")
	if !ok {
		return
	}
	svc, _ := h.deps.Wishlists.For(ownerID(c))
	in, err := svc.Contains(c.Request.Context(), bearerToken(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inWishlist": in})
}

func (h *handlers) toggleWishlist(c *gin.Context) {
	id, ok := parseID(c, "productId")
	if !ok {
		return
	}
	token := bearerToken(c)
	if token == "" {
		respondError(c, h.logger, domain.ErrUnauthorized)
		return
	}
	svc, toggler := h.deps.Wishlists.For(ownerID(c))
	current, err := svc.Contains(c.Request.Context(), token, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	in, err := toggler.Toggle(c.Request.Context(), token, id, current)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inWishlist": in})
}
