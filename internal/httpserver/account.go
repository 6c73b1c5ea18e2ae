package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"springjewels-storefront/internal/domain"
)

func (h *handlers) login(c *gin.Context) {
	var creds domain.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid credentials payload"})
		return
	}
	token, err := h.deps.Backend.Login(c.Request.Context(), creds)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *handlers) register(c *gin.Context) {
	var reg domain.Registration
	if err := c.ShouldBindJSON(&reg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration payload"})
		return
	}
	token, err := h.deps.Backend.Register(c.Request.Context(), reg)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token})
}

// logout drops the server-side wishlist session. The token itself is
// stateless, forgetting it is the storefront's job.
func (h *handlers) logout(c *gin.Context) {
	h.deps.Wishlists.Drop(c.Request.Context(), ownerID(c))
	h.checkouts.drop(ownerID(c))
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

func (h *handlers) getProfile(c *gin.Context) {
	user, err := h.deps.Backend.GetProfile(c.Request.Context(), bearerToken(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *handlers) updateProfile(c *gin.Context) {
	var user domain.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile payload"})
		return
	}
	updated, err := h.deps.Backend.UpdateProfile(c.Request.Context(), bearerToken(c), user)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *handlers) changePassword(c *gin.Context) {
	var req domain.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid password payload"})
		return
	}
	if err := h.deps.Backend.ChangePassword(c.Request.Context(), bearerToken(c), req); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "password changed"})
}

func (h *handlers) listAddresses(c *gin.Context) {
	addresses, err := h.deps.Backend.ListAddresses(c.Request.Context(), bearerToken(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if addresses == nil {
		addresses = []domain.Address{}
	}
	c.JSON(http.StatusOK, addresses)
}

func (h *handlers) createAddress(c *gin.Context) {
	var addr domain.Address
	if err := c.ShouldBindJSON(&addr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address payload"})
		return
	}
	created, err := h.deps.Backend.CreateAddress(c.Request.Context(), bearerToken(c), addr)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handlers) updateAddress(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var addr domain.Address
	if err := c.ShouldBindJSON(&addr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address payload"})
		return
	}
	updated, err := h.deps.Backend.UpdateAddress(c.Request.Context(), bearerToken(c), id, addr)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *handlers) deleteAddress(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.deps.Backend.DeleteAddress(c.Request.Context(), bearerToken(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) orderHistory(c *gin.Context) {
	orders, err := h.deps.Backend.OrderHistory(c.Request.Context(), bearerToken(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

func (h *handlers) cancelOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, err := h.deps.Backend.CancelOrder(c.Request.Context(), bearerToken(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
