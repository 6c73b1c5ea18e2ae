package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	cartCookieName = "cart_id"
	cartCookieAge  = 180 * 24 * 60 * 60

	ctxKeyOwner = "cartOwner"
)

// cartSessionMiddleware assigns every visitor a stable anonymous cart ID.
// The cookie keeps guest carts and wishlist caches apart between browsers.
func cartSessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, err := c.Cookie(cartCookieName)
		if err != nil || !validOwner(owner) {
			owner = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cartCookieName, owner, cartCookieAge, "/", "", false, true)
		}
		c.Set(ctxKeyOwner, owner)
		c.Next()
	}
}

func ownerID(c *gin.Context) string {
	return c.GetString(ctxKeyOwner)
}

func validOwner(owner string) bool {
	_, err := uuid.Parse(owner)
	return err == nil
}

// bearerToken pulls the backend JWT out of the Authorization header.
// The gateway never mints tokens itself, it forwards the backend's.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
