package httpserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"springjewels-storefront/internal/checkout"
	"springjewels-storefront/internal/domain"
	"springjewels-storefront/internal/wishlist"
)

// respondError translates the shared error taxonomy into HTTP responses.
// Validation failures keep the backend's bare field map shape so the
// storefront can render them next to the inputs unchanged.
func respondError(c *gin.Context, logger *log.Logger, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, vErr.Fields)
		return
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "conflict"})
	case errors.Is(err, wishlist.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": "operation already in progress"})
	case errors.Is(err, checkout.ErrNoAddressSelected):
		c.JSON(http.StatusBadRequest, gin.H{"error": "no shipping address selected"})
	case errors.Is(err, checkout.ErrTotalTooSmall):
		c.JSON(http.StatusBadRequest, gin.H{"error": "order total is too small to charge"})
	case errors.Is(err, checkout.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "checkout is not in a valid state for this step"})
	case errors.Is(err, checkout.ErrAddressGone):
		c.JSON(http.StatusConflict, gin.H{"error": "selected shipping address no longer exists"})
	case errors.Is(err, domain.ErrPaymentAborted):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "payment could not be completed"})
	case errors.Is(err, domain.ErrOrderRecordingFailed):
		// Payment already went through, the failure is on the order side
		// only. The message must send the customer to support, not back
		// to the pay button.
		logger.Printf("order recording failed after capture: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "ORDER_RECORDING_FAILED",
			"message": "Thanh toán đã được ghi nhận nhưng đơn hàng chưa được lưu. " +
				"Vui lòng liên hệ bộ phận hỗ trợ, không thanh toán lại.",
		})
	case errors.Is(err, domain.ErrUnreachable):
		logger.Printf("backend unreachable: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "store backend is unreachable"})
	default:
		logger.Printf("unhandled error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := parseInt64(c.Param(param))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
