package httpserver

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"springjewels-storefront/internal/checkout"
)

// checkoutSessions holds one orchestrator per cart owner. A checkout is a
// short-lived state machine; it lives from POST /api/checkout until the
// order completes or the session is abandoned.
type checkoutSessions struct {
	deps   Deps
	logger *log.Logger

	mu      sync.Mutex
	entries map[string]*checkout.Orchestrator
}

func newCheckoutSessions(deps Deps, logger *log.Logger) *checkoutSessions {
	return &checkoutSessions{
		deps:    deps,
		logger:  logger,
		entries: make(map[string]*checkout.Orchestrator),
	}
}

func (cs *checkoutSessions) start(owner string) *checkout.Orchestrator {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	o := checkout.NewOrchestrator(cs.deps.Backend, cs.deps.Payments, cs.deps.Carts.For(owner), cs.deps.USDRate, cs.logger)
	cs.entries[owner] = o
	return o
}

func (cs *checkoutSessions) get(owner string) (*checkout.Orchestrator, bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	o, ok := cs.entries[owner]
	return o, ok
}

func (cs *checkoutSessions) drop(owner string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	delete(cs.entries, owner)
}

type selectAddressRequest struct {
	AddressID int64 `json:"addressId" binding:"required"`
}

type captureRequest struct {
	ProviderOrderID string `json:"providerOrderId" binding:"required"`
}

// startCheckout opens a fresh checkout session and loads the address book.
// Restarting always discards the previous session, matching what reloading
// the checkout page does.
func (h *handlers) startCheckout(c *gin.Context) {
	o := h.checkouts.start(ownerID(c))
	addresses, err := o.LoadAddresses(c.Request.Context(), bearerToken(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, h.checkoutStateView(c, o, gin.H{"addresses": addresses}))
}

func (h *handlers) checkoutState(c *gin.Context) {
	o, ok := h.checkouts.get(ownerID(c))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no checkout in progress"})
		return
	}
	c.JSON(http.StatusOK, h.checkoutStateView(c, o, nil))
}

func (h *handlers) checkoutStateView(c *gin.Context, o *checkout.Orchestrator, extra gin.H) gin.H {
	totals := o.Totals(c.Request.Context())
	view := gin.H{
		"state":    o.State(),
		"totalVnd": totals.TotalVND,
		"totalUsd": totals.USD(),
	}
	if selected, ok := o.SelectedAddress(); ok {
		view["selectedAddressId"] = selected.ID
	}
	for k, v := range extra {
		view[k] = v
	}
	return view
}

func (h *handlers) selectCheckoutAddress(c *gin.Context) {
	o, ok := h.checkouts.get(ownerID(c))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no checkout in progress"})
		return
	}
	var req selectAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address selection payload"})
		return
	}
	if err := o.SelectAddress(req.AddressID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, h.checkoutStateView(c, o, nil))
}

func (h *handlers) createPaymentOrder(c *gin.Context) {
	o, ok := h.checkouts.get(ownerID(c))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no checkout in progress"})
		return
	}
	providerOrderID, err := o.CreatePaymentOrder(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, h.checkoutStateView(c, o, gin.H{"providerOrderId": providerOrderID}))
}

// completeCheckout captures the approved payment and records the order in one
// call, the server-side equivalent of the provider widget's onApprove hook.
func (h *handlers) completeCheckout(c *gin.Context) {
	o, ok := h.checkouts.get(ownerID(c))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no checkout in progress"})
		return
	}
	var req captureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid capture payload"})
		return
	}
	if _, err := o.CaptureApprovedPayment(c.Request.Context(), req.ProviderOrderID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	order, err := o.SubmitOrder(c.Request.Context(), bearerToken(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.checkouts.drop(ownerID(c))
	c.JSON(http.StatusCreated, gin.H{"order": order, "state": checkout.StateOrderComplete})
}

func (h *handlers) abandonCheckout(c *gin.Context) {
	h.checkouts.drop(ownerID(c))
	c.Status(http.StatusNoContent)
}
