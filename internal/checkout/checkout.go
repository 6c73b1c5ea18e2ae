// Package checkout drives the cart-to-order flow: load the address book,
// create and capture a payment-provider order in the settlement currency,
// then record the order with the backend. The flow is a linear state machine
// so a contradictory combination of step flags cannot exist, and the one
// genuinely severe failure (payment captured, order not recorded) is a
// distinct terminal state that preserves the cart.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"springjewels-storefront/internal/cart"
	"springjewels-storefront/internal/domain"
)

// State of a checkout session.
type State string

const (
	StateIdle                State = "IDLE"
	StateAddressesLoading    State = "ADDRESSES_LOADING"
	StateAddressesReady      State = "ADDRESSES_READY"
	StatePaymentOrderCreated State = "PAYMENT_ORDER_CREATED"
	StatePaymentCaptured     State = "PAYMENT_CAPTURED"
	StateOrderSubmitting     State = "ORDER_SUBMITTING"
	StateOrderComplete       State = "ORDER_COMPLETE"
	StateAddressError        State = "ADDRESS_ERROR"
	StatePaymentError        State = "PAYMENT_ERROR"
	StateSubmissionError     State = "SUBMISSION_ERROR"
)

var (
	// ErrNoAddressSelected rejects payment before any network call when no
	// shipping address is selected.
	ErrNoAddressSelected = errors.New("no shipping address selected")

	// ErrTotalTooSmall rejects payment for converted totals at or below the
	// provider's minimum of 0.01 in the settlement currency.
	ErrTotalTooSmall = errors.New("order total too small to pay")

	// ErrInvalidTransition reports an operation called outside its state.
	ErrInvalidTransition = errors.New("operation not valid in current checkout state")

	// ErrAddressGone reports that the selected address no longer resolves to
	// a known address, e.g. it was deleted while the payment popup was open.
	ErrAddressGone = errors.New("selected address no longer exists")
)

type backendAPI interface {
	ListAddresses(ctx context.Context, token string) ([]domain.Address, error)
	CreateOrder(ctx context.Context, token string, req domain.CreateOrderRequest) (*domain.Order, error)
}

// Provider is the external payment service. Buyer approval happens in the
// provider's own hosted flow between CreateOrder and Capture.
type Provider interface {
	CreateOrder(ctx context.Context, value, currency, description string) (string, error)
	Capture(ctx context.Context, orderID string) (*Capture, error)
}

// Capture is the settled-payment result handed back by the provider.
type Capture struct {
	ID     string
	Status string
	Payer  string
}

// Totals carries the cart total in display currency (VND) and its conversion
// into the settlement currency (USD), held as integer cents.
type Totals struct {
	TotalVND int64
	USDCents int64
}

// USD formats the converted total with the settlement currency's two minor
// digits, e.g. "8.00".
func (t Totals) USD() string {
	return fmt.Sprintf("%d.%02d", t.USDCents/100, t.USDCents%100)
}

// ComputeTotals converts the line total at the given VND-per-USD rate,
// rounding half-up to whole cents.
func ComputeTotals(lines []domain.CartLine, rate int64) Totals {
	var totalVND int64
	for _, l := range lines {
		totalVND += l.Price * int64(l.Quantity)
	}
	if rate <= 0 {
		return Totals{TotalVND: totalVND}
	}
	usdCents := (totalVND*100 + rate/2) / rate
	return Totals{TotalVND: totalVND, USDCents: usdCents}
}

const orderDescription = "Mua hàng trang sức tại Spring Jewels"

// Orchestrator is one ephemeral checkout session. It is created when checkout
// starts and discarded on navigation away or completion; nothing in it is
// persisted.
type Orchestrator struct {
	backend  backendAPI
	provider Provider
	cart     cart.Store
	rate     int64
	logger   *log.Logger

	mu              sync.Mutex
	state           State
	addresses       []domain.Address
	selectedID      int64
	providerOrderID string
	capture         *Capture
}

func NewOrchestrator(backend backendAPI, provider Provider, cartStore cart.Store, rate int64, logger *log.Logger) *Orchestrator {
	return &Orchestrator{
		backend:  backend,
		provider: provider,
		cart:     cartStore,
		rate:     rate,
		logger:   logger,
		state:    StateIdle,
	}
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// LoadAddresses fetches the address book and auto-selects the server-flagged
// default, else the first entry, else leaves the selection unset. Not retried
// automatically on failure.
func (o *Orchestrator) LoadAddresses(ctx context.Context, token string) ([]domain.Address, error) {
	o.mu.Lock()
	o.state = StateAddressesLoading
	o.mu.Unlock()

	addrs, err := o.backend.ListAddresses(ctx, token)
	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		o.state = StateAddressError
		return nil, fmt.Errorf("load addresses: %w", err)
	}

	o.state = StateAddressesReady
	o.addresses = addrs
	o.selectedID = 0
	for _, a := range addrs {
		if a.IsDefault {
			o.selectedID = a.ID
			break
		}
	}
	if o.selectedID == 0 && len(addrs) > 0 {
		o.selectedID = addrs[0].ID
	}
	return addrs, nil
}

// SelectAddress switches the selection to another loaded address.
func (o *Orchestrator) SelectAddress(id int64) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, a := range o.addresses {
		if a.ID == id {
			o.selectedID = id
			return nil
		}
	}
	return ErrAddressGone
}

// SelectedAddress returns the currently selected address, ok=false when the
// selection is unset or dangling.
func (o *Orchestrator) SelectedAddress() (domain.Address, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.selectedLocked()
}

func (o *Orchestrator) selectedLocked() (domain.Address, bool) {
	if o.selectedID == 0 {
		return domain.Address{}, false
	}
	for _, a := range o.addresses {
		if a.ID == o.selectedID {
			return a, true
		}
	}
	return domain.Address{}, false
}

// Totals snapshots the cart and converts it at the session's rate. Callers
// re-derive this whenever the cart or the selected address changes.
func (o *Orchestrator) Totals(ctx context.Context) Totals {
	return ComputeTotals(o.cart.List(ctx), o.rate)
}

// CreatePaymentOrder asks the provider for a payment order over the current
// totals. Both preconditions are checked before any network call: a selected
// address must exist and the converted total must exceed 0.01.
func (o *Orchestrator) CreatePaymentOrder(ctx context.Context) (string, error) {
	totals := o.Totals(ctx)

	o.mu.Lock()
	switch o.state {
	case StateAddressesReady, StatePaymentError, StatePaymentOrderCreated:
	default:
		o.mu.Unlock()
		return "", fmt.Errorf("%w: %s", ErrInvalidTransition, o.state)
	}
	if o.selectedID == 0 {
		o.mu.Unlock()
		return "", ErrNoAddressSelected
	}
	o.mu.Unlock()

	if totals.USDCents <= 1 {
		return "", ErrTotalTooSmall
	}

	id, err := o.provider.CreateOrder(ctx, totals.USD(), "USD", orderDescription)
	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		o.state = StatePaymentError
		return "", fmt.Errorf("%w: %v", domain.ErrPaymentAborted, err)
	}
	o.state = StatePaymentOrderCreated
	o.providerOrderID = id
	return id, nil
}

// CaptureApprovedPayment settles the approved payment. It accepts only the
// provider order created by this session, which is the in-process half of the
// single-capture guarantee (the provider widget's click lifecycle is the
// other half). After a successful capture the selected address is
// revalidated against the loaded list; the address book may have changed
// while the approval popup was open, and in that case the flow stops before
// the backend is contacted.
func (o *Orchestrator) CaptureApprovedPayment(ctx context.Context, providerOrderID string) (*Capture, error) {
	o.mu.Lock()
	if o.state != StatePaymentOrderCreated || providerOrderID != o.providerOrderID {
		o.mu.Unlock()
		return nil, fmt.Errorf("%w: capture of %q in state %s", ErrInvalidTransition, providerOrderID, o.state)
	}
	o.mu.Unlock()

	capture, err := o.provider.Capture(ctx, providerOrderID)
	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		o.state = StatePaymentError
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentAborted, err)
	}

	if _, ok := o.selectedLocked(); !ok {
		o.state = StatePaymentError
		return nil, ErrAddressGone
	}

	o.state = StatePaymentCaptured
	o.capture = capture
	return capture, nil
}

// SubmitOrder records the paid order with the backend. Only the product IDs
// and quantities are sent; the backend prices lines at order time. On success
// the cart is cleared and the new order returned. On failure the cart is
// deliberately preserved (the buyer already paid) and the error wraps
// ErrOrderRecordingFailed so callers surface the contact-support message
// instead of a generic network error.
func (o *Orchestrator) SubmitOrder(ctx context.Context, token string) (*domain.Order, error) {
	o.mu.Lock()
	if o.state != StatePaymentCaptured {
		o.mu.Unlock()
		return nil, fmt.Errorf("%w: submit in state %s", ErrInvalidTransition, o.state)
	}
	selected, ok := o.selectedLocked()
	if !ok {
		o.mu.Unlock()
		return nil, ErrNoAddressSelected
	}
	capture := o.capture
	o.state = StateOrderSubmitting
	o.mu.Unlock()

	lines := o.cart.List(ctx)
	req := domain.CreateOrderRequest{
		ShippingAddress: formatShippingAddress(selected),
		Items:           make([]domain.OrderItem, 0, len(lines)),
	}
	for _, l := range lines {
		req.Items = append(req.Items, domain.OrderItem{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	order, err := o.backend.CreateOrder(ctx, token, req)
	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		o.state = StateSubmissionError
		captureID := ""
		if capture != nil {
			captureID = capture.ID
		}
		// Leave a trail for support: funds moved under this capture but no
		// order exists for it.
		o.logger.Printf("order recording failed after capture %s (%d items to %q): %v",
			captureID, len(req.Items), req.ShippingAddress, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrOrderRecordingFailed, err)
	}

	if err := o.cart.Clear(ctx); err != nil {
		o.logger.Printf("clear cart after order %d: %v", order.ID, err)
	}
	o.state = StateOrderComplete
	return order, nil
}

// formatShippingAddress renders the structured address the way the backend
// expects it on an order: "street, city (SĐT: phone)".
func formatShippingAddress(a domain.Address) string {
	return fmt.Sprintf("%s, %s (SĐT: %s)", a.Street, a.City, a.PhoneNumber)
}
