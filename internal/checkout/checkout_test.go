package checkout

import (
	"context"
	"errors"
	"io"
	"log"
	"path/filepath"
	"testing"

	"springjewels-storefront/internal/cart"
	"springjewels-storefront/internal/domain"
)

type stubBackend struct {
	addresses    []domain.Address
	addressErr   error
	order        *domain.Order
	orderErr     error
	orderCalls   int
	lastOrderReq domain.CreateOrderRequest
	addressCalls int
}

func (s *stubBackend) ListAddresses(_ context.Context, _ string) ([]domain.Address, error) {
	s.addressCalls++
	return s.addresses, s.addressErr
}

func (s *stubBackend) CreateOrder(_ context.Context, _ string, req domain.CreateOrderRequest) (*domain.Order, error) {
	s.orderCalls++
	s.lastOrderReq = req
	if s.orderErr != nil {
		return nil, s.orderErr
	}
	return s.order, nil
}

type stubProvider struct {
	orderID      string
	createErr    error
	createCalls  int
	lastValue    string
	lastCurrency string
	capture      *Capture
	captureErr   error
	captureCalls int
}

func (s *stubProvider) CreateOrder(_ context.Context, value, currency, _ string) (string, error) {
	s.createCalls++
	s.lastValue = value
	s.lastCurrency = currency
	if s.createErr != nil {
		return "", s.createErr
	}
	return s.orderID, nil
}

func (s *stubProvider) Capture(_ context.Context, _ string) (*Capture, error) {
	s.captureCalls++
	return s.capture, s.captureErr
}

func newTestCart(t *testing.T) cart.Store {
	t.Helper()
	return cart.NewFileStore(filepath.Join(t.TempDir(), "cart.json"), log.New(io.Discard, "", 0))
}

func newOrchestrator(backend *stubBackend, provider *stubProvider, store cart.Store) *Orchestrator {
	return NewOrchestrator(backend, provider, store, 25000, log.New(io.Discard, "", 0))
}

func TestComputeTotals(t *testing.T) {
	lines := []domain.CartLine{{ProductID: 7, Price: 100000, Quantity: 2}}
	totals := ComputeTotals(lines, 25000)
	if totals.TotalVND != 200000 {
		t.Fatalf("expected 200000 VND, got %d", totals.TotalVND)
	}
	if totals.USD() != "8.00" {
		t.Fatalf("expected 8.00 USD, got %s", totals.USD())
	}

	if got := ComputeTotals(nil, 25000); got.TotalVND != 0 || got.USDCents != 0 {
		t.Fatalf("expected zero totals for empty cart, got %+v", got)
	}

	// 12500 VND at 25000 is exactly half a dollar.
	totals = ComputeTotals([]domain.CartLine{{Price: 12500, Quantity: 1}}, 25000)
	if totals.USD() != "0.50" {
		t.Fatalf("expected 0.50 USD, got %s", totals.USD())
	}
}

func TestLoadAddressesSelectsDefault(t *testing.T) {
	backend := &stubBackend{addresses: []domain.Address{
		{ID: 1, Street: "A"},
		{ID: 2, Street: "B", IsDefault: true},
	}}
	o := newOrchestrator(backend, &stubProvider{}, newTestCart(t))

	if _, err := o.LoadAddresses(context.Background(), "token"); err != nil {
		t.Fatalf("load addresses: %v", err)
	}
	if o.State() != StateAddressesReady {
		t.Fatalf("expected AddressesReady, got %s", o.State())
	}
	selected, ok := o.SelectedAddress()
	if !ok || selected.ID != 2 {
		t.Fatalf("expected default address 2 selected, got %+v ok=%v", selected, ok)
	}
}

func TestLoadAddressesFallsBackToFirst(t *testing.T) {
	backend := &stubBackend{addresses: []domain.Address{{ID: 5}, {ID: 6}}}
	o := newOrchestrator(backend, &stubProvider{}, newTestCart(t))

	if _, err := o.LoadAddresses(context.Background(), "token"); err != nil {
		t.Fatalf("load addresses: %v", err)
	}
	if selected, ok := o.SelectedAddress(); !ok || selected.ID != 5 {
		t.Fatalf("expected first address selected, got %+v ok=%v", selected, ok)
	}
}

func TestLoadAddressesEmptyLeavesSelectionUnset(t *testing.T) {
	o := newOrchestrator(&stubBackend{}, &stubProvider{}, newTestCart(t))
	if _, err := o.LoadAddresses(context.Background(), "token"); err != nil {
		t.Fatalf("load addresses: %v", err)
	}
	if _, ok := o.SelectedAddress(); ok {
		t.Fatalf("expected no selection for empty address book")
	}
}

func TestLoadAddressesFailure(t *testing.T) {
	backend := &stubBackend{addressErr: errors.New("boom")}
	o := newOrchestrator(backend, &stubProvider{}, newTestCart(t))
	if _, err := o.LoadAddresses(context.Background(), "token"); err == nil {
		t.Fatalf("expected error")
	}
	if o.State() != StateAddressError {
		t.Fatalf("expected AddressError, got %s", o.State())
	}
}

func TestCreatePaymentOrderRejectsWithoutAddress(t *testing.T) {
	provider := &stubProvider{}
	o := newOrchestrator(&stubBackend{}, provider, newTestCart(t))
	if _, err := o.LoadAddresses(context.Background(), "token"); err != nil {
		t.Fatalf("load addresses: %v", err)
	}

	_, err := o.CreatePaymentOrder(context.Background())
	if !errors.Is(err, ErrNoAddressSelected) {
		t.Fatalf("expected ErrNoAddressSelected, got %v", err)
	}
	if provider.createCalls != 0 {
		t.Fatalf("precondition failure must not reach the provider")
	}
}

func TestCreatePaymentOrderRejectsTinyTotal(t *testing.T) {
	backend := &stubBackend{addresses: []domain.Address{{ID: 1}}}
	provider := &stubProvider{}
	store := newTestCart(t)
	ctx := context.Background()
	// 250 VND converts to exactly 0.01 USD, at the rejection threshold.
	if err := store.Add(ctx, domain.Product{ID: 1, Price: 250}, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	o := newOrchestrator(backend, provider, store)
	if _, err := o.LoadAddresses(ctx, "token"); err != nil {
		t.Fatalf("load addresses: %v", err)
	}

	_, err := o.CreatePaymentOrder(ctx)
	if !errors.Is(err, ErrTotalTooSmall) {
		t.Fatalf("expected ErrTotalTooSmall, got %v", err)
	}
	if provider.createCalls != 0 {
		t.Fatalf("precondition failure must not reach the provider")
	}
}

func TestHappyPathPlacesOrderAndClearsCart(t *testing.T) {
	backend := &stubBackend{
		addresses: []domain.Address{{ID: 1, Street: "1 Lê Lợi", City: "Huế", PhoneNumber: "0901234567", IsDefault: true}},
		order:     &domain.Order{ID: 42, Status: domain.OrderStatusPending},
	}
	provider := &stubProvider{orderID: "PAY-1", capture: &Capture{ID: "CAP-1", Status: "COMPLETED"}}
	store := newTestCart(t)
	ctx := context.Background()
	if err := store.Add(ctx, domain.Product{ID: 7, Price: 100000}, 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	o := newOrchestrator(backend, provider, store)
	if _, err := o.LoadAddresses(ctx, "token"); err != nil {
		t.Fatalf("load addresses: %v", err)
	}

	id, err := o.CreatePaymentOrder(ctx)
	if err != nil {
		t.Fatalf("create payment order: %v", err)
	}
	if id != "PAY-1" {
		t.Fatalf("unexpected provider order id %q", id)
	}
	if provider.lastValue != "8.00" || provider.lastCurrency != "USD" {
		t.Fatalf("unexpected provider amount %s %s", provider.lastValue, provider.lastCurrency)
	}

	if _, err := o.CaptureApprovedPayment(ctx, "PAY-1"); err != nil {
		t.Fatalf("capture: %v", err)
	}
	if o.State() != StatePaymentCaptured {
		t.Fatalf("expected PaymentCaptured, got %s", o.State())
	}

	order, err := o.SubmitOrder(ctx, "token")
	if err != nil {
		t.Fatalf("submit order: %v", err)
	}
	if order.ID != 42 {
		t.Fatalf("unexpected order id %d", order.ID)
	}
	if o.State() != StateOrderComplete {
		t.Fatalf("expected OrderComplete, got %s", o.State())
	}
	if got := len(store.List(ctx)); got != 0 {
		t.Fatalf("expected cart cleared, got %d lines", got)
	}

	req := backend.lastOrderReq
	if req.ShippingAddress != "1 Lê Lợi, Huế (SĐT: 0901234567)" {
		t.Fatalf("unexpected shipping address %q", req.ShippingAddress)
	}
	if len(req.Items) != 1 || req.Items[0].ProductID != 7 || req.Items[0].Quantity != 2 {
		t.Fatalf("unexpected order items %+v", req.Items)
	}
}

func TestSubmitFailurePreservesCartAndState(t *testing.T) {
	backend := &stubBackend{
		addresses: []domain.Address{{ID: 1, IsDefault: true}},
		orderErr:  errors.New("backend write failed"),
	}
	provider := &stubProvider{orderID: "PAY-1", capture: &Capture{ID: "CAP-1"}}
	store := newTestCart(t)
	ctx := context.Background()
	if err := store.Add(ctx, domain.Product{ID: 7, Price: 100000}, 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	o := newOrchestrator(backend, provider, store)
	if _, err := o.LoadAddresses(ctx, "token"); err != nil {
		t.Fatalf("load addresses: %v", err)
	}
	if _, err := o.CreatePaymentOrder(ctx); err != nil {
		t.Fatalf("create payment order: %v", err)
	}
	if _, err := o.CaptureApprovedPayment(ctx, "PAY-1"); err != nil {
		t.Fatalf("capture: %v", err)
	}

	_, err := o.SubmitOrder(ctx, "token")
	if !errors.Is(err, domain.ErrOrderRecordingFailed) {
		t.Fatalf("expected ErrOrderRecordingFailed, got %v", err)
	}
	if o.State() != StateSubmissionError {
		t.Fatalf("expected SubmissionError, got %s", o.State())
	}
	if got := len(store.List(ctx)); got != 1 {
		t.Fatalf("cart must be preserved after recording failure, got %d lines", got)
	}
	// The message must be distinguishable from a plain network failure.
	if errors.Is(err, domain.ErrUnreachable) {
		t.Fatalf("recording failure must not read as a generic network error")
	}
}

func TestCaptureRejectsUnknownProviderOrder(t *testing.T) {
	backend := &stubBackend{addresses: []domain.Address{{ID: 1}}}
	provider := &stubProvider{orderID: "PAY-1", capture: &Capture{ID: "CAP-1"}}
	store := newTestCart(t)
	ctx := context.Background()
	if err := store.Add(ctx, domain.Product{ID: 1, Price: 100000}, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	o := newOrchestrator(backend, provider, store)
	if _, err := o.LoadAddresses(ctx, "token"); err != nil {
		t.Fatalf("load addresses: %v", err)
	}
	if _, err := o.CreatePaymentOrder(ctx); err != nil {
		t.Fatalf("create payment order: %v", err)
	}

	if _, err := o.CaptureApprovedPayment(ctx, "PAY-OTHER"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if provider.captureCalls != 0 {
		t.Fatalf("mismatched order id must not be captured")
	}
}

func TestCaptureAbortsWhenAddressDisappeared(t *testing.T) {
	backend := &stubBackend{addresses: []domain.Address{{ID: 1}}}
	provider := &stubProvider{orderID: "PAY-1", capture: &Capture{ID: "CAP-1"}}
	store := newTestCart(t)
	ctx := context.Background()
	if err := store.Add(ctx, domain.Product{ID: 1, Price: 100000}, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	o := newOrchestrator(backend, provider, store)
	if _, err := o.LoadAddresses(ctx, "token"); err != nil {
		t.Fatalf("load addresses: %v", err)
	}
	if _, err := o.CreatePaymentOrder(ctx); err != nil {
		t.Fatalf("create payment order: %v", err)
	}

	// The address book changes underneath the open payment popup.
	backend.addresses = nil
	if _, err := o.LoadAddresses(ctx, "token"); err != nil {
		t.Fatalf("reload addresses: %v", err)
	}
	o.mu.Lock()
	o.state = StatePaymentOrderCreated
	o.mu.Unlock()

	_, err := o.CaptureApprovedPayment(ctx, "PAY-1")
	if !errors.Is(err, ErrAddressGone) {
		t.Fatalf("expected ErrAddressGone, got %v", err)
	}
	if backend.orderCalls != 0 {
		t.Fatalf("backend order endpoint must not be contacted")
	}
}

func TestPaymentFailureSetsPaymentError(t *testing.T) {
	backend := &stubBackend{addresses: []domain.Address{{ID: 1}}}
	provider := &stubProvider{createErr: errors.New("declined")}
	store := newTestCart(t)
	ctx := context.Background()
	if err := store.Add(ctx, domain.Product{ID: 1, Price: 100000}, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	o := newOrchestrator(backend, provider, store)
	if _, err := o.LoadAddresses(ctx, "token"); err != nil {
		t.Fatalf("load addresses: %v", err)
	}

	_, err := o.CreatePaymentOrder(ctx)
	if !errors.Is(err, domain.ErrPaymentAborted) {
		t.Fatalf("expected ErrPaymentAborted, got %v", err)
	}
	if o.State() != StatePaymentError {
		t.Fatalf("expected PaymentError, got %s", o.State())
	}
}

func TestSubmitOutsideCapturedStateRejected(t *testing.T) {
	o := newOrchestrator(&stubBackend{}, &stubProvider{}, newTestCart(t))
	if _, err := o.SubmitOrder(context.Background(), "token"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestSelectAddressValidatesMembership(t *testing.T) {
	backend := &stubBackend{addresses: []domain.Address{{ID: 1}, {ID: 2}}}
	o := newOrchestrator(backend, &stubProvider{}, newTestCart(t))
	if _, err := o.LoadAddresses(context.Background(), "token"); err != nil {
		t.Fatalf("load addresses: %v", err)
	}

	if err := o.SelectAddress(2); err != nil {
		t.Fatalf("select: %v", err)
	}
	if selected, _ := o.SelectedAddress(); selected.ID != 2 {
		t.Fatalf("expected address 2 selected")
	}
	if err := o.SelectAddress(99); !errors.Is(err, ErrAddressGone) {
		t.Fatalf("expected ErrAddressGone, got %v", err)
	}
}
