package wishlist

import (
	"context"
	"errors"
	"sync"
)

// ErrBusy reports that a toggle for the same product is already in flight.
var ErrBusy = errors.New("wishlist update already in flight")

// Toggler performs the two-phase optimistic flip used by product cards: the
// caller shows the flipped state immediately, Toggle attempts the remote
// mutation, and the returned state is either the confirmation or the
// pre-toggle value to roll back to.
type Toggler struct {
	svc  *Service
	mu   sync.Mutex
	busy map[int64]bool
}

func NewToggler(svc *Service) *Toggler {
	return &Toggler{svc: svc, busy: make(map[int64]bool)}
}

// Toggle inverts membership for the product. inWishlist is the state the
// caller observed before flipping. On failure the returned state equals
// inWishlist and the error explains the rollback.
func (t *Toggler) Toggle(ctx context.Context, token string, productID int64, inWishlist bool) (bool, error) {
	t.mu.Lock()
	if t.busy[productID] {
		t.mu.Unlock()
		return inWishlist, ErrBusy
	}
	t.busy[productID] = true
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		delete(t.busy, productID)
		t.mu.Unlock()
	}()

	var err error
	if inWishlist {
		err = t.svc.Remove(ctx, token, productID)
	} else {
		err = t.svc.Add(ctx, token, productID)
	}
	if err != nil {
		return inWishlist, err
	}
	return !inWishlist, nil
}
