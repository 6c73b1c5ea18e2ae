package wishlist

import (
	"context"
	"log"
	"sync"
	"time"
)

// Sessions owns one cache service per browser session, giving each session
// its own lifecycle: constructed on first use, dropped at logout. All mounted
// consumers of one session share the same cache state.
type Sessions struct {
	newStore func(owner string) Store
	api      remoteAPI
	ttl      time.Duration
	logger   *log.Logger

	mu      sync.Mutex
	entries map[string]*sessionEntry
}

type sessionEntry struct {
	svc *Service
	tog *Toggler
}

func NewSessions(newStore func(owner string) Store, api remoteAPI, ttl time.Duration, logger *log.Logger) *Sessions {
	return &Sessions{
		newStore: newStore,
		api:      api,
		ttl:      ttl,
		logger:   logger,
		entries:  make(map[string]*sessionEntry),
	}
}

// For returns the session's cache service and toggler, creating them on
// first use.
func (s *Sessions) For(owner string) (*Service, *Toggler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[owner]
	if !ok {
		svc := New(s.newStore(owner), s.api, s.ttl, s.logger)
		e = &sessionEntry{svc: svc, tog: NewToggler(svc)}
		s.entries[owner] = e
	}
	return e.svc, e.tog
}

// Drop invalidates and forgets the session's cache. Called on logout.
func (s *Sessions) Drop(ctx context.Context, owner string) {
	s.mu.Lock()
	e, ok := s.entries[owner]
	delete(s.entries, owner)
	s.mu.Unlock()
	if ok {
		e.svc.Invalidate(ctx)
	}
}
