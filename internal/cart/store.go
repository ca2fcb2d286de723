package cart

import "sync"

// Store maps browsing sessions to their carts. Carts live in process memory
// only and are lost on restart; the persisted per-user cart in the
// repository layer is the durable variant.
type Store struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

// NewStore returns an empty cart store.
func NewStore() *Store {
	return &Store{carts: make(map[string]*Cart)}
}

// With runs fn against the cart for sessionID while holding the store lock.
// It is the only way to reach a cart: handler goroutines for the same cookie
// run concurrently, and a *Cart handed out of the lock would race with them.
func (s *Store) With(sessionID string, fn func(*Cart)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[sessionID]
	if !ok {
		c = New()
		s.carts[sessionID] = c
	}
	fn(c)
}

// Drop forgets the cart for sessionID.
func (s *Store) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}
