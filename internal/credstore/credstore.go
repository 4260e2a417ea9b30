// ABOUTME: Credential pair persistence for botdeck clients
// ABOUTME: Defines the Store interface plus an in-memory implementation

package credstore

import "sync"

// Pair is the access/refresh token pair issued by the backend on login or
// refresh. Both tokens are opaque bearer strings.
type Pair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// complete reports whether both halves of the pair are present. A pair with
// only one token is treated as absent everywhere in this package.
func (p Pair) complete() bool {
	return p.AccessToken != "" && p.RefreshToken != ""
}

// Store persists a single credential pair. Implementations must never expose
// a partial pair: Save writes both tokens together, Clear removes both, and
// Load reports absent when either token is missing. All methods are safe for
// concurrent use.
//
// The session controller is the only component that writes a Store; the
// request pipeline only reads from it.
type Store interface {
	// Save persists the pair, replacing any existing one.
	Save(pair Pair) error

	// Load returns the stored pair. ok is false when no complete pair is
	// stored, including when the underlying storage is unavailable.
	Load() (pair Pair, ok bool)

	// Clear removes the stored pair. Clearing an empty store is not an error.
	Clear() error
}

// MemStore is an in-memory Store. It is used by tests and as the backing
// store for short-lived sessions that should not persist.
type MemStore struct {
	mu   sync.Mutex
	pair Pair
	set  bool
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Save stores the pair in memory.
func (s *MemStore) Save(pair Pair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = pair
	s.set = true
	return nil
}

// Load returns the stored pair, if complete.
func (s *MemStore) Load() (Pair, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set || !s.pair.complete() {
		return Pair{}, false
	}
	return s.pair, true
}

// Clear removes the stored pair.
func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = Pair{}
	s.set = false
	return nil
}
