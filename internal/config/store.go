package config

import "sync"

// Store holds the live Config. It is created once with a fully populated
// value and replaced wholesale by Setup; readers always see a complete
// snapshot.
type Store struct {
	mu  sync.RWMutex
	cfg Config
}

// NewStore creates a Store holding cfg.
func NewStore(cfg Config) *Store {
	return &Store{cfg: cfg}
}

// Get returns a snapshot of the current Config.
func (s *Store) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Setup deep-merges p into the current Config and installs the result.
// Fields p leaves unset keep their prior values.
func (s *Store) Setup(p Partial) Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = Merge(s.cfg, p)
	return s.cfg
}
