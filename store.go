package patternlock

import "sync"

// DefaultStoreKey is the key the stored password is kept under.
const DefaultStoreKey = "patternlock.password"

// Store is the key-value capability used to persist the password across
// sessions. Get reports ok == false for a missing key.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// MemoryStore is an in-process Store. The zero value is ready to use.
type MemoryStore struct {
	mu sync.Mutex
	m  map[string]string
}

// Get implements Store.
func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	return v, ok, nil
}

// Set implements Store.
func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m == nil {
		s.m = make(map[string]string)
	}
	s.m[key] = value
	return nil
}
