package respcache

import (
	"sync"
	"time"

	"github.com/samber/do"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Service is a TTL key/value cache shared by the per-IP request counters and
// the memoized answers for common questions. Entries expire lazily on read.
type Service struct {
	mu      sync.Mutex
	entries map[string]entry
}

func New(_ *do.Injector) (*Service, error) {
	return &Service{
		entries: make(map[string]entry),
	}, nil
}

// Get returns the value for key, or false if it is absent or past its TTL.
func (s *Service) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}

	if time.Now().After(e.expiresAt) {
		delete(s.entries, key)
		return nil, false
	}

	return e.value, true
}

func (s *Service) Set(key string, value any, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
}

// Len reports live (unexpired) entries.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	count := 0

	for _, e := range s.entries {
		if now.Before(e.expiresAt) {
			count++
		}
	}

	return count
}
