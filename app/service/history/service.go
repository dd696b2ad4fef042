package history

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/do"
)

const (
	// Conversations idle for longer than this are evicted.
	idleTTL = time.Hour

	sweepInterval = time.Hour
)

// Service keeps per-conversation message history in memory. Stored history is
// unbounded, trimming to a context window happens at prompt-build time.
type Service struct {
	mu            sync.Mutex
	conversations map[string]*record
}

func New(_ *do.Injector) (*Service, error) {
	return &Service{
		conversations: make(map[string]*record),
	}, nil
}

// Get returns a copy of the conversation's messages, empty for unknown ids.
func (s *Service) Get(id string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.conversations[id]
	if !ok {
		return nil
	}

	out := make([]Message, len(rec.messages))
	copy(out, rec.messages)

	return out
}

// Append adds messages to the conversation and refreshes its last activity.
func (s *Service) Append(id string, messages ...Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.conversations[id]
	if !ok {
		rec = &record{}
		s.conversations[id] = rec
	}

	rec.messages = append(rec.messages, messages...)
	rec.lastActivity = time.Now()
}

// Clear drops one conversation's history.
func (s *Service) Clear(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.conversations, id)
}

// Sweep removes every conversation whose last activity is older than one hour
// relative to now and returns the number of evicted records.
func (s *Service) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := now.Add(-idleTTL)
	removed := 0

	for id, rec := range s.conversations {
		if rec.lastActivity.Before(cutoff) {
			delete(s.conversations, id)
			removed++
		}
	}

	return removed
}

// Len reports the number of active conversations.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.conversations)
}

func (s *Service) RunSweepLoop(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if removed := s.Sweep(now); removed > 0 {
				slog.Info("Cleaned up old conversations", "count", removed)
			}
		}
	}
}
