package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"spacex-dashboard/utils"
)

type sessionEntry struct {
	controller *ViewController
	lastSeen   time.Time
}

// Sessions gives every browser session its own ViewController so that
// selections never leak between users. Idle sessions are evicted after ttl.
type Sessions struct {
	dataset *Dataset
	ttl     time.Duration
	logger  *utils.Logger
	now     func() time.Time

	mu      sync.Mutex
	entries map[uuid.UUID]*sessionEntry
}

// NewSessions creates an empty registry. A zero ttl disables eviction.
func NewSessions(ds *Dataset, ttl time.Duration, logger *utils.Logger) *Sessions {
	return &Sessions{
		dataset: ds,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
		entries: make(map[uuid.UUID]*sessionEntry),
	}
}

// New starts a fresh session.
func (s *Sessions) New() (uuid.UUID, *ViewController) {
	id := uuid.New()
	return id, s.Get(id)
}

// Get returns the controller of session id, creating it when unknown.
func (s *Sessions) Get(id uuid.UUID) *ViewController {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		entry = &sessionEntry{controller: NewViewController(s.dataset)}
		s.entries[id] = entry
		s.logger.Debug("[sessions] Started session %s", id)
	}
	entry.lastSeen = s.now()
	return entry.controller
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Evict removes sessions idle for longer than ttl and returns how many
// were removed.
func (s *Sessions) Evict() int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, entry := range s.entries {
		if entry.lastSeen.Before(cutoff) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Run evicts idle sessions every interval until ctx is done.
func (s *Sessions) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Evict(); n > 0 {
				s.logger.Debug("[sessions] Evicted %d idle sessions, %d live", n, s.Len())
			}
		}
	}
}
