// Package memstore implements the history store in process memory. It backs
// DSN-less runs and tests; nothing survives a restart.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/havenchat/haven/pkg/history"
)

var _ history.Store = (*Store)(nil)

// Store keeps per-session exchange logs in memory, append-ordered.
// Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	sessions map[string][]history.Exchange
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{sessions: make(map[string][]history.Exchange)}
}

// Append implements [history.Store].
func (s *Store) Append(_ context.Context, sessionID string, ex history.Exchange) error {
	if ex.Timestamp.IsZero() {
		ex.Timestamp = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], ex)
	return nil
}

// RecentExchanges implements [history.Store]. Results are copies, most
// recent first.
func (s *Store) RecentExchanges(_ context.Context, sessionID string, limit int) ([]history.Exchange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log := s.sessions[sessionID]
	if limit < 0 {
		limit = 0
	}
	if limit > len(log) {
		limit = len(log)
	}
	out := make([]history.Exchange, 0, limit)
	for i := len(log) - 1; i >= len(log)-limit; i-- {
		out = append(out, log[i])
	}
	return out, nil
}

// MoodHistory implements [history.Store]. The limit applies to the most
// recent exchanges; points come back oldest first.
func (s *Store) MoodHistory(_ context.Context, sessionID string, limit int) ([]history.MoodPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log := s.sessions[sessionID]
	if limit < 0 {
		limit = 0
	}
	start := 0
	if limit < len(log) {
		start = len(log) - limit
	}
	out := make([]history.MoodPoint, 0, len(log)-start)
	for _, ex := range log[start:] {
		out = append(out, history.MoodPoint{Timestamp: ex.Timestamp, Score: ex.Sentiment})
	}
	return out, nil
}

// ExchangeCount implements [history.Store].
func (s *Store) ExchangeCount(_ context.Context, sessionID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions[sessionID]), nil
}
