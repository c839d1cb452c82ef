// Package mock provides a test double for the history store contract.
package mock

import (
	"context"

	"github.com/havenchat/haven/pkg/history"
)

// Store returns configured results and records appends.
type Store struct {
	// RecentResult is returned by RecentExchanges when RecentErr is nil.
	RecentResult []history.Exchange

	// RecentErr is returned by RecentExchanges when non-nil.
	RecentErr error

	// AppendErr is returned by Append when non-nil.
	AppendErr error

	// MoodResult is returned by MoodHistory when MoodErr is nil.
	MoodResult []history.MoodPoint

	// MoodErr is returned by MoodHistory when non-nil.
	MoodErr error

	// CountResult is returned by ExchangeCount.
	CountResult int

	// Appends records every appended exchange with its session.
	Appends []AppendCall
}

// AppendCall is one recorded Append invocation.
type AppendCall struct {
	SessionID string
	Exchange  history.Exchange
}

var _ history.Store = (*Store)(nil)

// RecentExchanges returns the configured result.
func (m *Store) RecentExchanges(context.Context, string, int) ([]history.Exchange, error) {
	if m.RecentErr != nil {
		return nil, m.RecentErr
	}
	return m.RecentResult, nil
}

// Append records the call and returns the configured error.
func (m *Store) Append(_ context.Context, sessionID string, ex history.Exchange) error {
	m.Appends = append(m.Appends, AppendCall{SessionID: sessionID, Exchange: ex})
	return m.AppendErr
}

// MoodHistory returns the configured result.
func (m *Store) MoodHistory(context.Context, string, int) ([]history.MoodPoint, error) {
	if m.MoodErr != nil {
		return nil, m.MoodErr
	}
	return m.MoodResult, nil
}

// ExchangeCount returns the configured count.
func (m *Store) ExchangeCount(context.Context, string) (int, error) {
	return m.CountResult, nil
}

// LastAppend returns the most recently recorded append, or nil.
func (m *Store) LastAppend() *AppendCall {
	if len(m.Appends) == 0 {
		return nil
	}
	return &m.Appends[len(m.Appends)-1]
}
