// Package history defines the conversation-history contract the turn loop
// depends on. A [Store] keeps per-session exchanges and the mood trail
// derived from them.
//
// The interfaces are public so alternative backends (Postgres, in-memory,
// Redis, …) can be supplied without depending on service internals. Every
// implementation must be safe for concurrent use.
package history

import (
	"context"
	"time"
)

// Exchange is one completed turn: the user's message, the response sent back,
// and the turn's derived signals.
type Exchange struct {
	// Timestamp is when the turn completed. The zero value means "now" on
	// Append; reads always return it populated.
	Timestamp time.Time

	// UserText is the user's message exactly as received.
	UserText string

	// BotText is the full response text that was sent.
	BotText string

	// Sentiment is the polarity score the turn was selected against.
	Sentiment float64

	// Category names the selection rule that produced BotText.
	Category string
}

// MoodPoint is one sentiment measurement on a session's timeline.
type MoodPoint struct {
	Timestamp time.Time
	Score     float64
}

// Store is the per-session conversation log.
type Store interface {
	// RecentExchanges returns up to limit exchanges for the session,
	// most recent first. An unknown session yields an empty slice.
	RecentExchanges(ctx context.Context, sessionID string, limit int) ([]Exchange, error)

	// Append records a completed exchange for the session. A zero
	// Timestamp is replaced with the current time.
	Append(ctx context.Context, sessionID string, ex Exchange) error

	// MoodHistory returns up to limit sentiment points for the session in
	// chronological order (oldest first).
	MoodHistory(ctx context.Context, sessionID string, limit int) ([]MoodPoint, error)

	// ExchangeCount returns the total number of exchanges recorded for
	// the session.
	ExchangeCount(ctx context.Context, sessionID string) (int, error)
}
