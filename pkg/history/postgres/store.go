// Package postgres implements the history store on PostgreSQL via a pgx
// connection pool. One table holds the full exchange log; mood history and
// session stats are projections over it.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/havenchat/haven/pkg/history"
)

var _ history.Store = (*Store)(nil)

// Store is the PostgreSQL-backed conversation log. It holds a single
// [pgxpool.Pool]; all methods are safe for concurrent use.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore establishes a connection pool to the database at dsn, verifies
// connectivity, and runs [Migrate] so the exchanges table exists.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("history store: parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("history store: create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("history store: ping: %w", err)
	}

	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("history store: migrate: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Append implements [history.Store].
func (s *Store) Append(ctx context.Context, sessionID string, ex history.Exchange) error {
	if ex.Timestamp.IsZero() {
		ex.Timestamp = time.Now().UTC()
	}

	const q = `
		INSERT INTO exchanges
		    (session_id, user_text, bot_text, sentiment, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.pool.Exec(ctx, q,
		sessionID,
		ex.UserText,
		ex.BotText,
		ex.Sentiment,
		ex.Category,
		ex.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("history store: append: %w", err)
	}
	return nil
}

// RecentExchanges implements [history.Store]. Results are ordered most
// recent first; an unknown session yields an empty slice.
func (s *Store) RecentExchanges(ctx context.Context, sessionID string, limit int) ([]history.Exchange, error) {
	const q = `
		SELECT user_text, bot_text, sentiment, category, created_at
		FROM   exchanges
		WHERE  session_id = $1
		ORDER  BY created_at DESC, id DESC
		LIMIT  $2`

	rows, err := s.pool.Query(ctx, q, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("history store: recent exchanges: %w", err)
	}

	exchanges, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (history.Exchange, error) {
		var ex history.Exchange
		err := row.Scan(&ex.UserText, &ex.BotText, &ex.Sentiment, &ex.Category, &ex.Timestamp)
		return ex, err
	})
	if err != nil {
		return nil, fmt.Errorf("history store: recent exchanges: scan: %w", err)
	}
	return exchanges, nil
}

// MoodHistory implements [history.Store]. The limit applies to the most
// recent points, which are then returned oldest first.
func (s *Store) MoodHistory(ctx context.Context, sessionID string, limit int) ([]history.MoodPoint, error) {
	const q = `
		SELECT created_at, sentiment FROM (
		    SELECT id, created_at, sentiment
		    FROM   exchanges
		    WHERE  session_id = $1
		    ORDER  BY created_at DESC, id DESC
		    LIMIT  $2
		) recent
		ORDER BY created_at, id`

	rows, err := s.pool.Query(ctx, q, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("history store: mood history: %w", err)
	}

	points, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (history.MoodPoint, error) {
		var p history.MoodPoint
		err := row.Scan(&p.Timestamp, &p.Score)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("history store: mood history: scan: %w", err)
	}
	return points, nil
}

// ExchangeCount implements [history.Store].
func (s *Store) ExchangeCount(ctx context.Context, sessionID string) (int, error) {
	const q = `SELECT count(*) FROM exchanges WHERE session_id = $1`

	var n int
	if err := s.pool.QueryRow(ctx, q, sessionID).Scan(&n); err != nil {
		return 0, fmt.Errorf("history store: exchange count: %w", err)
	}
	return n, nil
}

// Close releases all connections held by the underlying pool.
func (s *Store) Close() {
	s.pool.Close()
}
