package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const ddlExchanges = `
CREATE TABLE IF NOT EXISTS exchanges (
    id          BIGSERIAL    PRIMARY KEY,
    session_id  TEXT         NOT NULL,
    user_text   TEXT         NOT NULL,
    bot_text    TEXT         NOT NULL,
    sentiment   DOUBLE PRECISION NOT NULL DEFAULT 0,
    category    TEXT         NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ  NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_exchanges_session_id
    ON exchanges (session_id);

CREATE INDEX IF NOT EXISTS idx_exchanges_session_created
    ON exchanges (session_id, created_at DESC);
`

// Migrate ensures the exchanges table and its indexes exist. It is idempotent
// and safe to run on every startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, ddlExchanges); err != nil {
		return fmt.Errorf("migrate exchanges: %w", err)
	}
	return nil
}
