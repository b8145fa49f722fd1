package postgresdb

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// amount is NUMERIC without a fixed scale so values round-trip exactly.
const schema = `
CREATE TABLE IF NOT EXISTS transactions (
    id               BIGSERIAL PRIMARY KEY,
    reference        TEXT        NOT NULL DEFAULT '',
    amount           NUMERIC     NOT NULL CHECK (amount >= 0),
    sender_account   TEXT        NOT NULL DEFAULT '',
    receiver_account TEXT        NOT NULL,
    currency         VARCHAR(3)  NOT NULL,
    status           TEXT        NOT NULL,
    processed_at     TIMESTAMPTZ NOT NULL,
    category         TEXT        NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS transactions_processed_at_idx ON transactions (processed_at DESC);
`

func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
