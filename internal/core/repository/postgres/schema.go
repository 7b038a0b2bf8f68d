package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Foreign keys are RESTRICT on purpose: removing a pool or conditions row must
// go through the ledger so positions are refunded first.
const schema = `
CREATE TABLE IF NOT EXISTS wallets (
    id         UUID PRIMARY KEY,
    user_id    UUID NOT NULL UNIQUE,
    balance    NUMERIC(30, 10) NOT NULL DEFAULT 0 CHECK (balance >= 0),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS pool_conditions (
    id         UUID PRIMARY KEY,
    min_amount NUMERIC(30, 10) NOT NULL CHECK (min_amount > 0),
    max_amount NUMERIC(30, 10) NOT NULL CHECK (max_amount > min_amount),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT pool_conditions_range_key UNIQUE (min_amount, max_amount)
);

CREATE TABLE IF NOT EXISTS staking_pools (
    id            UUID PRIMARY KEY,
    name          VARCHAR(255) NOT NULL,
    conditions_id UUID NOT NULL REFERENCES pool_conditions (id) ON DELETE RESTRICT,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT staking_pools_name_key UNIQUE (name)
);

CREATE TABLE IF NOT EXISTS positions (
    id         UUID PRIMARY KEY,
    user_id    UUID NOT NULL REFERENCES wallets (user_id) ON DELETE RESTRICT,
    pool_id    UUID NOT NULL REFERENCES staking_pools (id) ON DELETE RESTRICT,
    amount     NUMERIC(30, 10) NOT NULL CHECK (amount > 0),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS positions_user_id_idx ON positions (user_id);
CREATE INDEX IF NOT EXISTS positions_pool_id_idx ON positions (pool_id);
CREATE INDEX IF NOT EXISTS staking_pools_conditions_id_idx ON staking_pools (conditions_id);
`

// Migrate creates the ledger tables when they are missing.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate ledger schema: %w", err)
	}
	return nil
}
