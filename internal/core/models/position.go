package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Position is a claim of funds moved out of a wallet into a pool.
type Position struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	UserID    uuid.UUID       `json:"user_id" db:"user_id"`
	PoolID    uuid.UUID       `json:"pool_id" db:"pool_id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// PositionOperation names a position transition.
type PositionOperation string

const (
	PositionOpen     PositionOperation = "OPEN"
	PositionIncrease PositionOperation = "INCREASE"
	PositionDecrease PositionOperation = "DECREASE"
	PositionClose    PositionOperation = "CLOSE"
)

// PositionChange is the committed state of both ledger sides after a transition.
// For PositionClose the Position is the last state before removal.
type PositionChange struct {
	Operation PositionOperation `json:"operation"`
	Delta     decimal.Decimal   `json:"delta"`
	Position  Position          `json:"position"`
	Wallet    Wallet            `json:"wallet"`
}
