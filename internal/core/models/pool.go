package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PoolConditions is the [min, max] range a position in a pool must satisfy.
type PoolConditions struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	MinAmount decimal.Decimal `json:"min_amount" db:"min_amount"`
	MaxAmount decimal.Decimal `json:"max_amount" db:"max_amount"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// Contains reports whether amount lies within the inclusive range.
func (c PoolConditions) Contains(amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(c.MinAmount) && amount.LessThanOrEqual(c.MaxAmount)
}

func (c PoolConditions) String() string {
	return c.MinAmount.String() + " - " + c.MaxAmount.String()
}

// StakingPool is a named container of positions sharing one PoolConditions.
type StakingPool struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	ConditionsID uuid.UUID `json:"conditions_id" db:"conditions_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// CascadeResult summarises a deletion that had to refund positions first.
type CascadeResult struct {
	PoolsDeleted      int             `json:"pools_deleted"`
	PositionsRefunded int             `json:"positions_refunded"`
	AmountRefunded    decimal.Decimal `json:"amount_refunded"`
}

// Merge folds the counts of other into r.
func (r *CascadeResult) Merge(other CascadeResult) {
	r.PoolsDeleted += other.PoolsDeleted
	r.PositionsRefunded += other.PositionsRefunded
	r.AmountRefunded = r.AmountRefunded.Add(other.AmountRefunded)
}
