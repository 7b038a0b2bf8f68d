package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wallet is the user's available, unstaked balance.
type Wallet struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	UserID    uuid.UUID       `json:"user_id" db:"user_id"`
	Balance   decimal.Decimal `json:"balance" db:"balance"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// NewWallet returns an empty wallet for the user.
func NewWallet(userID uuid.UUID) *Wallet {
	now := time.Now().UTC()
	return &Wallet{
		ID:        uuid.New(),
		UserID:    userID,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Holdings is the user's wallet together with every open position.
// Total is the conserved quantity: Balance plus the staked amount.
type Holdings struct {
	Wallet    Wallet          `json:"wallet"`
	Positions []Position      `json:"positions"`
	Staked    decimal.Decimal `json:"staked"`
	Total     decimal.Decimal `json:"total"`
}
