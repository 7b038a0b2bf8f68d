package repository

import (
	"context"
	"errors"

	"github.com/Nzyazin/stakeledger/internal/core/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
	// ErrInUse is returned when a row is still referenced by another one.
	ErrInUse = errors.New("record is still referenced")
	// ErrConflict is returned when a concurrent transaction won a lock or
	// serialization race. Safe to retry.
	ErrConflict = errors.New("concurrent modification")
)

// Reader holds the queries that need no lock.
type Reader interface {
	GetWalletByUser(ctx context.Context, userID uuid.UUID) (*models.Wallet, error)
	ListWallets(ctx context.Context) ([]models.Wallet, error)

	GetConditions(ctx context.Context, id uuid.UUID) (*models.PoolConditions, error)
	ListConditions(ctx context.Context) ([]models.PoolConditions, error)

	GetPool(ctx context.Context, id uuid.UUID) (*models.StakingPool, error)
	ListPools(ctx context.Context) ([]models.StakingPool, error)
	ListPoolsByConditions(ctx context.Context, conditionsID uuid.UUID) ([]models.StakingPool, error)
	GetPoolConditions(ctx context.Context, poolID uuid.UUID) (*models.PoolConditions, error)

	GetPosition(ctx context.Context, id uuid.UUID) (*models.Position, error)
	ListPositionsByUser(ctx context.Context, userID uuid.UUID) ([]models.Position, error)
	ListPositionsByPool(ctx context.Context, poolID uuid.UUID) ([]models.Position, error)
}

// Store is the view of the database inside one transaction. Lock* methods
// hold the row until the transaction ends.
type Store interface {
	Reader

	CreateWallet(ctx context.Context, wallet *models.Wallet) error
	LockWalletByUser(ctx context.Context, userID uuid.UUID) (*models.Wallet, error)
	UpdateWalletBalance(ctx context.Context, walletID uuid.UUID, balance decimal.Decimal) (*models.Wallet, error)

	ConditionsExist(ctx context.Context, min, max decimal.Decimal, excludeID uuid.UUID) (bool, error)
	CreateConditions(ctx context.Context, conditions *models.PoolConditions) error
	DeleteConditions(ctx context.Context, id uuid.UUID) error

	PoolNameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
	CreatePool(ctx context.Context, pool *models.StakingPool) error
	LockPool(ctx context.Context, id uuid.UUID) (*models.StakingPool, error)
	UpdatePoolName(ctx context.Context, id uuid.UUID, name string) (*models.StakingPool, error)
	DeletePool(ctx context.Context, id uuid.UUID) error

	CreatePosition(ctx context.Context, position *models.Position) error
	LockPosition(ctx context.Context, id uuid.UUID) (*models.Position, error)
	UpdatePositionAmount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*models.Position, error)
	DeletePosition(ctx context.Context, id uuid.UUID) error
}

// LedgerRepository runs fn as a single unit of work: everything fn wrote through
// the Store is committed when fn returns nil and discarded otherwise.
type LedgerRepository interface {
	Reader
	WithinTx(ctx context.Context, fn func(Store) error) error
}
