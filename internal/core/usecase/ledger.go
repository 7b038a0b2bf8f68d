package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Nzyazin/stakeledger/internal/core/logger"
	"github.com/Nzyazin/stakeledger/internal/core/metrics"
	"github.com/Nzyazin/stakeledger/internal/core/models"
	"github.com/Nzyazin/stakeledger/internal/core/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// maxScale and maxDigits match the NUMERIC(30, 10) columns.
	maxScale      = 10
	maxDigits     = 20
	maxNameLength = 255
	// maxCascadePasses bounds how often a cascade re-scans for positions
	// opened while it was refunding.
	maxCascadePasses = 3
)

// amountLimit is the first value that no longer fits a column.
var amountLimit = decimal.New(1, maxDigits)

//go:generate mockgen -source=ledger.go -destination=../../mock/mock_usecase/mock_usecase.go -package=mockusecase

type WalletUsecase interface {
	EnsureWallet(ctx context.Context, userID uuid.UUID) (*models.Wallet, error)
	GetWallet(ctx context.Context, userID uuid.UUID) (*models.Wallet, error)
	ListWallets(ctx context.Context) ([]models.Wallet, error)
	Deposit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*models.Wallet, error)
	Withdraw(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*models.Wallet, error)
	Holdings(ctx context.Context, userID uuid.UUID) (*models.Holdings, error)
}

type PositionUsecase interface {
	OpenPosition(ctx context.Context, userID, poolID uuid.UUID, amount decimal.Decimal) (*models.PositionChange, error)
	IncreasePosition(ctx context.Context, userID, positionID uuid.UUID, delta decimal.Decimal) (*models.PositionChange, error)
	DecreasePosition(ctx context.Context, userID, positionID uuid.UUID, delta decimal.Decimal) (*models.PositionChange, error)
	ClosePosition(ctx context.Context, userID, positionID uuid.UUID) (*models.PositionChange, error)
	GetPosition(ctx context.Context, userID, positionID uuid.UUID) (*models.Position, error)
	ListPositions(ctx context.Context, userID uuid.UUID) ([]models.Position, error)
}

type PoolUsecase interface {
	CreateConditions(ctx context.Context, min, max decimal.Decimal) (*models.PoolConditions, error)
	GetConditions(ctx context.Context, id uuid.UUID) (*models.PoolConditions, error)
	ListConditions(ctx context.Context) ([]models.PoolConditions, error)
	DeleteConditions(ctx context.Context, id uuid.UUID) (*models.CascadeResult, error)

	CreatePool(ctx context.Context, name string, conditionsID uuid.UUID) (*models.StakingPool, error)
	GetPool(ctx context.Context, id uuid.UUID) (*models.StakingPool, error)
	ListPools(ctx context.Context) ([]models.StakingPool, error)
	RenamePool(ctx context.Context, id uuid.UUID, name string) (*models.StakingPool, error)
	DeletePool(ctx context.Context, id uuid.UUID) (*models.CascadeResult, error)
}

// Ledger pairs every position mutation with the opposite wallet mutation in a
// single transaction, so a user's balance plus staked amount never changes
// except through deposits, withdrawals and cascade refunds.
type Ledger struct {
	repo    repository.LedgerRepository
	log     logger.Logger
	metrics *metrics.Ledger
	now     func() time.Time
}

var (
	_ WalletUsecase   = (*Ledger)(nil)
	_ PositionUsecase = (*Ledger)(nil)
	_ PoolUsecase     = (*Ledger)(nil)
)

func NewLedger(repo repository.LedgerRepository, log logger.Logger, m *metrics.Ledger) *Ledger {
	return &Ledger{
		repo:    repo,
		log:     log,
		metrics: m,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (l *Ledger) inTx(ctx context.Context, fn func(repository.Store) error) error {
	return translate(l.repo.WithinTx(ctx, fn))
}

// translate maps whatever storage returned onto the error kinds. Errors that
// already carry a kind pass through.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case IsRejection(err), errors.Is(err, ErrConsistency):
		return err
	case errors.Is(err, repository.ErrConflict):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, repository.ErrDuplicate):
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	default:
		return fmt.Errorf("%w: %w", ErrConsistency, err)
	}
}

// orNotFound replaces a storage miss with the specific not-found error.
func orNotFound(err, notFound error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	return err
}

// track logs the start of op and returns the closure that records its outcome.
// Use as: defer l.track(op, fields...)(&err).
func (l *Ledger) track(op string, fields ...logger.Field) func(*error) {
	started := time.Now()
	fields = append(fields, logger.StringField("operation", op))
	l.log.Info("Starting operation", fields...)

	return func(errp *error) {
		err := *errp
		outcome := metrics.OutcomeSuccess
		switch {
		case err == nil:
			l.log.Debug("Operation committed", fields...)
		case IsRejection(err):
			outcome = metrics.OutcomeRejected
			l.log.Warn("Operation rejected", append(fields, logger.ErrorField("error", err))...)
		default:
			outcome = metrics.OutcomeFailed
			l.log.Error("Operation failed", append(fields, logger.ErrorField("error", err))...)
		}
		l.metrics.Observe(op, outcome, started)
	}
}

func checkAmount(amount decimal.Decimal, nonPositive error) error {
	if !amount.IsPositive() {
		return nonPositive
	}
	if !amount.Equal(amount.Truncate(maxScale)) {
		return ErrAmountPrecision
	}
	if amount.GreaterThanOrEqual(amountLimit) {
		return ErrAmountTooLarge
	}
	return nil
}

// checkHoldingsLimit rejects a deposit that would push balance plus staked past
// what a column holds. Every other credit moves value the user already holds,
// so it stays below the same limit.
func checkHoldingsLimit(balance, stakedAmount, amount decimal.Decimal) error {
	holdings := balance.Add(stakedAmount)
	if holdings.Add(amount).GreaterThanOrEqual(amountLimit) {
		return fmt.Errorf("%w: holdings %s plus %s", ErrHoldingsTooLarge, holdings, amount)
	}
	return nil
}
