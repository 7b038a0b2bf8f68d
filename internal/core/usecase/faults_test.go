package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Nzyazin/stakeledger/internal/core/logger"
	"github.com/Nzyazin/stakeledger/internal/core/models"
	"github.com/Nzyazin/stakeledger/internal/core/repository"
	"github.com/Nzyazin/stakeledger/internal/core/repository/memory"
	"github.com/Nzyazin/stakeledger/internal/core/usecase"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDiskFull = errors.New("disk full")

// faultyRepo wraps a working repository and fails the Nth call of a chosen
// Store write inside a transaction.
type faultyRepo struct {
	repository.LedgerRepository

	mu     sync.Mutex
	calls  map[string]int
	failAt map[string]int
}

func newFaultyLedger(t *testing.T) (*usecase.Ledger, *faultyRepo) {
	t.Helper()
	repo := &faultyRepo{
		LedgerRepository: memory.NewMemoryLedgerRepo(logger.NewNop()),
		calls:            map[string]int{},
		failAt:           map[string]int{},
	}
	return usecase.NewLedger(repo, logger.NewNop(), nil), repo
}

// failOn makes the nth call of method fail, counting from now.
func (f *faultyRepo) failOn(method string, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = map[string]int{}
	f.failAt[method] = n
}

func (f *faultyRepo) hit(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[method]++
	if n, ok := f.failAt[method]; ok && f.calls[method] == n {
		return errDiskFull
	}
	return nil
}

func (f *faultyRepo) WithinTx(ctx context.Context, fn func(repository.Store) error) error {
	return f.LedgerRepository.WithinTx(ctx, func(s repository.Store) error {
		return fn(faultyStore{Store: s, faults: f})
	})
}

type faultyStore struct {
	repository.Store
	faults *faultyRepo
}

func (s faultyStore) UpdateWalletBalance(ctx context.Context, walletID uuid.UUID, balance decimal.Decimal) (*models.Wallet, error) {
	if err := s.faults.hit("UpdateWalletBalance"); err != nil {
		return nil, err
	}
	return s.Store.UpdateWalletBalance(ctx, walletID, balance)
}

func (s faultyStore) CreatePosition(ctx context.Context, position *models.Position) error {
	if err := s.faults.hit("CreatePosition"); err != nil {
		return err
	}
	return s.Store.CreatePosition(ctx, position)
}

func (s faultyStore) UpdatePositionAmount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*models.Position, error) {
	if err := s.faults.hit("UpdatePositionAmount"); err != nil {
		return nil, err
	}
	return s.Store.UpdatePositionAmount(ctx, id, amount)
}

func (s faultyStore) DeletePosition(ctx context.Context, id uuid.UUID) error {
	if err := s.faults.hit("DeletePosition"); err != nil {
		return err
	}
	return s.Store.DeletePosition(ctx, id)
}

func requireStorageFailure(t *testing.T, err error) {
	t.Helper()
	require.ErrorIs(t, err, errDiskFull)
	assert.ErrorIs(t, err, usecase.ErrConsistency)
	assert.False(t, usecase.IsRejection(err))
}

func TestOpenPosition_StorageFailureLeavesNoTrace(t *testing.T) {
	for _, method := range []string{"UpdateWalletBalance", "CreatePosition"} {
		t.Run(method, func(t *testing.T) {
			l, faults := newFaultyLedger(t)
			ctx := context.Background()
			userID := fundedUser(t, l, "1000")
			pool := newPool(t, l, "p", "100", "500")

			faults.failOn(method, 1)
			_, err := l.OpenPosition(ctx, userID, pool.ID, d("300"))
			requireStorageFailure(t, err)

			holdings, err := l.Holdings(ctx, userID)
			require.NoError(t, err)
			assert.True(t, holdings.Wallet.Balance.Equal(d("1000")))
			assert.Empty(t, holdings.Positions)
		})
	}
}

func TestChangePosition_StorageFailureLeavesNoTrace(t *testing.T) {
	tests := []struct {
		name   string
		method string
		change func(l *usecase.Ledger, userID, positionID uuid.UUID) error
	}{
		{
			name:   "close credit fails",
			method: "UpdateWalletBalance",
			change: func(l *usecase.Ledger, userID, positionID uuid.UUID) error {
				_, err := l.ClosePosition(context.Background(), userID, positionID)
				return err
			},
		},
		{
			name:   "close delete fails after credit",
			method: "DeletePosition",
			change: func(l *usecase.Ledger, userID, positionID uuid.UUID) error {
				_, err := l.ClosePosition(context.Background(), userID, positionID)
				return err
			},
		},
		{
			name:   "increase fails after debit",
			method: "UpdatePositionAmount",
			change: func(l *usecase.Ledger, userID, positionID uuid.UUID) error {
				_, err := l.IncreasePosition(context.Background(), userID, positionID, d("100"))
				return err
			},
		},
		{
			name:   "decrease fails after credit",
			method: "UpdatePositionAmount",
			change: func(l *usecase.Ledger, userID, positionID uuid.UUID) error {
				_, err := l.DecreasePosition(context.Background(), userID, positionID, d("100"))
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, faults := newFaultyLedger(t)
			ctx := context.Background()
			userID := fundedUser(t, l, "1000")
			pool := newPool(t, l, "p", "100", "500")
			opened, err := l.OpenPosition(ctx, userID, pool.ID, d("300"))
			require.NoError(t, err)

			faults.failOn(tt.method, 1)
			requireStorageFailure(t, tt.change(l, userID, opened.Position.ID))

			wallet, err := l.GetWallet(ctx, userID)
			require.NoError(t, err)
			assert.True(t, wallet.Balance.Equal(d("700")))

			position, err := l.GetPosition(ctx, userID, opened.Position.ID)
			require.NoError(t, err)
			assert.True(t, position.Amount.Equal(d("300")))
		})
	}
}

func TestDeletePool_FailureKeepsCommittedRefunds(t *testing.T) {
	l, faults := newFaultyLedger(t)
	ctx := context.Background()
	alice := fundedUser(t, l, "1000")
	bob := fundedUser(t, l, "800")
	pool := newPool(t, l, "p", "100", "500")

	_, err := l.OpenPosition(ctx, alice, pool.ID, d("300"))
	require.NoError(t, err)
	_, err = l.OpenPosition(ctx, bob, pool.ID, d("500"))
	require.NoError(t, err)

	faults.failOn("DeletePosition", 2)
	result, err := l.DeletePool(ctx, pool.ID)
	requireStorageFailure(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 0, result.PoolsDeleted)
	assert.Equal(t, 1, result.PositionsRefunded)

	_, err = l.GetPool(ctx, pool.ID)
	require.NoError(t, err)

	remaining, err := l.ListPositions(ctx, alice)
	require.NoError(t, err)
	bobPositions, err := l.ListPositions(ctx, bob)
	require.NoError(t, err)
	remaining = append(remaining, bobPositions...)
	require.Len(t, remaining, 1)

	// The refunded owner is whole again; the other still has the stake.
	refunded, kept := alice, bob
	if remaining[0].UserID == alice {
		refunded, kept = bob, alice
	}
	refundedWallet, err := l.GetWallet(ctx, refunded)
	require.NoError(t, err)
	assert.Empty(t, mustPositions(t, l, refunded))
	assert.True(t, refundedWallet.Balance.Equal(total(t, l, refunded)))
	assert.True(t, total(t, l, alice).Equal(d("1000")))
	assert.True(t, total(t, l, bob).Equal(d("800")))
	assert.Len(t, mustPositions(t, l, kept), 1)

	faults.failOn("DeletePosition", 0)
	result, err = l.DeletePool(ctx, pool.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.PositionsRefunded)
	assert.Equal(t, 1, result.PoolsDeleted)
}

func mustPositions(t *testing.T, l *usecase.Ledger, userID uuid.UUID) []models.Position {
	t.Helper()
	positions, err := l.ListPositions(context.Background(), userID)
	require.NoError(t, err)
	return positions
}
