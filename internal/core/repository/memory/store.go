package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Nzyazin/stakeledger/internal/core/models"
	"github.com/Nzyazin/stakeledger/internal/core/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var errNegativeBalance = errors.New("wallet balance must not be negative")

// store applies queries to one snapshot. Outside a transaction the snapshot is
// the committed one and only read methods are reachable.
type store struct {
	snap *snapshot
	now  func() time.Time
}

var _ repository.Store = (*store)(nil)

func (s *store) GetWalletByUser(_ context.Context, userID uuid.UUID) (*models.Wallet, error) {
	id, ok := s.snap.walletByUser[userID]
	if !ok {
		return nil, fmt.Errorf("%w: wallet of user %s", repository.ErrNotFound, userID)
	}
	wallet := s.snap.wallets[id]
	return &wallet, nil
}

func (s *store) ListWallets(_ context.Context) ([]models.Wallet, error) {
	wallets := make([]models.Wallet, 0, len(s.snap.wallets))
	for _, w := range s.snap.wallets {
		wallets = append(wallets, w)
	}
	sort.Slice(wallets, func(i, j int) bool {
		return before(wallets[i].CreatedAt, wallets[j].CreatedAt, wallets[i].ID, wallets[j].ID)
	})
	return wallets, nil
}

func (s *store) CreateWallet(_ context.Context, wallet *models.Wallet) error {
	if _, ok := s.snap.walletByUser[wallet.UserID]; ok {
		return fmt.Errorf("%w: wallet of user %s", repository.ErrDuplicate, wallet.UserID)
	}
	s.snap.wallets[wallet.ID] = *wallet
	s.snap.walletByUser[wallet.UserID] = wallet.ID
	return nil
}

func (s *store) LockWalletByUser(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	return s.GetWalletByUser(ctx, userID)
}

func (s *store) UpdateWalletBalance(_ context.Context, walletID uuid.UUID, balance decimal.Decimal) (*models.Wallet, error) {
	wallet, ok := s.snap.wallets[walletID]
	if !ok {
		return nil, fmt.Errorf("%w: wallet %s", repository.ErrNotFound, walletID)
	}
	if balance.IsNegative() {
		return nil, errNegativeBalance
	}
	wallet.Balance = balance
	wallet.UpdatedAt = s.now()
	s.snap.wallets[walletID] = wallet
	return &wallet, nil
}

func (s *store) GetConditions(_ context.Context, id uuid.UUID) (*models.PoolConditions, error) {
	c, ok := s.snap.conditions[id]
	if !ok {
		return nil, fmt.Errorf("%w: conditions %s", repository.ErrNotFound, id)
	}
	return &c, nil
}

func (s *store) ListConditions(_ context.Context) ([]models.PoolConditions, error) {
	list := make([]models.PoolConditions, 0, len(s.snap.conditions))
	for _, c := range s.snap.conditions {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		return before(list[i].CreatedAt, list[j].CreatedAt, list[i].ID, list[j].ID)
	})
	return list, nil
}

func (s *store) ConditionsExist(_ context.Context, min, max decimal.Decimal, excludeID uuid.UUID) (bool, error) {
	for id, c := range s.snap.conditions {
		if id != excludeID && c.MinAmount.Equal(min) && c.MaxAmount.Equal(max) {
			return true, nil
		}
	}
	return false, nil
}

func (s *store) CreateConditions(ctx context.Context, conditions *models.PoolConditions) error {
	exists, _ := s.ConditionsExist(ctx, conditions.MinAmount, conditions.MaxAmount, conditions.ID)
	if exists {
		return fmt.Errorf("%w: conditions %s", repository.ErrDuplicate, conditions)
	}
	s.snap.conditions[conditions.ID] = *conditions
	return nil
}

func (s *store) DeleteConditions(_ context.Context, id uuid.UUID) error {
	if _, ok := s.snap.conditions[id]; !ok {
		return fmt.Errorf("%w: conditions %s", repository.ErrNotFound, id)
	}
	for _, p := range s.snap.pools {
		if p.ConditionsID == id {
			return fmt.Errorf("%w: conditions %s used by pool %s", repository.ErrInUse, id, p.ID)
		}
	}
	delete(s.snap.conditions, id)
	return nil
}

func (s *store) GetPool(_ context.Context, id uuid.UUID) (*models.StakingPool, error) {
	p, ok := s.snap.pools[id]
	if !ok {
		return nil, fmt.Errorf("%w: pool %s", repository.ErrNotFound, id)
	}
	return &p, nil
}

func (s *store) ListPools(_ context.Context) ([]models.StakingPool, error) {
	return s.filterPools(func(models.StakingPool) bool { return true }), nil
}

func (s *store) ListPoolsByConditions(_ context.Context, conditionsID uuid.UUID) ([]models.StakingPool, error) {
	return s.filterPools(func(p models.StakingPool) bool { return p.ConditionsID == conditionsID }), nil
}

func (s *store) filterPools(keep func(models.StakingPool) bool) []models.StakingPool {
	pools := make([]models.StakingPool, 0)
	for _, p := range s.snap.pools {
		if keep(p) {
			pools = append(pools, p)
		}
	}
	sort.Slice(pools, func(i, j int) bool {
		return before(pools[i].CreatedAt, pools[j].CreatedAt, pools[i].ID, pools[j].ID)
	})
	return pools
}

func (s *store) GetPoolConditions(ctx context.Context, poolID uuid.UUID) (*models.PoolConditions, error) {
	pool, err := s.GetPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	return s.GetConditions(ctx, pool.ConditionsID)
}

func (s *store) PoolNameExists(_ context.Context, name string, excludeID uuid.UUID) (bool, error) {
	for id, p := range s.snap.pools {
		if id != excludeID && p.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *store) CreatePool(ctx context.Context, pool *models.StakingPool) error {
	if _, ok := s.snap.conditions[pool.ConditionsID]; !ok {
		return fmt.Errorf("%w: conditions %s", repository.ErrNotFound, pool.ConditionsID)
	}
	if exists, _ := s.PoolNameExists(ctx, pool.Name, pool.ID); exists {
		return fmt.Errorf("%w: pool name %q", repository.ErrDuplicate, pool.Name)
	}
	s.snap.pools[pool.ID] = *pool
	return nil
}

func (s *store) LockPool(ctx context.Context, id uuid.UUID) (*models.StakingPool, error) {
	return s.GetPool(ctx, id)
}

func (s *store) UpdatePoolName(ctx context.Context, id uuid.UUID, name string) (*models.StakingPool, error) {
	pool, ok := s.snap.pools[id]
	if !ok {
		return nil, fmt.Errorf("%w: pool %s", repository.ErrNotFound, id)
	}
	if exists, _ := s.PoolNameExists(ctx, name, id); exists {
		return nil, fmt.Errorf("%w: pool name %q", repository.ErrDuplicate, name)
	}
	pool.Name = name
	pool.UpdatedAt = s.now()
	s.snap.pools[id] = pool
	return &pool, nil
}

func (s *store) DeletePool(_ context.Context, id uuid.UUID) error {
	if _, ok := s.snap.pools[id]; !ok {
		return fmt.Errorf("%w: pool %s", repository.ErrNotFound, id)
	}
	for _, p := range s.snap.positions {
		if p.PoolID == id {
			return fmt.Errorf("%w: pool %s has open positions", repository.ErrInUse, id)
		}
	}
	delete(s.snap.pools, id)
	return nil
}

func (s *store) GetPosition(_ context.Context, id uuid.UUID) (*models.Position, error) {
	p, ok := s.snap.positions[id]
	if !ok {
		return nil, fmt.Errorf("%w: position %s", repository.ErrNotFound, id)
	}
	return &p, nil
}

func (s *store) ListPositionsByUser(_ context.Context, userID uuid.UUID) ([]models.Position, error) {
	return s.filterPositions(func(p models.Position) bool { return p.UserID == userID }), nil
}

func (s *store) ListPositionsByPool(_ context.Context, poolID uuid.UUID) ([]models.Position, error) {
	return s.filterPositions(func(p models.Position) bool { return p.PoolID == poolID }), nil
}

func (s *store) filterPositions(keep func(models.Position) bool) []models.Position {
	positions := make([]models.Position, 0)
	for _, p := range s.snap.positions {
		if keep(p) {
			positions = append(positions, p)
		}
	}
	sort.Slice(positions, func(i, j int) bool {
		return before(positions[i].CreatedAt, positions[j].CreatedAt, positions[i].ID, positions[j].ID)
	})
	return positions
}

func (s *store) CreatePosition(_ context.Context, position *models.Position) error {
	if _, ok := s.snap.pools[position.PoolID]; !ok {
		return fmt.Errorf("%w: pool %s", repository.ErrNotFound, position.PoolID)
	}
	if _, ok := s.snap.walletByUser[position.UserID]; !ok {
		return fmt.Errorf("%w: wallet of user %s", repository.ErrNotFound, position.UserID)
	}
	if _, ok := s.snap.positions[position.ID]; ok {
		return fmt.Errorf("%w: position %s", repository.ErrDuplicate, position.ID)
	}
	s.snap.positions[position.ID] = *position
	return nil
}

func (s *store) LockPosition(ctx context.Context, id uuid.UUID) (*models.Position, error) {
	return s.GetPosition(ctx, id)
}

func (s *store) UpdatePositionAmount(_ context.Context, id uuid.UUID, amount decimal.Decimal) (*models.Position, error) {
	p, ok := s.snap.positions[id]
	if !ok {
		return nil, fmt.Errorf("%w: position %s", repository.ErrNotFound, id)
	}
	p.Amount = amount
	p.UpdatedAt = s.now()
	s.snap.positions[id] = p
	return &p, nil
}

func (s *store) DeletePosition(_ context.Context, id uuid.UUID) error {
	if _, ok := s.snap.positions[id]; !ok {
		return fmt.Errorf("%w: position %s", repository.ErrNotFound, id)
	}
	delete(s.snap.positions, id)
	return nil
}

func before(a, b time.Time, aID, bID uuid.UUID) bool {
	if a.Equal(b) {
		return aID.String() < bID.String()
	}
	return a.Before(b)
}
