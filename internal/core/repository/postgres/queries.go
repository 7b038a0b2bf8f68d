package postgres

import (
	"context"
	"fmt"

	"github.com/Nzyazin/stakeledger/internal/core/models"
	"github.com/Nzyazin/stakeledger/internal/core/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	walletColumns     = `id, user_id, balance, created_at, updated_at`
	conditionsColumns = `id, min_amount, max_amount, created_at`
	poolColumns       = `id, name, conditions_id, created_at, updated_at`
	positionColumns   = `id, user_id, pool_id, amount, created_at, updated_at`
)

// queries runs the ledger statements against the pool or against one
// transaction, depending on q.
type queries struct {
	q executor
}

var _ repository.Store = (*queries)(nil)

func (s *queries) GetWalletByUser(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	var wallet models.Wallet
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1`
	if err := s.q.GetContext(ctx, &wallet, query, userID); err != nil {
		return nil, mapError(err, "get wallet of user %s", userID)
	}
	return &wallet, nil
}

func (s *queries) ListWallets(ctx context.Context) ([]models.Wallet, error) {
	wallets := []models.Wallet{}
	query := `SELECT ` + walletColumns + ` FROM wallets ORDER BY created_at, id`
	if err := s.q.SelectContext(ctx, &wallets, query); err != nil {
		return nil, mapError(err, "list wallets")
	}
	return wallets, nil
}

func (s *queries) CreateWallet(ctx context.Context, wallet *models.Wallet) error {
	query := `INSERT INTO wallets (` + walletColumns + `) VALUES ($1, $2, $3, $4, $5)`
	_, err := s.q.ExecContext(ctx, query,
		wallet.ID, wallet.UserID, wallet.Balance, wallet.CreatedAt, wallet.UpdatedAt)
	if err != nil {
		return mapError(err, "create wallet of user %s", wallet.UserID)
	}
	return nil
}

func (s *queries) LockWalletByUser(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	var wallet models.Wallet
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 FOR UPDATE`
	if err := s.q.GetContext(ctx, &wallet, query, userID); err != nil {
		return nil, mapError(err, "lock wallet of user %s", userID)
	}
	return &wallet, nil
}

func (s *queries) UpdateWalletBalance(ctx context.Context, walletID uuid.UUID, balance decimal.Decimal) (*models.Wallet, error) {
	var wallet models.Wallet
	query := `UPDATE wallets SET balance = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + walletColumns
	if err := s.q.GetContext(ctx, &wallet, query, balance, walletID); err != nil {
		return nil, mapError(err, "update balance of wallet %s", walletID)
	}
	return &wallet, nil
}

func (s *queries) GetConditions(ctx context.Context, id uuid.UUID) (*models.PoolConditions, error) {
	var conditions models.PoolConditions
	query := `SELECT ` + conditionsColumns + ` FROM pool_conditions WHERE id = $1`
	if err := s.q.GetContext(ctx, &conditions, query, id); err != nil {
		return nil, mapError(err, "get conditions %s", id)
	}
	return &conditions, nil
}

func (s *queries) ListConditions(ctx context.Context) ([]models.PoolConditions, error) {
	list := []models.PoolConditions{}
	query := `SELECT ` + conditionsColumns + ` FROM pool_conditions ORDER BY created_at, id`
	if err := s.q.SelectContext(ctx, &list, query); err != nil {
		return nil, mapError(err, "list conditions")
	}
	return list, nil
}

func (s *queries) ConditionsExist(ctx context.Context, min, max decimal.Decimal, excludeID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (
		SELECT 1 FROM pool_conditions WHERE min_amount = $1 AND max_amount = $2 AND id <> $3)`
	if err := s.q.GetContext(ctx, &exists, query, min, max, excludeID); err != nil {
		return false, mapError(err, "check conditions %s - %s", min, max)
	}
	return exists, nil
}

func (s *queries) CreateConditions(ctx context.Context, conditions *models.PoolConditions) error {
	query := `INSERT INTO pool_conditions (` + conditionsColumns + `) VALUES ($1, $2, $3, $4)`
	_, err := s.q.ExecContext(ctx, query,
		conditions.ID, conditions.MinAmount, conditions.MaxAmount, conditions.CreatedAt)
	if err != nil {
		return mapError(err, "create conditions %s", conditions)
	}
	return nil
}

func (s *queries) DeleteConditions(ctx context.Context, id uuid.UUID) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM pool_conditions WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "delete conditions %s", id)
	}
	if n, err := res.RowsAffected(); err != nil {
		return mapError(err, "delete conditions %s", id)
	} else if n == 0 {
		return fmt.Errorf("%w: conditions %s", repository.ErrNotFound, id)
	}
	return nil
}

func (s *queries) GetPool(ctx context.Context, id uuid.UUID) (*models.StakingPool, error) {
	var pool models.StakingPool
	query := `SELECT ` + poolColumns + ` FROM staking_pools WHERE id = $1`
	if err := s.q.GetContext(ctx, &pool, query, id); err != nil {
		return nil, mapError(err, "get pool %s", id)
	}
	return &pool, nil
}

func (s *queries) ListPools(ctx context.Context) ([]models.StakingPool, error) {
	pools := []models.StakingPool{}
	query := `SELECT ` + poolColumns + ` FROM staking_pools ORDER BY created_at, id`
	if err := s.q.SelectContext(ctx, &pools, query); err != nil {
		return nil, mapError(err, "list pools")
	}
	return pools, nil
}

func (s *queries) ListPoolsByConditions(ctx context.Context, conditionsID uuid.UUID) ([]models.StakingPool, error) {
	pools := []models.StakingPool{}
	query := `SELECT ` + poolColumns + ` FROM staking_pools WHERE conditions_id = $1 ORDER BY created_at, id`
	if err := s.q.SelectContext(ctx, &pools, query, conditionsID); err != nil {
		return nil, mapError(err, "list pools of conditions %s", conditionsID)
	}
	return pools, nil
}

func (s *queries) GetPoolConditions(ctx context.Context, poolID uuid.UUID) (*models.PoolConditions, error) {
	var conditions models.PoolConditions
	query := `SELECT c.id, c.min_amount, c.max_amount, c.created_at
		FROM staking_pools p
		JOIN pool_conditions c ON c.id = p.conditions_id
		WHERE p.id = $1`
	if err := s.q.GetContext(ctx, &conditions, query, poolID); err != nil {
		return nil, mapError(err, "get conditions of pool %s", poolID)
	}
	return &conditions, nil
}

func (s *queries) PoolNameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM staking_pools WHERE name = $1 AND id <> $2)`
	if err := s.q.GetContext(ctx, &exists, query, name, excludeID); err != nil {
		return false, mapError(err, "check pool name %q", name)
	}
	return exists, nil
}

func (s *queries) CreatePool(ctx context.Context, pool *models.StakingPool) error {
	query := `INSERT INTO staking_pools (` + poolColumns + `) VALUES ($1, $2, $3, $4, $5)`
	_, err := s.q.ExecContext(ctx, query,
		pool.ID, pool.Name, pool.ConditionsID, pool.CreatedAt, pool.UpdatedAt)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: conditions %s", repository.ErrNotFound, pool.ConditionsID)
	}
	if err != nil {
		return mapError(err, "create pool %q", pool.Name)
	}
	return nil
}

func (s *queries) LockPool(ctx context.Context, id uuid.UUID) (*models.StakingPool, error) {
	var pool models.StakingPool
	query := `SELECT ` + poolColumns + ` FROM staking_pools WHERE id = $1 FOR UPDATE`
	if err := s.q.GetContext(ctx, &pool, query, id); err != nil {
		return nil, mapError(err, "lock pool %s", id)
	}
	return &pool, nil
}

func (s *queries) UpdatePoolName(ctx context.Context, id uuid.UUID, name string) (*models.StakingPool, error) {
	var pool models.StakingPool
	query := `UPDATE staking_pools SET name = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + poolColumns
	if err := s.q.GetContext(ctx, &pool, query, name, id); err != nil {
		return nil, mapError(err, "rename pool %s", id)
	}
	return &pool, nil
}

// DeletePool refuses to remove a pool that still holds positions; the
// NOT EXISTS guard reports that without relying on the foreign key error.
func (s *queries) DeletePool(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM staking_pools
		WHERE id = $1 AND NOT EXISTS (SELECT 1 FROM positions WHERE pool_id = $1)`
	res, err := s.q.ExecContext(ctx, query, id)
	if err != nil {
		return mapError(err, "delete pool %s", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapError(err, "delete pool %s", id)
	}
	if n > 0 {
		return nil
	}

	if _, err := s.GetPool(ctx, id); err != nil {
		return err
	}
	return fmt.Errorf("%w: pool %s has open positions", repository.ErrInUse, id)
}

func (s *queries) GetPosition(ctx context.Context, id uuid.UUID) (*models.Position, error) {
	var position models.Position
	query := `SELECT ` + positionColumns + ` FROM positions WHERE id = $1`
	if err := s.q.GetContext(ctx, &position, query, id); err != nil {
		return nil, mapError(err, "get position %s", id)
	}
	return &position, nil
}

func (s *queries) ListPositionsByUser(ctx context.Context, userID uuid.UUID) ([]models.Position, error) {
	positions := []models.Position{}
	query := `SELECT ` + positionColumns + ` FROM positions WHERE user_id = $1 ORDER BY created_at, id`
	if err := s.q.SelectContext(ctx, &positions, query, userID); err != nil {
		return nil, mapError(err, "list positions of user %s", userID)
	}
	return positions, nil
}

func (s *queries) ListPositionsByPool(ctx context.Context, poolID uuid.UUID) ([]models.Position, error) {
	positions := []models.Position{}
	query := `SELECT ` + positionColumns + ` FROM positions WHERE pool_id = $1 ORDER BY created_at, id`
	if err := s.q.SelectContext(ctx, &positions, query, poolID); err != nil {
		return nil, mapError(err, "list positions of pool %s", poolID)
	}
	return positions, nil
}

func (s *queries) CreatePosition(ctx context.Context, position *models.Position) error {
	query := `INSERT INTO positions (` + positionColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := s.q.ExecContext(ctx, query,
		position.ID, position.UserID, position.PoolID, position.Amount, position.CreatedAt, position.UpdatedAt)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: pool %s or wallet of user %s", repository.ErrNotFound, position.PoolID, position.UserID)
	}
	if err != nil {
		return mapError(err, "create position in pool %s", position.PoolID)
	}
	return nil
}

func (s *queries) LockPosition(ctx context.Context, id uuid.UUID) (*models.Position, error) {
	var position models.Position
	query := `SELECT ` + positionColumns + ` FROM positions WHERE id = $1 FOR UPDATE`
	if err := s.q.GetContext(ctx, &position, query, id); err != nil {
		return nil, mapError(err, "lock position %s", id)
	}
	return &position, nil
}

func (s *queries) UpdatePositionAmount(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*models.Position, error) {
	var position models.Position
	query := `UPDATE positions SET amount = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + positionColumns
	if err := s.q.GetContext(ctx, &position, query, amount, id); err != nil {
		return nil, mapError(err, "update amount of position %s", id)
	}
	return &position, nil
}

func (s *queries) DeletePosition(ctx context.Context, id uuid.UUID) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM positions WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "delete position %s", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapError(err, "delete position %s", id)
	}
	if n == 0 {
		return fmt.Errorf("%w: position %s", repository.ErrNotFound, id)
	}
	return nil
}
