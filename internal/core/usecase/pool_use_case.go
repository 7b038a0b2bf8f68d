package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Nzyazin/stakeledger/internal/core/logger"
	"github.com/Nzyazin/stakeledger/internal/core/models"
	"github.com/Nzyazin/stakeledger/internal/core/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateConditions checks the range, then min, then max, then uniqueness.
func (l *Ledger) CreateConditions(ctx context.Context, min, max decimal.Decimal) (conditions *models.PoolConditions, err error) {
	defer l.track("create_conditions",
		logger.DecimalField("min_amount", min),
		logger.DecimalField("max_amount", max))(&err)

	if !max.GreaterThan(min) {
		return nil, ErrInvalidRange
	}
	if err := checkAmount(min, ErrNonPositiveBound); err != nil {
		return nil, err
	}
	if err := checkAmount(max, ErrNonPositiveBound); err != nil {
		return nil, err
	}

	conditions = &models.PoolConditions{
		ID:        uuid.New(),
		MinAmount: min,
		MaxAmount: max,
		CreatedAt: l.now(),
	}

	err = l.inTx(ctx, func(s repository.Store) error {
		exists, err := s.ConditionsExist(ctx, min, max, conditions.ID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %s", ErrDuplicateConditions, conditions)
		}
		if err := s.CreateConditions(ctx, conditions); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return fmt.Errorf("%w: %s", ErrDuplicateConditions, conditions)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conditions, nil
}

func (l *Ledger) GetConditions(ctx context.Context, id uuid.UUID) (*models.PoolConditions, error) {
	conditions, err := l.repo.GetConditions(ctx, id)
	if err != nil {
		return nil, translate(orNotFound(err, ErrConditionsNotFound))
	}
	return conditions, nil
}

func (l *Ledger) ListConditions(ctx context.Context) ([]models.PoolConditions, error) {
	list, err := l.repo.ListConditions(ctx)
	return list, translate(err)
}

// DeleteConditions deletes every pool using the conditions, refunding their
// positions, and then the conditions themselves.
func (l *Ledger) DeleteConditions(ctx context.Context, id uuid.UUID) (result *models.CascadeResult, err error) {
	defer l.track("delete_conditions", logger.StringField("conditions_id", id.String()))(&err)

	if _, err := l.GetConditions(ctx, id); err != nil {
		return nil, err
	}

	result = &models.CascadeResult{}
	for pass := 0; pass < maxCascadePasses; pass++ {
		pools, err := l.repo.ListPoolsByConditions(ctx, id)
		if err != nil {
			return result, translate(err)
		}
		for _, pool := range pools {
			deleted, err := l.deletePool(ctx, pool.ID)
			result.Merge(deleted)
			if err != nil && !errors.Is(err, ErrPoolNotFound) {
				return result, err
			}
		}

		err = l.inTx(ctx, func(s repository.Store) error {
			return s.DeleteConditions(ctx, id)
		})
		switch {
		case err == nil:
			return result, nil
		case errors.Is(err, repository.ErrInUse):
			l.log.Warn("Conditions gained a pool during cascade, retrying",
				logger.StringField("conditions_id", id.String()),
				logger.IntField("pass", pass+1))
		case errors.Is(err, repository.ErrNotFound):
			return result, ErrConditionsNotFound
		default:
			return result, err
		}
	}

	return result, fmt.Errorf("%w: conditions %s are still referenced after %d passes", ErrConflict, id, maxCascadePasses)
}

func (l *Ledger) CreatePool(ctx context.Context, name string, conditionsID uuid.UUID) (pool *models.StakingPool, err error) {
	defer l.track("create_pool",
		logger.StringField("name", name),
		logger.StringField("conditions_id", conditionsID.String()))(&err)

	if err := checkName(name); err != nil {
		return nil, err
	}

	now := l.now()
	pool = &models.StakingPool{
		ID:           uuid.New(),
		Name:         name,
		ConditionsID: conditionsID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = l.inTx(ctx, func(s repository.Store) error {
		exists, err := s.PoolNameExists(ctx, name, pool.ID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %q", ErrDuplicatePoolName, name)
		}
		if _, err := s.GetConditions(ctx, conditionsID); err != nil {
			return orNotFound(err, ErrConditionsNotFound)
		}
		if err := s.CreatePool(ctx, pool); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return fmt.Errorf("%w: %q", ErrDuplicatePoolName, name)
			}
			return orNotFound(err, ErrConditionsNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pool, nil
}

func (l *Ledger) GetPool(ctx context.Context, id uuid.UUID) (*models.StakingPool, error) {
	pool, err := l.repo.GetPool(ctx, id)
	if err != nil {
		return nil, translate(orNotFound(err, ErrPoolNotFound))
	}
	return pool, nil
}

func (l *Ledger) ListPools(ctx context.Context) ([]models.StakingPool, error) {
	pools, err := l.repo.ListPools(ctx)
	return pools, translate(err)
}

func (l *Ledger) RenamePool(ctx context.Context, id uuid.UUID, name string) (pool *models.StakingPool, err error) {
	defer l.track("rename_pool",
		logger.StringField("pool_id", id.String()),
		logger.StringField("name", name))(&err)

	if err := checkName(name); err != nil {
		return nil, err
	}

	err = l.inTx(ctx, func(s repository.Store) error {
		current, err := s.LockPool(ctx, id)
		if err != nil {
			return orNotFound(err, ErrPoolNotFound)
		}
		if current.Name == name {
			return ErrSameName
		}
		exists, err := s.PoolNameExists(ctx, name, id)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %q", ErrDuplicatePoolName, name)
		}
		pool, err = s.UpdatePoolName(ctx, id, name)
		if errors.Is(err, repository.ErrDuplicate) {
			return fmt.Errorf("%w: %q", ErrDuplicatePoolName, name)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return pool, nil
}

// DeletePool refunds every position in the pool to its owner, each in its own
// transaction, then removes the pool. Refunds that committed before a failure
// stay committed.
func (l *Ledger) DeletePool(ctx context.Context, id uuid.UUID) (result *models.CascadeResult, err error) {
	defer l.track("delete_pool", logger.StringField("pool_id", id.String()))(&err)

	if _, err := l.GetPool(ctx, id); err != nil {
		return nil, err
	}

	deleted, err := l.deletePool(ctx, id)
	return &deleted, err
}

func (l *Ledger) deletePool(ctx context.Context, id uuid.UUID) (models.CascadeResult, error) {
	var result models.CascadeResult

	for pass := 0; pass < maxCascadePasses; pass++ {
		positions, err := l.repo.ListPositionsByPool(ctx, id)
		if err != nil {
			return result, translate(err)
		}
		for _, position := range positions {
			refunded, ok, err := l.refundPosition(ctx, position)
			if err != nil {
				return result, err
			}
			if ok {
				result.PositionsRefunded++
				result.AmountRefunded = result.AmountRefunded.Add(refunded)
			}
		}

		err = l.inTx(ctx, func(s repository.Store) error {
			return s.DeletePool(ctx, id)
		})
		switch {
		case err == nil:
			result.PoolsDeleted++
			l.log.Info("Pool deleted",
				logger.StringField("pool_id", id.String()),
				logger.IntField("positions_refunded", result.PositionsRefunded),
				logger.DecimalField("amount_refunded", result.AmountRefunded))
			return result, nil
		case errors.Is(err, repository.ErrInUse):
			l.log.Warn("Pool gained positions during cascade, retrying",
				logger.StringField("pool_id", id.String()),
				logger.IntField("pass", pass+1))
		case errors.Is(err, repository.ErrNotFound):
			return result, ErrPoolNotFound
		default:
			return result, err
		}
	}

	return result, fmt.Errorf("%w: pool %s still has positions after %d passes", ErrConflict, id, maxCascadePasses)
}

// refundPosition credits the owner with the position amount and removes the
// position. ok is false when the position was closed concurrently.
func (l *Ledger) refundPosition(ctx context.Context, listed models.Position) (refunded decimal.Decimal, ok bool, err error) {
	err = l.inTx(ctx, func(s repository.Store) error {
		wallet, err := s.LockWalletByUser(ctx, listed.UserID)
		if err != nil {
			return orNotFound(err, ErrWalletNotFound)
		}
		position, err := s.LockPosition(ctx, listed.ID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if _, err := s.UpdateWalletBalance(ctx, wallet.ID, wallet.Balance.Add(position.Amount)); err != nil {
			return err
		}
		if err := s.DeletePosition(ctx, position.ID); err != nil {
			return err
		}
		refunded, ok = position.Amount, true
		return nil
	})
	if err != nil {
		l.log.Error("Refund failed",
			logger.StringField("position_id", listed.ID.String()),
			logger.StringField("user_id", listed.UserID.String()),
			logger.ErrorField("error", err))
		return decimal.Zero, false, err
	}
	if ok {
		l.log.Info("Position refunded",
			logger.StringField("position_id", listed.ID.String()),
			logger.StringField("user_id", listed.UserID.String()),
			logger.DecimalField("amount", refunded))
	}
	return refunded, ok, nil
}

func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return ErrNameTooLong
	}
	return nil
}
