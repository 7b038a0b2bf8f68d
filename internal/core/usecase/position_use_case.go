package usecase

import (
	"context"
	"fmt"

	"github.com/Nzyazin/stakeledger/internal/core/logger"
	"github.com/Nzyazin/stakeledger/internal/core/models"
	"github.com/Nzyazin/stakeledger/internal/core/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (l *Ledger) OpenPosition(ctx context.Context, userID, poolID uuid.UUID, amount decimal.Decimal) (change *models.PositionChange, err error) {
	defer l.track("open_position",
		logger.StringField("user_id", userID.String()),
		logger.StringField("pool_id", poolID.String()),
		logger.DecimalField("amount", amount))(&err)

	if err := checkAmount(amount, ErrNonPositiveAmount); err != nil {
		return nil, err
	}

	err = l.inTx(ctx, func(s repository.Store) error {
		wallet, err := s.LockWalletByUser(ctx, userID)
		if err != nil {
			return orNotFound(err, ErrWalletNotFound)
		}
		conditions, err := s.GetPoolConditions(ctx, poolID)
		if err != nil {
			return orNotFound(err, ErrPoolNotFound)
		}
		if err := withinConditions(amount, conditions); err != nil {
			return err
		}
		if err := debitable(wallet, amount); err != nil {
			return err
		}

		wallet, err = s.UpdateWalletBalance(ctx, wallet.ID, wallet.Balance.Sub(amount))
		if err != nil {
			return err
		}

		now := l.now()
		position := &models.Position{
			ID:        uuid.New(),
			UserID:    userID,
			PoolID:    poolID,
			Amount:    amount,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.CreatePosition(ctx, position); err != nil {
			return orNotFound(err, ErrPoolNotFound)
		}

		change = &models.PositionChange{
			Operation: models.PositionOpen,
			Delta:     amount,
			Position:  *position,
			Wallet:    *wallet,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return change, nil
}

func (l *Ledger) IncreasePosition(ctx context.Context, userID, positionID uuid.UUID, delta decimal.Decimal) (*models.PositionChange, error) {
	return l.changePosition(ctx, models.PositionIncrease, userID, positionID, delta)
}

func (l *Ledger) DecreasePosition(ctx context.Context, userID, positionID uuid.UUID, delta decimal.Decimal) (*models.PositionChange, error) {
	return l.changePosition(ctx, models.PositionDecrease, userID, positionID, delta)
}

func (l *Ledger) ClosePosition(ctx context.Context, userID, positionID uuid.UUID) (*models.PositionChange, error) {
	return l.changePosition(ctx, models.PositionClose, userID, positionID, decimal.Zero)
}

// changePosition runs increase, decrease and close. The wallet row is locked
// before the position row in every path.
func (l *Ledger) changePosition(
	ctx context.Context,
	op models.PositionOperation,
	userID, positionID uuid.UUID,
	delta decimal.Decimal,
) (change *models.PositionChange, err error) {
	fields := []logger.Field{
		logger.StringField("user_id", userID.String()),
		logger.StringField("position_id", positionID.String()),
	}
	if op != models.PositionClose {
		fields = append(fields, logger.DecimalField("delta", delta))
	}
	defer l.track(operationName(op), fields...)(&err)

	if op != models.PositionClose {
		if err := checkAmount(delta, ErrNonPositiveDelta); err != nil {
			return nil, err
		}
	}

	err = l.inTx(ctx, func(s repository.Store) error {
		wallet, err := s.LockWalletByUser(ctx, userID)
		if err != nil {
			return orNotFound(err, ErrWalletNotFound)
		}
		position, err := s.LockPosition(ctx, positionID)
		if err != nil {
			return orNotFound(err, ErrPositionNotFound)
		}
		if position.UserID != userID {
			return ErrPositionNotFound
		}

		balance, amount := wallet.Balance, position.Amount
		switch op {
		case models.PositionIncrease:
			conditions, err := s.GetPoolConditions(ctx, position.PoolID)
			if err != nil {
				return orNotFound(err, ErrPoolNotFound)
			}
			amount = amount.Add(delta)
			if amount.GreaterThan(conditions.MaxAmount) {
				return fmt.Errorf("%w: %s is too large for %s", ErrAmountOutOfRange, amount, conditions)
			}
			if err := debitable(wallet, delta); err != nil {
				return err
			}
			balance = balance.Sub(delta)
		case models.PositionDecrease:
			conditions, err := s.GetPoolConditions(ctx, position.PoolID)
			if err != nil {
				return orNotFound(err, ErrPoolNotFound)
			}
			amount = amount.Sub(delta)
			if amount.LessThan(conditions.MinAmount) {
				return fmt.Errorf("%w: %s is too small for %s", ErrAmountOutOfRange, amount, conditions)
			}
			balance = balance.Add(delta)
		case models.PositionClose:
			delta = amount
			amount = decimal.Zero
			balance = balance.Add(delta)
		}

		wallet, err = s.UpdateWalletBalance(ctx, wallet.ID, balance)
		if err != nil {
			return err
		}

		if op == models.PositionClose {
			if err := s.DeletePosition(ctx, position.ID); err != nil {
				return err
			}
		} else if position, err = s.UpdatePositionAmount(ctx, position.ID, amount); err != nil {
			return err
		}

		change = &models.PositionChange{
			Operation: op,
			Delta:     delta,
			Position:  *position,
			Wallet:    *wallet,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return change, nil
}

// GetPosition hides other users' positions behind ErrPositionNotFound.
func (l *Ledger) GetPosition(ctx context.Context, userID, positionID uuid.UUID) (*models.Position, error) {
	position, err := l.repo.GetPosition(ctx, positionID)
	if err != nil {
		return nil, translate(orNotFound(err, ErrPositionNotFound))
	}
	if position.UserID != userID {
		return nil, ErrPositionNotFound
	}
	return position, nil
}

func (l *Ledger) ListPositions(ctx context.Context, userID uuid.UUID) ([]models.Position, error) {
	positions, err := l.repo.ListPositionsByUser(ctx, userID)
	return positions, translate(err)
}

func withinConditions(amount decimal.Decimal, conditions *models.PoolConditions) error {
	if !conditions.Contains(amount) {
		return fmt.Errorf("%w: %s is outside %s", ErrAmountOutOfRange, amount, conditions)
	}
	return nil
}

func operationName(op models.PositionOperation) string {
	switch op {
	case models.PositionIncrease:
		return "increase_position"
	case models.PositionDecrease:
		return "decrease_position"
	case models.PositionClose:
		return "close_position"
	default:
		return "open_position"
	}
}
