package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Nzyazin/stakeledger/internal/core/logger"
	"github.com/Nzyazin/stakeledger/internal/core/models"
	"github.com/Nzyazin/stakeledger/internal/core/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EnsureWallet returns the user's wallet, creating an empty one on first call.
func (l *Ledger) EnsureWallet(ctx context.Context, userID uuid.UUID) (wallet *models.Wallet, err error) {
	if wallet, err = l.repo.GetWalletByUser(ctx, userID); err == nil {
		return wallet, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, translate(err)
	}

	defer l.track("ensure_wallet", logger.StringField("user_id", userID.String()))(&err)

	err = l.inTx(ctx, func(s repository.Store) error {
		existing, err := s.GetWalletByUser(ctx, userID)
		if err == nil {
			wallet = existing
			return nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		wallet = models.NewWallet(userID)
		return s.CreateWallet(ctx, wallet)
	})
	if errors.Is(err, repository.ErrDuplicate) {
		// Lost the race against a concurrent provisioning call.
		wallet, err = l.repo.GetWalletByUser(ctx, userID)
		return wallet, translate(err)
	}
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

func (l *Ledger) GetWallet(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	wallet, err := l.repo.GetWalletByUser(ctx, userID)
	if err != nil {
		return nil, translate(orNotFound(err, ErrWalletNotFound))
	}
	return wallet, nil
}

func (l *Ledger) ListWallets(ctx context.Context) ([]models.Wallet, error) {
	wallets, err := l.repo.ListWallets(ctx)
	return wallets, translate(err)
}

func (l *Ledger) Deposit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (wallet *models.Wallet, err error) {
	defer l.track("deposit",
		logger.StringField("user_id", userID.String()),
		logger.DecimalField("amount", amount))(&err)

	if err := checkAmount(amount, ErrNonPositiveAmount); err != nil {
		return nil, err
	}

	err = l.inTx(ctx, func(s repository.Store) error {
		current, err := s.LockWalletByUser(ctx, userID)
		if err != nil {
			return orNotFound(err, ErrWalletNotFound)
		}
		positions, err := s.ListPositionsByUser(ctx, userID)
		if err != nil {
			return err
		}
		if err := checkHoldingsLimit(current.Balance, staked(positions), amount); err != nil {
			return err
		}
		wallet, err = s.UpdateWalletBalance(ctx, current.ID, current.Balance.Add(amount))
		return err
	})
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

func (l *Ledger) Withdraw(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (wallet *models.Wallet, err error) {
	defer l.track("withdraw",
		logger.StringField("user_id", userID.String()),
		logger.DecimalField("amount", amount))(&err)

	if err := checkAmount(amount, ErrNonPositiveAmount); err != nil {
		return nil, err
	}

	err = l.inTx(ctx, func(s repository.Store) error {
		current, err := s.LockWalletByUser(ctx, userID)
		if err != nil {
			return orNotFound(err, ErrWalletNotFound)
		}
		if err := debitable(current, amount); err != nil {
			return err
		}
		wallet, err = s.UpdateWalletBalance(ctx, current.ID, current.Balance.Sub(amount))
		return err
	})
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

// Holdings reads the wallet and the positions without a lock; between the two
// reads a concurrent operation may commit, so Total is exact only at rest.
func (l *Ledger) Holdings(ctx context.Context, userID uuid.UUID) (*models.Holdings, error) {
	wallet, err := l.GetWallet(ctx, userID)
	if err != nil {
		return nil, err
	}
	positions, err := l.repo.ListPositionsByUser(ctx, userID)
	if err != nil {
		return nil, translate(err)
	}

	total := staked(positions)
	return &models.Holdings{
		Wallet:    *wallet,
		Positions: positions,
		Staked:    total,
		Total:     wallet.Balance.Add(total),
	}, nil
}

func staked(positions []models.Position) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range positions {
		sum = sum.Add(p.Amount)
	}
	return sum
}

func debitable(wallet *models.Wallet, amount decimal.Decimal) error {
	if wallet.Balance.LessThan(amount) {
		return fmt.Errorf("%w: balance %s, requested %s", ErrInsufficientFunds, wallet.Balance, amount)
	}
	return nil
}
