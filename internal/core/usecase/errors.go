package usecase

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the ledger matches exactly one of them
// with errors.Is.
var (
	ErrValidation        = errors.New("validation failed")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrDuplicate         = errors.New("already exists")
	ErrNotFound          = errors.New("not found")
	ErrConsistency       = errors.New("ledger consistency failure")
)

var (
	ErrNonPositiveAmount = fmt.Errorf("%w: amount must be positive", ErrValidation)
	ErrNonPositiveDelta  = fmt.Errorf("%w: delta must be positive", ErrValidation)
	ErrAmountPrecision   = fmt.Errorf("%w: amount has more than %d decimal places", ErrValidation, maxScale)
	ErrAmountTooLarge    = fmt.Errorf("%w: amount must be below 10^%d", ErrValidation, maxDigits)
	ErrHoldingsTooLarge  = fmt.Errorf("%w: wallet holdings would reach 10^%d", ErrValidation, maxDigits)
	ErrAmountOutOfRange  = fmt.Errorf("%w: amount is outside the pool conditions", ErrValidation)
	ErrInvalidRange      = fmt.Errorf("%w: max amount must be greater than min amount", ErrValidation)
	ErrNonPositiveBound  = fmt.Errorf("%w: min and max amount must be positive", ErrValidation)
	ErrEmptyName         = fmt.Errorf("%w: pool name must not be empty", ErrValidation)
	ErrNameTooLong       = fmt.Errorf("%w: pool name is longer than %d characters", ErrValidation, maxNameLength)
	ErrSameName          = fmt.Errorf("%w: new pool name equals the current one", ErrValidation)

	ErrDuplicateConditions = fmt.Errorf("pool conditions %w", ErrDuplicate)
	ErrDuplicatePoolName   = fmt.Errorf("pool name %w", ErrDuplicate)

	ErrWalletNotFound     = fmt.Errorf("wallet %w", ErrNotFound)
	ErrPositionNotFound   = fmt.Errorf("position %w", ErrNotFound)
	ErrPoolNotFound       = fmt.Errorf("pool %w", ErrNotFound)
	ErrConditionsNotFound = fmt.Errorf("pool conditions %w", ErrNotFound)

	// ErrConflict means a concurrent transaction won; the operation had no
	// effect and may be retried.
	ErrConflict = fmt.Errorf("%w: concurrent modification", ErrConsistency)
)

// IsRejection reports whether err is a business rejection rather than a
// storage or consistency failure.
func IsRejection(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrDuplicate) ||
		errors.Is(err, ErrNotFound)
}
