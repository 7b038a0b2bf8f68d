package handler

import (
	"context"
	"errors"
	"time"

	"github.com/Nzyazin/stakeledger/internal/core/logger"
	"github.com/Nzyazin/stakeledger/internal/core/usecase"
)

const (
	maxAttempts    = 3
	initialBackoff = 10 * time.Millisecond
)

// withRetry reruns fn while it fails with usecase.ErrConflict. A conflicting
// transaction had no effect, so rerunning it is safe.
func withRetry[T any](ctx context.Context, log logger.Logger, op string, fn func() (T, error)) (T, error) {
	backoff := initialBackoff

	var (
		res T
		err error
	)
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		res, err = fn()
		if err == nil || !errors.Is(err, usecase.ErrConflict) || attempt == maxAttempts {
			return res, err
		}

		log.Warn("Concurrent modification, retrying",
			logger.StringField("operation", op),
			logger.IntField("attempt", attempt),
			logger.ErrorField("error", err))

		select {
		case <-ctx.Done():
			return res, err
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return res, err
}
