package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Nzyazin/stakeledger/internal/core/logger"
	"github.com/Nzyazin/stakeledger/internal/core/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	uniqueViolation      = "23505"
	foreignKeyViolation  = "23503"
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
	lockNotAvailable     = "55P03"
)

// executor is satisfied by both *sqlx.DB and *sqlx.Tx.
type executor interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

type postgresLedgerRepo struct {
	*queries
	db        *sqlx.DB
	log       logger.Logger
	isolation sql.IsolationLevel
}

func NewPostgresLedgerRepo(db *sqlx.DB, log logger.Logger, isolation sql.IsolationLevel) repository.LedgerRepository {
	return &postgresLedgerRepo{
		queries:   &queries{q: db},
		db:        db,
		log:       log,
		isolation: isolation,
	}
}

// IsolationLevel maps the configured name to a database/sql level. Row locks
// taken with FOR UPDATE make read committed sufficient for the ledger;
// serializable trades retries for stricter guarantees.
func IsolationLevel(name string) sql.IsolationLevel {
	if name == "serializable" {
		return sql.LevelSerializable
	}
	return sql.LevelReadCommitted
}

func (r *postgresLedgerRepo) WithinTx(ctx context.Context, fn func(repository.Store) error) (err error) {
	var isCommitted bool
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: r.isolation})
	if err != nil {
		r.log.Error("Error beginning transaction",
			logger.ErrorField("error", err))
		return fmt.Errorf("error beginning transaction: %w", mapError(err, "begin"))
	}

	defer func() {
		if isCommitted {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			r.log.Error("Transaction rollback failed",
				logger.ErrorField("error", rbErr))
			err = fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		} else {
			r.log.Debug("Transaction rolled back",
				logger.ErrorField("error", err))
		}
	}()

	if err = fn(&queries{q: tx}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		r.log.Error("Error committing transaction",
			logger.ErrorField("error", err))
		return fmt.Errorf("commit failed: %w", mapError(err, "commit"))
	}

	isCommitted = true
	return nil
}

// mapError translates driver errors into repository sentinels, keeping the
// original error in the chain.
func mapError(err error, format string, args ...interface{}) error {
	what := fmt.Sprintf(format, args...)

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", repository.ErrNotFound, what)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%w: %s (%s): %w", repository.ErrDuplicate, what, pqErr.Constraint, err)
		case foreignKeyViolation:
			return fmt.Errorf("%w: %s (%s): %w", repository.ErrInUse, what, pqErr.Constraint, err)
		case serializationFailure, deadlockDetected, lockNotAvailable:
			return fmt.Errorf("%w: %s: %w", repository.ErrConflict, what, err)
		}
	}

	return fmt.Errorf("%s: %w", what, err)
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation
}
