package server

import (
	"context"
	"fmt"

	"github.com/Nzyazin/stakeledger/internal/core/logger"
	"github.com/Nzyazin/stakeledger/internal/core/repository"
	"github.com/Nzyazin/stakeledger/internal/core/repository/memory"
	"github.com/Nzyazin/stakeledger/internal/core/repository/postgres"
	"github.com/Nzyazin/stakeledger/pkg/config"
	"github.com/Nzyazin/stakeledger/pkg/postgresdb"
)

// Storage is the ledger repository selected by STORAGE_DRIVER together with
// the connection behind it, if any.
type Storage struct {
	Repo repository.LedgerRepository
	db   *postgresdb.Database
}

func OpenStorage(ctx context.Context, cfg *config.Config, log logger.Logger) (*Storage, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		log.Warn("Using in-memory storage, state is lost on exit")
		return &Storage{Repo: memory.NewMemoryLedgerRepo(log)}, nil

	case config.StoragePostgres:
		db, err := postgresdb.NewPostgresDB(cfg.DB, log)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, db.DB); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Info("Ledger schema is up to date",
			logger.StringField("isolation", cfg.DB.Isolation))

		repo := postgres.NewPostgresLedgerRepo(db.DB, log, postgres.IsolationLevel(cfg.DB.Isolation))
		return &Storage{Repo: repo, db: db}, nil

	default:
		return nil, fmt.Errorf("%w: unknown storage %q", config.ErrInvalidConfig, cfg.Storage)
	}
}

func (s *Storage) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.PingContext(ctx)
}

func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
