// Command seed creates the example pool conditions and staking pools.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Nzyazin/stakeledger/internal/core/logger"
	"github.com/Nzyazin/stakeledger/internal/core/models"
	"github.com/Nzyazin/stakeledger/internal/core/usecase"
	"github.com/Nzyazin/stakeledger/internal/server"
	"github.com/Nzyazin/stakeledger/pkg/config"
	"github.com/shopspring/decimal"
)

type examplePool struct {
	name     string
	min, max int64
}

var examples = []examplePool{
	{name: "Example Pool 1", min: 100, max: 500},
	{name: "Example Pool 2", min: 200, max: 600},
}

func main() {
	envFile := flag.String("env", ".env", "path to the dotenv file")
	flag.Parse()

	cfg, err := config.LoadConfig(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, cleanup, err := logger.NewLogger(logger.Config{
		Level:  cfg.Log.Level,
		Dir:    cfg.Log.Dir,
		Stdout: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	storage, err := server.OpenStorage(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to open storage", logger.ErrorField("error", err))
		return
	}
	defer storage.Close()

	ledger := usecase.NewLedger(storage.Repo, log, nil)

	for _, ex := range examples {
		if err := seed(ctx, ledger, log, ex); err != nil {
			log.Error("Seeding failed",
				logger.StringField("pool", ex.name),
				logger.ErrorField("error", err))
			return
		}
	}

	log.Info("Seeding finished")
}

func seed(ctx context.Context, ledger *usecase.Ledger, log logger.Logger, ex examplePool) error {
	min, max := decimal.NewFromInt(ex.min), decimal.NewFromInt(ex.max)

	conditions, err := ledger.CreateConditions(ctx, min, max)
	switch {
	case errors.Is(err, usecase.ErrDuplicateConditions):
		log.Warn("Pool conditions already exist",
			logger.DecimalField("min_amount", min),
			logger.DecimalField("max_amount", max))
		conditions, err = findConditions(ctx, ledger, min, max)
		if err != nil {
			return err
		}
	case err != nil:
		return err
	}

	pool, err := ledger.CreatePool(ctx, ex.name, conditions.ID)
	if errors.Is(err, usecase.ErrDuplicatePoolName) {
		log.Warn("Staking pool already exists", logger.StringField("name", ex.name))
		return nil
	}
	if err != nil {
		return err
	}

	log.Info("Staking pool created",
		logger.StringField("id", pool.ID.String()),
		logger.StringField("name", pool.Name))
	return nil
}

func findConditions(ctx context.Context, ledger *usecase.Ledger, min, max decimal.Decimal) (*models.PoolConditions, error) {
	list, err := ledger.ListConditions(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].MinAmount.Equal(min) && list[i].MaxAmount.Equal(max) {
			return &list[i], nil
		}
	}
	return nil, usecase.ErrConditionsNotFound
}
