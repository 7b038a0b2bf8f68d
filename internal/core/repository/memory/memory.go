package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Nzyazin/stakeledger/internal/core/logger"
	"github.com/Nzyazin/stakeledger/internal/core/models"
	"github.com/Nzyazin/stakeledger/internal/core/repository"
	"github.com/google/uuid"
)

// Repository keeps the ledger in process memory. Committed state is an
// immutable snapshot; a transaction works on a private clone and publishes it
// on success, so readers never see half of a transaction.
type Repository struct {
	txMu    sync.Mutex
	current atomic.Pointer[snapshot]
	log     logger.Logger
	now     func() time.Time
}

type snapshot struct {
	wallets      map[uuid.UUID]models.Wallet
	walletByUser map[uuid.UUID]uuid.UUID
	conditions   map[uuid.UUID]models.PoolConditions
	pools        map[uuid.UUID]models.StakingPool
	positions    map[uuid.UUID]models.Position
}

func NewMemoryLedgerRepo(log logger.Logger) *Repository {
	r := &Repository{
		log: log,
		now: func() time.Time { return time.Now().UTC() },
	}
	r.current.Store(&snapshot{
		wallets:      map[uuid.UUID]models.Wallet{},
		walletByUser: map[uuid.UUID]uuid.UUID{},
		conditions:   map[uuid.UUID]models.PoolConditions{},
		pools:        map[uuid.UUID]models.StakingPool{},
		positions:    map[uuid.UUID]models.Position{},
	})
	return r
}

var _ repository.LedgerRepository = (*Repository)(nil)

// WithinTx serializes writers; the whole transaction holds one lock, which is
// the in-memory equivalent of locking every row it touches.
func (r *Repository) WithinTx(ctx context.Context, fn func(repository.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.txMu.Lock()
	defer r.txMu.Unlock()

	work := r.current.Load().clone()
	if err := fn(&store{snap: work, now: r.now}); err != nil {
		r.log.Debug("In-memory transaction discarded", logger.ErrorField("error", err))
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	r.current.Store(work)
	return nil
}

func (r *Repository) view() *store {
	return &store{snap: r.current.Load(), now: r.now}
}

func (r *Repository) GetWalletByUser(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	return r.view().GetWalletByUser(ctx, userID)
}

func (r *Repository) ListWallets(ctx context.Context) ([]models.Wallet, error) {
	return r.view().ListWallets(ctx)
}

func (r *Repository) GetConditions(ctx context.Context, id uuid.UUID) (*models.PoolConditions, error) {
	return r.view().GetConditions(ctx, id)
}

func (r *Repository) ListConditions(ctx context.Context) ([]models.PoolConditions, error) {
	return r.view().ListConditions(ctx)
}

func (r *Repository) GetPool(ctx context.Context, id uuid.UUID) (*models.StakingPool, error) {
	return r.view().GetPool(ctx, id)
}

func (r *Repository) ListPools(ctx context.Context) ([]models.StakingPool, error) {
	return r.view().ListPools(ctx)
}

func (r *Repository) ListPoolsByConditions(ctx context.Context, conditionsID uuid.UUID) ([]models.StakingPool, error) {
	return r.view().ListPoolsByConditions(ctx, conditionsID)
}

func (r *Repository) GetPoolConditions(ctx context.Context, poolID uuid.UUID) (*models.PoolConditions, error) {
	return r.view().GetPoolConditions(ctx, poolID)
}

func (r *Repository) GetPosition(ctx context.Context, id uuid.UUID) (*models.Position, error) {
	return r.view().GetPosition(ctx, id)
}

func (r *Repository) ListPositionsByUser(ctx context.Context, userID uuid.UUID) ([]models.Position, error) {
	return r.view().ListPositionsByUser(ctx, userID)
}

func (r *Repository) ListPositionsByPool(ctx context.Context, poolID uuid.UUID) ([]models.Position, error) {
	return r.view().ListPositionsByPool(ctx, poolID)
}

func (s *snapshot) clone() *snapshot {
	c := &snapshot{
		wallets:      make(map[uuid.UUID]models.Wallet, len(s.wallets)),
		walletByUser: make(map[uuid.UUID]uuid.UUID, len(s.walletByUser)),
		conditions:   make(map[uuid.UUID]models.PoolConditions, len(s.conditions)),
		pools:        make(map[uuid.UUID]models.StakingPool, len(s.pools)),
		positions:    make(map[uuid.UUID]models.Position, len(s.positions)),
	}
	for k, v := range s.wallets {
		c.wallets[k] = v
	}
	for k, v := range s.walletByUser {
		c.walletByUser[k] = v
	}
	for k, v := range s.conditions {
		c.conditions[k] = v
	}
	for k, v := range s.pools {
		c.pools[k] = v
	}
	for k, v := range s.positions {
		c.positions[k] = v
	}
	return c
}
