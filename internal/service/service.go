package service

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/fleshka4/tradingpair/internal/asset/memory"
	"github.com/fleshka4/tradingpair/internal/pool"
	"github.com/fleshka4/tradingpair/internal/service/dto"
	"github.com/fleshka4/tradingpair/internal/storage"
)

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock

// Service represents interface for business logic.
type Service interface {
	Provide(ctx context.Context, req dto.ProvideRequest) (*uint256.Int, error)
	Withdraw(ctx context.Context, req dto.WithdrawRequest) (dto.Amounts, error)
	Swap(ctx context.Context, req dto.SwapRequest) (*pool.SwapResult, error)
	TransferShares(ctx context.Context, req dto.TransferSharesRequest) error
	ApproveShares(ctx context.Context, req dto.ApproveSharesRequest) error
	TransferSharesFrom(ctx context.Context, req dto.TransferSharesFromRequest) error
	ApproveAsset(ctx context.Context, req dto.ApproveAssetRequest) error

	WithdrawAmounts(ctx context.Context, shares *uint256.Int) (dto.Amounts, error)
	ExpectedShares(ctx context.Context, depositA *uint256.Int) (*uint256.Int, error)
	Price(ctx context.Context, req dto.QuoteRequest) (*uint256.Int, error)
	PriceImpact(ctx context.Context, req dto.QuoteRequest) (*uint256.Int, error)
	PriceForOne(ctx context.Context, dir pool.Direction, caller common.Address) (*uint256.Int, error)
	CurrentPrice(ctx context.Context, caller common.Address) (*uint256.Int, error)
	Reserves(ctx context.Context) (dto.Amounts, error)
	LockedAmounts(ctx context.Context, account common.Address) (dto.Amounts, error)
	TotalShares(ctx context.Context) *uint256.Int
	ShareOf(ctx context.Context, account common.Address) *uint256.Int
	ShareAllowance(ctx context.Context, owner, spender common.Address) *uint256.Int
	TradeCount(ctx context.Context) int64
	Info(ctx context.Context) dto.PoolInfo

	AssetBalance(ctx context.Context, asset, account common.Address) (*uint256.Int, error)
	AssetAllowance(ctx context.Context, asset, owner, spender common.Address) (*uint256.Int, error)
}

// PoolService hosts a single pool. It runs one call at a time, restores the
// pool and its in-process ledgers when a mutating call fails, and saves a
// snapshot after every successful one.
type PoolService struct {
	mu sync.Mutex

	pool    *pool.Pool
	ledgers []*memory.Ledger
	store   storage.Store
	metrics *Metrics
	logger  *zap.Logger
	now     func() time.Time
}

var _ Service = (*PoolService)(nil)

// Option configures a PoolService.
type Option func(*PoolService)

// WithLedgers lists the in-process ledgers whose state is rolled back and
// persisted together with the pool.
func WithLedgers(ledgers ...*memory.Ledger) Option {
	return func(s *PoolService) {
		s.ledgers = append(s.ledgers, ledgers...)
	}
}

// WithStore enables persistence.
func WithStore(store storage.Store) Option {
	return func(s *PoolService) {
		s.store = store
	}
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(s *PoolService) {
		s.metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *PoolService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewPoolService creates PoolService.
func NewPoolService(p *pool.Pool, opts ...Option) *PoolService {
	s := &PoolService{
		pool:   p,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("component", "service"))
	s.metrics.setTradeCount(p.TradeCount())
	return s
}

// Recover loads the last saved snapshot, if any, into the pool and ledgers.
// It reports whether a snapshot was found.
func (s *PoolService) Recover(ctx context.Context) (bool, error) {
	if s.store == nil {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok, err := s.store.Load(ctx)
	if err != nil {
		return false, errors.Wrap(err, "load snapshot")
	}
	if !ok {
		return false, nil
	}
	if err := s.apply(snap); err != nil {
		return false, errors.Wrap(err, "apply snapshot")
	}

	s.metrics.setTradeCount(s.pool.TradeCount())
	s.logger.Info("state recovered",
		zap.Time("saved_at", snap.SavedAt),
		zap.String("total_shares", snap.Pool.TotalShares),
		zap.Int64("trade_count", snap.Pool.TradeCount),
	)
	return true, nil
}

// mutate runs fn under the service lock. A failing fn leaves the pool and the
// in-process ledgers exactly as they were before the call.
func (s *PoolService) mutate(ctx context.Context, op string, fn func() error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	started := s.now()
	defer func() { s.metrics.observe(op, s.now().Sub(started), err) }()

	before := s.capture()
	if err = fn(); err != nil {
		if rerr := s.apply(before); rerr != nil {
			err = multierr.Append(err, errors.Wrap(rerr, "rollback"))
		}
		s.metrics.rolledBack()
		s.logger.Debug("operation rolled back", zap.String("op", op), zap.Error(err))
		return err
	}

	s.metrics.setTradeCount(s.pool.TradeCount())
	s.persist(ctx, op)
	return nil
}

func (s *PoolService) capture() storage.Snapshot {
	snap := storage.Snapshot{
		Pool:    s.pool.Snapshot(),
		Ledgers: make([]memory.State, 0, len(s.ledgers)),
	}
	for _, l := range s.ledgers {
		snap.Ledgers = append(snap.Ledgers, l.Snapshot())
	}
	return snap
}

func (s *PoolService) apply(snap storage.Snapshot) error {
	byAsset := make(map[common.Address]memory.State, len(snap.Ledgers))
	for _, st := range snap.Ledgers {
		byAsset[st.Asset] = st
	}

	var errs error
	for _, l := range s.ledgers {
		st, ok := byAsset[l.ID()]
		if !ok {
			continue
		}
		if err := l.Restore(st); err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "ledger %s", l.ID().Hex()))
		}
	}
	if err := s.pool.Restore(snap.Pool); err != nil {
		errs = multierr.Append(errs, errors.Wrap(err, "pool"))
	}
	return errs
}

// persist saves the post-call state. A save failure does not undo the call.
func (s *PoolService) persist(ctx context.Context, op string) {
	if s.store == nil {
		return
	}

	snap := s.capture()
	snap.SavedAt = s.now().UTC()
	if err := s.store.Save(ctx, snap); err != nil {
		s.metrics.persistFailed()
		s.logger.Error("persist snapshot failed", zap.String("op", op), zap.Error(err))
	}
}

// query runs a read under the service lock.
func (s *PoolService) query(op string, fn func() error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	started := s.now()
	defer func() { s.metrics.observe(op, s.now().Sub(started), err) }()
	return fn()
}
