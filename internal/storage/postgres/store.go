// Package postgres keeps pool snapshots in Postgres.
package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/fleshka4/tradingpair/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS pool_snapshots (
	pool_address TEXT PRIMARY KEY,
	payload JSONB NOT NULL,
	total_shares NUMERIC(39, 0) NOT NULL,
	trade_count BIGINT NOT NULL,
	saved_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS pool_snapshot_history (
	id BIGSERIAL PRIMARY KEY,
	pool_address TEXT NOT NULL,
	total_shares NUMERIC(39, 0) NOT NULL,
	trade_count BIGINT NOT NULL,
	saved_at TIMESTAMPTZ NOT NULL
);`

const upsertSnapshot = `
INSERT INTO pool_snapshots (pool_address, payload, total_shares, trade_count, saved_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (pool_address)
DO UPDATE SET
	payload = EXCLUDED.payload,
	total_shares = EXCLUDED.total_shares,
	trade_count = EXCLUDED.trade_count,
	saved_at = EXCLUDED.saved_at`

const insertHistory = `
INSERT INTO pool_snapshot_history (pool_address, total_shares, trade_count, saved_at)
VALUES ($1, $2, $3, $4)`

const selectSnapshot = `SELECT payload FROM pool_snapshots WHERE pool_address = $1`

// DB is the subset of *pgxpool.Pool the store needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Store implements storage.Store for a single pool.
type Store struct {
	db    DB
	close func()
	pool  string
}

var _ storage.Store = (*Store)(nil)

// NewStore connects to dsn and prepares the schema.
func NewStore(ctx context.Context, dsn string, poolAddr common.Address) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("pg dsn is required")
	}
	pgPool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "connect postgres")
	}

	s := newStore(pgPool, poolAddr)
	s.close = pgPool.Close
	if err := s.Migrate(ctx); err != nil {
		pgPool.Close()
		return nil, err
	}
	return s, nil
}

func newStore(db DB, poolAddr common.Address) *Store {
	return &Store{db: db, pool: poolAddr.Hex()}
}

// Close releases the connection pool.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// Migrate creates the snapshot tables when missing.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return errors.Wrap(err, "migrate")
	}
	return nil
}

// Load returns the latest snapshot of the pool.
func (s *Store) Load(ctx context.Context) (storage.Snapshot, bool, error) {
	var payload []byte
	if err := s.db.QueryRow(ctx, selectSnapshot, s.pool).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return storage.Snapshot{}, false, nil
		}
		return storage.Snapshot{}, false, errors.Wrap(err, "select snapshot")
	}

	var snap storage.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return storage.Snapshot{}, false, errors.Wrap(err, "parse snapshot")
	}
	return snap, true, nil
}

// Save upserts the latest snapshot and appends a history row in one batch.
func (s *Store) Save(ctx context.Context, snap storage.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return errors.Wrap(err, "marshal snapshot")
	}

	savedAt := snap.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now().UTC()
	}
	totalShares := snap.Pool.TotalShares
	if totalShares == "" {
		totalShares = "0"
	}

	batch := &pgx.Batch{}
	batch.Queue(upsertSnapshot, s.pool, payload, totalShares, snap.Pool.TradeCount, savedAt)
	batch.Queue(insertHistory, s.pool, totalShares, snap.Pool.TradeCount, savedAt)

	br := s.db.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return errors.Wrapf(err, "exec batch statement %d", i)
		}
	}
	return nil
}
