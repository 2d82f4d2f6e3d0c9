// Package storage persists pool snapshots between restarts.
package storage

import (
	"context"
	"time"

	"github.com/fleshka4/tradingpair/internal/asset/memory"
	"github.com/fleshka4/tradingpair/internal/pool"
)

// Snapshot is the complete state of a hosted pool: its share ledger and
// trade counter plus the in-process asset ledgers it trades on.
type Snapshot struct {
	Pool    pool.State     `json:"pool"`
	Ledgers []memory.State `json:"ledgers"`
	SavedAt time.Time      `json:"saved_at"`
}

//go:generate mockgen -source=storage.go -destination=mock/storage.go -package=mock

// Store loads and saves the latest snapshot. Load reports false when nothing
// was saved yet.
type Store interface {
	Load(ctx context.Context) (Snapshot, bool, error)
	Save(ctx context.Context, snap Snapshot) error
}
