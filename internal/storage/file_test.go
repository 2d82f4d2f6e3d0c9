package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/fleshka4/tradingpair/internal/asset/memory"
	"github.com/fleshka4/tradingpair/internal/pool"
)

func sampleSnapshot() Snapshot {
	alice := common.HexToAddress("0x01")
	return Snapshot{
		Pool: pool.State{
			TotalShares: "1000",
			Balances:    map[common.Address]string{alice: "1000"},
			Allowances: map[common.Address]map[common.Address]string{
				alice: {common.HexToAddress("0x02"): "10"},
			},
			TradeCount: 3,
		},
		Ledgers: []memory.State{{
			Asset:       common.HexToAddress("0xaa"),
			TotalSupply: "500",
			Balances:    map[common.Address]string{alice: "500"},
		}},
		SavedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestFileStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "pool.json")
	store := NewFileStore(path)

	_, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	want := sampleSnapshot()
	require.NoError(t, store.Save(ctx, want))

	got, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, want, got)

	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err))
}

func TestFileStore_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()

	t.Run("directory", func(t *testing.T) {
		_, _, err := NewFileStore(dir).Load(ctx)
		require.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		path := filepath.Join(dir, "garbage.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
		_, _, err := NewFileStore(path).Load(ctx)
		require.Error(t, err)
	})
}
