package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func addr(suffix string) string {
	return "0x000000000000000000000000000000000000" + suffix
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, "pool:\n  self: \"0x01\"\n"))
	require.NoError(t, err)

	require.Equal(t, ":1337", cfg.ListenAddr)
	require.Equal(t, 5*time.Second, cfg.GraceTimeout)
	require.Equal(t, 5*time.Second, cfg.RequestTimeout)
	require.Equal(t, 5*time.Second, cfg.ReadHeaderTimeout)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "0", cfg.Pool.BaseFeeRate)
	require.Equal(t, StorageNone, cfg.Storage.Driver)
	require.Equal(t, 200*time.Millisecond, cfg.Quote.RetryDelay)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "listen_adr: \":80\"\n"))
	require.Error(t, err)

	_, err = Load(writeConfig(t, "request_timeout: soon\n"))
	require.Error(t, err)
}

func TestSampleConfig(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join("..", "..", "cfg", "config.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.ValidateServe())
	require.NoError(t, cfg.ValidateQuote())
	require.Equal(t, 2, cfg.Quote.Retries)
}

func TestValidateServe(t *testing.T) {
	t.Parallel()

	valid := func() Config {
		cfg := Config{
			Pool: PoolConfig{Self: addr("9001"), FeeVault: addr("0fee")},
			Assets: AssetsConfig{
				A:         AssetConfig{Address: addr("00aa"), Genesis: map[string]string{addr("0001"): "100"}},
				B:         AssetConfig{Address: addr("00bb")},
				Reference: AssetConfig{Address: addr("00cc")},
			},
		}
		cfg.applyDefaults()
		return cfg
	}

	require.NoError(t, valid().ValidateServe())

	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{name: "zero pool account", modify: func(c *Config) { c.Pool.Self = addr("0000") }},
		{name: "bad vault", modify: func(c *Config) { c.Pool.FeeVault = "vault" }},
		{name: "negative fee", modify: func(c *Config) { c.Pool.BaseFeeRate = "-1" }},
		{name: "bad genesis amount", modify: func(c *Config) { c.Assets.A.Genesis[addr("0001")] = "lots" }},
		{name: "bad genesis account", modify: func(c *Config) { c.Assets.A.Genesis = map[string]string{"alice": "1"} }},
		{name: "bad allowance spender", modify: func(c *Config) {
			c.Assets.A.Allowances = map[string]map[string]string{addr("0001"): {"pool": "1"}}
		}},
		{name: "bad allowance amount", modify: func(c *Config) {
			c.Assets.B.Allowances = map[string]map[string]string{addr("0001"): {addr("9001"): "all"}}
		}},
		{name: "tax above 100", modify: func(c *Config) { c.Assets.B.TransferTax = 101 }},
		{name: "file without path", modify: func(c *Config) { c.Storage.Driver = StorageFile }},
		{name: "postgres without dsn", modify: func(c *Config) { c.Storage.Driver = StoragePostgres }},
		{name: "unknown driver", modify: func(c *Config) { c.Storage.Driver = "redis" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.modify(&cfg)
			require.Error(t, cfg.ValidateServe())
		})
	}
}

func TestValidateQuote(t *testing.T) {
	t.Parallel()

	cfg := Config{}
	cfg.applyDefaults()
	require.Error(t, cfg.ValidateQuote())

	cfg.Quote = QuoteConfig{
		RPCURL:      "http://localhost:8545",
		Pool:        addr("9001"),
		AssetA:      addr("00aa"),
		AssetB:      addr("00bb"),
		Reference:   addr("00cc"),
		BaseFeeRate: "3000000000000",
	}
	require.NoError(t, cfg.ValidateQuote())

	cfg.Quote.Retries = -1
	require.Error(t, cfg.ValidateQuote())
}

func TestParseGenesis(t *testing.T) {
	t.Parallel()

	got, err := AssetConfig{Genesis: map[string]string{addr("0001"): "42"}}.ParseGenesis()
	require.NoError(t, err)
	require.Equal(t, uint64(42), got[common.HexToAddress(addr("0001"))].Uint64())
}

func TestParseAllowances(t *testing.T) {
	t.Parallel()

	got, err := AssetConfig{Allowances: map[string]map[string]string{
		addr("0001"): {addr("9001"): "42", addr("0002"): "7"},
	}}.ParseAllowances()
	require.NoError(t, err)
	owner := got[common.HexToAddress(addr("0001"))]
	require.Len(t, owner, 2)
	require.Equal(t, uint64(42), owner[common.HexToAddress(addr("9001"))].Uint64())

	_, err = AssetConfig{Allowances: map[string]map[string]string{"owner": {addr("9001"): "1"}}}.ParseAllowances()
	require.Error(t, err)
}
