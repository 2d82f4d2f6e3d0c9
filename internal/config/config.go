package config

import (
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/fleshka4/tradingpair/internal/dexmath"
)

// Storage drivers.
const (
	StorageNone     = "none"
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

// Config holds application configuration loaded from file.
type Config struct {
	ListenAddr        string        `yaml:"listen_addr"`
	GraceTimeout      time.Duration `yaml:"shutdown_timeout"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	LogLevel          string        `yaml:"log_level"`

	Pool    PoolConfig    `yaml:"pool"`
	Assets  AssetsConfig  `yaml:"assets"`
	Storage StorageConfig `yaml:"storage"`
	Quote   QuoteConfig   `yaml:"quote"`
}

// PoolConfig describes the hosted pool.
type PoolConfig struct {
	Self        string `yaml:"self"`
	FeeVault    string `yaml:"fee_vault"`
	BaseFeeRate string `yaml:"base_fee_rate"`
}

// AssetConfig describes one in-process asset ledger, its initial holders and
// their initial allowances (owner -> spender -> amount).
type AssetConfig struct {
	Address     string                       `yaml:"address"`
	TransferTax uint64                       `yaml:"transfer_tax"`
	Genesis     map[string]string            `yaml:"genesis"`
	Allowances  map[string]map[string]string `yaml:"genesis_allowances"`
}

// AssetsConfig lists the traded assets and the reference asset.
type AssetsConfig struct {
	A         AssetConfig `yaml:"a"`
	B         AssetConfig `yaml:"b"`
	Reference AssetConfig `yaml:"reference"`
}

// StorageConfig selects where snapshots are kept.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
	DSN    string `yaml:"dsn"`
}

// QuoteConfig points the quote command at a pool account on chain.
type QuoteConfig struct {
	RPCURL      string        `yaml:"rpc_url"`
	Pool        string        `yaml:"pool"`
	AssetA      string        `yaml:"asset_a"`
	AssetB      string        `yaml:"asset_b"`
	Reference   string        `yaml:"reference"`
	BaseFeeRate string        `yaml:"base_fee_rate"`
	CallTimeout time.Duration `yaml:"call_timeout"`
	Retries     int           `yaml:"retries"`
	RetryDelay  time.Duration `yaml:"retry_delay"`
}

// Load reads the config from a YAML file path and fills in defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "open config file")
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	var cfg Config
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse config file")
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	const defaultTimeout = 5 * time.Second
	if c.ListenAddr == "" {
		c.ListenAddr = ":1337"
	}
	if c.GraceTimeout == 0 {
		c.GraceTimeout = defaultTimeout
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = defaultTimeout
	}
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = defaultTimeout
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Pool.BaseFeeRate == "" {
		c.Pool.BaseFeeRate = "0"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = StorageNone
	}
	if c.Quote.BaseFeeRate == "" {
		c.Quote.BaseFeeRate = "0"
	}
	if c.Quote.CallTimeout == 0 {
		c.Quote.CallTimeout = defaultTimeout
	}
	if c.Quote.RetryDelay == 0 {
		c.Quote.RetryDelay = 200 * time.Millisecond
	}
}

// ValidateServe checks the sections the pool server needs.
func (c Config) ValidateServe() error {
	var errs error
	if _, err := Address("pool.self", c.Pool.Self); err != nil {
		errs = multierr.Append(errs, err)
	}
	if _, err := Address("pool.fee_vault", c.Pool.FeeVault); err != nil {
		errs = multierr.Append(errs, err)
	}
	if _, err := Amount("pool.base_fee_rate", c.Pool.BaseFeeRate); err != nil {
		errs = multierr.Append(errs, err)
	}
	for name, a := range map[string]AssetConfig{
		"assets.a":         c.Assets.A,
		"assets.b":         c.Assets.B,
		"assets.reference": c.Assets.Reference,
	} {
		if _, err := a.ParseGenesis(); err != nil {
			errs = multierr.Append(errs, errors.Wrap(err, name))
		}
		if _, err := a.ParseAllowances(); err != nil {
			errs = multierr.Append(errs, errors.Wrap(err, name))
		}
		if _, err := Address(name+".address", a.Address); err != nil {
			errs = multierr.Append(errs, err)
		}
		if a.TransferTax > 100 {
			errs = multierr.Append(errs, errors.Errorf("%s.transfer_tax must be at most 100", name))
		}
	}

	switch c.Storage.Driver {
	case StorageNone:
	case StorageFile:
		if c.Storage.Path == "" {
			errs = multierr.Append(errs, errors.New("storage.path is required for the file driver"))
		}
	case StoragePostgres:
		if c.Storage.DSN == "" {
			errs = multierr.Append(errs, errors.New("storage.dsn is required for the postgres driver"))
		}
	default:
		errs = multierr.Append(errs, errors.Errorf("unknown storage driver %q", c.Storage.Driver))
	}
	return errs
}

// ValidateQuote checks the quote section.
func (c Config) ValidateQuote() error {
	var errs error
	if c.Quote.RPCURL == "" {
		errs = multierr.Append(errs, errors.New("quote.rpc_url is required"))
	}
	for name, v := range map[string]string{
		"quote.pool":      c.Quote.Pool,
		"quote.asset_a":   c.Quote.AssetA,
		"quote.asset_b":   c.Quote.AssetB,
		"quote.reference": c.Quote.Reference,
	} {
		if _, err := Address(name, v); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	if _, err := Amount("quote.base_fee_rate", c.Quote.BaseFeeRate); err != nil {
		errs = multierr.Append(errs, err)
	}
	if c.Quote.Retries < 0 {
		errs = multierr.Append(errs, errors.New("quote.retries cannot be negative"))
	}
	return errs
}

// ParseGenesis returns the initial balances of the asset.
func (a AssetConfig) ParseGenesis() (map[common.Address]*uint256.Int, error) {
	out := make(map[common.Address]*uint256.Int, len(a.Genesis))
	for acc, amount := range a.Genesis {
		addr, err := Address("genesis account", acc)
		if err != nil {
			return nil, err
		}
		v, err := Amount("genesis amount of "+acc, amount)
		if err != nil {
			return nil, err
		}
		out[addr] = v
	}
	return out, nil
}

// ParseAllowances returns the initial allowances of the asset keyed by owner,
// then spender.
func (a AssetConfig) ParseAllowances() (map[common.Address]map[common.Address]*uint256.Int, error) {
	out := make(map[common.Address]map[common.Address]*uint256.Int, len(a.Allowances))
	for owner, spenders := range a.Allowances {
		ownerAddr, err := Address("allowance owner", owner)
		if err != nil {
			return nil, err
		}
		byOwner := make(map[common.Address]*uint256.Int, len(spenders))
		for spender, amount := range spenders {
			spenderAddr, err := Address("allowance spender", spender)
			if err != nil {
				return nil, err
			}
			v, err := Amount("allowance of "+owner+" for "+spender, amount)
			if err != nil {
				return nil, err
			}
			byOwner[spenderAddr] = v
		}
		out[ownerAddr] = byOwner
	}
	return out, nil
}

// Address parses a non-zero hex address.
func Address(field, s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, errors.Errorf("%s: bad address %q", field, s)
	}
	addr := common.HexToAddress(s)
	if addr == (common.Address{}) {
		return common.Address{}, errors.Errorf("%s: zero address", field)
	}
	return addr, nil
}

// Amount parses a base-10 amount in the balance domain.
func Amount(field, s string) (*uint256.Int, error) {
	v, err := dexmath.Parse(s)
	if err != nil {
		return nil, errors.Wrap(err, field)
	}
	return v, nil
}
