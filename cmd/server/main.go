package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fleshka4/tradingpair/internal/asset/memory"
	"github.com/fleshka4/tradingpair/internal/config"
	"github.com/fleshka4/tradingpair/internal/logging"
	"github.com/fleshka4/tradingpair/internal/pool"
	"github.com/fleshka4/tradingpair/internal/service"
	"github.com/fleshka4/tradingpair/internal/storage"
	"github.com/fleshka4/tradingpair/internal/storage/postgres"
	transporthttp "github.com/fleshka4/tradingpair/internal/transport/http"
)

const defaultConfigPath = "cfg/config.yaml"

func main() {
	root := &cobra.Command{
		Use:          "tradingpair",
		Short:        "Constant-product trading pair",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path (default $CONFIG_PATH or "+defaultConfigPath+")")
	root.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Host the pool over HTTP",
		RunE:  runServe,
	}
	serveCmd.Flags().String("listen", "", "listen address override")

	root.AddCommand(serveCmd)

	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Quote a swap against live ERC-20 holdings of a pool account",
		RunE:  runQuote,
	}
	quoteCmd.Flags().String("direction", "a_to_b", "swap direction (a_to_b, b_to_a)")
	quoteCmd.Flags().String("amount-in", "1000000000000", "input amount")
	quoteCmd.Flags().String("caller", "", "account whose reference balance decides the fee discount")

	root.AddCommand(quoteCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = defaultConfigPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
		cfg.ListenAddr = listen
	}
	if err := cfg.ValidateServe(); err != nil {
		return errors.Wrap(err, "invalid config")
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ledgers, err := newLedgers(cfg.Assets)
	if err != nil {
		return err
	}
	p, err := newPool(cfg.Pool, ledgers, logger)
	if err != nil {
		return err
	}

	store, closeStore, err := newStore(ctx, cfg.Storage, p.Self())
	if err != nil {
		return err
	}
	defer closeStore()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	opts := []service.Option{
		service.WithLedgers(ledgers.a, ledgers.b, ledgers.ref),
		service.WithMetrics(service.NewMetrics(reg)),
		service.WithLogger(logger),
	}
	if store != nil {
		opts = append(opts, service.WithStore(store))
	}
	svc := service.NewPoolService(p, opts...)

	recovered, err := svc.Recover(ctx)
	if err != nil {
		return err
	}

	assetA, assetB := p.Assets()
	logger.Info("pool ready",
		zap.String("self", p.Self().Hex()),
		zap.String("asset_a", assetA.Hex()),
		zap.String("asset_b", assetB.Hex()),
		zap.String("base_fee_rate", p.BaseFeeRate().Dec()),
		zap.String("storage", cfg.Storage.Driver),
		zap.Bool("recovered", recovered),
	)

	srv := transporthttp.NewServer(svc, cfg, logger, reg)
	return srv.Run(ctx, cfg.ListenAddr)
}

type ledgerSet struct {
	a, b, ref *memory.Ledger
}

// newLedgers creates the in-process ledgers, mints their genesis balances and
// sets their genesis allowances.
func newLedgers(cfg config.AssetsConfig) (ledgerSet, error) {
	build := func(name string, ac config.AssetConfig) (*memory.Ledger, error) {
		id, err := config.Address(name+".address", ac.Address)
		if err != nil {
			return nil, err
		}
		var opts []memory.Option
		if ac.TransferTax > 0 {
			opts = append(opts, memory.WithTransferTax(ac.TransferTax))
		}
		l := memory.New(id, opts...)

		genesis, err := ac.ParseGenesis()
		if err != nil {
			return nil, errors.Wrap(err, name)
		}
		for acc, amount := range genesis {
			if err := l.Mint(acc, amount); err != nil {
				return nil, errors.Wrapf(err, "%s genesis of %s", name, acc.Hex())
			}
		}

		allowances, err := ac.ParseAllowances()
		if err != nil {
			return nil, errors.Wrap(err, name)
		}
		for owner, spenders := range allowances {
			for spender, amount := range spenders {
				if err := l.Approve(context.Background(), owner, spender, amount); err != nil {
					return nil, errors.Wrapf(err, "%s allowance of %s", name, owner.Hex())
				}
			}
		}
		return l, nil
	}

	var (
		set ledgerSet
		err error
	)
	if set.a, err = build("assets.a", cfg.A); err != nil {
		return ledgerSet{}, err
	}
	if set.b, err = build("assets.b", cfg.B); err != nil {
		return ledgerSet{}, err
	}
	if set.ref, err = build("assets.reference", cfg.Reference); err != nil {
		return ledgerSet{}, err
	}
	return set, nil
}

func newPool(cfg config.PoolConfig, ledgers ledgerSet, logger *zap.Logger) (*pool.Pool, error) {
	self, err := config.Address("pool.self", cfg.Self)
	if err != nil {
		return nil, err
	}
	vault, err := config.Address("pool.fee_vault", cfg.FeeVault)
	if err != nil {
		return nil, err
	}
	fee, err := config.Amount("pool.base_fee_rate", cfg.BaseFeeRate)
	if err != nil {
		return nil, err
	}

	return pool.New(pool.Params{
		AssetA:      ledgers.a,
		AssetB:      ledgers.b,
		Reference:   ledgers.ref,
		Self:        self,
		FeeVault:    vault,
		BaseFeeRate: fee,
	}, logger)
}

// newStore opens the configured snapshot store. A nil store disables
// persistence.
func newStore(ctx context.Context, cfg config.StorageConfig, self common.Address) (storage.Store, func(), error) {
	switch cfg.Driver {
	case config.StorageFile:
		return storage.NewFileStore(cfg.Path), func() {}, nil
	case config.StoragePostgres:
		pg, err := postgres.NewStore(ctx, cfg.DSN, self)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil
	default:
		return nil, func() {}, nil
	}
}
