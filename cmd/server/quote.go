package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fleshka4/tradingpair/internal/config"
	"github.com/fleshka4/tradingpair/internal/infra/erc20"
	"github.com/fleshka4/tradingpair/internal/logging"
	"github.com/fleshka4/tradingpair/internal/pool"
)

func runQuote(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.ValidateQuote(); err != nil {
		return errors.Wrap(err, "invalid config")
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	dirFlag, _ := cmd.Flags().GetString("direction")
	dir, err := pool.ParseDirection(dirFlag)
	if err != nil {
		return err
	}
	amountFlag, _ := cmd.Flags().GetString("amount-in")
	amountIn, err := config.Amount("amount-in", amountFlag)
	if err != nil {
		return err
	}
	var caller common.Address
	if callerFlag, _ := cmd.Flags().GetString("caller"); callerFlag != "" {
		if caller, err = config.Address("caller", callerFlag); err != nil {
			return err
		}
	}

	q := cfg.Quote
	poolAddr, _ := config.Address("quote.pool", q.Pool)
	fee, _ := config.Amount("quote.base_fee_rate", q.BaseFeeRate)

	eth, err := erc20.Dial(q.RPCURL)
	if err != nil {
		return errors.Wrap(err, "dial rpc")
	}
	opts := erc20.Options{CallTimeout: q.CallTimeout, Retries: q.Retries, RetryDelay: q.RetryDelay}
	clients := make([]*erc20.Client, 0, 3)
	for _, field := range []struct{ name, value string }{
		{"quote.asset_a", q.AssetA},
		{"quote.asset_b", q.AssetB},
		{"quote.reference", q.Reference},
	} {
		token, _ := config.Address(field.name, field.value)
		c, err := erc20.NewClient(eth, token, opts)
		if err != nil {
			return err
		}
		clients = append(clients, c)
	}

	ctx := cmd.Context()
	holdings, err := erc20.ReadBalances(ctx, poolAddr, clients[0], clients[1])
	if err != nil {
		return errors.Wrap(err, "read pool holdings")
	}

	// The pool is only priced here; nothing is ever paid to the vault.
	p, err := pool.New(pool.Params{
		AssetA:      clients[0],
		AssetB:      clients[1],
		Reference:   clients[2],
		Self:        poolAddr,
		FeeVault:    poolAddr,
		BaseFeeRate: fee,
	}, logger)
	if err != nil {
		return err
	}

	out, err := p.Price(ctx, dir, caller, amountIn)
	if err != nil {
		return errors.Wrap(err, "price")
	}
	impact, err := p.PriceImpact(ctx, dir, caller, amountIn)
	if err != nil {
		return errors.Wrap(err, "price impact")
	}
	discounted, err := p.Discounted(ctx, caller)
	if err != nil {
		return errors.Wrap(err, "discount")
	}

	logger.Debug("quoted",
		zap.String("pool", poolAddr.Hex()),
		zap.Stringer("direction", dir),
		zap.String("amount_in", amountIn.Dec()),
	)

	w := cmd.OutOrStdout()
	for _, h := range holdings {
		fmt.Fprintf(w, "reserve %s: %s\n", h.Token.Hex(), h.Balance.Dec())
	}
	fmt.Fprintf(w, "direction: %s\n", dir)
	fmt.Fprintf(w, "amount in: %s\n", amountIn.Dec())
	fmt.Fprintf(w, "amount out: %s\n", out.Dec())
	fmt.Fprintf(w, "price impact: %s\n", impact.Dec())
	fmt.Fprintf(w, "discounted: %t\n", discounted)
	return nil
}
