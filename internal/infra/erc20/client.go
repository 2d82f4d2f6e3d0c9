package erc20

import (
	"context"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/fleshka4/tradingpair/internal/apperrors"
	"github.com/fleshka4/tradingpair/internal/dexmath"
)

const erc20ABIJSON = `[
	{"inputs":[{"internalType":"address","name":"account","type":"address"}],"name":"balanceOf","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"internalType":"address","name":"owner","type":"address"},{"internalType":"address","name":"spender","type":"address"}],"name":"allowance","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

//go:generate mockgen -source=client.go -destination=mock/client.go -package=mock

// EthCaller represents interface for calling contracts.
type EthCaller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// Options tune contract reads.
type Options struct {
	CallTimeout time.Duration
	Retries     int
	RetryDelay  time.Duration
}

// Client reads an ERC-20 token over JSON-RPC. It satisfies asset.Ledger for
// quoting against live on-chain holdings; it cannot move funds.
type Client struct {
	caller   EthCaller
	tokenABI abi.ABI
	token    common.Address

	retry retrier
}

// Dial connects to an Ethereum JSON-RPC endpoint.
func Dial(rpcURL string) (EthCaller, error) {
	caller, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, errors.Wrap(err, "ethclient.Dial")
	}
	return caller, nil
}

// NewClient creates a Client for token backed by caller.
func NewClient(caller EthCaller, token common.Address, opts Options) (*Client, error) {
	if caller == nil {
		return nil, errors.New("eth caller is nil")
	}

	tokenABI, err := abi.JSON(strings.NewReader(erc20ABIJSON))
	if err != nil {
		return nil, errors.Wrap(err, "abi.JSON")
	}

	return &Client{
		caller:   caller,
		tokenABI: tokenABI,
		token:    token,

		retry: newRetrier(opts),
	}, nil
}

// ID returns the token address.
func (c *Client) ID() common.Address {
	return c.token
}

// BalanceOf returns the token balance of account.
func (c *Client) BalanceOf(ctx context.Context, account common.Address) (*uint256.Int, error) {
	return c.callAmount(ctx, "balanceOf", account)
}

// Allowance returns how much spender may move on behalf of owner.
func (c *Client) Allowance(ctx context.Context, owner, spender common.Address) (*uint256.Int, error) {
	return c.callAmount(ctx, "allowance", owner, spender)
}

// Transfer always fails: the client holds no keys.
func (c *Client) Transfer(context.Context, common.Address, common.Address, *uint256.Int) error {
	return errors.Wrapf(apperrors.ErrReadOnly, "transfer on %s", c.token.Hex())
}

// TransferFrom always fails: the client holds no keys.
func (c *Client) TransferFrom(context.Context, common.Address, common.Address, common.Address, *uint256.Int) error {
	return errors.Wrapf(apperrors.ErrReadOnly, "transferFrom on %s", c.token.Hex())
}

func (c *Client) callAmount(ctx context.Context, method string, args ...interface{}) (*uint256.Int, error) {
	var out []interface{}
	err := c.retry.do(ctx, func(ctx context.Context) error {
		var err error
		out, err = c.call(ctx, method, args...)
		return err
	})
	if err != nil {
		return nil, errors.Wrapf(err, "%s on %s", method, c.token.Hex())
	}

	if len(out) == 0 {
		return nil, errors.Errorf("empty %s output", method)
	}
	raw, ok := out[0].(*big.Int)
	if !ok {
		return nil, errors.Errorf("failed to cast %s result to *big.Int", method)
	}

	v, overflow := uint256.FromBig(raw)
	if overflow || !dexmath.InDomain(v) {
		return nil, errors.Wrapf(apperrors.ErrArithmetic, "%s result %s exceeds balance domain", method, raw.String())
	}
	return v, nil
}

func (c *Client) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	data, err := c.tokenABI.Pack(method, args...)
	if err != nil {
		return nil, permanent(errors.Wrap(err, "c.tokenABI.Pack"))
	}

	res, err := c.caller.CallContract(
		ctx,
		ethereum.CallMsg{
			To:   &c.token,
			Data: data,
		},
		nil,
	)
	if err != nil {
		return nil, errors.Wrap(err, "c.caller.CallContract")
	}

	out, err := c.tokenABI.Unpack(method, res)
	if err != nil {
		return nil, permanent(errors.Wrap(err, "c.tokenABI.Unpack"))
	}

	return out, nil
}

// Holding is one account balance on one token.
type Holding struct {
	Token   common.Address
	Balance *uint256.Int
}

// ReadBalances reads the balance of account on every client concurrently.
// Results keep the order of clients.
func ReadBalances(ctx context.Context, account common.Address, clients ...*Client) ([]Holding, error) {
	type result struct {
		idx     int
		balance *uint256.Int
		err     error
	}

	var wg sync.WaitGroup
	ch := make(chan result, len(clients))

	read := func(idx int, c *Client) {
		defer wg.Done()

		select {
		case <-ctx.Done():
			ch <- result{idx: idx, err: errors.Wrap(ctx.Err(), "context cancelled before call")}
			return
		default:
		}

		bal, err := c.BalanceOf(ctx, account)
		if err != nil {
			ch <- result{idx: idx, err: errors.Wrapf(err, "failed to read %s", c.token.Hex())}
			return
		}
		ch <- result{idx: idx, balance: bal}
	}

	wg.Add(len(clients))
	for i, c := range clients {
		go read(i, c)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	holdings := make([]Holding, len(clients))
	var combinedErr error
	for r := range ch {
		if r.err != nil {
			combinedErr = multierr.Append(combinedErr, r.err)
			continue
		}
		holdings[r.idx] = Holding{Token: clients[r.idx].token, Balance: r.balance}
	}

	if combinedErr != nil {
		return nil, errors.Wrap(combinedErr, "failed to read balances")
	}
	return holdings, nil
}
