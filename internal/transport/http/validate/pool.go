package validate

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/fleshka4/tradingpair/internal/dexmath"
	"github.com/fleshka4/tradingpair/internal/pool"
	svcdto "github.com/fleshka4/tradingpair/internal/service/dto"
	"github.com/fleshka4/tradingpair/internal/transport/http/dto"
)

// CallerHeader names the request header carrying the caller's address.
const CallerHeader = "X-Caller"

const maxBodyBytes = 1 << 16

// ProvideRequestValidate validates /provide request and returns dto.
func ProvideRequestValidate(r *http.Request) (*svcdto.ProvideRequest, int, error) {
	caller, err := Caller(r)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	var body dto.ProvideRequest
	if err := decode(r, &body); err != nil {
		return nil, http.StatusBadRequest, err
	}

	var out svcdto.ProvideRequest
	out.Caller = caller
	if out.DepositA, err = amount("deposit_a", body.DepositA); err != nil {
		return nil, http.StatusBadRequest, err
	}
	if out.DepositB, err = amount("deposit_b", body.DepositB); err != nil {
		return nil, http.StatusBadRequest, err
	}
	if out.ExpectedShares, err = amount("expected_shares", body.ExpectedShares); err != nil {
		return nil, http.StatusBadRequest, err
	}
	if out.Slippage, err = amount("slippage", body.Slippage); err != nil {
		return nil, http.StatusBadRequest, err
	}
	return &out, 0, nil
}

// WithdrawRequestValidate validates /withdraw request and returns dto.
func WithdrawRequestValidate(r *http.Request) (*svcdto.WithdrawRequest, int, error) {
	caller, err := Caller(r)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	var body dto.WithdrawRequest
	if err := decode(r, &body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	shares, err := amount("shares", body.Shares)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	return &svcdto.WithdrawRequest{Caller: caller, Shares: shares}, 0, nil
}

// SwapRequestValidate validates /swap request and returns dto.
func SwapRequestValidate(r *http.Request) (*svcdto.SwapRequest, int, error) {
	caller, err := Caller(r)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	var body dto.SwapRequest
	if err := decode(r, &body); err != nil {
		return nil, http.StatusBadRequest, err
	}

	out := svcdto.SwapRequest{Caller: caller}
	if out.Direction, err = pool.ParseDirection(body.Direction); err != nil {
		return nil, http.StatusBadRequest, err
	}
	if out.AmountIn, err = amount("amount_in", body.AmountIn); err != nil {
		return nil, http.StatusBadRequest, err
	}
	if out.ExpectedOut, err = amount("expected_out", body.ExpectedOut); err != nil {
		return nil, http.StatusBadRequest, err
	}
	if out.Slippage, err = amount("slippage", body.Slippage); err != nil {
		return nil, http.StatusBadRequest, err
	}
	return &out, 0, nil
}

// TransferSharesRequestValidate validates /shares/transfer request and returns dto.
func TransferSharesRequestValidate(r *http.Request) (*svcdto.TransferSharesRequest, int, error) {
	caller, err := Caller(r)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	var body dto.TransferSharesRequest
	if err := decode(r, &body); err != nil {
		return nil, http.StatusBadRequest, err
	}

	out := svcdto.TransferSharesRequest{Caller: caller}
	if out.To, err = address("to", body.To); err != nil {
		return nil, http.StatusBadRequest, err
	}
	if out.Amount, err = amount("amount", body.Amount); err != nil {
		return nil, http.StatusBadRequest, err
	}
	return &out, 0, nil
}

// ApproveSharesRequestValidate validates /shares/approve request and returns dto.
func ApproveSharesRequestValidate(r *http.Request) (*svcdto.ApproveSharesRequest, int, error) {
	caller, err := Caller(r)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	var body dto.ApproveSharesRequest
	if err := decode(r, &body); err != nil {
		return nil, http.StatusBadRequest, err
	}

	out := svcdto.ApproveSharesRequest{Caller: caller}
	if out.Spender, err = address("spender", body.Spender); err != nil {
		return nil, http.StatusBadRequest, err
	}
	if out.Amount, err = amount("amount", body.Amount); err != nil {
		return nil, http.StatusBadRequest, err
	}
	return &out, 0, nil
}

// ApproveAssetRequestValidate validates /assets/{asset}/approve request and returns dto.
func ApproveAssetRequestValidate(r *http.Request) (*svcdto.ApproveAssetRequest, int, error) {
	caller, err := Caller(r)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	asset, code, err := PathAddress(r, "asset")
	if err != nil {
		return nil, code, err
	}
	var body dto.ApproveAssetRequest
	if err := decode(r, &body); err != nil {
		return nil, http.StatusBadRequest, err
	}

	out := svcdto.ApproveAssetRequest{Caller: caller, Asset: asset}
	if out.Spender, err = address("spender", body.Spender); err != nil {
		return nil, http.StatusBadRequest, err
	}
	if out.Amount, err = amount("amount", body.Amount); err != nil {
		return nil, http.StatusBadRequest, err
	}
	return &out, 0, nil
}

// TransferSharesFromRequestValidate validates /shares/transfer-from request and returns dto.
func TransferSharesFromRequestValidate(r *http.Request) (*svcdto.TransferSharesFromRequest, int, error) {
	caller, err := Caller(r)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	var body dto.TransferSharesFromRequest
	if err := decode(r, &body); err != nil {
		return nil, http.StatusBadRequest, err
	}

	out := svcdto.TransferSharesFromRequest{Caller: caller}
	if out.Owner, err = address("owner", body.Owner); err != nil {
		return nil, http.StatusBadRequest, err
	}
	if out.To, err = address("to", body.To); err != nil {
		return nil, http.StatusBadRequest, err
	}
	if out.Amount, err = amount("amount", body.Amount); err != nil {
		return nil, http.StatusBadRequest, err
	}
	return &out, 0, nil
}

// QuoteRequestValidate validates /price and /price-impact requests. The
// caller header is optional for quotes.
func QuoteRequestValidate(r *http.Request) (*svcdto.QuoteRequest, int, error) {
	caller, err := OptionalCaller(r)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	q := r.URL.Query()
	dir, err := pool.ParseDirection(q.Get("direction"))
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	amountIn, err := amount("amount_in", q.Get("amount_in"))
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	return &svcdto.QuoteRequest{Caller: caller, Direction: dir, AmountIn: amountIn}, 0, nil
}

// QueryAmount reads a required amount from the query string.
func QueryAmount(r *http.Request, name string) (*uint256.Int, int, error) {
	v, err := amount(name, r.URL.Query().Get(name))
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	return v, 0, nil
}

// QueryAddress reads a required address from the query string.
func QueryAddress(r *http.Request, name string) (common.Address, int, error) {
	v, err := address(name, r.URL.Query().Get(name))
	if err != nil {
		return common.Address{}, http.StatusBadRequest, err
	}
	return v, 0, nil
}

// PathAddress reads an address from a path wildcard.
func PathAddress(r *http.Request, name string) (common.Address, int, error) {
	v, err := address(name, r.PathValue(name))
	if err != nil {
		return common.Address{}, http.StatusBadRequest, err
	}
	return v, 0, nil
}

// QueryDirection reads the swap direction from the query string.
func QueryDirection(r *http.Request) (pool.Direction, int, error) {
	dir, err := pool.ParseDirection(r.URL.Query().Get("direction"))
	if err != nil {
		return 0, http.StatusBadRequest, err
	}
	return dir, 0, nil
}

// Caller returns the address in the caller header.
func Caller(r *http.Request) (common.Address, error) {
	return address(CallerHeader, r.Header.Get(CallerHeader))
}

// OptionalCaller returns the caller header address or the zero address when
// the header is absent.
func OptionalCaller(r *http.Request) (common.Address, error) {
	if r.Header.Get(CallerHeader) == "" {
		return common.Address{}, nil
	}
	return Caller(r)
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(err, "bad request body")
	}
	return nil
}

func amount(name, s string) (*uint256.Int, error) {
	if s == "" {
		return nil, errors.Errorf("missing %s", name)
	}
	v, err := dexmath.Parse(s)
	if err != nil {
		return nil, errors.Wrapf(err, "bad %s", name)
	}
	return v, nil
}

func address(name, s string) (common.Address, error) {
	if s == "" {
		return common.Address{}, errors.Errorf("missing %s", name)
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, errors.Errorf("bad %s address format", name)
	}
	return common.HexToAddress(s), nil
}
