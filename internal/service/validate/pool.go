package validate

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/fleshka4/tradingpair/internal/apperrors"
	"github.com/fleshka4/tradingpair/internal/dexmath"
	"github.com/fleshka4/tradingpair/internal/pool"
	"github.com/fleshka4/tradingpair/internal/service/dto"
)

var zeroAddress = common.Address{}

// ProvideRequestValidate validates a provide request.
func ProvideRequestValidate(req dto.ProvideRequest) error {
	if req.Caller == zeroAddress {
		return errors.Wrap(apperrors.ErrInvalidArgument, "caller cannot be empty")
	}
	if err := positive("deposit a", req.DepositA); err != nil {
		return err
	}
	if err := positive("deposit b", req.DepositB); err != nil {
		return err
	}
	if err := present("expected shares", req.ExpectedShares); err != nil {
		return err
	}
	return present("slippage", req.Slippage)
}

// WithdrawRequestValidate validates a withdraw request.
func WithdrawRequestValidate(req dto.WithdrawRequest) error {
	if req.Caller == zeroAddress {
		return errors.Wrap(apperrors.ErrInvalidArgument, "caller cannot be empty")
	}
	return positive("shares", req.Shares)
}

// SwapRequestValidate validates a swap request.
func SwapRequestValidate(req dto.SwapRequest) error {
	if err := QuoteRequestValidate(dto.QuoteRequest{
		Caller:    req.Caller,
		Direction: req.Direction,
		AmountIn:  req.AmountIn,
	}); err != nil {
		return err
	}
	if err := present("expected out", req.ExpectedOut); err != nil {
		return err
	}
	return present("slippage", req.Slippage)
}

// QuoteRequestValidate validates a price or price impact request. A zero
// caller is allowed and simply gets no discount.
func QuoteRequestValidate(req dto.QuoteRequest) error {
	if req.Direction != pool.AToB && req.Direction != pool.BToA {
		return errors.Wrapf(apperrors.ErrInvalidArgument, "unknown direction %d", req.Direction)
	}
	return positive("amount in", req.AmountIn)
}

// TransferSharesRequestValidate validates a share transfer.
func TransferSharesRequestValidate(req dto.TransferSharesRequest) error {
	if req.Caller == zeroAddress || req.To == zeroAddress {
		return errors.Wrap(apperrors.ErrInvalidArgument, "address cannot be empty")
	}
	return present("amount", req.Amount)
}

// ApproveSharesRequestValidate validates a share approval.
func ApproveSharesRequestValidate(req dto.ApproveSharesRequest) error {
	if req.Caller == zeroAddress || req.Spender == zeroAddress {
		return errors.Wrap(apperrors.ErrInvalidArgument, "address cannot be empty")
	}
	return present("amount", req.Amount)
}

// ApproveAssetRequestValidate validates an asset approval.
func ApproveAssetRequestValidate(req dto.ApproveAssetRequest) error {
	if req.Caller == zeroAddress || req.Asset == zeroAddress || req.Spender == zeroAddress {
		return errors.Wrap(apperrors.ErrInvalidArgument, "address cannot be empty")
	}
	return present("amount", req.Amount)
}

// TransferSharesFromRequestValidate validates a delegated share transfer.
func TransferSharesFromRequestValidate(req dto.TransferSharesFromRequest) error {
	if req.Caller == zeroAddress || req.Owner == zeroAddress || req.To == zeroAddress {
		return errors.Wrap(apperrors.ErrInvalidArgument, "address cannot be empty")
	}
	return present("amount", req.Amount)
}

func present(name string, v *uint256.Int) error {
	if v == nil {
		return errors.Wrapf(apperrors.ErrInvalidArgument, "%s is required", name)
	}
	if !dexmath.InDomain(v) {
		return errors.Wrapf(apperrors.ErrArithmetic, "%s exceeds the balance domain", name)
	}
	return nil
}

func positive(name string, v *uint256.Int) error {
	if err := present(name, v); err != nil {
		return err
	}
	if v.IsZero() {
		return errors.Wrapf(apperrors.ErrInvalidArgument, "%s cannot be zero", name)
	}
	return nil
}
