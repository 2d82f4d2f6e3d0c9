package apperrors

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

var (
	// ErrInvalidArgument is returned when the request parameters are invalid.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInsufficientLiquidity is returned when the pool does not have enough
	// reserves to quote or execute the requested swap.
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")

	// ErrInsufficientFunds is returned when an account balance is lower than
	// the requested amount.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientAllowance is returned when the approved amount is lower
	// than the requested amount.
	ErrInsufficientAllowance = errors.New("insufficient allowance")

	// ErrArithmetic is returned when a checked arithmetic step overflows the
	// balance domain or divides by zero.
	ErrArithmetic = errors.New("arithmetic overflow or division by zero")

	// ErrSlippageExceeded is returned when the executed quote deviates from the
	// caller's expectation by more than the supplied tolerance.
	ErrSlippageExceeded = errors.New("slippage exceeded")

	// ErrTransferFailed is returned when an asset ledger rejects a transfer.
	ErrTransferFailed = errors.New("transfer failed")

	// ErrZeroShares is returned when a deposit would mint no shares.
	ErrZeroShares = errors.New("deposit mints zero shares")

	// ErrLedgerRead is returned when a balance or allowance cannot be read
	// from an asset ledger.
	ErrLedgerRead = errors.New("ledger read failed")

	// ErrReadOnly is returned by ledgers that cannot move funds.
	ErrReadOnly = errors.New("ledger is read-only")
)

// AmountError describes a failed comparison between a requested and an
// available amount. It unwraps to its Kind.
type AmountError struct {
	Kind      error
	Subject   string
	Requested *uint256.Int
	Available *uint256.Int
}

// NewAmountError builds an AmountError, copying both amounts.
func NewAmountError(kind error, subject string, requested, available *uint256.Int) *AmountError {
	return &AmountError{
		Kind:      kind,
		Subject:   subject,
		Requested: clone(requested),
		Available: clone(available),
	}
}

func (e *AmountError) Error() string {
	return fmt.Sprintf("%s: %s requested %s, available %s",
		e.Kind, e.Subject, dec(e.Requested), dec(e.Available))
}

func (e *AmountError) Unwrap() error {
	return e.Kind
}

// Slippage builds a slippage error. Requested carries the tolerance and
// Available the measured deviation, both in 10^12-scaled percent.
func Slippage(subject string, tolerance, deviation *uint256.Int) *AmountError {
	return NewAmountError(ErrSlippageExceeded, subject, tolerance, deviation)
}

// TransferError reports a rejected asset movement. It matches both
// ErrTransferFailed and the ledger's own error.
type TransferError struct {
	Asset common.Address
	Leg   string
	Err   error
}

// NewTransferError wraps a ledger error for the named leg.
func NewTransferError(asset common.Address, leg string, err error) *TransferError {
	return &TransferError{Asset: asset, Leg: leg, Err: err}
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s: %s on %s: %v", ErrTransferFailed, e.Leg, e.Asset.Hex(), e.Err)
}

func (e *TransferError) Unwrap() []error {
	return []error{ErrTransferFailed, e.Err}
}

// Kind labels, stable for metrics and logs.
const (
	KindNone                  = "none"
	KindInvalidArgument       = "invalid_argument"
	KindInsufficientLiquidity = "insufficient_liquidity"
	KindInsufficientFunds     = "insufficient_funds"
	KindInsufficientAllowance = "insufficient_allowance"
	KindArithmetic            = "arithmetic"
	KindSlippage              = "slippage"
	KindTransfer              = "transfer"
	KindZeroShares            = "zero_shares"
	KindLedgerRead            = "ledger_read"
	KindInternal              = "internal"
)

var kinds = []struct {
	err   error
	label string
}{
	{ErrTransferFailed, KindTransfer},
	{ErrReadOnly, KindTransfer},
	{ErrLedgerRead, KindLedgerRead},
	{ErrInsufficientFunds, KindInsufficientFunds},
	{ErrInsufficientAllowance, KindInsufficientAllowance},
	{ErrSlippageExceeded, KindSlippage},
	{ErrArithmetic, KindArithmetic},
	{ErrZeroShares, KindZeroShares},
	{ErrInsufficientLiquidity, KindInsufficientLiquidity},
	{ErrInvalidArgument, KindInvalidArgument},
}

// KindOf returns the label of the first known error kind found in err's chain.
// For combined errors only the first one is inspected, so a failed refund does
// not mask the failure that caused it.
func KindOf(err error) string {
	if err == nil {
		return KindNone
	}
	if errs := multierr.Errors(err); len(errs) > 1 {
		err = errs[0]
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.label
		}
	}
	return KindInternal
}

func clone(v *uint256.Int) *uint256.Int {
	if v == nil {
		return nil
	}
	return v.Clone()
}

func dec(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	return v.Dec()
}
