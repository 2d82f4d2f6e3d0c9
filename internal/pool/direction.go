package pool

import (
	"github.com/pkg/errors"

	"github.com/fleshka4/tradingpair/internal/apperrors"
)

// Direction selects which asset a swap takes in.
type Direction int

const (
	// AToB swaps asset A for asset B.
	AToB Direction = iota
	// BToA swaps asset B for asset A.
	BToA
)

func (d Direction) String() string {
	switch d {
	case AToB:
		return "a_to_b"
	case BToA:
		return "b_to_a"
	default:
		return "unknown"
	}
}

// ParseDirection reads "a_to_b" or "b_to_a".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "a_to_b":
		return AToB, nil
	case "b_to_a":
		return BToA, nil
	default:
		return 0, errors.Wrapf(apperrors.ErrInvalidArgument, "direction %q", s)
	}
}
