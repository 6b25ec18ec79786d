package filebank

import (
	"math"
	"math/bits"

	"github.com/filecoin-project/go-state-types/abi"

	"github.com/filebank-network/filebank/chain/actors/aerrors"
)

func addU64(a, b uint64) (uint64, error) {
	s, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, aerrors.Wrapf(ErrOverflow, "%d + %d", a, b)
	}
	return s, nil
}

func subU64(a, b uint64) (uint64, error) {
	d, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, aerrors.Wrapf(ErrOverflow, "%d - %d", a, b)
	}
	return d, nil
}

func mulU64(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, aerrors.Wrapf(ErrOverflow, "%d * %d", a, b)
	}
	return lo, nil
}

func ceilDiv(a, b uint64) uint64 {
	if a == 0 {
		return 0
	}
	return (a-1)/b + 1
}

func addEpoch(e abi.ChainEpoch, d uint64) (abi.ChainEpoch, error) {
	if d > math.MaxInt64 || e > abi.ChainEpoch(math.MaxInt64-int64(d)) {
		return 0, aerrors.Wrapf(ErrOverflow, "epoch %d + %d", e, d)
	}
	return e + abi.ChainEpoch(d), nil
}
