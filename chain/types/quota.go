package types

import (
	"github.com/filecoin-project/go-state-types/abi"
)

type PackageState uint64

const (
	PackageNormal PackageState = iota
	PackageFrozen
	PackageExpired
)

func (s PackageState) String() string {
	switch s {
	case PackageNormal:
		return "normal"
	case PackageFrozen:
		return "frozen"
	case PackageExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// QuotaRecord is the capacity an account has purchased. UsedSpace plus
// RemainingSpace always equals TotalSpace.
type QuotaRecord struct {
	TotalSpace     uint64
	UsedSpace      uint64
	RemainingSpace uint64

	TenancyMonths uint64
	Tier          uint64

	Start    abi.ChainEpoch
	Deadline abi.ChainEpoch

	State PackageState
}
