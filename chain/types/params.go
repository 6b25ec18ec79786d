package types

import (
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
)

// LedgerParams is the singleton holding ledger-wide values.
type LedgerParams struct {
	Epoch     abi.ChainEpoch
	UnitPrice big.Int

	SweepActive bool
	SweepCursor string
}

type MinerState string

const (
	MinerPositive MinerState = "positive"
	MinerFrozen   MinerState = "frozen"
	MinerExit     MinerState = "exit"
)

// MinerInfo is the record kept by the reference miner registry.
type MinerInfo struct {
	ID    uint64
	State string
	Power uint64
	Space uint64
}
