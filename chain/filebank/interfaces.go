package filebank

import (
	"context"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/crypto"

	"github.com/filebank-network/filebank/chain/types"
)

//go:generate go run github.com/golang/mock/mockgen -destination=mocks/mock_collaborators.go -package=mocks . Currency,Coordinators,MinerControl,NetworkCapacity,Randomness

// Currency moves funds between accounts. A failed transfer should carry
// exitcode.ErrInsufficientFunds when the payer cannot cover the amount.
type Currency interface {
	Transfer(ctx context.Context, from, to address.Address, amount abi.TokenAmount) error
}

// Coordinators authorises the accounts allowed to commit uploads and
// fillers on behalf of miners.
type Coordinators interface {
	IsCoordinator(ctx context.Context, acc address.Address) (bool, error)
}

// MinerControl is the miner registry the ledger reports capacity changes to.
type MinerControl interface {
	AddPower(ctx context.Context, miner address.Address, power uint64) error
	SubPower(ctx context.Context, miner address.Address, power uint64) error
	AddSpace(ctx context.Context, miner address.Address, space uint64) error
	SubSpace(ctx context.Context, miner address.Address, space uint64) error
	GetPowerAndSpace(ctx context.Context, miner address.Address) (power uint64, space uint64, err error)
	GetMinerID(ctx context.Context, miner address.Address) (uint64, error)
	GetMinerState(ctx context.Context, miner address.Address) (types.MinerState, error)
}

type NetworkCapacity interface {
	// TotalSpace is the capacity the network currently offers, in bytes.
	TotalSpace(ctx context.Context) (uint64, error)
}

type Randomness interface {
	GetRandomness(ctx context.Context, pers crypto.DomainSeparationTag, round abi.ChainEpoch, entropy []byte) ([]byte, error)
}
