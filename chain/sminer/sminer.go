package sminer

import (
	"context"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/ipfs/go-datastore"
	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/xerrors"

	"github.com/filebank-network/filebank/chain/actors/aerrors"
	"github.com/filebank-network/filebank/chain/types"
	"github.com/filebank-network/filebank/lib/statestore"
)

var log = logging.Logger("sminer")

var MinersPrefix = datastore.NewKey("/sminer")

const (
	ExitMinerNotFound exitcode.ExitCode = 64 + iota
	ExitMinerExists
	ExitCapacityRange
)

var (
	ErrMinerNotFound = aerrors.New(ExitMinerNotFound, "miner not registered")
	ErrMinerExists   = aerrors.New(ExitMinerExists, "miner already registered")
	ErrCapacityRange = aerrors.New(ExitCapacityRange, "miner capacity out of range")
)

// Registry is a minimal miner registry. It tracks the state, id and
// power/space accounting of each miner and implements the capacity
// interfaces of the ledger.
type Registry struct {
	miners *statestore.StateStore
}

func New(kv statestore.KV) *Registry {
	return &Registry{miners: statestore.New(kv, MinersPrefix)}
}

// Register adds a miner in the positive state and returns its id. Ids are
// handed out in registration order, starting at 1.
func (r *Registry) Register(ctx context.Context, miner address.Address) (uint64, error) {
	has, err := r.miners.Has(ctx, miner)
	if err != nil {
		return 0, xerrors.Errorf("checking miner: %w", err)
	}
	if has {
		return 0, aerrors.Wrapf(ErrMinerExists, "%s", miner)
	}

	keys, err := r.miners.Keys(ctx, nil)
	if err != nil {
		return 0, xerrors.Errorf("listing miners: %w", err)
	}

	info := &types.MinerInfo{
		ID:    uint64(len(keys)) + 1,
		State: string(types.MinerPositive),
	}
	if err := r.miners.Begin(ctx, miner, info); err != nil {
		return 0, err
	}

	log.Infow("miner registered", "miner", miner, "id", info.ID)
	return info.ID, nil
}

func (r *Registry) Info(ctx context.Context, miner address.Address) (*types.MinerInfo, error) {
	var mi types.MinerInfo
	if err := r.miners.Get(ctx, miner, &mi); err != nil {
		if xerrors.Is(err, datastore.ErrNotFound) {
			return nil, aerrors.Wrapf(ErrMinerNotFound, "%s", miner)
		}
		return nil, err
	}
	return &mi, nil
}

func (r *Registry) mutate(ctx context.Context, miner address.Address, cb func(*types.MinerInfo) error) error {
	err := r.miners.Mutate(ctx, miner, cb)
	if xerrors.Is(err, datastore.ErrNotFound) {
		return aerrors.Wrapf(ErrMinerNotFound, "%s", miner)
	}
	return err
}

func (r *Registry) SetState(ctx context.Context, miner address.Address, state types.MinerState) error {
	return r.mutate(ctx, miner, func(mi *types.MinerInfo) error {
		mi.State = string(state)
		return nil
	})
}

func (r *Registry) AddPower(ctx context.Context, miner address.Address, power uint64) error {
	return r.mutate(ctx, miner, func(mi *types.MinerInfo) error {
		if mi.Power+power < mi.Power {
			return aerrors.Newf(ExitCapacityRange, "power of %s overflows", miner)
		}
		mi.Power += power
		return nil
	})
}

func (r *Registry) SubPower(ctx context.Context, miner address.Address, power uint64) error {
	return r.mutate(ctx, miner, func(mi *types.MinerInfo) error {
		if power > mi.Power {
			return aerrors.Wrapf(ErrCapacityRange, "power of %s: %d - %d", miner, mi.Power, power)
		}
		mi.Power -= power
		return nil
	})
}

func (r *Registry) AddSpace(ctx context.Context, miner address.Address, space uint64) error {
	return r.mutate(ctx, miner, func(mi *types.MinerInfo) error {
		if mi.Space+space < mi.Space {
			return aerrors.Newf(ExitCapacityRange, "space of %s overflows", miner)
		}
		mi.Space += space
		return nil
	})
}

func (r *Registry) SubSpace(ctx context.Context, miner address.Address, space uint64) error {
	return r.mutate(ctx, miner, func(mi *types.MinerInfo) error {
		if space > mi.Space {
			return aerrors.Wrapf(ErrCapacityRange, "space of %s: %d - %d", miner, mi.Space, space)
		}
		mi.Space -= space
		return nil
	})
}

func (r *Registry) GetPowerAndSpace(ctx context.Context, miner address.Address) (uint64, uint64, error) {
	mi, err := r.Info(ctx, miner)
	if err != nil {
		return 0, 0, err
	}
	return mi.Power, mi.Space, nil
}

func (r *Registry) GetMinerID(ctx context.Context, miner address.Address) (uint64, error) {
	mi, err := r.Info(ctx, miner)
	if err != nil {
		return 0, err
	}
	return mi.ID, nil
}

func (r *Registry) GetMinerState(ctx context.Context, miner address.Address) (types.MinerState, error) {
	mi, err := r.Info(ctx, miner)
	if err != nil {
		return "", err
	}
	return types.MinerState(mi.State), nil
}

// TotalSpace is the summed power of every miner that has not exited.
func (r *Registry) TotalSpace(ctx context.Context) (uint64, error) {
	var all []types.MinerInfo
	if err := r.miners.List(ctx, &all); err != nil {
		return 0, xerrors.Errorf("listing miners: %w", err)
	}

	var total uint64
	for _, mi := range all {
		if types.MinerState(mi.State) == types.MinerExit {
			continue
		}
		if total+mi.Power < total {
			return 0, aerrors.Newf(ExitCapacityRange, "network power overflows")
		}
		total += mi.Power
	}
	return total, nil
}
