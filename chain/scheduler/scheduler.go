package scheduler

import (
	"context"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/ipfs/go-datastore"
	logging "github.com/ipfs/go-log/v2"
	"github.com/samber/lo"
	"golang.org/x/xerrors"

	"github.com/filebank-network/filebank/chain/actors/aerrors"
	"github.com/filebank-network/filebank/chain/types"
	"github.com/filebank-network/filebank/lib/statestore"
)

var log = logging.Logger("scheduler")

var SchedulersPrefix = datastore.NewKey("/scheduler")

const coordinatorsKey = "coordinators"

// MaxCoordinators bounds the coordinator set.
const MaxCoordinators = 64

const (
	ExitCoordinatorExists exitcode.ExitCode = 80 + iota
	ExitCoordinatorNotFound
	ExitCoordinatorLimit
)

var (
	ErrCoordinatorExists   = aerrors.New(ExitCoordinatorExists, "coordinator already registered")
	ErrCoordinatorNotFound = aerrors.New(ExitCoordinatorNotFound, "coordinator not registered")
	ErrCoordinatorLimit    = aerrors.New(ExitCoordinatorLimit, "coordinator set full")
)

// Registry keeps the accounts allowed to commit uploads and fillers.
type Registry struct {
	store *statestore.StateStore
}

func New(kv statestore.KV) *Registry {
	return &Registry{store: statestore.New(kv, SchedulersPrefix)}
}

func (r *Registry) load(ctx context.Context) (*types.AddressList, error) {
	var al types.AddressList
	err := r.store.Get(ctx, coordinatorsKey, &al)
	if err != nil && !xerrors.Is(err, datastore.ErrNotFound) {
		return nil, xerrors.Errorf("loading coordinators: %w", err)
	}
	return &al, nil
}

func (r *Registry) Register(ctx context.Context, acc address.Address) error {
	al, err := r.load(ctx)
	if err != nil {
		return err
	}
	if lo.Contains(al.Addresses, acc) {
		return aerrors.Wrapf(ErrCoordinatorExists, "%s", acc)
	}
	if len(al.Addresses) >= MaxCoordinators {
		return aerrors.Wrapf(ErrCoordinatorLimit, "%d coordinators", len(al.Addresses))
	}

	al.Addresses = append(al.Addresses, acc)
	if err := r.store.Put(ctx, coordinatorsKey, al); err != nil {
		return xerrors.Errorf("saving coordinators: %w", err)
	}

	log.Infow("coordinator registered", "account", acc)
	return nil
}

func (r *Registry) Unregister(ctx context.Context, acc address.Address) error {
	al, err := r.load(ctx)
	if err != nil {
		return err
	}
	if !lo.Contains(al.Addresses, acc) {
		return aerrors.Wrapf(ErrCoordinatorNotFound, "%s", acc)
	}

	al.Addresses = lo.Without(al.Addresses, acc)
	if err := r.store.Put(ctx, coordinatorsKey, al); err != nil {
		return xerrors.Errorf("saving coordinators: %w", err)
	}

	log.Infow("coordinator unregistered", "account", acc)
	return nil
}

func (r *Registry) IsCoordinator(ctx context.Context, acc address.Address) (bool, error) {
	al, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	return lo.Contains(al.Addresses, acc), nil
}

func (r *Registry) List(ctx context.Context) ([]address.Address, error) {
	al, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return al.Addresses, nil
}
