package scheduler

import (
	"context"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/ipfs/go-datastore"
	dssync "github.com/ipfs/go-datastore/sync"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/filebank-network/filebank/chain/state"
)

func TestCoordinators(t *testing.T) {
	ctx := context.Background()
	r := New(state.NewStateTree(dssync.MutexWrap(datastore.NewMapDatastore())))

	a, err := address.NewIDAddress(500)
	require.NoError(t, err)
	b, err := address.NewIDAddress(501)
	require.NoError(t, err)

	ok, err := r.IsCoordinator(ctx, a)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, r.Register(ctx, a))
	require.NoError(t, r.Register(ctx, b))
	err = r.Register(ctx, a)
	require.True(t, xerrors.Is(err, ErrCoordinatorExists), err)

	ok, err = r.IsCoordinator(ctx, a)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, r.Unregister(ctx, a))
	err = r.Unregister(ctx, a)
	require.True(t, xerrors.Is(err, ErrCoordinatorNotFound), err)

	all, err := r.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []address.Address{b}, all)
}

func TestCoordinatorLimit(t *testing.T) {
	ctx := context.Background()
	r := New(state.NewStateTree(dssync.MutexWrap(datastore.NewMapDatastore())))

	for i := uint64(0); i < MaxCoordinators; i++ {
		a, err := address.NewIDAddress(1000 + i)
		require.NoError(t, err)
		require.NoError(t, r.Register(ctx, a))
	}

	a, err := address.NewIDAddress(5000)
	require.NoError(t, err)
	err = r.Register(ctx, a)
	require.True(t, xerrors.Is(err, ErrCoordinatorLimit), err)
}
