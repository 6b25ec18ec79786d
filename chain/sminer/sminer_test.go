package sminer

import (
	"context"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/ipfs/go-datastore"
	dssync "github.com/ipfs/go-datastore/sync"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/filebank-network/filebank/chain/state"
	"github.com/filebank-network/filebank/chain/types"
)

func newRegistry() *Registry {
	return New(state.NewStateTree(dssync.MutexWrap(datastore.NewMapDatastore())))
}

func mustID(t *testing.T, id uint64) address.Address {
	a, err := address.NewIDAddress(id)
	require.NoError(t, err)
	return a
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	r := newRegistry()
	m1, m2 := mustID(t, 2001), mustID(t, 2002)

	id, err := r.Register(ctx, m1)
	require.NoError(t, err)
	require.EqualValues(t, 1, id)

	id, err = r.Register(ctx, m2)
	require.NoError(t, err)
	require.EqualValues(t, 2, id)

	_, err = r.Register(ctx, m1)
	require.True(t, xerrors.Is(err, ErrMinerExists), err)

	st, err := r.GetMinerState(ctx, m2)
	require.NoError(t, err)
	require.Equal(t, types.MinerPositive, st)

	_, err = r.GetMinerID(ctx, mustID(t, 2003))
	require.True(t, xerrors.Is(err, ErrMinerNotFound), err)
}

func TestPowerAndSpace(t *testing.T) {
	ctx := context.Background()
	r := newRegistry()
	m := mustID(t, 2001)
	_, err := r.Register(ctx, m)
	require.NoError(t, err)

	require.NoError(t, r.AddPower(ctx, m, 100))
	require.NoError(t, r.AddSpace(ctx, m, 40))
	require.NoError(t, r.SubPower(ctx, m, 10))
	require.NoError(t, r.SubSpace(ctx, m, 40))

	p, s, err := r.GetPowerAndSpace(ctx, m)
	require.NoError(t, err)
	require.EqualValues(t, 90, p)
	require.Zero(t, s)

	err = r.SubSpace(ctx, m, 1)
	require.True(t, xerrors.Is(err, ErrCapacityRange), err)
	err = r.AddPower(ctx, m, ^uint64(0))
	require.True(t, xerrors.Is(err, ErrCapacityRange), err)

	// failed updates leave the record alone
	p, _, err = r.GetPowerAndSpace(ctx, m)
	require.NoError(t, err)
	require.EqualValues(t, 90, p)

	err = r.AddPower(ctx, mustID(t, 2009), 1)
	require.True(t, xerrors.Is(err, ErrMinerNotFound), err)
}

func TestTotalSpace(t *testing.T) {
	ctx := context.Background()
	r := newRegistry()

	for i, p := range []uint64{10, 20, 30} {
		m := mustID(t, uint64(2001+i))
		_, err := r.Register(ctx, m)
		require.NoError(t, err)
		require.NoError(t, r.AddPower(ctx, m, p))
	}

	total, err := r.TotalSpace(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 60, total)

	require.NoError(t, r.SetState(ctx, mustID(t, 2002), types.MinerExit))
	total, err = r.TotalSpace(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 40, total)
}
