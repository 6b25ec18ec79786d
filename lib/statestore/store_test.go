package statestore

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

func newStore(prefix string) *StateStore {
	st := state.NewStateTree(dssync.MutexWrap(datastore.NewMapDatastore()))
	return New(st, datastore.NewKey(prefix))
}

func TestBeginMutateEnd(t *testing.T) {
	ctx := context.Background()
	ss := newStore("/quota")

	acct, err := address.NewIDAddress(101)
	require.NoError(t, err)

	require.NoError(t, ss.Begin(ctx, acct, &types.QuotaRecord{TotalSpace: 10, RemainingSpace: 10}))
	require.Error(t, ss.Begin(ctx, acct, &types.QuotaRecord{}))

	err = ss.Mutate(ctx, acct, func(q *types.QuotaRecord) error {
		q.UsedSpace += 4
		q.RemainingSpace -= 4
		return nil
	})
	require.NoError(t, err)

	var q types.QuotaRecord
	require.NoError(t, ss.Get(ctx, acct, &q))
	require.Equal(t, uint64(4), q.UsedSpace)
	require.Equal(t, uint64(6), q.RemainingSpace)

	mutErr := xerrors.New("nope")
	err = ss.Mutate(ctx, acct, func(q *types.QuotaRecord) error {
		q.UsedSpace = 0
		return mutErr
	})
	require.ErrorIs(t, err, mutErr)

	require.NoError(t, ss.Get(ctx, acct, &q))
	require.Equal(t, uint64(4), q.UsedSpace)

	require.NoError(t, ss.End(ctx, acct))
	require.ErrorIs(t, ss.Get(ctx, acct, &q), datastore.ErrNotFound)
	require.ErrorIs(t, ss.End(ctx, acct), datastore.ErrNotFound)
}

func TestListInKeyOrder(t *testing.T) {
	ctx := context.Background()
	ss := newStore("/fillers")

	miner, err := address.NewIDAddress(1000)
	require.NoError(t, err)

	for _, id := range []string{"c", "a", "b"} {
		k := datastore.NewKey("t01000").ChildString(id)
		require.NoError(t, ss.Put(ctx, k, &types.FillerRecord{FillerID: id, Miner: miner}))
	}

	var out []types.FillerRecord
	require.NoError(t, ss.List(ctx, &out))
	require.Len(t, out, 3)
	require.Equal(t, "a", out[0].FillerID)
	require.Equal(t, "b", out[1].FillerID)
	require.Equal(t, "c", out[2].FillerID)

	keys, err := ss.Keys(ctx, "t01000")
	require.NoError(t, err)
	require.Len(t, keys, 3)

	keys, err = ss.Keys(ctx, "t01001")
	require.NoError(t, err)
	require.Empty(t, keys)
}
