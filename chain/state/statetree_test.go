package state

import (
	"context"
	"fmt"
	"testing"

	"github.com/ipfs/go-datastore"
	dssync "github.com/ipfs/go-datastore/sync"
	"github.com/stretchr/testify/require"
)

func newTree() (*StateTree, datastore.Batching) {
	ds := dssync.MutexWrap(datastore.NewMapDatastore())
	return NewStateTree(ds), ds
}

func TestLayeredReads(t *testing.T) {
	ctx := context.Background()
	st, ds := newTree()

	k := datastore.NewKey("/files/a")
	require.NoError(t, st.Put(ctx, k, []byte("v1")))
	require.NoError(t, st.Snapshot(ctx))
	require.NoError(t, st.Put(ctx, k, []byte("v2")))

	v, err := st.Get(ctx, k)
	require.NoError(t, err)
	require.Equal(t, []byte("v2"), v)

	require.NoError(t, st.Revert())
	st.ClearSnapshot()

	v, err = st.Get(ctx, k)
	require.NoError(t, err)
	require.Equal(t, []byte("v1"), v)

	// nothing reaches the datastore before a flush
	has, err := ds.Has(ctx, k)
	require.NoError(t, err)
	require.False(t, has)

	require.NoError(t, st.Flush(ctx))
	has, err = ds.Has(ctx, k)
	require.NoError(t, err)
	require.True(t, has)
}

func TestDeleteShadowsDatastore(t *testing.T) {
	ctx := context.Background()
	st, ds := newTree()

	k := datastore.NewKey("/quota/t0101")
	require.NoError(t, ds.Put(ctx, k, []byte("x")))

	require.NoError(t, st.Snapshot(ctx))
	require.NoError(t, st.Delete(ctx, k))

	has, err := st.Has(ctx, k)
	require.NoError(t, err)
	require.False(t, has)

	_, err = st.Get(ctx, k)
	require.ErrorIs(t, err, datastore.ErrNotFound)

	st.ClearSnapshot()
	require.NoError(t, st.Flush(ctx))

	has, err = ds.Has(ctx, k)
	require.NoError(t, err)
	require.False(t, has)
}

func TestKeysMergesLayersInOrder(t *testing.T) {
	ctx := context.Background()
	st, ds := newTree()

	require.NoError(t, ds.Put(ctx, datastore.NewKey("/fillers/m1/b"), []byte{1}))
	require.NoError(t, ds.Put(ctx, datastore.NewKey("/fillers/m1/d"), []byte{1}))
	require.NoError(t, ds.Put(ctx, datastore.NewKey("/fillers/m10/a"), []byte{1}))

	require.NoError(t, st.Snapshot(ctx))
	require.NoError(t, st.Put(ctx, datastore.NewKey("/fillers/m1/a"), []byte{2}))
	require.NoError(t, st.Put(ctx, datastore.NewKey("/fillers/m1/c"), []byte{2}))
	require.NoError(t, st.Delete(ctx, datastore.NewKey("/fillers/m1/d")))

	keys, err := st.Keys(ctx, datastore.NewKey("/fillers/m1"))
	require.NoError(t, err)

	var names []string
	for _, k := range keys {
		names = append(names, k.Name())
	}
	require.Equal(t, []string{"a", "b", "c"}, names)
}

func TestFlushRefusesOpenSnapshot(t *testing.T) {
	ctx := context.Background()
	st, _ := newTree()

	require.NoError(t, st.Snapshot(ctx))
	require.Equal(t, 1, st.Depth())
	require.Error(t, st.Flush(ctx))
}

func TestRootIndependentOfLayering(t *testing.T) {
	ctx := context.Background()

	a, _ := newTree()
	b, _ := newTree()

	for i := 0; i < 20; i++ {
		require.NoError(t, a.Put(ctx, datastore.NewKey(fmt.Sprintf("/files/%02d", i)), []byte{byte(i)}))
	}
	require.NoError(t, a.Flush(ctx))

	for i := 19; i >= 0; i-- {
		require.NoError(t, b.Snapshot(ctx))
		require.NoError(t, b.Put(ctx, datastore.NewKey(fmt.Sprintf("/files/%02d", i)), []byte{byte(i)}))
		b.ClearSnapshot()
	}

	ra, err := a.Root(ctx)
	require.NoError(t, err)
	rb, err := b.Root(ctx)
	require.NoError(t, err)
	require.Equal(t, ra, rb)

	require.NoError(t, b.Put(ctx, datastore.NewKey("/files/00"), []byte{9}))
	rb, err = b.Root(ctx)
	require.NoError(t, err)
	require.NotEqual(t, ra, rb)
}

func BenchmarkStateTreeSetFlush(b *testing.B) {
	ctx := context.Background()
	st, _ := newTree()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if err := st.Put(ctx, datastore.NewKey(fmt.Sprint(i)), []byte("value")); err != nil {
			b.Fatal(err)
		}
		if err := st.Flush(ctx); err != nil {
			b.Fatal(err)
		}
	}
}
