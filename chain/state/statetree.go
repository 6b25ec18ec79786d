package state

import (
	"bytes"
	"context"
	"sort"

	"github.com/ipfs/go-cid"
	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/query"
	logging "github.com/ipfs/go-log/v2"
	"github.com/multiformats/go-multihash"
	cbg "github.com/whyrusleeping/cbor-gen"
	"go.opencensus.io/trace"
	"golang.org/x/xerrors"
)

var log = logging.Logger("statetree")

// RootPrefix is the cid prefix of state fingerprints returned by Root.
var RootPrefix = cid.Prefix{
	Version:  1,
	Codec:    cid.DagCBOR,
	MhType:   multihash.BLAKE2B_MIN + 31,
	MhLength: -1,
}

// StateTree is a key/value view over a datastore with a stack of pending
// write layers. Writes land in the top layer; Revert discards it and
// ClearSnapshot folds it into the layer below. Flush writes the base layer
// to the datastore in a single batch.
type StateTree struct {
	ds datastore.Batching

	snaps *stateSnaps
}

type stateSnaps struct {
	layers []map[string]streeOp
}

type streeOp struct {
	Value  []byte
	Delete bool
}

func newStateSnaps() *stateSnaps {
	return &stateSnaps{
		layers: []map[string]streeOp{make(map[string]streeOp)},
	}
}

func (ss *stateSnaps) addLayer() {
	ss.layers = append(ss.layers, make(map[string]streeOp))
}

func (ss *stateSnaps) dropLayer() {
	ss.layers[len(ss.layers)-1] = nil // allow it to be GCed
	ss.layers = ss.layers[:len(ss.layers)-1]
}

func (ss *stateSnaps) mergeLastLayer() {
	last := ss.layers[len(ss.layers)-1]
	nextLast := ss.layers[len(ss.layers)-2]

	for k, v := range last {
		nextLast[k] = v
	}

	ss.dropLayer()
}

// get returns found=false when no layer has an opinion about the key.
func (ss *stateSnaps) get(k string) (op streeOp, found bool) {
	for i := len(ss.layers) - 1; i >= 0; i-- {
		op, ok := ss.layers[i][k]
		if ok {
			return op, true
		}
	}
	return streeOp{}, false
}

func (ss *stateSnaps) set(k string, v []byte) {
	ss.layers[len(ss.layers)-1][k] = streeOp{Value: v}
}

func (ss *stateSnaps) delete(k string) {
	ss.layers[len(ss.layers)-1][k] = streeOp{Delete: true}
}

func NewStateTree(ds datastore.Batching) *StateTree {
	return &StateTree{
		ds:    ds,
		snaps: newStateSnaps(),
	}
}

func (st *StateTree) Get(ctx context.Context, k datastore.Key) ([]byte, error) {
	if op, ok := st.snaps.get(k.String()); ok {
		if op.Delete {
			return nil, datastore.ErrNotFound
		}
		return op.Value, nil
	}

	return st.ds.Get(ctx, k)
}

func (st *StateTree) Has(ctx context.Context, k datastore.Key) (bool, error) {
	if op, ok := st.snaps.get(k.String()); ok {
		return !op.Delete, nil
	}

	return st.ds.Has(ctx, k)
}

func (st *StateTree) Put(ctx context.Context, k datastore.Key, v []byte) error {
	st.snaps.set(k.String(), v)
	return nil
}

func (st *StateTree) Delete(ctx context.Context, k datastore.Key) error {
	st.snaps.delete(k.String())
	return nil
}

// Keys returns every live key strictly below prefix, in ascending order,
// merging the datastore with all pending layers.
func (st *StateTree) Keys(ctx context.Context, prefix datastore.Key) ([]datastore.Key, error) {
	res, err := st.ds.Query(ctx, query.Query{Prefix: prefix.String(), KeysOnly: true})
	if err != nil {
		return nil, xerrors.Errorf("querying %s: %w", prefix, err)
	}
	defer res.Close() //nolint:errcheck

	live := map[string]struct{}{}
	for {
		r, ok := res.NextSync()
		if !ok {
			break
		}
		if r.Error != nil {
			return nil, xerrors.Errorf("iterating %s: %w", prefix, r.Error)
		}
		if datastore.RawKey(r.Key).IsDescendantOf(prefix) {
			live[r.Key] = struct{}{}
		}
	}

	for _, layer := range st.snaps.layers {
		for k, op := range layer {
			if !datastore.RawKey(k).IsDescendantOf(prefix) {
				continue
			}
			if op.Delete {
				delete(live, k)
			} else {
				live[k] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(live))
	for k := range live {
		out = append(out, k)
	}
	sort.Strings(out)

	keys := make([]datastore.Key, len(out))
	for i, k := range out {
		keys[i] = datastore.RawKey(k)
	}
	return keys, nil
}

func (st *StateTree) Snapshot(ctx context.Context) error {
	_, span := trace.StartSpan(ctx, "stateTree.Snapshot")
	defer span.End()

	st.snaps.addLayer()

	return nil
}

func (st *StateTree) ClearSnapshot() {
	st.snaps.mergeLastLayer()
}

func (st *StateTree) Revert() error {
	st.snaps.dropLayer()
	st.snaps.addLayer()

	return nil
}

// Discard drops every unflushed write in the base layer.
func (st *StateTree) Discard() {
	if len(st.snaps.layers) != 1 {
		log.Warnw("discarding state with snapshots on the stack", "depth", st.Depth())
	}
	st.snaps = newStateSnaps()
}

// Depth is the number of snapshots currently on the stack.
func (st *StateTree) Depth() int {
	return len(st.snaps.layers) - 1
}

func (st *StateTree) Flush(ctx context.Context) error {
	ctx, span := trace.StartSpan(ctx, "stateTree.Flush")
	defer span.End()
	if len(st.snaps.layers) != 1 {
		return xerrors.Errorf("tried to flush state tree with snapshots on the stack")
	}

	base := st.snaps.layers[0]
	if len(base) == 0 {
		return nil
	}

	b, err := st.ds.Batch(ctx)
	if err != nil {
		return xerrors.Errorf("opening batch: %w", err)
	}

	for k, op := range base {
		if op.Delete {
			err = b.Delete(ctx, datastore.RawKey(k))
		} else {
			err = b.Put(ctx, datastore.RawKey(k), op.Value)
		}
		if err != nil {
			return xerrors.Errorf("batching %s: %w", k, err)
		}
	}

	if err := b.Commit(ctx); err != nil {
		return xerrors.Errorf("committing batch: %w", err)
	}

	log.Debugw("flushed state", "entries", len(base))
	st.snaps.layers[0] = make(map[string]streeOp)

	return nil
}

// Root fingerprints the visible state: every key and value in key order,
// CBOR byte strings hashed into a blake2b-256 cid. Two trees holding the
// same entries have the same root regardless of how writes were layered.
func (st *StateTree) Root(ctx context.Context) (cid.Cid, error) {
	keys, err := st.Keys(ctx, datastore.NewKey("/"))
	if err != nil {
		return cid.Undef, err
	}

	buf := new(bytes.Buffer)
	for _, k := range keys {
		v, err := st.Get(ctx, k)
		if err != nil {
			return cid.Undef, xerrors.Errorf("reading %s: %w", k, err)
		}
		if err := cbg.WriteByteArray(buf, []byte(k.String())); err != nil {
			return cid.Undef, err
		}
		if err := cbg.WriteByteArray(buf, v); err != nil {
			return cid.Undef, err
		}
	}

	return RootPrefix.Sum(buf.Bytes())
}
