package statestore

import (
	"bytes"
	"context"
	"fmt"
	"reflect"

	"github.com/ipfs/go-datastore"
	cbg "github.com/whyrusleeping/cbor-gen"
	"go.uber.org/multierr"
	"golang.org/x/xerrors"

	"github.com/filecoin-project/go-cbor-util"
)

// KV is the key/value surface records are kept in. chain/state.StateTree
// satisfies it.
type KV interface {
	Get(ctx context.Context, k datastore.Key) ([]byte, error)
	Has(ctx context.Context, k datastore.Key) (bool, error)
	Put(ctx context.Context, k datastore.Key, v []byte) error
	Delete(ctx context.Context, k datastore.Key) error
	Keys(ctx context.Context, prefix datastore.Key) ([]datastore.Key, error)
}

// StateStore keeps CBOR records under one key prefix.
type StateStore struct {
	kv     KV
	prefix datastore.Key
}

func New(kv KV, prefix datastore.Key) *StateStore {
	return &StateStore{kv: kv, prefix: prefix}
}

func toKey(k interface{}) datastore.Key {
	switch t := k.(type) {
	case datastore.Key:
		return t
	case uint64:
		return datastore.NewKey(fmt.Sprint(t))
	case string:
		return datastore.NewKey(t)
	case fmt.Stringer:
		return datastore.NewKey(t.String())
	default:
		panic("unexpected key type")
	}
}

func (st *StateStore) key(i interface{}) datastore.Key {
	return st.prefix.Child(toKey(i))
}

func (st *StateStore) Begin(ctx context.Context, i interface{}, state interface{}) error {
	k := st.key(i)
	has, err := st.kv.Has(ctx, k)
	if err != nil {
		return err
	}
	if has {
		return xerrors.Errorf("already tracking state for %v", i)
	}

	b, err := cborutil.Dump(state)
	if err != nil {
		return err
	}

	return st.kv.Put(ctx, k, b)
}

func (st *StateStore) Put(ctx context.Context, i interface{}, state interface{}) error {
	b, err := cborutil.Dump(state)
	if err != nil {
		return err
	}

	return st.kv.Put(ctx, st.key(i), b)
}

func (st *StateStore) End(ctx context.Context, i interface{}) error {
	k := st.key(i)
	has, err := st.kv.Has(ctx, k)
	if err != nil {
		return err
	}
	if !has {
		return xerrors.Errorf("No state for %s: %w", i, datastore.ErrNotFound)
	}
	return st.kv.Delete(ctx, k)
}

func cborMutator(mutator interface{}) func([]byte) ([]byte, error) {
	rmut := reflect.ValueOf(mutator)

	return func(in []byte) ([]byte, error) {
		state := reflect.New(rmut.Type().In(0).Elem())

		err := cborutil.ReadCborRPC(bytes.NewReader(in), state.Interface())
		if err != nil {
			return nil, err
		}

		out := rmut.Call([]reflect.Value{state})

		if err := out[0].Interface(); err != nil {
			return nil, err.(error)
		}

		return cborutil.Dump(state.Interface())
	}
}

// mutator func(*T) error
func (st *StateStore) Mutate(ctx context.Context, i interface{}, mutator interface{}) error {
	return st.mutate(ctx, i, cborMutator(mutator))
}

func (st *StateStore) mutate(ctx context.Context, i interface{}, mutator func([]byte) ([]byte, error)) error {
	k := st.key(i)
	cur, err := st.kv.Get(ctx, k)
	if err != nil {
		if xerrors.Is(err, datastore.ErrNotFound) {
			return xerrors.Errorf("No state for %s: %w", i, err)
		}
		return err
	}

	mutated, err := mutator(cur)
	if err != nil {
		return err
	}

	return st.kv.Put(ctx, k, mutated)
}

func (st *StateStore) Has(ctx context.Context, i interface{}) (bool, error) {
	return st.kv.Has(ctx, st.key(i))
}

// Get decodes the record into out. A missing record is reported as an
// error wrapping datastore.ErrNotFound.
func (st *StateStore) Get(ctx context.Context, i interface{}, out cbg.CBORUnmarshaler) error {
	k := st.key(i)
	val, err := st.kv.Get(ctx, k)
	if err != nil {
		if xerrors.Is(err, datastore.ErrNotFound) {
			return xerrors.Errorf("No state for %s: %w", i, err)
		}
		return err
	}

	return out.UnmarshalCBOR(bytes.NewReader(val))
}

// Keys lists record keys under sub (relative to the store prefix), in
// ascending order.
func (st *StateStore) Keys(ctx context.Context, sub interface{}) ([]datastore.Key, error) {
	p := st.prefix
	if sub != nil {
		p = st.key(sub)
	}
	return st.kv.Keys(ctx, p)
}

// ForEach visits every record under the store prefix in key order.
func (st *StateStore) ForEach(ctx context.Context, cb func(k datastore.Key, raw []byte) error) error {
	keys, err := st.kv.Keys(ctx, st.prefix)
	if err != nil {
		return err
	}

	for _, k := range keys {
		v, err := st.kv.Get(ctx, k)
		if err != nil {
			return xerrors.Errorf("reading %s: %w", k, err)
		}
		if err := cb(k, v); err != nil {
			return err
		}
	}
	return nil
}

// out: *[]T
func (st *StateStore) List(ctx context.Context, out interface{}) error {
	outT := reflect.TypeOf(out).Elem().Elem()
	rout := reflect.ValueOf(out)

	var errs error

	err := st.ForEach(ctx, func(k datastore.Key, raw []byte) error {
		elem := reflect.New(outT)
		err := cborutil.ReadCborRPC(bytes.NewReader(raw), elem.Interface())
		if err != nil {
			errs = multierr.Append(errs, xerrors.Errorf("decoding state for key '%s': %w", k, err))
			return nil
		}

		rout.Elem().Set(reflect.Append(rout.Elem(), elem.Elem()))
		return nil
	})
	if err != nil {
		return err
	}

	return errs
}
