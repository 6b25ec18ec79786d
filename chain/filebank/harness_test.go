package filebank

import (
	"context"
	"fmt"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/ipfs/go-datastore"
	dssync "github.com/ipfs/go-datastore/sync"
	"github.com/stretchr/testify/require"

	"github.com/filebank-network/filebank/build"
	"github.com/filebank-network/filebank/chain/balances"
	"github.com/filebank-network/filebank/chain/rand"
	"github.com/filebank-network/filebank/chain/scheduler"
	"github.com/filebank-network/filebank/chain/sminer"
	"github.com/filebank-network/filebank/chain/state"
	"github.com/filebank-network/filebank/chain/types"
	"github.com/filebank-network/filebank/journal"
)

var testSeed = []byte("filebank test network")

// harness is a ledger wired to the reference collaborators, all sharing one
// state tree over an in-memory datastore.
type harness struct {
	t   *testing.T
	ctx context.Context

	ds     datastore.Batching
	st     *state.StateTree
	fb     *FileBank
	miners *sminer.Registry
	coords *scheduler.Registry
	bank   *balances.Ledger
}

func newHarness(t *testing.T, j journal.Journal, opts ...func(*Config)) *harness {
	ds := dssync.MutexWrap(datastore.NewMapDatastore())
	st := state.NewStateTree(ds)

	miners := sminer.New(st)
	coords := scheduler.New(st)
	bank := balances.New(st)

	cfg := DefaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	fb, err := New(st, cfg, Deps{
		Currency:     bank,
		Coordinators: coords,
		Miners:       miners,
		Capacity:     miners,
		Rand:         rand.NewSeededRand(testSeed),
		Journal:      j,
	})
	require.NoError(t, err)

	return &harness{
		t:      t,
		ctx:    context.Background(),
		ds:     ds,
		st:     st,
		fb:     fb,
		miners: miners,
		coords: coords,
		bank:   bank,
	}
}

func idAddr(t *testing.T, id uint64) address.Address {
	a, err := address.NewIDAddress(id)
	require.NoError(t, err)
	return a
}

func (h *harness) atomic(op string, cb func(ctx context.Context) error) {
	require.NoError(h.t, h.fb.Atomic(h.ctx, op, cb))
}

func (h *harness) registerMiner(id uint64) address.Address {
	m := idAddr(h.t, id)
	h.atomic("register_miner", func(ctx context.Context) error {
		_, err := h.miners.Register(ctx, m)
		return err
	})
	return m
}

func (h *harness) registerCoordinator(id uint64) address.Address {
	c := idAddr(h.t, id)
	h.atomic("register_coordinator", func(ctx context.Context) error {
		return h.coords.Register(ctx, c)
	})
	return c
}

func (h *harness) deposit(acc address.Address, amt abi.TokenAmount) {
	h.atomic("deposit", func(ctx context.Context) error {
		return h.bank.Deposit(ctx, acc, amt)
	})
}

// fillers uploads n fillers of miner in batches, with ids prefixed by tag.
func (h *harness) fillers(coord, miner address.Address, tag string, n int) {
	for start := 0; start < n; start += build.MaxFillerBatch {
		var batch []types.FillerRecord
		for i := start; i < n && i < start+build.MaxFillerBatch; i++ {
			batch = append(batch, types.FillerRecord{
				FillerID:    fmt.Sprintf("%s-%04d", tag, i),
				ShardCount:  8,
				Size:        build.FillerPowerUnit,
				SegmentSize: build.MiB,
			})
		}
		require.NoError(h.t, h.fb.UploadFiller(h.ctx, coord, miner, batch))
	}
}

func (h *harness) commit(coord, acc, miner address.Address, hash string, size uint64) error {
	id, err := h.miners.GetMinerID(h.ctx, miner)
	require.NoError(h.t, err)

	return h.fb.CommitUpload(h.ctx, UploadParams{
		Coordinator:   coord,
		Account:       acc,
		Hash:          hash,
		Size:          size,
		ShardCount:    4,
		ScanUnitSize:  build.MiB,
		SegmentSize:   build.MiB,
		Miner:         miner,
		MinerID:       id,
		MinerEndpoint: []byte("/ip4/127.0.0.1/tcp/15001"),
	})
}

func (h *harness) quota(acc address.Address) *types.QuotaRecord {
	q, err := h.fb.Quota(h.ctx, acc)
	require.NoError(h.t, err)
	require.Equal(h.t, q.TotalSpace, q.UsedSpace+q.RemainingSpace, "quota accounting of %s", acc)
	return q
}

// checkFiles asserts that every stored file record has at least one owner.
func (h *harness) checkFiles() {
	var all []types.FileRecord
	require.NoError(h.t, h.fb.files.List(h.ctx, &all))
	for _, fr := range all {
		require.NotEmpty(h.t, fr.Owners)
	}
}

func (h *harness) root() string {
	c, err := h.fb.StateRoot(h.ctx)
	require.NoError(h.t, err)
	return c.String()
}

func lotsOfTokens() abi.TokenAmount {
	return big.Mul(big.NewInt(1_000_000_000_000_000_000), big.NewInt(1_000_000))
}

func newMemDatastore() datastore.Batching {
	return dssync.MutexWrap(datastore.NewMapDatastore())
}

func abiEpoch(e int64) abi.ChainEpoch {
	return abi.ChainEpoch(e)
}
