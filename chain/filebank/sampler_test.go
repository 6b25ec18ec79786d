package filebank

import (
	"context"
	"fmt"
	"testing"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/filebank-network/filebank/build"
	"github.com/filebank-network/filebank/chain/actors/aerrors"
	"github.com/filebank-network/filebank/chain/filebank/mocks"
	"github.com/filebank-network/filebank/chain/rand"
	"github.com/filebank-network/filebank/chain/state"
	"github.com/filebank-network/filebank/chain/types"
)

// populate stores 20 fillers and five active files on one miner.
func populate(h *harness) {
	coord := h.registerCoordinator(500)
	miner := h.registerMiner(2001)
	h.fillers(coord, miner, "f", 30)

	a := idAddr(h.t, 1001)
	require.NoError(h.t, h.fb.PurchaseQuota(h.ctx, a, TierTrial, 0))
	for i := 0; i < 5; i++ {
		hash := fmt.Sprintf("file-%d", i)
		require.NoError(h.t, h.fb.Declare(h.ctx, a, hash, hash+".bin"))
		require.NoError(h.t, h.commit(coord, a, miner, hash, 8*build.MiB))
	}
}

func TestSampleEmptyPools(t *testing.T) {
	h := newHarness(t, nil)

	out, err := h.fb.SampleRound(h.ctx, 100)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestSampleRound(t *testing.T) {
	h := newHarness(t, nil)
	populate(h)

	out, err := h.fb.SampleRound(h.ctx, 4242)
	require.NoError(t, err)

	// ceil(20 * 46 / 1000) fillers, ceil(5 * 138 / 1000) files
	require.Len(t, out, 2)
	require.Equal(t, types.KindFiller, out[0].Kind)
	require.Equal(t, types.KindFile, out[1].Kind)

	for _, ct := range out {
		require.Len(t, ct.Shards, 2)
		require.Less(t, ct.Shards[0], ct.Shards[1])
		require.Equal(t, build.MiB, ct.SegmentSize)
	}
	require.Less(t, out[0].Shards[1], uint32(8))
	require.Less(t, out[1].Shards[1], uint32(4))

	again, err := h.fb.SampleRound(h.ctx, 4242)
	require.NoError(t, err)
	require.Equal(t, out, again)
}

func TestSampleSkipsReassignedMiner(t *testing.T) {
	h := newHarness(t, nil)
	coord := h.registerCoordinator(500)
	miner := h.registerMiner(2001)
	h.fillers(coord, miner, "f", 2)

	a := idAddr(t, 1001)
	require.NoError(t, h.fb.PurchaseQuota(h.ctx, a, TierTrial, 0))
	require.NoError(t, h.fb.Declare(h.ctx, a, "H", "doc"))
	require.NoError(t, h.fb.CommitUpload(h.ctx, UploadParams{
		Coordinator: coord,
		Account:     a,
		Hash:        "H",
		Size:        build.MiB,
		ShardCount:  4,
		Miner:       miner,
		MinerID:     77,
	}))

	out, err := h.fb.SampleRound(h.ctx, 1)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestSampleShardCount(t *testing.T) {
	h := newHarness(t, nil)
	miner := idAddr(t, 2001)

	for n, want := range map[uint64]int{0: 0, 1: 1, 2: 2, 21: 2, 22: 3, 1000: 47} {
		shards, err := h.fb.selectShards(h.ctx, 9, n, miner, "obj")
		require.NoError(t, err)
		require.Len(t, shards, want, "%d shards", n)
		for i := 1; i < len(shards); i++ {
			require.Less(t, shards[i-1], shards[i])
		}
	}
}

func newMockedLedger(t *testing.T, r Randomness) *FileBank {
	ctrl := gomock.NewController(t)
	fb, err := New(state.NewStateTree(newMemDatastore()), DefaultConfig(), Deps{
		Currency:     mocks.NewMockCurrency(ctrl),
		Coordinators: mocks.NewMockCoordinators(ctrl),
		Miners:       mocks.NewMockMinerControl(ctrl),
		Capacity:     mocks.NewMockNetworkCapacity(ctrl),
		Rand:         r,
	})
	require.NoError(t, err)
	return fb
}

func TestSelectIndicesRedrawsZero(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRandomness(ctrl)
	fb := newMockedLedger(t, r)

	gomock.InOrder(
		r.EXPECT().GetRandomness(gomock.Any(), rand.DomainSeparationTag_FileSample, abi.ChainEpoch(5), []byte{0, 0, 0, 0, 0, 0, 0, 0}).
			Return([]byte{0, 0, 0, 0, 9}, nil),
		r.EXPECT().GetRandomness(gomock.Any(), rand.DomainSeparationTag_FileSample, abi.ChainEpoch(5), []byte{0, 0, 0, 0, 0, 0, 0, 1}).
			Return([]byte{0, 0, 0, 13}, nil),
	)

	idx, err := fb.selectIndices(context.Background(), rand.DomainSeparationTag_FileSample, 5, 10, 1, nil)
	require.NoError(t, err)
	require.Equal(t, []uint64{3}, idx)
}

func TestSelectIndicesStuckSource(t *testing.T) {
	ctrl := gomock.NewController(t)
	r := mocks.NewMockRandomness(ctrl)
	fb := newMockedLedger(t, r)

	r.EXPECT().GetRandomness(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]byte{0, 0, 0, 1}, nil).
		Times(2 * maxDrawsPerIndex)

	_, err := fb.selectIndices(context.Background(), rand.DomainSeparationTag_FillerSample, 5, 10, 2, nil)
	require.Error(t, err)
	require.True(t, aerrors.IsFatal(asActorError(err)))
}
