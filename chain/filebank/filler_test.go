package filebank

import (
	"context"
	"fmt"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/filebank-network/filebank/build"
	"github.com/filebank-network/filebank/chain/types"
)

func fillerBatch(n int, tag string) []types.FillerRecord {
	out := make([]types.FillerRecord, n)
	for i := range out {
		out[i] = types.FillerRecord{
			FillerID:    fmt.Sprintf("%s-%d", tag, i),
			ShardCount:  8,
			Size:        build.FillerPowerUnit,
			SegmentSize: build.MiB,
		}
	}
	return out
}

func TestUploadFiller(t *testing.T) {
	h := newHarness(t, nil)
	coord := h.registerCoordinator(500)
	miner := h.registerMiner(2001)

	err := h.fb.UploadFiller(h.ctx, coord, miner, fillerBatch(build.MaxFillerBatch+1, "x"))
	require.True(t, xerrors.Is(err, ErrLengthExceedsLimit), err)

	err = h.fb.UploadFiller(h.ctx, idAddr(t, 501), miner, fillerBatch(2, "x"))
	require.True(t, xerrors.Is(err, ErrUnauthorizedCoordinator), err)

	require.NoError(t, h.fb.UploadFiller(h.ctx, coord, miner, fillerBatch(build.MaxFillerBatch, "x")))

	power, _, err := h.miners.GetPowerAndSpace(h.ctx, miner)
	require.NoError(t, err)
	require.Equal(t, build.MaxFillerBatch*build.FillerPowerUnit, power)

	fs, err := h.fb.Fillers(h.ctx, miner)
	require.NoError(t, err)
	require.Len(t, fs, build.MaxFillerBatch)
	for _, f := range fs {
		require.Equal(t, miner, f.Miner)
	}
}

func TestUploadFillerRejectsCleanedIDs(t *testing.T) {
	h := newHarness(t, nil)
	coord := h.registerCoordinator(500)
	miner := h.registerMiner(2001)

	for _, id := range []string{".", "..", "a/b"} {
		batch := fillerBatch(1, "x")
		batch[0].FillerID = id
		err := h.fb.UploadFiller(h.ctx, coord, miner, batch)
		require.True(t, xerrors.Is(err, ErrInvalidInput), "%q: %v", id, err)
	}

	power, _, err := h.miners.GetPowerAndSpace(h.ctx, miner)
	require.NoError(t, err)
	require.Zero(t, power)

	targets, err := h.fb.SampleRound(h.ctx, 10)
	require.NoError(t, err)
	require.Empty(t, targets)
}

func TestUploadFillerDuplicateRollsBack(t *testing.T) {
	h := newHarness(t, nil)
	coord := h.registerCoordinator(500)
	miner := h.registerMiner(2001)

	require.NoError(t, h.fb.UploadFiller(h.ctx, coord, miner, fillerBatch(2, "x")))
	before := h.root()

	batch := append(fillerBatch(2, "y"), fillerBatch(1, "x")...)
	err := h.fb.UploadFiller(h.ctx, coord, miner, batch)
	require.True(t, xerrors.Is(err, ErrAlreadyExists), err)
	require.Equal(t, before, h.root())

	fs, err := h.fb.Fillers(h.ctx, miner)
	require.NoError(t, err)
	require.Len(t, fs, 2)
}

func TestUploadFillerMinerState(t *testing.T) {
	h := newHarness(t, nil)
	coord := h.registerCoordinator(500)
	miner := h.registerMiner(2001)

	h.atomic("freeze_miner", func(ctx context.Context) error {
		return h.miners.SetState(ctx, miner, types.MinerFrozen)
	})
	err := h.fb.UploadFiller(h.ctx, coord, miner, fillerBatch(1, "x"))
	require.True(t, xerrors.Is(err, ErrNotQualifiedMiner), err)

	// unknown miners surface the registry's error
	err = h.fb.UploadFiller(h.ctx, coord, idAddr(t, 2999), fillerBatch(1, "x"))
	require.Error(t, err)
	require.False(t, xerrors.Is(err, ErrNotQualifiedMiner))
}

func TestClearAllFillers(t *testing.T) {
	h := newHarness(t, nil)
	coord := h.registerCoordinator(500)
	m1 := h.registerMiner(2001)
	m2 := h.registerMiner(2002)
	h.fillers(coord, m1, "a", 12)
	h.fillers(coord, m2, "b", 3)

	err := h.fb.ClearAllFillers(h.ctx, m1)
	require.True(t, xerrors.Is(err, ErrNotQualifiedMiner), err)

	h.atomic("exit_miner", func(ctx context.Context) error {
		return h.miners.SetState(ctx, m1, types.MinerExit)
	})
	require.NoError(t, h.fb.ClearAllFillers(h.ctx, m1))

	fs, err := h.fb.Fillers(h.ctx, m1)
	require.NoError(t, err)
	require.Empty(t, fs)

	fs, err = h.fb.Fillers(h.ctx, m2)
	require.NoError(t, err)
	require.Len(t, fs, 3)
}

func TestDeleteFillers(t *testing.T) {
	h := newHarness(t, nil)
	coord := h.registerCoordinator(500)
	miner := h.registerMiner(2001)
	h.fillers(coord, miner, "a", 4)

	require.NoError(t, h.fb.DeleteFiller(h.ctx, miner, "a-0001"))
	err := h.fb.DeleteFiller(h.ctx, miner, "a-0001")
	require.True(t, xerrors.Is(err, ErrFillerNotFound), err)

	fs, err := h.fb.Fillers(h.ctx, miner)
	require.NoError(t, err)
	require.Len(t, fs, 3)

	require.NoError(t, h.fb.DeleteMinerFillers(h.ctx, miner))
	fs, err = h.fb.Fillers(h.ctx, miner)
	require.NoError(t, err)
	require.Empty(t, fs)
}

func TestInvalidFileOutbox(t *testing.T) {
	h := newHarness(t, nil)
	miner := idAddr(t, 2001)

	require.NoError(t, h.fb.AddInvalidFile(h.ctx, miner, "h1"))
	require.NoError(t, h.fb.AddInvalidFile(h.ctx, miner, "h2"))
	require.NoError(t, h.fb.AddInvalidFile(h.ctx, miner, "h1"))

	require.NoError(t, h.fb.AckInvalidFileCleared(h.ctx, miner, "h1"))
	inv, err := h.fb.InvalidFiles(h.ctx, miner)
	require.NoError(t, err)
	require.Equal(t, []string{"h2"}, inv)

	// acknowledging twice, or something never queued, is fine
	require.NoError(t, h.fb.AckInvalidFileCleared(h.ctx, miner, "h1"))
	require.NoError(t, h.fb.AckInvalidFileCleared(h.ctx, idAddr(t, 2002), "h9"))

	require.NoError(t, h.fb.AckInvalidFileCleared(h.ctx, miner, "h2"))
	has, err := h.fb.invalid.Has(h.ctx, miner)
	require.NoError(t, err)
	require.False(t, has)
}

func TestMembers(t *testing.T) {
	h := newHarness(t, nil)
	a, b := idAddr(t, 1001), idAddr(t, 1002)

	require.NoError(t, h.fb.AddMember(h.ctx, a))
	err := h.fb.AddMember(h.ctx, a)
	require.True(t, xerrors.Is(err, ErrAlreadyExists), err)
	require.NoError(t, h.fb.AddMember(h.ctx, b))

	ok, err := h.fb.IsMember(h.ctx, a)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, h.fb.RemoveMember(h.ctx, a))
	ok, err = h.fb.IsMember(h.ctx, a)
	require.NoError(t, err)
	require.False(t, ok)

	ms, err := h.fb.Members(h.ctx)
	require.NoError(t, err)
	require.Equal(t, []address.Address{b}, ms)
}
