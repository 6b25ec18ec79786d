package node_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/raulk/clock"
	"github.com/stretchr/testify/require"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-jsonrpc/auth"

	"github.com/filebank-network/filebank/api"
	"github.com/filebank-network/filebank/api/client"
	"github.com/filebank-network/filebank/build"
	"github.com/filebank-network/filebank/chain/filebank"
	"github.com/filebank-network/filebank/chain/types"
	"github.com/filebank-network/filebank/node"
	"github.com/filebank-network/filebank/node/repo"
)

func mockClock(t *testing.T) *clock.Mock {
	mc := clock.NewMock()
	prev := build.Clock
	build.Clock = mc
	t.Cleanup(func() { build.Clock = prev })
	return mc
}

func startNode(t *testing.T, r repo.Repo) (api.FileBank, node.StopFunc) {
	var fb api.FileBank
	stop, err := node.New(context.Background(),
		node.FileBankAPI(&fb),
		node.Repo(r),
		node.Test(),
	)
	require.NoError(t, err)
	return fb, stop
}

func testNode(t *testing.T) (api.FileBank, *repo.MemRepo) {
	r := repo.NewMemory(nil)
	t.Cleanup(r.Cleanup)

	fb, stop := startNode(t, r)
	t.Cleanup(func() {
		require.NoError(t, stop(context.Background()))
	})
	return fb, r
}

func idAddr(t *testing.T, id uint64) address.Address {
	a, err := address.NewIDAddress(id)
	require.NoError(t, err)
	return a
}

func fillerBatch(n int) []types.FillerRecord {
	out := make([]types.FillerRecord, n)
	for i := range out {
		out[i] = types.FillerRecord{
			FillerID:    fmt.Sprintf("f-%04d", i),
			ShardCount:  8,
			Size:        build.FillerPowerUnit,
			SegmentSize: build.MiB,
		}
	}
	return out
}

// setup registers a coordinator and a miner holding three fillers.
func setup(t *testing.T, fb api.FileBank) (coord, miner address.Address) {
	ctx := context.Background()
	coord, miner = idAddr(t, 500), idAddr(t, 2001)

	require.NoError(t, fb.CoordinatorRegister(ctx, coord))
	id, err := fb.MinerRegister(ctx, miner)
	require.NoError(t, err)
	require.EqualValues(t, 1, id)
	require.NoError(t, fb.LedgerUploadFiller(ctx, coord, miner, fillerBatch(3)))
	return coord, miner
}

func TestNodeUploadFlow(t *testing.T) {
	mockClock(t)
	ctx := context.Background()
	fb, _ := testNode(t)
	coord, miner := setup(t, fb)

	total, err := fb.MinerTotalSpace(ctx)
	require.NoError(t, err)
	require.Equal(t, 3*build.FillerPowerUnit, total)

	acc := idAddr(t, 1001)
	require.NoError(t, fb.LedgerPurchaseQuota(ctx, acc, filebank.TierTrial, 0))
	require.NoError(t, fb.LedgerDeclare(ctx, acc, "H", "doc"))
	require.NoError(t, fb.LedgerCommitUpload(ctx, filebank.UploadParams{
		Coordinator:  coord,
		Account:      acc,
		Hash:         "H",
		Size:         8 * build.MiB,
		ShardCount:   4,
		ScanUnitSize: build.MiB,
		SegmentSize:  build.MiB,
		Miner:        miner,
		MinerID:      1,
	}))

	fr, err := fb.StateFile(ctx, "H")
	require.NoError(t, err)
	require.Equal(t, types.FileActive, fr.State)

	inv, err := fb.StateInvalidFiles(ctx, miner)
	require.NoError(t, err)
	require.Equal(t, []string{"f-0000", "f-0001"}, inv)

	targets, err := fb.StateSampleRound(ctx, 10)
	require.NoError(t, err)
	require.NotEmpty(t, targets)
	require.Equal(t, types.KindFiller, targets[0].Kind)

	// a rejected operation leaves the state root untouched
	root, err := fb.StateRoot(ctx)
	require.NoError(t, err)
	require.Error(t, fb.LedgerDeclare(ctx, acc, "H", "doc"))
	root2, err := fb.StateRoot(ctx)
	require.NoError(t, err)
	require.Equal(t, root, root2)
}

func TestNodeStateSurvivesRestart(t *testing.T) {
	mockClock(t)
	ctx := context.Background()
	r := repo.NewMemory(nil)
	t.Cleanup(r.Cleanup)

	fb, stop := startNode(t, r)
	setup(t, fb)
	root, err := fb.StateRoot(ctx)
	require.NoError(t, err)
	require.NoError(t, stop(ctx))

	fb, stop = startNode(t, r)
	defer stop(ctx) //nolint:errcheck
	root2, err := fb.StateRoot(ctx)
	require.NoError(t, err)
	require.Equal(t, root, root2)

	fillers, err := fb.StateFillers(ctx, idAddr(t, 2001))
	require.NoError(t, err)
	require.Len(t, fillers, 3)
}

func TestEpochTicker(t *testing.T) {
	mc := mockClock(t)
	ctx := context.Background()
	fb, _ := testNode(t)

	period := time.Duration(build.BlockDelaySecs) * time.Second
	require.Eventually(t, func() bool {
		mc.Add(period)
		ep, err := fb.StateEpoch(ctx)
		require.NoError(t, err)
		return ep >= 2
	}, 5*time.Second, 10*time.Millisecond)
}

func TestRPCPermissions(t *testing.T) {
	mockClock(t)
	ctx := context.Background()
	fb, r := testNode(t)

	h, err := node.FileBankHandler(fb, true, false)
	require.NoError(t, err)
	srv := httptest.NewServer(h)
	defer srv.Close()

	addr := "ws://" + srv.Listener.Addr().String() + "/rpc/v0"
	acc := idAddr(t, 1001)

	ro, closer, err := client.NewFileBankRPC(ctx, addr, nil)
	require.NoError(t, err)
	defer closer()

	_, err = ro.StateEpoch(ctx)
	require.NoError(t, err)
	err = ro.LedgerPurchaseQuota(ctx, acc, filebank.TierTrial, 0)
	require.ErrorContains(t, err, "missing permission")

	token, err := r.APIToken()
	require.NoError(t, err)
	hdr := http.Header{}
	hdr.Add("Authorization", "Bearer "+string(token))

	admin, closer2, err := client.NewFileBankRPC(ctx, addr, hdr)
	require.NoError(t, err)
	defer closer2()

	// served without the daemon command setting the process node type
	require.Equal(t, build.NodeUnknown, build.RunningNodeType)
	v, err := admin.Version(ctx)
	require.NoError(t, err)
	require.Equal(t, build.NetworkName, v.Network)
	require.Equal(t, build.FileBankAPIVersion, v.APIVersion)

	miner := idAddr(t, 2001)
	_, err = admin.MinerRegister(ctx, miner)
	require.NoError(t, err)
	mi, err := admin.MinerInfo(ctx, miner)
	require.NoError(t, err)
	require.EqualValues(t, 1, mi.ID)

	// ledger rejections reach the client
	require.Error(t, admin.LedgerDeclare(ctx, acc, "", "doc"))

	// tokens minted over the api carry only what they were granted
	wtok, err := admin.AuthNew(ctx, []auth.Permission{api.PermRead, api.PermWrite})
	require.NoError(t, err)
	perms, err := ro.AuthVerify(ctx, string(wtok))
	require.NoError(t, err)
	require.Equal(t, []auth.Permission{api.PermRead, api.PermWrite}, perms)
}
