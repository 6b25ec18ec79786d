package filebank

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/filebank-network/filebank/build"
	"github.com/filebank-network/filebank/chain/types"
)

func TestDeclareValidation(t *testing.T) {
	h := newHarness(t, nil)
	acc := idAddr(t, 1001)

	cases := map[string][2]string{
		"empty hash":    {"", "doc"},
		"empty name":    {"h1", ""},
		"slash in hash": {"a/b", "doc"},
		"dot hash":      {".", "doc"},
		"dotdot hash":   {"..", "doc"},
		"dot name":      {"h1", "."},
		"long name":     {"h1", strings.Repeat("n", build.StringLimit+1)},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			err := h.fb.Declare(h.ctx, acc, c[0], c[1])
			require.True(t, xerrors.Is(err, ErrInvalidInput), err)
		})
	}
}

func TestDeclareTwice(t *testing.T) {
	h := newHarness(t, nil)
	a, b := idAddr(t, 1001), idAddr(t, 1002)

	require.NoError(t, h.fb.Declare(h.ctx, a, "h1", "doc"))
	err := h.fb.Declare(h.ctx, a, "h1", "doc again")
	require.True(t, xerrors.Is(err, ErrAlreadyDeclared), err)

	// nothing to charge while the file is only declared
	require.NoError(t, h.fb.Declare(h.ctx, b, "h1", "copy"))

	fr, err := h.fb.File(h.ctx, "h1")
	require.NoError(t, err)
	require.Equal(t, types.FileDeclared, fr.State)
	require.Equal(t, []types.Owner{{Account: a, Name: "doc"}, {Account: b, Name: "copy"}}, fr.Owners)
	h.checkFiles()
}

func TestDeclareNewFile(t *testing.T) {
	h := newHarness(t, nil)
	a := idAddr(t, 1001)

	require.NoError(t, h.fb.Declare(h.ctx, a, "H", "doc"))

	fr, err := h.fb.File(h.ctx, "H")
	require.NoError(t, err)
	require.Equal(t, types.FileDeclared, fr.State)
	require.Equal(t, []types.Owner{{Account: a, Name: "doc"}}, fr.Owners)
	require.Equal(t, a, fr.Miner)
	require.Zero(t, fr.Size)

	// tracked with nothing charged, so an expiring package releases it
	held, err := h.fb.HeldFiles(h.ctx, a)
	require.NoError(t, err)
	require.Equal(t, []types.HeldFile{{Hash: "H", Size: 0}}, held)
	h.checkFiles()
}

func TestCommitUploadErrors(t *testing.T) {
	h := newHarness(t, nil)
	coord := h.registerCoordinator(500)
	miner := h.registerMiner(2001)
	h.fillers(coord, miner, "f", 3)

	a, b := idAddr(t, 1001), idAddr(t, 1002)
	require.NoError(t, h.fb.PurchaseQuota(h.ctx, a, TierTrial, 0))

	err := h.commit(coord, a, miner, "h1", 8*build.MiB)
	require.True(t, xerrors.Is(err, ErrFileNotFound), err)

	require.NoError(t, h.fb.Declare(h.ctx, a, "h1", "doc"))
	require.NoError(t, h.fb.Declare(h.ctx, b, "h2", "other"))

	err = h.commit(idAddr(t, 501), a, miner, "h1", 8*build.MiB)
	require.True(t, xerrors.Is(err, ErrUnauthorizedCoordinator), err)

	err = h.commit(coord, a, miner, "h2", 8*build.MiB)
	require.True(t, xerrors.Is(err, ErrNotDeclaredByAccount), err)

	err = h.commit(coord, b, miner, "h2", 8*build.MiB)
	require.True(t, xerrors.Is(err, ErrNotPurchased), err)

	err = h.commit(coord, a, miner, "h1", 11*build.GiB)
	require.True(t, xerrors.Is(err, ErrInsufficientStorage), err)

	// three fillers prove 24 MiB
	err = h.commit(coord, a, miner, "h1", 32*build.MiB)
	require.True(t, xerrors.Is(err, ErrMinerPowerInsufficient), err)
	require.Zero(t, h.quota(a).UsedSpace)

	require.NoError(t, h.commit(coord, a, miner, "h1", 8*build.MiB))
	err = h.commit(coord, a, miner, "h1", 8*build.MiB)
	require.True(t, xerrors.Is(err, ErrAlreadyActive), err)

	require.Equal(t, 8*build.MiB, h.quota(a).UsedSpace)
	h.checkFiles()
}

func TestUploadAndDeleteScenario(t *testing.T) {
	h := newHarness(t, nil)
	coord := h.registerCoordinator(500)
	miner := h.registerMiner(2001)
	h.fillers(coord, miner, "f", 3)

	a := idAddr(t, 1001)
	require.NoError(t, h.fb.PurchaseQuota(h.ctx, a, TierTrial, 0))
	used := h.quota(a).UsedSpace

	require.NoError(t, h.fb.Declare(h.ctx, a, "H", "doc"))
	require.NoError(t, h.commit(coord, a, miner, "H", 8*build.MiB))

	require.Equal(t, used+8*build.MiB, h.quota(a).UsedSpace)

	fr, err := h.fb.File(h.ctx, "H")
	require.NoError(t, err)
	require.Equal(t, types.FileActive, fr.State)
	require.EqualValues(t, 4, fr.ShardCount)
	require.Equal(t, miner, fr.Miner)

	held, err := h.fb.HeldFiles(h.ctx, a)
	require.NoError(t, err)
	require.Equal(t, []types.HeldFile{{Hash: "H", Size: 8 * build.MiB}}, held)

	// ceil(8 MiB / 8 MiB) + 1 fillers are retired
	left, err := h.fb.Fillers(h.ctx, miner)
	require.NoError(t, err)
	require.Len(t, left, 1)
	require.Equal(t, "f-0002", left[0].FillerID)

	inv, err := h.fb.InvalidFiles(h.ctx, miner)
	require.NoError(t, err)
	require.Equal(t, []string{"f-0000", "f-0001"}, inv)

	power, space, err := h.miners.GetPowerAndSpace(h.ctx, miner)
	require.NoError(t, err)
	require.Equal(t, 3*build.FillerPowerUnit, power)
	require.Equal(t, 8*build.MiB, space)

	require.NoError(t, h.fb.Delete(h.ctx, a, "H"))

	_, err = h.fb.File(h.ctx, "H")
	require.True(t, xerrors.Is(err, ErrFileNotFound), err)
	require.Equal(t, used, h.quota(a).UsedSpace)

	inv, err = h.fb.InvalidFiles(h.ctx, miner)
	require.NoError(t, err)
	require.Equal(t, []string{"f-0000", "f-0001", "H"}, inv)

	power, space, err = h.miners.GetPowerAndSpace(h.ctx, miner)
	require.NoError(t, err)
	require.Equal(t, 2*build.FillerPowerUnit, power)
	require.Zero(t, space)

	held, err = h.fb.HeldFiles(h.ctx, a)
	require.NoError(t, err)
	require.Empty(t, held)
}

func TestDeleteCoOwner(t *testing.T) {
	h := newHarness(t, nil)
	coord := h.registerCoordinator(500)
	miner := h.registerMiner(2001)
	h.fillers(coord, miner, "f", 3)

	a, b := idAddr(t, 1001), idAddr(t, 1002)
	require.NoError(t, h.fb.PurchaseQuota(h.ctx, a, TierTrial, 0))
	require.NoError(t, h.fb.PurchaseQuota(h.ctx, b, TierTrial, 0))

	require.NoError(t, h.fb.Declare(h.ctx, a, "H", "doc"))
	require.NoError(t, h.commit(coord, a, miner, "H", 8*build.MiB))

	// a co-owner of an active file is charged its size
	require.NoError(t, h.fb.Declare(h.ctx, b, "H", "mine"))
	require.Equal(t, 8*build.MiB, h.quota(b).UsedSpace)

	inv, err := h.fb.InvalidFiles(h.ctx, miner)
	require.NoError(t, err)

	require.NoError(t, h.fb.Delete(h.ctx, b, "H"))

	fr, err := h.fb.File(h.ctx, "H")
	require.NoError(t, err)
	require.Equal(t, []types.Owner{{Account: a, Name: "doc"}}, fr.Owners)
	require.Zero(t, h.quota(b).UsedSpace)
	require.Equal(t, 8*build.MiB, h.quota(a).UsedSpace)

	after, err := h.fb.InvalidFiles(h.ctx, miner)
	require.NoError(t, err)
	require.Equal(t, inv, after)

	err = h.fb.Delete(h.ctx, b, "H")
	require.True(t, xerrors.Is(err, ErrNotOwner), err)
	err = h.fb.Delete(h.ctx, b, "nope")
	require.True(t, xerrors.Is(err, ErrFileNotFound), err)
	h.checkFiles()
}

func TestDeleteDeclared(t *testing.T) {
	h := newHarness(t, nil)
	miner := h.registerMiner(2001)
	a := idAddr(t, 1001)

	require.NoError(t, h.fb.Declare(h.ctx, a, "H", "doc"))
	require.NoError(t, h.fb.Delete(h.ctx, a, "H"))

	_, err := h.fb.File(h.ctx, "H")
	require.True(t, xerrors.Is(err, ErrFileNotFound), err)

	inv, err := h.fb.InvalidFiles(h.ctx, miner)
	require.NoError(t, err)
	require.Empty(t, inv)

	held, err := h.fb.HeldFiles(h.ctx, a)
	require.NoError(t, err)
	require.Empty(t, held)
}

func TestClearFile(t *testing.T) {
	h := newHarness(t, nil)
	a := idAddr(t, 1001)

	err := h.fb.ClearFile(h.ctx, "H")
	require.True(t, xerrors.Is(err, ErrFileNotFound), err)

	require.NoError(t, h.fb.Declare(h.ctx, a, "H", "doc"))
	require.NoError(t, h.fb.ClearFile(h.ctx, "H"))

	_, err = h.fb.File(h.ctx, "H")
	require.True(t, xerrors.Is(err, ErrFileNotFound), err)
}
