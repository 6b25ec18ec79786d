package filebank

import (
	"testing"

	"github.com/filecoin-project/go-state-types/big"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/filebank-network/filebank/build"
	"github.com/filebank-network/filebank/chain/types"
)

func TestPurchaseTrial(t *testing.T) {
	h := newHarness(t, nil)
	acc := idAddr(t, 1001)

	require.NoError(t, h.fb.PurchaseQuota(h.ctx, acc, TierTrial, 0))

	q := h.quota(acc)
	require.Equal(t, 10*build.GiB, q.TotalSpace)
	require.Equal(t, q.TotalSpace, q.RemainingSpace)
	require.Equal(t, types.PackageNormal, q.State)
	require.EqualValues(t, 30*build.EpochsInDay, q.Deadline)

	err := h.fb.PurchaseQuota(h.ctx, acc, TierTrial, 0)
	require.True(t, xerrors.Is(err, ErrAlreadyPurchased), err)

	// trial packages do not move the quoted price
	up, err := h.fb.UnitPrice(h.ctx)
	require.NoError(t, err)
	require.True(t, up.IsZero())
}

func TestPurchaseInvalidTier(t *testing.T) {
	h := newHarness(t, nil)
	acc := idAddr(t, 1001)

	for _, tier := range []uint64{0, 6, 100} {
		err := h.fb.PurchaseQuota(h.ctx, acc, tier, 0)
		require.True(t, xerrors.Is(err, ErrInvalidTier), "tier %d: %v", tier, err)
	}

	err := h.fb.PurchaseQuota(h.ctx, acc, TierCustom, 3)
	require.True(t, xerrors.Is(err, ErrInvalidTier), err)

	_, err = h.fb.Quota(h.ctx, acc)
	require.True(t, xerrors.Is(err, ErrNotPurchased), err)
}

func TestPurchaseCustom(t *testing.T) {
	h := newHarness(t, nil)
	coord := h.registerCoordinator(500)
	miner := h.registerMiner(2001)
	h.fillers(coord, miner, "f", 10)

	acc := idAddr(t, 1001)
	h.deposit(acc, lotsOfTokens())

	require.NoError(t, h.fb.PurchaseQuota(h.ctx, acc, TierCustom, 10))
	q := h.quota(acc)
	require.Equal(t, 10*build.TiB, q.TotalSpace)
	require.EqualValues(t, TierCustom, q.Tier)
}

func TestPurchaseWithoutCapacity(t *testing.T) {
	h := newHarness(t, nil)
	acc := idAddr(t, 1001)
	h.deposit(acc, lotsOfTokens())

	err := h.fb.PurchaseQuota(h.ctx, acc, TierStandard, 0)
	require.True(t, xerrors.Is(err, ErrDivisionByZero), err)
}

func TestPurchasePaysPot(t *testing.T) {
	h := newHarness(t, nil)
	coord := h.registerCoordinator(500)
	miner := h.registerMiner(2001)
	h.fillers(coord, miner, "f", 10)

	acc := idAddr(t, 1001)
	funds := lotsOfTokens()
	h.deposit(acc, funds)

	require.NoError(t, h.fb.PurchaseQuota(h.ctx, acc, TierStandard, 0))

	unit, err := priceQuote(500*build.GiB, 10*build.FillerPowerUnit)
	require.NoError(t, err)
	charge, err := packageCharge(500*build.GiB, unit)
	require.NoError(t, err)
	require.True(t, charge.GreaterThan(big.Zero()))

	pot, err := h.bank.Balance(h.ctx, h.fb.cfg.Pot)
	require.NoError(t, err)
	require.True(t, charge.Equals(pot), "pot holds %s, charged %s", pot, charge)

	left, err := h.bank.Balance(h.ctx, acc)
	require.NoError(t, err)
	require.True(t, big.Sub(funds, charge).Equals(left))

	up, err := h.fb.UnitPrice(h.ctx)
	require.NoError(t, err)
	require.True(t, unit.Equals(up))
}

func TestPurchaseInsufficientFundsRollsBack(t *testing.T) {
	h := newHarness(t, nil)
	coord := h.registerCoordinator(500)
	miner := h.registerMiner(2001)
	h.fillers(coord, miner, "f", 10)

	acc := idAddr(t, 1001)
	before := h.root()

	err := h.fb.PurchaseQuota(h.ctx, acc, TierPlus, 0)
	require.True(t, xerrors.Is(err, ErrInsufficientFunds), err)

	_, err = h.fb.Quota(h.ctx, acc)
	require.True(t, xerrors.Is(err, ErrNotPurchased), err)
	require.Equal(t, before, h.root())
}

func TestPriceQuote(t *testing.T) {
	_, err := priceQuote(build.GiB, 0)
	require.True(t, xerrors.Is(err, ErrDivisionByZero), err)

	p, err := priceQuote(0, 1)
	require.NoError(t, err)
	require.True(t, build.MinPrice.Equals(p))

	require.NoError(t, checkPrice(maxPrice))
	err = checkPrice(big.Add(maxPrice, big.NewInt(1)))
	require.True(t, xerrors.Is(err, ErrOverflow), err)
}

func TestTierGraceDays(t *testing.T) {
	for tier, days := range map[uint64]uint64{1: 0, 2: 7, 3: 14, 4: 20, 5: 30} {
		d, err := tierGraceDays(tier)
		require.NoError(t, err)
		require.Equal(t, days, d)
	}

	_, err := tierGraceDays(9)
	require.True(t, xerrors.Is(err, ErrInvalidTier), err)
}

func TestTierSpace(t *testing.T) {
	for tier, space := range map[uint64]uint64{
		TierTrial:    10 * build.GiB,
		TierStandard: 500 * build.GiB,
		TierPlus:     build.TiB,
		TierPro:      5 * build.TiB,
	} {
		s, err := tierSpace(tier, 0)
		require.NoError(t, err)
		require.Equal(t, space, s, "tier %d", tier)
	}

	s, err := tierSpace(TierCustom, MinCustomCount)
	require.NoError(t, err)
	require.Equal(t, MinCustomCount*build.TiB, s)

	_, err = tierSpace(TierCustom, MinCustomCount-1)
	require.True(t, xerrors.Is(err, ErrInvalidTier), err)
}
