package filebank

import (
	"context"
	gobig "math/big"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"

	"github.com/filebank-network/filebank/build"
	"github.com/filebank-network/filebank/chain/actors/aerrors"
	"github.com/filebank-network/filebank/chain/types"
)

// Package tiers
const (
	TierTrial    = 1
	TierStandard = 2
	TierPlus     = 3
	TierPro      = 4
	TierCustom   = 5

	// Minimum TiB count of a custom package
	MinCustomCount = 5
)

const packageTenancyMonths = 1

// maxPrice bounds every price computation to 128 bits.
var maxPrice = big.NewFromGo(new(gobig.Int).Sub(new(gobig.Int).Lsh(gobig.NewInt(1), 128), gobig.NewInt(1)))

func tierSpace(tier, count uint64) (uint64, error) {
	switch tier {
	case TierTrial:
		return 10 * build.GiB, nil
	case TierStandard:
		return 500 * build.GiB, nil
	case TierPlus:
		return build.TiB, nil
	case TierPro:
		// grants the full 5 TiB it is priced at
		return 5 * build.TiB, nil
	case TierCustom:
		if count < MinCustomCount {
			return 0, aerrors.Wrapf(ErrInvalidTier, "custom package needs at least %d TiB, got %d", MinCustomCount, count)
		}
		return mulU64(count, build.TiB)
	default:
		return 0, aerrors.Wrapf(ErrInvalidTier, "tier %d", tier)
	}
}

func tierGraceDays(tier uint64) (uint64, error) {
	switch tier {
	case TierTrial:
		return 0, nil
	case TierStandard:
		return 7, nil
	case TierPlus:
		return 14, nil
	case TierPro:
		return 20, nil
	case TierCustom:
		return 30, nil
	default:
		return 0, aerrors.Wrapf(ErrInvalidTier, "no grace period for tier %d", tier)
	}
}

func tenancyEpochs(months uint64) (uint64, error) {
	days, err := mulU64(months, build.DaysPerMonth)
	if err != nil {
		return 0, err
	}
	return mulU64(days, uint64(build.EpochsInDay))
}

func checkPrice(v big.Int) error {
	if v.GreaterThan(maxPrice) {
		return aerrors.Wrapf(ErrOverflow, "price %s exceeds 128 bits", v)
	}
	return nil
}

// PriceQuote returns the unit price of space bytes given the current network
// capacity.
func (fb *FileBank) PriceQuote(ctx context.Context, space uint64) (abi.TokenAmount, error) {
	total, err := fb.capacity.TotalSpace(ctx)
	if err != nil {
		return big.Zero(), collabErr(err, "getting network capacity")
	}
	return priceQuote(space, total)
}

func priceQuote(space, total uint64) (abi.TokenAmount, error) {
	if total == 0 {
		return big.Zero(), aerrors.Wrap(ErrDivisionByZero, "network capacity is zero")
	}

	p := big.Mul(big.NewIntUnsigned(space), build.BasePricePerUnit)
	if err := checkPrice(p); err != nil {
		return big.Zero(), err
	}
	p = big.Mul(p, build.PriceMultiplier)
	if err := checkPrice(p); err != nil {
		return big.Zero(), err
	}
	p = big.Add(big.Div(p, big.NewIntUnsigned(total)), build.MinPrice)
	if err := checkPrice(p); err != nil {
		return big.Zero(), err
	}
	return p, nil
}

// packageCharge is (space / GiB) * (unitPrice / GiB).
func packageCharge(space uint64, unitPrice abi.TokenAmount) (abi.TokenAmount, error) {
	gib := big.NewIntUnsigned(build.GiB)
	charge := big.Mul(big.NewIntUnsigned(space/build.GiB), big.Div(unitPrice, gib))
	if err := checkPrice(charge); err != nil {
		return big.Zero(), err
	}
	return charge, nil
}

// PurchaseQuota buys a package of the given tier. count is only read for
// custom packages and is the size in TiB.
func (fb *FileBank) PurchaseQuota(ctx context.Context, account address.Address, tier, count uint64) error {
	return fb.transact(ctx, "purchase_quota", func(ctx context.Context) error {
		var cur types.QuotaRecord
		err := fb.quotas.Get(ctx, account, &cur)
		switch {
		case err == nil:
			if cur.State != types.PackageExpired {
				return aerrors.Wrapf(ErrAlreadyPurchased, "account %s", account)
			}
		case isNotFound(err):
		default:
			return storageErr(err, "loading quota")
		}

		space, err := tierSpace(tier, count)
		if err != nil {
			return err
		}

		unit := big.Zero()
		if tier != TierTrial {
			quoted := space
			if tier == TierPro {
				quoted = 5 * build.TiB
			}
			unit, err = fb.PriceQuote(ctx, quoted)
			if err != nil {
				return err
			}
		}

		charge, err := packageCharge(space, unit)
		if err != nil {
			return err
		}

		lp, err := fb.loadParams(ctx)
		if err != nil {
			return err
		}

		tenancy, err := tenancyEpochs(packageTenancyMonths)
		if err != nil {
			return err
		}
		deadline, err := addEpoch(lp.Epoch, tenancy)
		if err != nil {
			return err
		}

		rec := &types.QuotaRecord{
			TotalSpace:     space,
			UsedSpace:      0,
			RemainingSpace: space,
			TenancyMonths:  packageTenancyMonths,
			Tier:           tier,
			Start:          lp.Epoch,
			Deadline:       deadline,
			State:          types.PackageNormal,
		}
		if err := fb.quotas.Put(ctx, account, rec); err != nil {
			return storageErr(err, "saving quota")
		}

		if !charge.IsZero() {
			if err := fb.currency.Transfer(ctx, account, fb.cfg.Pot, charge); err != nil {
				return collabErr(err, "paying for package")
			}
		}

		if tier != TierTrial {
			lp.UnitPrice = unit
			if err := fb.saveParams(ctx, lp); err != nil {
				return err
			}
		}

		log.Infow("package purchased", "account", account, "tier", tier, "space", space, "charge", charge, "deadline", deadline)
		fb.record(evtTypeBuyPackage, &BuyPackageEvt{
			Account:  account,
			Tier:     tier,
			Space:    space,
			Price:    charge,
			Deadline: deadline,
		})
		return nil
	})
}

// creditUsage reserves size bytes of the account's package.
func (fb *FileBank) creditUsage(ctx context.Context, account address.Address, size uint64) error {
	var q types.QuotaRecord
	if err := fb.quotas.Get(ctx, account, &q); err != nil {
		if isNotFound(err) {
			return aerrors.Wrapf(ErrNotPurchased, "account %s", account)
		}
		return storageErr(err, "loading quota")
	}

	switch q.State {
	case types.PackageExpired:
		return aerrors.Wrapf(ErrNotPurchased, "package of %s expired", account)
	case types.PackageFrozen:
		return aerrors.Wrapf(ErrFrozen, "account %s", account)
	}

	if size > q.RemainingSpace {
		return aerrors.Wrapf(ErrInsufficientStorage, "need %d, %d remaining", size, q.RemainingSpace)
	}

	used, err := addU64(q.UsedSpace, size)
	if err != nil {
		return err
	}
	remaining, err := subU64(q.RemainingSpace, size)
	if err != nil {
		return err
	}
	q.UsedSpace, q.RemainingSpace = used, remaining

	return storageErr(fb.quotas.Put(ctx, account, &q), "saving quota")
}

// debitUsage releases size bytes of the account's package.
func (fb *FileBank) debitUsage(ctx context.Context, account address.Address, size uint64) error {
	var q types.QuotaRecord
	if err := fb.quotas.Get(ctx, account, &q); err != nil {
		if isNotFound(err) {
			if size == 0 {
				return nil
			}
			return aerrors.Wrapf(ErrNotPurchased, "account %s", account)
		}
		return storageErr(err, "loading quota")
	}

	used, err := subU64(q.UsedSpace, size)
	if err != nil {
		return aerrors.Wrapf(ErrOverflow, "debiting %d from %d used by %s", size, q.UsedSpace, account)
	}
	remaining, err := subU64(q.TotalSpace, used)
	if err != nil {
		return err
	}
	q.UsedSpace, q.RemainingSpace = used, remaining

	return storageErr(fb.quotas.Put(ctx, account, &q), "saving quota")
}
