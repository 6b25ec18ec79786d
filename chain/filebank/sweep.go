package filebank

import (
	"context"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"go.opencensus.io/stats"
	"go.opencensus.io/tag"
	"go.uber.org/multierr"
	"golang.org/x/xerrors"

	"github.com/filebank-network/filebank/build"
	"github.com/filebank-network/filebank/chain/actors/aerrors"
	"github.com/filebank-network/filebank/chain/types"
	"github.com/filebank-network/filebank/journal"
	"github.com/filebank-network/filebank/metrics"
)

// OnEpoch advances the ledger to epoch now. A lease sweep pass starts on
// every day boundary and visits at most Config.SweepBudget quota records per
// epoch, resuming where it left off until every record was seen.
func (fb *FileBank) OnEpoch(ctx context.Context, now abi.ChainEpoch) error {
	var (
		active bool
		cursor string
	)
	err := fb.transact(ctx, "epoch", func(ctx context.Context) error {
		lp, err := fb.loadParams(ctx)
		if err != nil {
			return err
		}
		if now < lp.Epoch {
			return aerrors.Wrapf(ErrInvalidInput, "epoch %d is before ledger epoch %d", now, lp.Epoch)
		}
		if now == lp.Epoch && now != 0 {
			// already applied
			return nil
		}

		lp.Epoch = now
		if now%build.EpochsInDay == 0 {
			if lp.SweepActive {
				log.Warnw("lease sweep did not finish within a day, restarting", "epoch", now, "cursor", lp.SweepCursor)
			}
			lp.SweepActive = true
			lp.SweepCursor = ""
			log.Infow("starting lease sweep", "epoch", now)
		}
		active, cursor = lp.SweepActive, lp.SweepCursor

		return fb.saveParams(ctx, lp)
	})
	if err != nil {
		return err
	}
	stats.Record(ctx, metrics.LedgerEpoch.M(int64(now)))

	if !active {
		return nil
	}
	return fb.sweep(ctx, now, cursor)
}

func (fb *FileBank) sweep(ctx context.Context, now abi.ChainEpoch, cursor string) error {
	keys, err := fb.quotas.Keys(ctx, nil)
	if err != nil {
		return storageErr(err, "listing quota records")
	}

	var (
		visited   int
		last      = cursor
		exhausted = true
		failures  error
	)
	for _, k := range keys {
		if cursor != "" && k.String() <= cursor {
			continue
		}
		if visited >= fb.cfg.SweepBudget {
			exhausted = false
			break
		}
		visited++
		last = k.String()

		acct, err := address.NewFromString(k.Name())
		if err != nil {
			log.Errorw("skipping quota record with malformed key", "key", k, "error", err)
			continue
		}

		err = fb.transact(ctx, "sweep", func(ctx context.Context) error {
			return fb.sweepRecord(ctx, acct, now)
		})
		if err != nil {
			if aerrors.IsFatal(asActorError(err)) {
				return xerrors.Errorf("sweeping %s: %w", acct, err)
			}
			log.Errorw("lease sweep failed for account", "account", acct, "epoch", now, "error", err)
			journal.MaybeRecordEvent(fb.journal, fb.evtTypes[evtTypeSweepFailure], func() interface{} {
				return &SweepFailureEvt{Account: acct, Epoch: now, Error: err.Error()}
			})
			failures = multierr.Append(failures, err)
		}
	}
	stats.Record(ctx, metrics.SweepRecordsVisited.M(int64(visited)))

	err = fb.transact(ctx, "sweep_cursor", func(ctx context.Context) error {
		lp, err := fb.loadParams(ctx)
		if err != nil {
			return err
		}
		if exhausted {
			lp.SweepActive = false
			lp.SweepCursor = ""
		} else {
			lp.SweepCursor = last
		}
		return fb.saveParams(ctx, lp)
	})
	if err != nil {
		return err
	}

	if exhausted {
		stats.Record(ctx, metrics.SweepPasses.M(1))
		log.Infow("lease sweep pass complete", "epoch", now, "failures", len(multierr.Errors(failures)))
	}
	return nil
}

// sweepRecord applies the lease lifecycle to one account's package.
func (fb *FileBank) sweepRecord(ctx context.Context, acct address.Address, now abi.ChainEpoch) error {
	var q types.QuotaRecord
	if err := fb.quotas.Get(ctx, acct, &q); err != nil {
		if isNotFound(err) {
			return nil
		}
		return storageErr(err, "loading quota")
	}

	if q.State == types.PackageExpired {
		return nil
	}

	if q.Deadline > now {
		if q.Deadline-now <= build.EpochsInDay {
			fb.record(evtTypeLeaseExpiresSoon, &LeaseEvt{Account: acct, Deadline: q.Deadline, Epoch: now})
		}
		return nil
	}

	graceDays, err := tierGraceDays(q.Tier)
	if err != nil {
		return err
	}
	grace, err := mulU64(graceDays, uint64(build.EpochsInDay))
	if err != nil {
		return err
	}
	end, err := addEpoch(q.Deadline, grace)
	if err != nil {
		return err
	}

	if end > now {
		if q.State == types.PackageFrozen {
			return nil
		}
		q.State = types.PackageFrozen
		if err := fb.quotas.Put(ctx, acct, &q); err != nil {
			return storageErr(err, "saving quota")
		}
		fb.recordTransition(ctx, "frozen")
		log.Infow("package frozen", "account", acct, "deadline", q.Deadline, "grace_end", end)
		fb.record(evtTypeLeaseFrozen, &LeaseEvt{Account: acct, Deadline: q.Deadline, Epoch: now})
		return nil
	}

	if err := fb.releaseHeldFiles(ctx, acct); err != nil {
		return err
	}

	// reload, releasing files debited the record
	if err := fb.quotas.Get(ctx, acct, &q); err != nil {
		return storageErr(err, "loading quota")
	}
	q.State = types.PackageExpired
	if err := fb.quotas.Put(ctx, acct, &q); err != nil {
		return storageErr(err, "saving quota")
	}

	fb.recordTransition(ctx, "expired")
	log.Infow("package expired", "account", acct, "deadline", q.Deadline)
	fb.record(evtTypeLeaseExpired, &LeaseEvt{Account: acct, Deadline: q.Deadline, Epoch: now})
	return nil
}

// releaseHeldFiles drops every file the account holds.
func (fb *FileBank) releaseHeldFiles(ctx context.Context, acct address.Address) error {
	hl, err := fb.heldFiles(ctx, acct)
	if err != nil {
		return err
	}

	for _, hf := range hl.Files {
		fr, err := fb.getFile(ctx, hf.Hash)
		if err != nil {
			if xerrors.Is(err, ErrFileNotFound) {
				log.Warnw("held file missing from registry", "account", acct, "hash", hf.Hash)
				if _, _, err := fb.removeHeld(ctx, acct, hf.Hash); err != nil {
					return err
				}
				continue
			}
			return err
		}
		if err := fb.releaseFile(ctx, acct, hf.Hash, fr); err != nil {
			return xerrors.Errorf("releasing %s: %w", hf.Hash, err)
		}
	}
	return nil
}

func (fb *FileBank) recordTransition(ctx context.Context, res string) {
	mctx, _ := tag.New(ctx, tag.Upsert(metrics.Result, res))
	stats.Record(mctx, metrics.LeaseTransitions.M(1))
}

func asActorError(err error) aerrors.ActorError {
	var aerr aerrors.ActorError
	if xerrors.As(err, &aerr) {
		return aerr
	}
	return nil
}
