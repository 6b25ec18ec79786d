package filebank

import (
	"context"

	"github.com/filecoin-project/go-address"
	"github.com/ipfs/go-datastore"

	"github.com/filebank-network/filebank/build"
	"github.com/filebank-network/filebank/chain/actors/aerrors"
	"github.com/filebank-network/filebank/chain/types"
)

func fillerKey(miner address.Address, id string) datastore.Key {
	return datastore.NewKey(miner.String()).ChildString(id)
}

// UploadFiller stores a batch of fillers proving spare capacity of miner and
// credits the miner with build.FillerPowerUnit of power per filler.
func (fb *FileBank) UploadFiller(ctx context.Context, coordinator, miner address.Address, batch []types.FillerRecord) error {
	if len(batch) > build.MaxFillerBatch {
		return aerrors.Wrapf(ErrLengthExceedsLimit, "%d fillers in batch, max %d", len(batch), build.MaxFillerBatch)
	}
	for _, f := range batch {
		if err := validName("filler id", f.FillerID); err != nil {
			return err
		}
	}

	return fb.transact(ctx, "upload_filler", func(ctx context.Context) error {
		ok, err := fb.coordinators.IsCoordinator(ctx, coordinator)
		if err != nil {
			return collabErr(err, "checking coordinator")
		}
		if !ok {
			return aerrors.Wrapf(ErrUnauthorizedCoordinator, "%s", coordinator)
		}

		ms, err := fb.miners.GetMinerState(ctx, miner)
		if err != nil {
			return collabErr(err, "getting miner state")
		}
		if ms != types.MinerPositive {
			return aerrors.Wrapf(ErrNotQualifiedMiner, "miner %s is %q", miner, ms)
		}

		for _, f := range batch {
			k := fillerKey(miner, f.FillerID)
			has, err := fb.fillers.Has(ctx, k)
			if err != nil {
				return storageErr(err, "checking filler")
			}
			if has {
				return aerrors.Wrapf(ErrAlreadyExists, "filler %s of %s", f.FillerID, miner)
			}

			f.Miner = miner
			if err := fb.fillers.Put(ctx, k, &f); err != nil {
				return storageErr(err, "saving filler")
			}
		}

		power, err := mulU64(build.FillerPowerUnit, uint64(len(batch)))
		if err != nil {
			return err
		}
		if err := fb.miners.AddPower(ctx, miner, power); err != nil {
			return collabErr(err, "adding miner power")
		}

		fb.record(evtTypeFillerUpload, &FillerUploadEvt{Coordinator: coordinator, Miner: miner, Count: len(batch), Power: power})
		return nil
	})
}

// ClearAllFillers lets a miner that has exited drop every remaining filler.
func (fb *FileBank) ClearAllFillers(ctx context.Context, miner address.Address) error {
	return fb.transact(ctx, "clear_all_fillers", func(ctx context.Context) error {
		ms, err := fb.miners.GetMinerState(ctx, miner)
		if err != nil {
			return collabErr(err, "getting miner state")
		}
		if ms != types.MinerExit {
			return aerrors.Wrapf(ErrNotQualifiedMiner, "miner %s is %q, not exited", miner, ms)
		}

		_, err = fb.dropMinerFillers(ctx, miner, -1)
		return err
	})
}

// DeleteFiller removes a single filler record.
func (fb *FileBank) DeleteFiller(ctx context.Context, miner address.Address, id string) error {
	return fb.transact(ctx, "delete_filler", func(ctx context.Context) error {
		return fb.deleteFiller(ctx, miner, id)
	})
}

// DeleteMinerFillers removes every filler of miner regardless of its state.
func (fb *FileBank) DeleteMinerFillers(ctx context.Context, miner address.Address) error {
	return fb.transact(ctx, "delete_miner_fillers", func(ctx context.Context) error {
		_, err := fb.dropMinerFillers(ctx, miner, -1)
		return err
	})
}

func (fb *FileBank) deleteFiller(ctx context.Context, miner address.Address, id string) error {
	k := fillerKey(miner, id)
	has, err := fb.fillers.Has(ctx, k)
	if err != nil {
		return storageErr(err, "checking filler")
	}
	if !has {
		return aerrors.Wrapf(ErrFillerNotFound, "filler %s of %s", id, miner)
	}
	return storageErr(fb.fillers.End(ctx, k), "removing filler")
}

// dropMinerFillers deletes up to limit fillers of miner in key order, all of
// them when limit is negative, and returns the ids it removed.
func (fb *FileBank) dropMinerFillers(ctx context.Context, miner address.Address, limit int) ([]string, error) {
	keys, err := fb.fillers.Keys(ctx, miner)
	if err != nil {
		return nil, storageErr(err, "listing fillers")
	}

	var ids []string
	for _, k := range keys {
		if limit >= 0 && len(ids) >= limit {
			break
		}
		id := k.Name()
		if err := fb.deleteFiller(ctx, miner, id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// replaceFillers gives size bytes of miner's proven capacity to a real file:
// the space is booked with the miner registry and enough fillers to cover
// it, plus one, are retired and queued for deletion on the miner.
func (fb *FileBank) replaceFillers(ctx context.Context, miner address.Address, size uint64) error {
	power, space, err := fb.miners.GetPowerAndSpace(ctx, miner)
	if err != nil {
		return collabErr(err, "getting miner power")
	}
	need, err := addU64(space, size)
	if err != nil {
		return err
	}
	if power < need {
		return aerrors.Wrapf(ErrMinerPowerInsufficient, "miner %s: power %d, space %d, file %d", miner, power, space, size)
	}

	if err := fb.miners.AddSpace(ctx, miner, size); err != nil {
		return collabErr(err, "adding miner space")
	}

	count := ceilDiv(size, build.FillerRedundancy*build.FillerUnitSize) + 1
	ids, err := fb.dropMinerFillers(ctx, miner, int(count))
	if err != nil {
		return err
	}

	for _, id := range ids {
		if err := fb.pushInvalid(ctx, miner, id); err != nil {
			return err
		}
	}

	log.Debugw("fillers replaced", "miner", miner, "size", size, "wanted", count, "replaced", len(ids))
	return nil
}
