package filebank

import (
	"context"

	"github.com/filecoin-project/go-address"

	"github.com/filebank-network/filebank/build"
	"github.com/filebank-network/filebank/chain/actors/aerrors"
	"github.com/filebank-network/filebank/chain/types"
)

func (fb *FileBank) invalidList(ctx context.Context, miner address.Address) (*types.InvalidFileList, error) {
	var il types.InvalidFileList
	if err := fb.invalid.Get(ctx, miner, &il); err != nil && !isNotFound(err) {
		return nil, storageErr(err, "loading invalid files")
	}
	return &il, nil
}

// pushInvalid queues a file hash or filler id for deletion by miner.
func (fb *FileBank) pushInvalid(ctx context.Context, miner address.Address, id string) error {
	il, err := fb.invalidList(ctx, miner)
	if err != nil {
		return err
	}
	if len(il.Entries) >= build.MaxInvalidEntries {
		return aerrors.Wrapf(ErrStorageLimitReached, "invalid file list of %s is full", miner)
	}
	il.Entries = append(il.Entries, id)

	return storageErr(fb.invalid.Put(ctx, miner, il), "saving invalid files")
}

// AddInvalidFile queues hash for deletion by miner.
func (fb *FileBank) AddInvalidFile(ctx context.Context, miner address.Address, hash string) error {
	if err := validName("hash", hash); err != nil {
		return err
	}
	return fb.transact(ctx, "add_invalid_file", func(ctx context.Context) error {
		return fb.pushInvalid(ctx, miner, hash)
	})
}

// AckInvalidFileCleared removes every occurrence of hash from miner's
// outbox. Acknowledging an entry that is not queued is not an error.
func (fb *FileBank) AckInvalidFileCleared(ctx context.Context, miner address.Address, hash string) error {
	return fb.transact(ctx, "ack_invalid_file", func(ctx context.Context) error {
		il, err := fb.invalidList(ctx, miner)
		if err != nil {
			return err
		}

		kept := il.Entries[:0]
		for _, e := range il.Entries {
			if e != hash {
				kept = append(kept, e)
			}
		}
		il.Entries = kept

		if len(il.Entries) == 0 {
			has, err := fb.invalid.Has(ctx, miner)
			if err != nil {
				return storageErr(err, "checking invalid files")
			}
			if has {
				if err := fb.invalid.End(ctx, miner); err != nil {
					return storageErr(err, "removing invalid files")
				}
			}
		} else if err := fb.invalid.Put(ctx, miner, il); err != nil {
			return storageErr(err, "saving invalid files")
		}

		fb.record(evtTypeClearInvalidFile, &ClearInvalidFileEvt{Miner: miner, Hash: hash})
		return nil
	})
}
