package filebank

import (
	"context"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/ipfs/go-cid"

	"github.com/filebank-network/filebank/chain/actors/aerrors"
	"github.com/filebank-network/filebank/chain/types"
)

func (fb *FileBank) File(ctx context.Context, hash string) (*types.FileRecord, error) {
	return fb.getFile(ctx, hash)
}

func (fb *FileBank) Quota(ctx context.Context, account address.Address) (*types.QuotaRecord, error) {
	var q types.QuotaRecord
	if err := fb.quotas.Get(ctx, account, &q); err != nil {
		if isNotFound(err) {
			return nil, aerrors.Wrapf(ErrNotPurchased, "account %s", account)
		}
		return nil, storageErr(err, "loading quota")
	}
	return &q, nil
}

// Fillers lists the fillers of miner in key order.
func (fb *FileBank) Fillers(ctx context.Context, miner address.Address) ([]types.FillerRecord, error) {
	keys, err := fb.fillers.Keys(ctx, miner)
	if err != nil {
		return nil, storageErr(err, "listing fillers")
	}

	out := make([]types.FillerRecord, len(keys))
	for i, k := range keys {
		if err := fb.fillers.Get(ctx, relativeKey(FillersPrefix, k), &out[i]); err != nil {
			return nil, storageErr(err, "loading filler")
		}
	}
	return out, nil
}

func (fb *FileBank) InvalidFiles(ctx context.Context, miner address.Address) ([]string, error) {
	il, err := fb.invalidList(ctx, miner)
	if err != nil {
		return nil, err
	}
	return il.Entries, nil
}

func (fb *FileBank) HeldFiles(ctx context.Context, account address.Address) ([]types.HeldFile, error) {
	hl, err := fb.heldFiles(ctx, account)
	if err != nil {
		return nil, err
	}
	return hl.Files, nil
}

// UnitPrice is the unit price quoted by the last paid package purchase.
func (fb *FileBank) UnitPrice(ctx context.Context) (abi.TokenAmount, error) {
	lp, err := fb.loadParams(ctx)
	if err != nil {
		return abi.TokenAmount{}, err
	}
	return lp.UnitPrice, nil
}

func (fb *FileBank) Epoch(ctx context.Context) (abi.ChainEpoch, error) {
	lp, err := fb.loadParams(ctx)
	if err != nil {
		return 0, err
	}
	return lp.Epoch, nil
}

// StateRoot fingerprints the committed ledger state, collaborator records
// sharing the state tree included.
func (fb *FileBank) StateRoot(ctx context.Context) (cid.Cid, error) {
	c, err := fb.st.Root(ctx)
	if err != nil {
		return cid.Undef, storageErr(err, "computing state root")
	}
	return c, nil
}
