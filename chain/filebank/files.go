package filebank

import (
	"context"
	"strings"

	"github.com/filecoin-project/go-address"
	"github.com/ipfs/go-datastore"
	"golang.org/x/xerrors"

	"github.com/filebank-network/filebank/build"
	"github.com/filebank-network/filebank/chain/actors/aerrors"
	"github.com/filebank-network/filebank/chain/types"
)

func validName(what, s string) error {
	switch {
	case s == "":
		return aerrors.Wrapf(ErrInvalidInput, "empty %s", what)
	case len(s) > build.StringLimit:
		return aerrors.Wrapf(ErrInvalidInput, "%s longer than %d bytes", what, build.StringLimit)
	case strings.ContainsRune(s, '/'):
		return aerrors.Wrapf(ErrInvalidInput, "%s contains '/'", what)
	case datastore.NewKey(s).Name() != s:
		// "." and ".." would be cleaned into a parent key
		return aerrors.Wrapf(ErrInvalidInput, "%s %q is not a valid key name", what, s)
	}
	return nil
}

func (fb *FileBank) getFile(ctx context.Context, hash string) (*types.FileRecord, error) {
	var fr types.FileRecord
	if err := fb.files.Get(ctx, hash, &fr); err != nil {
		if isNotFound(err) {
			return nil, aerrors.Wrapf(ErrFileNotFound, "file %s", hash)
		}
		return nil, storageErr(err, "loading file")
	}
	return &fr, nil
}

// Declare registers account's intent to store hash under name. Declaring a
// file that already exists makes the account a co-owner and charges its
// package for the current file size.
func (fb *FileBank) Declare(ctx context.Context, account address.Address, hash, name string) error {
	if err := validName("hash", hash); err != nil {
		return err
	}
	if err := validName("name", name); err != nil {
		return err
	}

	return fb.transact(ctx, "declare", func(ctx context.Context) error {
		fr, err := fb.getFile(ctx, hash)
		switch {
		case err == nil:
			if fr.IsOwner(account) {
				return aerrors.Wrapf(ErrAlreadyDeclared, "file %s, account %s", hash, account)
			}
			if len(fr.Owners) >= build.MaxFileOwners {
				return aerrors.Wrapf(ErrStorageLimitReached, "file %s has %d owners", hash, len(fr.Owners))
			}
			if fr.Size > 0 {
				if err := fb.creditUsage(ctx, account, fr.Size); err != nil {
					return err
				}
			}
			if err := fb.upsertHeld(ctx, account, hash, fr.Size); err != nil {
				return err
			}
			fr.Owners = append(fr.Owners, types.Owner{Account: account, Name: name})
		case xerrors.Is(err, ErrFileNotFound):
			// the miner is set on commit; until then it holds the declarer
			fr = &types.FileRecord{
				Owners: []types.Owner{{Account: account, Name: name}},
				State:  types.FileDeclared,
				Miner:  account,
			}
			if err := fb.upsertHeld(ctx, account, hash, 0); err != nil {
				return err
			}
		default:
			return err
		}

		if err := fb.files.Put(ctx, hash, fr); err != nil {
			return storageErr(err, "saving file")
		}

		fb.record(evtTypeUploadDeclaration, &UploadDeclarationEvt{Account: account, Hash: hash, Name: name})
		return nil
	})
}

type UploadParams struct {
	Coordinator address.Address
	Account     address.Address

	Hash         string
	Size         uint64
	ShardCount   uint64
	ScanUnitSize uint64
	SegmentSize  uint64

	Miner         address.Address
	MinerID       uint64
	MinerEndpoint []byte
}

// CommitUpload activates a declared file once a coordinator reports it
// stored by a miner. The uploader's package is charged and the miner's
// fillers are swapped out for the new file.
func (fb *FileBank) CommitUpload(ctx context.Context, p UploadParams) error {
	return fb.transact(ctx, "commit_upload", func(ctx context.Context) error {
		ok, err := fb.coordinators.IsCoordinator(ctx, p.Coordinator)
		if err != nil {
			return collabErr(err, "checking coordinator")
		}
		if !ok {
			return aerrors.Wrapf(ErrUnauthorizedCoordinator, "%s", p.Coordinator)
		}

		fr, err := fb.getFile(ctx, p.Hash)
		if err != nil {
			return err
		}
		if !fr.IsOwner(p.Account) {
			return aerrors.Wrapf(ErrNotDeclaredByAccount, "file %s, account %s", p.Hash, p.Account)
		}
		if fr.State == types.FileActive {
			return aerrors.Wrapf(ErrAlreadyActive, "file %s", p.Hash)
		}

		if err := fb.creditUsage(ctx, p.Account, p.Size); err != nil {
			return err
		}

		fr.Size = p.Size
		fr.ShardCount = p.ShardCount
		fr.ScanUnitSize = p.ScanUnitSize
		fr.SegmentSize = p.SegmentSize
		fr.Miner = p.Miner
		fr.MinerID = p.MinerID
		fr.MinerEndpoint = p.MinerEndpoint
		fr.State = types.FileActive

		if err := fb.files.Put(ctx, p.Hash, fr); err != nil {
			return storageErr(err, "saving file")
		}
		if err := fb.upsertHeld(ctx, p.Account, p.Hash, p.Size); err != nil {
			return err
		}
		if err := fb.replaceFillers(ctx, p.Miner, p.Size); err != nil {
			return err
		}

		log.Infow("file uploaded", "hash", p.Hash, "size", p.Size, "miner", p.Miner)
		fb.record(evtTypeFileUpload, &FileUploadEvt{Account: p.Account, Hash: p.Hash, Size: p.Size, Miner: p.Miner})
		return nil
	})
}

// Delete drops account's claim on hash.
func (fb *FileBank) Delete(ctx context.Context, account address.Address, hash string) error {
	return fb.transact(ctx, "delete", func(ctx context.Context) error {
		fr, err := fb.getFile(ctx, hash)
		if err != nil {
			return err
		}
		return fb.releaseFile(ctx, account, hash, fr)
	})
}

// releaseFile removes account from the owners of fr, debiting its package.
// Once the last owner is gone the record is dropped and the miner holding
// an active file is told to purge it.
func (fb *FileBank) releaseFile(ctx context.Context, account address.Address, hash string, fr *types.FileRecord) error {
	idx := fr.OwnerIndex(account)
	if idx < 0 {
		return aerrors.Wrapf(ErrNotOwner, "file %s, account %s", hash, account)
	}

	credited, found, err := fb.removeHeld(ctx, account, hash)
	if err != nil {
		return err
	}
	if found {
		if err := fb.debitUsage(ctx, account, credited); err != nil {
			return err
		}
	}

	released := len(fr.Owners) == 1
	if !released {
		fr.Owners = append(fr.Owners[:idx], fr.Owners[idx+1:]...)
		if err := fb.files.Put(ctx, hash, fr); err != nil {
			return storageErr(err, "saving file")
		}
	} else {
		if err := fb.files.End(ctx, hash); err != nil {
			return storageErr(err, "removing file")
		}

		if fr.State == types.FileActive {
			if err := fb.pushInvalid(ctx, fr.Miner, hash); err != nil {
				return err
			}
			if err := fb.miners.SubPower(ctx, fr.Miner, fr.Size); err != nil {
				return collabErr(err, "reducing miner power")
			}
			if err := fb.miners.SubSpace(ctx, fr.Miner, fr.Size); err != nil {
				return collabErr(err, "reducing miner space")
			}
		}
	}

	fb.record(evtTypeDeleteFile, &DeleteFileEvt{Account: account, Hash: hash, Released: released})
	return nil
}

// ClearFile drops a file record outright, without touching quotas or the
// miner. Other modules use it to discard files that failed verification.
func (fb *FileBank) ClearFile(ctx context.Context, hash string) error {
	return fb.transact(ctx, "clear_file", func(ctx context.Context) error {
		if _, err := fb.getFile(ctx, hash); err != nil {
			return err
		}
		return storageErr(fb.files.End(ctx, hash), "removing file")
	})
}

func (fb *FileBank) heldFiles(ctx context.Context, account address.Address) (*types.HeldFileList, error) {
	var hl types.HeldFileList
	if err := fb.held.Get(ctx, account, &hl); err != nil && !isNotFound(err) {
		return nil, storageErr(err, "loading held files")
	}
	return &hl, nil
}

// upsertHeld records that account holds hash, credited with size bytes.
func (fb *FileBank) upsertHeld(ctx context.Context, account address.Address, hash string, size uint64) error {
	hl, err := fb.heldFiles(ctx, account)
	if err != nil {
		return err
	}

	if i := hl.Find(hash); i >= 0 {
		hl.Files[i].Size = size
	} else {
		if len(hl.Files) >= build.MaxHeldFiles {
			return aerrors.Wrapf(ErrStorageLimitReached, "account %s holds %d files", account, len(hl.Files))
		}
		hl.Files = append(hl.Files, types.HeldFile{Hash: hash, Size: size})
	}

	return storageErr(fb.held.Put(ctx, account, hl), "saving held files")
}

func (fb *FileBank) removeHeld(ctx context.Context, account address.Address, hash string) (uint64, bool, error) {
	hl, err := fb.heldFiles(ctx, account)
	if err != nil {
		return 0, false, err
	}

	i := hl.Find(hash)
	if i < 0 {
		return 0, false, nil
	}
	size := hl.Files[i].Size
	hl.Files = append(hl.Files[:i], hl.Files[i+1:]...)

	if len(hl.Files) == 0 {
		err = fb.held.End(ctx, account)
	} else {
		err = fb.held.Put(ctx, account, hl)
	}
	if err != nil {
		return 0, false, storageErr(err, "saving held files")
	}
	return size, true, nil
}
