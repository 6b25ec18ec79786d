package filebank

import (
	"context"

	"github.com/filecoin-project/go-address"
	"github.com/samber/lo"

	"github.com/filebank-network/filebank/build"
	"github.com/filebank-network/filebank/chain/actors/aerrors"
	"github.com/filebank-network/filebank/chain/types"
)

// MaxMembers bounds the member list.
const MaxMembers = build.StringLimit

func (fb *FileBank) memberList(ctx context.Context) (*types.AddressList, error) {
	var ml types.AddressList
	if err := fb.params.Get(ctx, paramsMembersKey, &ml); err != nil && !isNotFound(err) {
		return nil, storageErr(err, "loading members")
	}
	return &ml, nil
}

func (fb *FileBank) AddMember(ctx context.Context, acc address.Address) error {
	return fb.transact(ctx, "add_member", func(ctx context.Context) error {
		ml, err := fb.memberList(ctx)
		if err != nil {
			return err
		}
		if lo.Contains(ml.Addresses, acc) {
			return aerrors.Wrapf(ErrAlreadyExists, "member %s", acc)
		}
		if len(ml.Addresses) >= MaxMembers {
			return aerrors.Wrapf(ErrStorageLimitReached, "%d members", len(ml.Addresses))
		}
		ml.Addresses = append(ml.Addresses, acc)
		return storageErr(fb.params.Put(ctx, paramsMembersKey, ml), "saving members")
	})
}

// RemoveMember is a no-op for accounts that are not members.
func (fb *FileBank) RemoveMember(ctx context.Context, acc address.Address) error {
	return fb.transact(ctx, "remove_member", func(ctx context.Context) error {
		ml, err := fb.memberList(ctx)
		if err != nil {
			return err
		}
		ml.Addresses = lo.Without(ml.Addresses, acc)
		return storageErr(fb.params.Put(ctx, paramsMembersKey, ml), "saving members")
	})
}

func (fb *FileBank) IsMember(ctx context.Context, acc address.Address) (bool, error) {
	ml, err := fb.memberList(ctx)
	if err != nil {
		return false, err
	}
	return lo.Contains(ml.Addresses, acc), nil
}

func (fb *FileBank) Members(ctx context.Context) ([]address.Address, error) {
	ml, err := fb.memberList(ctx)
	if err != nil {
		return nil, err
	}
	return ml.Addresses, nil
}
