package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/ipfs/go-cid"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-jsonrpc/auth"
	"github.com/filecoin-project/go-state-types/abi"

	"github.com/filebank-network/filebank/chain/filebank"
	"github.com/filebank-network/filebank/chain/types"
)

type CommonStruct struct {
	Internal CommonMethods
}

type CommonMethods struct {
	AuthVerify func(p0 context.Context, p1 string) ([]auth.Permission, error) `perm:"read"`

	AuthNew func(p0 context.Context, p1 []auth.Permission) ([]byte, error) `perm:"admin"`

	Session func(p0 context.Context) (uuid.UUID, error) `perm:"read"`

	Shutdown func(p0 context.Context) error `perm:"admin"`

	Version func(p0 context.Context) (APIVersion, error) `perm:"read"`
}

type FileBankStruct struct {
	CommonStruct

	Internal FileBankMethods
}

type FileBankMethods struct {
	CoordinatorList func(p0 context.Context) ([]address.Address, error) `perm:"read"`

	CoordinatorRegister func(p0 context.Context, p1 address.Address) error `perm:"admin"`

	CoordinatorUnregister func(p0 context.Context, p1 address.Address) error `perm:"admin"`

	LedgerAckInvalid func(p0 context.Context, p1 address.Address, p2 string) error `perm:"write"`

	LedgerCommitUpload func(p0 context.Context, p1 filebank.UploadParams) error `perm:"write"`

	LedgerDeclare func(p0 context.Context, p1 address.Address, p2 string, p3 string) error `perm:"write"`

	LedgerDelete func(p0 context.Context, p1 address.Address, p2 string) error `perm:"write"`

	LedgerPurchaseQuota func(p0 context.Context, p1 address.Address, p2 uint64, p3 uint64) error `perm:"write"`

	LedgerUploadFiller func(p0 context.Context, p1 address.Address, p2 address.Address, p3 []types.FillerRecord) error `perm:"write"`

	MinerInfo func(p0 context.Context, p1 address.Address) (*types.MinerInfo, error) `perm:"read"`

	MinerRegister func(p0 context.Context, p1 address.Address) (uint64, error) `perm:"admin"`

	MinerSetState func(p0 context.Context, p1 address.Address, p2 types.MinerState) error `perm:"admin"`

	MinerTotalSpace func(p0 context.Context) (uint64, error) `perm:"read"`

	RegistryAddInvalidFile func(p0 context.Context, p1 address.Address, p2 string) error `perm:"admin"`

	RegistryAddMember func(p0 context.Context, p1 address.Address) error `perm:"admin"`

	RegistryClearAllFillers func(p0 context.Context, p1 address.Address) error `perm:"admin"`

	RegistryClearFile func(p0 context.Context, p1 string) error `perm:"admin"`

	RegistryDeleteFiller func(p0 context.Context, p1 address.Address, p2 string) error `perm:"admin"`

	RegistryDeleteMinerFillers func(p0 context.Context, p1 address.Address) error `perm:"admin"`

	RegistryIsMember func(p0 context.Context, p1 address.Address) (bool, error) `perm:"read"`

	RegistryMembers func(p0 context.Context) ([]address.Address, error) `perm:"read"`

	RegistryRemoveMember func(p0 context.Context, p1 address.Address) error `perm:"admin"`

	StateEpoch func(p0 context.Context) (abi.ChainEpoch, error) `perm:"read"`

	StateFile func(p0 context.Context, p1 string) (*types.FileRecord, error) `perm:"read"`

	StateFillers func(p0 context.Context, p1 address.Address) ([]types.FillerRecord, error) `perm:"read"`

	StateHeldFiles func(p0 context.Context, p1 address.Address) ([]types.HeldFile, error) `perm:"read"`

	StateInvalidFiles func(p0 context.Context, p1 address.Address) ([]string, error) `perm:"read"`

	StatePriceQuote func(p0 context.Context, p1 uint64) (abi.TokenAmount, error) `perm:"read"`

	StateQuota func(p0 context.Context, p1 address.Address) (*types.QuotaRecord, error) `perm:"read"`

	StateRoot func(p0 context.Context) (cid.Cid, error) `perm:"read"`

	StateSampleRound func(p0 context.Context, p1 abi.ChainEpoch) ([]types.ChallengeTarget, error) `perm:"read"`

	StateUnitPrice func(p0 context.Context) (abi.TokenAmount, error) `perm:"read"`

	WalletBalance func(p0 context.Context, p1 address.Address) (abi.TokenAmount, error) `perm:"read"`

	WalletDeposit func(p0 context.Context, p1 address.Address, p2 abi.TokenAmount) error `perm:"admin"`

	WalletTransfer func(p0 context.Context, p1 address.Address, p2 address.Address, p3 abi.TokenAmount) error `perm:"admin"`
}

func (s *CommonStruct) AuthVerify(p0 context.Context, p1 string) ([]auth.Permission, error) {
	if s.Internal.AuthVerify == nil {
		return nil, ErrNotSupported
	}
	return s.Internal.AuthVerify(p0, p1)
}

func (s *CommonStruct) AuthNew(p0 context.Context, p1 []auth.Permission) ([]byte, error) {
	if s.Internal.AuthNew == nil {
		return nil, ErrNotSupported
	}
	return s.Internal.AuthNew(p0, p1)
}

func (s *CommonStruct) Session(p0 context.Context) (uuid.UUID, error) {
	if s.Internal.Session == nil {
		return *new(uuid.UUID), ErrNotSupported
	}
	return s.Internal.Session(p0)
}

func (s *CommonStruct) Shutdown(p0 context.Context) error {
	if s.Internal.Shutdown == nil {
		return ErrNotSupported
	}
	return s.Internal.Shutdown(p0)
}

func (s *CommonStruct) Version(p0 context.Context) (APIVersion, error) {
	if s.Internal.Version == nil {
		return *new(APIVersion), ErrNotSupported
	}
	return s.Internal.Version(p0)
}

func (s *FileBankStruct) CoordinatorList(p0 context.Context) ([]address.Address, error) {
	if s.Internal.CoordinatorList == nil {
		return nil, ErrNotSupported
	}
	return s.Internal.CoordinatorList(p0)
}

func (s *FileBankStruct) CoordinatorRegister(p0 context.Context, p1 address.Address) error {
	if s.Internal.CoordinatorRegister == nil {
		return ErrNotSupported
	}
	return s.Internal.CoordinatorRegister(p0, p1)
}

func (s *FileBankStruct) CoordinatorUnregister(p0 context.Context, p1 address.Address) error {
	if s.Internal.CoordinatorUnregister == nil {
		return ErrNotSupported
	}
	return s.Internal.CoordinatorUnregister(p0, p1)
}

func (s *FileBankStruct) LedgerAckInvalid(p0 context.Context, p1 address.Address, p2 string) error {
	if s.Internal.LedgerAckInvalid == nil {
		return ErrNotSupported
	}
	return s.Internal.LedgerAckInvalid(p0, p1, p2)
}

func (s *FileBankStruct) LedgerCommitUpload(p0 context.Context, p1 filebank.UploadParams) error {
	if s.Internal.LedgerCommitUpload == nil {
		return ErrNotSupported
	}
	return s.Internal.LedgerCommitUpload(p0, p1)
}

func (s *FileBankStruct) LedgerDeclare(p0 context.Context, p1 address.Address, p2 string, p3 string) error {
	if s.Internal.LedgerDeclare == nil {
		return ErrNotSupported
	}
	return s.Internal.LedgerDeclare(p0, p1, p2, p3)
}

func (s *FileBankStruct) LedgerDelete(p0 context.Context, p1 address.Address, p2 string) error {
	if s.Internal.LedgerDelete == nil {
		return ErrNotSupported
	}
	return s.Internal.LedgerDelete(p0, p1, p2)
}

func (s *FileBankStruct) LedgerPurchaseQuota(p0 context.Context, p1 address.Address, p2 uint64, p3 uint64) error {
	if s.Internal.LedgerPurchaseQuota == nil {
		return ErrNotSupported
	}
	return s.Internal.LedgerPurchaseQuota(p0, p1, p2, p3)
}

func (s *FileBankStruct) LedgerUploadFiller(p0 context.Context, p1 address.Address, p2 address.Address, p3 []types.FillerRecord) error {
	if s.Internal.LedgerUploadFiller == nil {
		return ErrNotSupported
	}
	return s.Internal.LedgerUploadFiller(p0, p1, p2, p3)
}

func (s *FileBankStruct) MinerInfo(p0 context.Context, p1 address.Address) (*types.MinerInfo, error) {
	if s.Internal.MinerInfo == nil {
		return nil, ErrNotSupported
	}
	return s.Internal.MinerInfo(p0, p1)
}

func (s *FileBankStruct) MinerRegister(p0 context.Context, p1 address.Address) (uint64, error) {
	if s.Internal.MinerRegister == nil {
		return *new(uint64), ErrNotSupported
	}
	return s.Internal.MinerRegister(p0, p1)
}

func (s *FileBankStruct) MinerSetState(p0 context.Context, p1 address.Address, p2 types.MinerState) error {
	if s.Internal.MinerSetState == nil {
		return ErrNotSupported
	}
	return s.Internal.MinerSetState(p0, p1, p2)
}

func (s *FileBankStruct) MinerTotalSpace(p0 context.Context) (uint64, error) {
	if s.Internal.MinerTotalSpace == nil {
		return *new(uint64), ErrNotSupported
	}
	return s.Internal.MinerTotalSpace(p0)
}

func (s *FileBankStruct) RegistryAddInvalidFile(p0 context.Context, p1 address.Address, p2 string) error {
	if s.Internal.RegistryAddInvalidFile == nil {
		return ErrNotSupported
	}
	return s.Internal.RegistryAddInvalidFile(p0, p1, p2)
}

func (s *FileBankStruct) RegistryAddMember(p0 context.Context, p1 address.Address) error {
	if s.Internal.RegistryAddMember == nil {
		return ErrNotSupported
	}
	return s.Internal.RegistryAddMember(p0, p1)
}

func (s *FileBankStruct) RegistryClearAllFillers(p0 context.Context, p1 address.Address) error {
	if s.Internal.RegistryClearAllFillers == nil {
		return ErrNotSupported
	}
	return s.Internal.RegistryClearAllFillers(p0, p1)
}

func (s *FileBankStruct) RegistryClearFile(p0 context.Context, p1 string) error {
	if s.Internal.RegistryClearFile == nil {
		return ErrNotSupported
	}
	return s.Internal.RegistryClearFile(p0, p1)
}

func (s *FileBankStruct) RegistryDeleteFiller(p0 context.Context, p1 address.Address, p2 string) error {
	if s.Internal.RegistryDeleteFiller == nil {
		return ErrNotSupported
	}
	return s.Internal.RegistryDeleteFiller(p0, p1, p2)
}

func (s *FileBankStruct) RegistryDeleteMinerFillers(p0 context.Context, p1 address.Address) error {
	if s.Internal.RegistryDeleteMinerFillers == nil {
		return ErrNotSupported
	}
	return s.Internal.RegistryDeleteMinerFillers(p0, p1)
}

func (s *FileBankStruct) RegistryIsMember(p0 context.Context, p1 address.Address) (bool, error) {
	if s.Internal.RegistryIsMember == nil {
		return *new(bool), ErrNotSupported
	}
	return s.Internal.RegistryIsMember(p0, p1)
}

func (s *FileBankStruct) RegistryMembers(p0 context.Context) ([]address.Address, error) {
	if s.Internal.RegistryMembers == nil {
		return nil, ErrNotSupported
	}
	return s.Internal.RegistryMembers(p0)
}

func (s *FileBankStruct) RegistryRemoveMember(p0 context.Context, p1 address.Address) error {
	if s.Internal.RegistryRemoveMember == nil {
		return ErrNotSupported
	}
	return s.Internal.RegistryRemoveMember(p0, p1)
}

func (s *FileBankStruct) StateEpoch(p0 context.Context) (abi.ChainEpoch, error) {
	if s.Internal.StateEpoch == nil {
		return *new(abi.ChainEpoch), ErrNotSupported
	}
	return s.Internal.StateEpoch(p0)
}

func (s *FileBankStruct) StateFile(p0 context.Context, p1 string) (*types.FileRecord, error) {
	if s.Internal.StateFile == nil {
		return nil, ErrNotSupported
	}
	return s.Internal.StateFile(p0, p1)
}

func (s *FileBankStruct) StateFillers(p0 context.Context, p1 address.Address) ([]types.FillerRecord, error) {
	if s.Internal.StateFillers == nil {
		return nil, ErrNotSupported
	}
	return s.Internal.StateFillers(p0, p1)
}

func (s *FileBankStruct) StateHeldFiles(p0 context.Context, p1 address.Address) ([]types.HeldFile, error) {
	if s.Internal.StateHeldFiles == nil {
		return nil, ErrNotSupported
	}
	return s.Internal.StateHeldFiles(p0, p1)
}

func (s *FileBankStruct) StateInvalidFiles(p0 context.Context, p1 address.Address) ([]string, error) {
	if s.Internal.StateInvalidFiles == nil {
		return nil, ErrNotSupported
	}
	return s.Internal.StateInvalidFiles(p0, p1)
}

func (s *FileBankStruct) StatePriceQuote(p0 context.Context, p1 uint64) (abi.TokenAmount, error) {
	if s.Internal.StatePriceQuote == nil {
		return *new(abi.TokenAmount), ErrNotSupported
	}
	return s.Internal.StatePriceQuote(p0, p1)
}

func (s *FileBankStruct) StateQuota(p0 context.Context, p1 address.Address) (*types.QuotaRecord, error) {
	if s.Internal.StateQuota == nil {
		return nil, ErrNotSupported
	}
	return s.Internal.StateQuota(p0, p1)
}

func (s *FileBankStruct) StateRoot(p0 context.Context) (cid.Cid, error) {
	if s.Internal.StateRoot == nil {
		return *new(cid.Cid), ErrNotSupported
	}
	return s.Internal.StateRoot(p0)
}

func (s *FileBankStruct) StateSampleRound(p0 context.Context, p1 abi.ChainEpoch) ([]types.ChallengeTarget, error) {
	if s.Internal.StateSampleRound == nil {
		return nil, ErrNotSupported
	}
	return s.Internal.StateSampleRound(p0, p1)
}

func (s *FileBankStruct) StateUnitPrice(p0 context.Context) (abi.TokenAmount, error) {
	if s.Internal.StateUnitPrice == nil {
		return *new(abi.TokenAmount), ErrNotSupported
	}
	return s.Internal.StateUnitPrice(p0)
}

func (s *FileBankStruct) WalletBalance(p0 context.Context, p1 address.Address) (abi.TokenAmount, error) {
	if s.Internal.WalletBalance == nil {
		return *new(abi.TokenAmount), ErrNotSupported
	}
	return s.Internal.WalletBalance(p0, p1)
}

func (s *FileBankStruct) WalletDeposit(p0 context.Context, p1 address.Address, p2 abi.TokenAmount) error {
	if s.Internal.WalletDeposit == nil {
		return ErrNotSupported
	}
	return s.Internal.WalletDeposit(p0, p1, p2)
}

func (s *FileBankStruct) WalletTransfer(p0 context.Context, p1 address.Address, p2 address.Address, p3 abi.TokenAmount) error {
	if s.Internal.WalletTransfer == nil {
		return ErrNotSupported
	}
	return s.Internal.WalletTransfer(p0, p1, p2, p3)
}

var _ Common = new(CommonStruct)
var _ FileBank = new(FileBankStruct)
