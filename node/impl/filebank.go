package impl

import (
	"context"

	"github.com/ipfs/go-cid"
	logging "github.com/ipfs/go-log/v2"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"

	"github.com/filebank-network/filebank/api"
	"github.com/filebank-network/filebank/chain/balances"
	"github.com/filebank-network/filebank/chain/filebank"
	"github.com/filebank-network/filebank/chain/scheduler"
	"github.com/filebank-network/filebank/chain/sminer"
	"github.com/filebank-network/filebank/chain/types"
	"github.com/filebank-network/filebank/node/impl/common"
)

var log = logging.Logger("node")

type FileBankAPI struct {
	common.CommonAPI

	Ledger       *Ledger
	Miners       *sminer.Registry
	Coordinators *scheduler.Registry
	Balances     *balances.Ledger
}

// Ledger

func (a *FileBankAPI) LedgerDeclare(ctx context.Context, account address.Address, hash, name string) error {
	a.Ledger.Lock()
	defer a.Ledger.Unlock()

	return a.Ledger.FB.Declare(ctx, account, hash, name)
}

func (a *FileBankAPI) LedgerCommitUpload(ctx context.Context, params filebank.UploadParams) error {
	a.Ledger.Lock()
	defer a.Ledger.Unlock()

	return a.Ledger.FB.CommitUpload(ctx, params)
}

func (a *FileBankAPI) LedgerUploadFiller(ctx context.Context, coordinator, miner address.Address, batch []types.FillerRecord) error {
	a.Ledger.Lock()
	defer a.Ledger.Unlock()

	return a.Ledger.FB.UploadFiller(ctx, coordinator, miner, batch)
}

func (a *FileBankAPI) LedgerDelete(ctx context.Context, account address.Address, hash string) error {
	a.Ledger.Lock()
	defer a.Ledger.Unlock()

	return a.Ledger.FB.Delete(ctx, account, hash)
}

func (a *FileBankAPI) LedgerPurchaseQuota(ctx context.Context, account address.Address, tier, count uint64) error {
	a.Ledger.Lock()
	defer a.Ledger.Unlock()

	return a.Ledger.FB.PurchaseQuota(ctx, account, tier, count)
}

func (a *FileBankAPI) LedgerAckInvalid(ctx context.Context, miner address.Address, hash string) error {
	a.Ledger.Lock()
	defer a.Ledger.Unlock()

	return a.Ledger.FB.AckInvalidFileCleared(ctx, miner, hash)
}

// Registry

func (a *FileBankAPI) RegistryClearAllFillers(ctx context.Context, miner address.Address) error {
	a.Ledger.Lock()
	defer a.Ledger.Unlock()

	return a.Ledger.FB.ClearAllFillers(ctx, miner)
}

func (a *FileBankAPI) RegistryDeleteFiller(ctx context.Context, miner address.Address, id string) error {
	a.Ledger.Lock()
	defer a.Ledger.Unlock()

	return a.Ledger.FB.DeleteFiller(ctx, miner, id)
}

func (a *FileBankAPI) RegistryDeleteMinerFillers(ctx context.Context, miner address.Address) error {
	a.Ledger.Lock()
	defer a.Ledger.Unlock()

	return a.Ledger.FB.DeleteMinerFillers(ctx, miner)
}

func (a *FileBankAPI) RegistryClearFile(ctx context.Context, hash string) error {
	a.Ledger.Lock()
	defer a.Ledger.Unlock()

	return a.Ledger.FB.ClearFile(ctx, hash)
}

func (a *FileBankAPI) RegistryAddInvalidFile(ctx context.Context, miner address.Address, hash string) error {
	a.Ledger.Lock()
	defer a.Ledger.Unlock()

	return a.Ledger.FB.AddInvalidFile(ctx, miner, hash)
}

func (a *FileBankAPI) RegistryAddMember(ctx context.Context, acc address.Address) error {
	a.Ledger.Lock()
	defer a.Ledger.Unlock()

	return a.Ledger.FB.AddMember(ctx, acc)
}

func (a *FileBankAPI) RegistryRemoveMember(ctx context.Context, acc address.Address) error {
	a.Ledger.Lock()
	defer a.Ledger.Unlock()

	return a.Ledger.FB.RemoveMember(ctx, acc)
}

func (a *FileBankAPI) RegistryIsMember(ctx context.Context, acc address.Address) (bool, error) {
	a.Ledger.Lock()
	defer a.Ledger.Unlock()

	return a.Ledger.FB.IsMember(ctx, acc)
}

func (a *FileBankAPI) RegistryMembers(ctx context.Context) ([]address.Address, error) {
	a.Ledger.Lock()
	defer a.Ledger.Unlock()

	return a.Ledger.FB.Members(ctx)
}

// State

func (a *FileBankAPI) StateSampleRound(ctx context.Context, now abi.ChainEpoch) ([]types.ChallengeTarget, error) {
	a.Ledger.Lock()
	defer a.Ledger.Unlock()

	return a.Ledger.FB.SampleRound(ctx, now)
}

func (a *FileBankAPI) StateFile(ctx context.Context, hash string) (*types.FileRecord, error) {
	a.Ledger.Lock()
	defer a.Ledger.Unlock()

	return a.Ledger.FB.File(ctx, hash)
}

func (a *FileBankAPI) StateQuota(ctx context.Context, account address.Address) (*types.QuotaRecord, error) {
	a.Ledger.Lock()
	defer a.Ledger.Unlock()

	return a.Ledger.FB.Quota(ctx, account)
}

func (a *FileBankAPI) StateFillers(ctx context.Context, miner address.Address) ([]types.FillerRecord, error) {
	a.Ledger.Lock()
	defer a.Ledger.Unlock()

	return a.Ledger.FB.Fillers(ctx, miner)
}

func (a *FileBankAPI) StateInvalidFiles(ctx context.Context, miner address.Address) ([]string, error) {
	a.Ledger.Lock()
	defer a.Ledger.Unlock()

	return a.Ledger.FB.InvalidFiles(ctx, miner)
}

func (a *FileBankAPI) StateHeldFiles(ctx context.Context, account address.Address) ([]types.HeldFile, error) {
	a.Ledger.Lock()
	defer a.Ledger.Unlock()

	return a.Ledger.FB.HeldFiles(ctx, account)
}

func (a *FileBankAPI) StateUnitPrice(ctx context.Context) (abi.TokenAmount, error) {
	a.Ledger.Lock()
	defer a.Ledger.Unlock()

	return a.Ledger.FB.UnitPrice(ctx)
}

func (a *FileBankAPI) StatePriceQuote(ctx context.Context, space uint64) (abi.TokenAmount, error) {
	a.Ledger.Lock()
	defer a.Ledger.Unlock()

	return a.Ledger.FB.PriceQuote(ctx, space)
}

func (a *FileBankAPI) StateEpoch(ctx context.Context) (abi.ChainEpoch, error) {
	return a.Ledger.Epoch(ctx)
}

func (a *FileBankAPI) StateRoot(ctx context.Context) (cid.Cid, error) {
	a.Ledger.Lock()
	defer a.Ledger.Unlock()

	return a.Ledger.FB.StateRoot(ctx)
}

// Reference collaborators. Writes run inside a ledger transaction so they
// land in the same state tree flush.

func (a *FileBankAPI) MinerRegister(ctx context.Context, miner address.Address) (uint64, error) {
	var id uint64
	err := a.Ledger.atomic(ctx, "miner-register", func(ctx context.Context) (err error) {
		id, err = a.Miners.Register(ctx, miner)
		return err
	})
	if err != nil {
		return 0, err
	}
	log.Infow("registered miner", "miner", miner, "id", id)
	return id, nil
}

func (a *FileBankAPI) MinerSetState(ctx context.Context, miner address.Address, st types.MinerState) error {
	return a.Ledger.atomic(ctx, "miner-set-state", func(ctx context.Context) error {
		return a.Miners.SetState(ctx, miner, st)
	})
}

func (a *FileBankAPI) MinerInfo(ctx context.Context, miner address.Address) (*types.MinerInfo, error) {
	a.Ledger.Lock()
	defer a.Ledger.Unlock()

	return a.Miners.Info(ctx, miner)
}

func (a *FileBankAPI) MinerTotalSpace(ctx context.Context) (uint64, error) {
	a.Ledger.Lock()
	defer a.Ledger.Unlock()

	return a.Miners.TotalSpace(ctx)
}

func (a *FileBankAPI) CoordinatorRegister(ctx context.Context, acc address.Address) error {
	return a.Ledger.atomic(ctx, "coordinator-register", func(ctx context.Context) error {
		return a.Coordinators.Register(ctx, acc)
	})
}

func (a *FileBankAPI) CoordinatorUnregister(ctx context.Context, acc address.Address) error {
	return a.Ledger.atomic(ctx, "coordinator-unregister", func(ctx context.Context) error {
		return a.Coordinators.Unregister(ctx, acc)
	})
}

func (a *FileBankAPI) CoordinatorList(ctx context.Context) ([]address.Address, error) {
	a.Ledger.Lock()
	defer a.Ledger.Unlock()

	return a.Coordinators.List(ctx)
}

func (a *FileBankAPI) WalletDeposit(ctx context.Context, acc address.Address, amount abi.TokenAmount) error {
	return a.Ledger.atomic(ctx, "wallet-deposit", func(ctx context.Context) error {
		return a.Balances.Deposit(ctx, acc, amount)
	})
}

func (a *FileBankAPI) WalletTransfer(ctx context.Context, from, to address.Address, amount abi.TokenAmount) error {
	return a.Ledger.atomic(ctx, "wallet-transfer", func(ctx context.Context) error {
		return a.Balances.Transfer(ctx, from, to, amount)
	})
}

func (a *FileBankAPI) WalletBalance(ctx context.Context, acc address.Address) (abi.TokenAmount, error) {
	a.Ledger.Lock()
	defer a.Ledger.Unlock()

	return a.Balances.Balance(ctx, acc)
}

var _ api.FileBank = &FileBankAPI{}
