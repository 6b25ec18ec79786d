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

// Common is implemented by every filebank node.
type Common interface {
	// MethodGroup: Auth

	AuthVerify(ctx context.Context, token string) ([]auth.Permission, error) //perm:read
	AuthNew(ctx context.Context, perms []auth.Permission) ([]byte, error)    //perm:admin

	// Version provides information about API provider
	Version(context.Context) (APIVersion, error) //perm:read

	// Session returns a random UUID of api provider session
	Session(context.Context) (uuid.UUID, error) //perm:read

	// Shutdown trigger graceful shutdown
	Shutdown(context.Context) error //perm:admin
}

// FileBank is the API of a ledger node. Every write runs as one atomic
// ledger operation: it either applies in full or leaves no trace.
type FileBank interface {
	Common

	// MethodGroup: Ledger
	// Account-facing ledger operations.

	// LedgerDeclare registers intent to upload a file under hash.
	LedgerDeclare(ctx context.Context, account address.Address, hash, name string) error //perm:write
	// LedgerCommitUpload activates a declared file stored by a miner. Only
	// registered coordinators may call it.
	LedgerCommitUpload(ctx context.Context, params filebank.UploadParams) error //perm:write
	// LedgerUploadFiller records up to ten fillers for a miner.
	LedgerUploadFiller(ctx context.Context, coordinator, miner address.Address, batch []types.FillerRecord) error //perm:write
	// LedgerDelete removes account as an owner of hash, releasing the
	// file when no owner remains.
	LedgerDelete(ctx context.Context, account address.Address, hash string) error //perm:write
	LedgerPurchaseQuota(ctx context.Context, account address.Address, tier, count uint64) error //perm:write
	// LedgerAckInvalid drops hash from the miner's invalid-file outbox.
	LedgerAckInvalid(ctx context.Context, miner address.Address, hash string) error //perm:write

	// MethodGroup: Registry
	// Hooks consumed by the miner and coordinator subsystems.

	RegistryClearAllFillers(ctx context.Context, miner address.Address) error             //perm:admin
	RegistryDeleteFiller(ctx context.Context, miner address.Address, id string) error     //perm:admin
	RegistryDeleteMinerFillers(ctx context.Context, miner address.Address) error          //perm:admin
	RegistryClearFile(ctx context.Context, hash string) error                             //perm:admin
	RegistryAddInvalidFile(ctx context.Context, miner address.Address, hash string) error //perm:admin
	RegistryAddMember(ctx context.Context, acc address.Address) error                     //perm:admin
	RegistryRemoveMember(ctx context.Context, acc address.Address) error                  //perm:admin
	RegistryIsMember(ctx context.Context, acc address.Address) (bool, error)              //perm:read
	RegistryMembers(ctx context.Context) ([]address.Address, error)                       //perm:read

	// MethodGroup: State

	// StateSampleRound computes the audit challenge set for epoch now.
	StateSampleRound(ctx context.Context, now abi.ChainEpoch) ([]types.ChallengeTarget, error) //perm:read
	StateFile(ctx context.Context, hash string) (*types.FileRecord, error)                      //perm:read
	StateQuota(ctx context.Context, account address.Address) (*types.QuotaRecord, error)        //perm:read
	StateFillers(ctx context.Context, miner address.Address) ([]types.FillerRecord, error)      //perm:read
	StateInvalidFiles(ctx context.Context, miner address.Address) ([]string, error)             //perm:read
	StateHeldFiles(ctx context.Context, account address.Address) ([]types.HeldFile, error)      //perm:read
	StateUnitPrice(ctx context.Context) (abi.TokenAmount, error)                                //perm:read
	// StatePriceQuote prices space bytes at the current network capacity.
	StatePriceQuote(ctx context.Context, space uint64) (abi.TokenAmount, error) //perm:read
	StateEpoch(ctx context.Context) (abi.ChainEpoch, error)                     //perm:read
	StateRoot(ctx context.Context) (cid.Cid, error)                             //perm:read

	// MethodGroup: Miner
	// Reference miner registry.

	MinerRegister(ctx context.Context, miner address.Address) (uint64, error)             //perm:admin
	MinerSetState(ctx context.Context, miner address.Address, st types.MinerState) error //perm:admin
	MinerInfo(ctx context.Context, miner address.Address) (*types.MinerInfo, error)       //perm:read
	MinerTotalSpace(ctx context.Context) (uint64, error)                                  //perm:read

	// MethodGroup: Coordinator

	CoordinatorRegister(ctx context.Context, acc address.Address) error   //perm:admin
	CoordinatorUnregister(ctx context.Context, acc address.Address) error //perm:admin
	CoordinatorList(ctx context.Context) ([]address.Address, error)       //perm:read

	// MethodGroup: Wallet
	// Reference balance ledger.

	WalletDeposit(ctx context.Context, acc address.Address, amount abi.TokenAmount) error //perm:admin
	WalletTransfer(ctx context.Context, from, to address.Address, amount abi.TokenAmount) error //perm:admin
	WalletBalance(ctx context.Context, acc address.Address) (abi.TokenAmount, error)            //perm:read
}
