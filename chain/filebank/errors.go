package filebank

import (
	"github.com/filecoin-project/go-state-types/exitcode"

	"github.com/filebank-network/filebank/chain/actors/aerrors"
)

// Exit codes of ledger errors. Errors wrapping one of the sentinels below
// match it with errors.Is.
const (
	ExitFileNotFound exitcode.ExitCode = exitcode.FirstActorSpecificExitCode + iota
	ExitNotOwner
	ExitAlreadyDeclared
	ExitAlreadyActive
	ExitNotDeclaredByAccount
	ExitAlreadyExists
	ExitAlreadyPurchased
	ExitNotPurchased
	ExitFrozen
	ExitInsufficientStorage
	ExitMinerPowerInsufficient
	ExitStorageLimitReached
	ExitUnauthorizedCoordinator
	ExitNotQualifiedMiner
	ExitInvalidTier
	ExitInvalidInput
	ExitLengthExceedsLimit
	ExitOverflow
	ExitDivisionByZero
	ExitFillerNotFound
)

var (
	ErrFileNotFound            = aerrors.New(ExitFileNotFound, "file not found")
	ErrNotOwner                = aerrors.New(ExitNotOwner, "account does not own the file")
	ErrAlreadyDeclared         = aerrors.New(ExitAlreadyDeclared, "file already declared by account")
	ErrAlreadyActive           = aerrors.New(ExitAlreadyActive, "file already active")
	ErrNotDeclaredByAccount    = aerrors.New(ExitNotDeclaredByAccount, "file not declared by account")
	ErrAlreadyExists           = aerrors.New(ExitAlreadyExists, "already exists")
	ErrAlreadyPurchased        = aerrors.New(ExitAlreadyPurchased, "account already holds a package")
	ErrNotPurchased            = aerrors.New(ExitNotPurchased, "account holds no package")
	ErrFrozen                  = aerrors.New(ExitFrozen, "package is frozen")
	ErrInsufficientStorage     = aerrors.New(ExitInsufficientStorage, "insufficient storage remaining")
	ErrMinerPowerInsufficient  = aerrors.New(ExitMinerPowerInsufficient, "miner power insufficient")
	ErrStorageLimitReached     = aerrors.New(ExitStorageLimitReached, "storage limit reached")
	ErrUnauthorizedCoordinator = aerrors.New(ExitUnauthorizedCoordinator, "caller is not a coordinator")
	ErrNotQualifiedMiner       = aerrors.New(ExitNotQualifiedMiner, "miner not qualified")
	ErrInvalidTier             = aerrors.New(ExitInvalidTier, "invalid package tier")
	ErrInvalidInput            = aerrors.New(ExitInvalidInput, "invalid input")
	ErrLengthExceedsLimit      = aerrors.New(ExitLengthExceedsLimit, "length exceeds limit")
	ErrOverflow                = aerrors.New(ExitOverflow, "arithmetic overflow")
	ErrDivisionByZero          = aerrors.New(ExitDivisionByZero, "division by zero")
	ErrFillerNotFound          = aerrors.New(ExitFillerNotFound, "filler not found")

	// Currency collaborators report a failed transfer with this code.
	ErrInsufficientFunds = aerrors.New(exitcode.ErrInsufficientFunds, "insufficient funds")
)
