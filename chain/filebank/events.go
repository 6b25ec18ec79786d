package filebank

import (
	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"

	"github.com/filebank-network/filebank/journal"
)

const (
	evtTypeUploadDeclaration = iota
	evtTypeFileUpload
	evtTypeFillerUpload
	evtTypeDeleteFile
	evtTypeBuyPackage
	evtTypeLeaseFrozen
	evtTypeLeaseExpired
	evtTypeLeaseExpiresSoon
	evtTypeClearInvalidFile
	evtTypeSweepFailure
	evtTypeLast
)

func registerEventTypes(j journal.Journal) [evtTypeLast]journal.EventType {
	return [evtTypeLast]journal.EventType{
		evtTypeUploadDeclaration: j.RegisterEventType("filebank", "upload_declaration"),
		evtTypeFileUpload:        j.RegisterEventType("filebank", "file_upload"),
		evtTypeFillerUpload:      j.RegisterEventType("filebank", "filler_upload"),
		evtTypeDeleteFile:        j.RegisterEventType("filebank", "delete_file"),
		evtTypeBuyPackage:        j.RegisterEventType("filebank", "buy_package"),
		evtTypeLeaseFrozen:       j.RegisterEventType("filebank", "lease_frozen"),
		evtTypeLeaseExpired:      j.RegisterEventType("filebank", "lease_expired"),
		evtTypeLeaseExpiresSoon:  j.RegisterEventType("filebank", "lease_expires_soon"),
		evtTypeClearInvalidFile:  j.RegisterEventType("filebank", "clear_invalid_file"),
		evtTypeSweepFailure:      j.RegisterEventType("filebank", "sweep_failure"),
	}
}

type UploadDeclarationEvt struct {
	Account address.Address
	Hash    string
	Name    string
}

type FileUploadEvt struct {
	Account address.Address
	Hash    string
	Size    uint64
	Miner   address.Address
}

type FillerUploadEvt struct {
	Coordinator address.Address
	Miner       address.Address
	Count       int
	Power       uint64
}

type DeleteFileEvt struct {
	Account address.Address
	Hash    string
	// Released is set when the last owner let go and the miner was asked to
	// purge the file.
	Released bool
}

type BuyPackageEvt struct {
	Account  address.Address
	Tier     uint64
	Space    uint64
	Price    abi.TokenAmount
	Deadline abi.ChainEpoch
}

type LeaseEvt struct {
	Account  address.Address
	Deadline abi.ChainEpoch
	Epoch    abi.ChainEpoch
}

type ClearInvalidFileEvt struct {
	Miner address.Address
	Hash  string
}

type SweepFailureEvt struct {
	Account address.Address
	Epoch   abi.ChainEpoch
	Error   string
}

type pendingEvent struct {
	typ  int
	data interface{}
}
