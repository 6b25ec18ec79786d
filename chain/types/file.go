package types

import (
	"github.com/filecoin-project/go-address"
)

type FileState uint64

const (
	FileDeclared FileState = iota
	FileActive
)

func (s FileState) String() string {
	switch s {
	case FileDeclared:
		return "declared"
	case FileActive:
		return "active"
	default:
		return "unknown"
	}
}

// Owner is one (account, display name) pair holding a file.
type Owner struct {
	Account address.Address
	Name    string
}

// FileRecord is the registry entry of one content hash.
type FileRecord struct {
	Size         uint64
	ShardCount   uint64
	ScanUnitSize uint64
	SegmentSize  uint64

	// Miner is the declaring account until the file is committed.
	Miner         address.Address
	MinerID       uint64
	MinerEndpoint []byte

	Owners []Owner
	State  FileState
}

func (f *FileRecord) OwnerIndex(account address.Address) int {
	for i, o := range f.Owners {
		if o.Account == account {
			return i
		}
	}
	return -1
}

func (f *FileRecord) IsOwner(account address.Address) bool {
	return f.OwnerIndex(account) >= 0
}
