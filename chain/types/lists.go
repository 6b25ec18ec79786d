package types

import (
	"github.com/filecoin-project/go-address"
)

// InvalidFileList holds the file hashes and filler ids a miner must purge.
type InvalidFileList struct {
	Entries []string
}

type HeldFile struct {
	Hash string
	// Size is the amount credited to the holder's quota for this file.
	Size uint64
}

type HeldFileList struct {
	Files []HeldFile
}

func (l *HeldFileList) Find(hash string) int {
	for i, f := range l.Files {
		if f.Hash == hash {
			return i
		}
	}
	return -1
}

type AddressList struct {
	Addresses []address.Address
}
