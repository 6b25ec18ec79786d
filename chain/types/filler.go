package types

import (
	"github.com/filecoin-project/go-address"
)

// FillerRecord is a placeholder shard set a miner stores to prove spare
// capacity. It is replaced by real files as they are assigned to the miner.
type FillerRecord struct {
	FillerID    string
	ShardCount  uint64
	Size        uint64
	SegmentSize uint64
	Miner       address.Address
}
