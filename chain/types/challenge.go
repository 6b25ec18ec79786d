package types

import (
	"github.com/filecoin-project/go-address"
)

type ObjectKind int

const (
	KindFiller ObjectKind = iota + 1
	KindFile
)

func (k ObjectKind) String() string {
	switch k {
	case KindFiller:
		return "filler"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// ChallengeTarget names one sampled object and the shard indices a miner
// must prove for it in an audit round.
type ChallengeTarget struct {
	Miner       address.Address
	ObjectID    string
	Shards      []uint32
	Size        uint64
	Kind        ObjectKind
	SegmentSize uint64
}
