package build

import (
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
)

// Core network constants

const NetworkName = "filebank"

// /////
// Sizes

const (
	KiB = uint64(1) << 10
	MiB = uint64(1) << 20
	GiB = uint64(1) << 30
	TiB = uint64(1) << 40
)

// /////
// Consensus / Network

// Seconds
const BlockDelaySecs = uint64(3)

// Epochs
const EpochsInDay = abi.ChainEpoch(24 * 60 * 60 / BlockDelaySecs)

// Days
const DaysPerMonth = 30

// /////
// Limits

// Bytes, applies to file hashes, filler ids and display names
const StringLimit = 256

const MaxFileOwners = 128
const MaxHeldFiles = 4096
const MaxInvalidEntries = 8192

// Max fillers accepted in one upload
const MaxFillerBatch = 10

// /////
// Fillers

// Power credited to a miner per filler
const FillerPowerUnit = 8 * MiB

// Shard unit that real files are proven against, in 8-way redundancy groups
const FillerUnitSize = MiB
const FillerRedundancy = 8

// /////
// Audit sampling

// Per mille rates
const (
	FillerSampleRate      = 46
	FileSampleRate        = 46 * 3
	ShardSampleRate       = 46
	SampleRateDenominator = 1000
)

// /////
// Lease sweep

// Quota records visited per epoch while a pass is running
const DefaultSweepBudget = 256

// /////
// Pricing

var (
	BasePricePerUnit = big.NewInt(1_000_000_000_000)
	PriceMultiplier  = big.NewInt(10_000)
	MinPrice         = big.NewInt(1_000_000_000_000_000)
)
