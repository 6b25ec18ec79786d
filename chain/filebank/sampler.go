package filebank

import (
	"bytes"
	"context"
	"encoding/binary"
	"sort"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/crypto"
	"github.com/ipfs/go-datastore"
	"go.opencensus.io/stats"
	"go.opencensus.io/tag"

	"github.com/filebank-network/filebank/build"
	"github.com/filebank-network/filebank/chain/actors/aerrors"
	"github.com/filebank-network/filebank/chain/rand"
	"github.com/filebank-network/filebank/chain/types"
	"github.com/filebank-network/filebank/metrics"
)

// Draws allowed per selected index before giving up on a randomness source
// that keeps repeating itself.
const maxDrawsPerIndex = 64

// SampleRound selects the fillers and active files miners must prove at
// epoch now, and for each the shard indices to challenge. The result depends
// only on ledger state, now and the randomness source: fillers come first,
// then files, each in pool order.
//
// The draws are seeded from public values. Anyone with the same randomness
// source can compute a round ahead of time.
func (fb *FileBank) SampleRound(ctx context.Context, now abi.ChainEpoch) ([]types.ChallengeTarget, error) {
	defer metrics.Timer(ctx, metrics.SampleDuration)()

	fillers, err := fb.sampleFillers(ctx, now)
	if err != nil {
		return nil, err
	}
	files, err := fb.sampleFiles(ctx, now)
	if err != nil {
		return nil, err
	}

	fctx, _ := tag.New(ctx, tag.Upsert(metrics.Kind, types.KindFiller.String()))
	stats.Record(fctx, metrics.SampledTargets.M(int64(len(fillers))))
	fctx, _ = tag.New(ctx, tag.Upsert(metrics.Kind, types.KindFile.String()))
	stats.Record(fctx, metrics.SampledTargets.M(int64(len(files))))

	log.Debugw("audit round sampled", "epoch", now, "fillers", len(fillers), "files", len(files))
	return append(fillers, files...), nil
}

func sampleSize(l, rate uint64) (uint64, error) {
	n, err := mulU64(l, rate)
	if err != nil {
		return 0, err
	}
	return ceilDiv(n, build.SampleRateDenominator), nil
}

func (fb *FileBank) sampleFillers(ctx context.Context, now abi.ChainEpoch) ([]types.ChallengeTarget, error) {
	keys, err := fb.fillers.Keys(ctx, nil)
	if err != nil {
		return nil, storageErr(err, "listing fillers")
	}

	l := uint64(len(keys))
	k, err := sampleSize(l, build.FillerSampleRate)
	if err != nil {
		return nil, err
	}
	idx, err := fb.selectIndices(ctx, rand.DomainSeparationTag_FillerSample, now, l, k, nil)
	if err != nil {
		return nil, err
	}

	out := make([]types.ChallengeTarget, 0, len(idx))
	for _, i := range idx {
		var fr types.FillerRecord
		if err := fb.fillers.Get(ctx, relativeKey(FillersPrefix, keys[i]), &fr); err != nil {
			return nil, storageErr(err, "loading filler")
		}

		shards, err := fb.selectShards(ctx, now, fr.ShardCount, fr.Miner, fr.FillerID)
		if err != nil {
			return nil, err
		}

		out = append(out, types.ChallengeTarget{
			Miner:       fr.Miner,
			ObjectID:    fr.FillerID,
			Shards:      shards,
			Size:        fr.Size,
			Kind:        types.KindFiller,
			SegmentSize: fr.SegmentSize,
		})
	}
	return out, nil
}

type activeFile struct {
	hash string
	rec  types.FileRecord
}

func (fb *FileBank) sampleFiles(ctx context.Context, now abi.ChainEpoch) ([]types.ChallengeTarget, error) {
	var pool []activeFile
	err := fb.files.ForEach(ctx, func(k datastore.Key, raw []byte) error {
		var fr types.FileRecord
		if err := fr.UnmarshalCBOR(bytes.NewReader(raw)); err != nil {
			return aerrors.Escalate(err, "decoding file "+k.String())
		}
		if fr.State == types.FileActive {
			pool = append(pool, activeFile{hash: k.Name(), rec: fr})
		}
		return nil
	})
	if err != nil {
		return nil, storageErr(err, "listing files")
	}

	l := uint64(len(pool))
	k, err := sampleSize(l, build.FileSampleRate)
	if err != nil {
		return nil, err
	}
	idx, err := fb.selectIndices(ctx, rand.DomainSeparationTag_FileSample, now, l, k, nil)
	if err != nil {
		return nil, err
	}

	out := make([]types.ChallengeTarget, 0, len(idx))
	for _, i := range idx {
		af := pool[i]

		id, err := fb.miners.GetMinerID(ctx, af.rec.Miner)
		if err != nil {
			return nil, collabErr(err, "getting miner id")
		}
		if id != af.rec.MinerID {
			log.Debugw("skipping file whose miner was re-registered", "hash", af.hash, "miner", af.rec.Miner)
			continue
		}

		shards, err := fb.selectShards(ctx, now, af.rec.ShardCount, af.rec.Miner, af.hash)
		if err != nil {
			return nil, err
		}

		out = append(out, types.ChallengeTarget{
			Miner:       af.rec.Miner,
			ObjectID:    af.hash,
			Shards:      shards,
			Size:        af.rec.Size,
			Kind:        types.KindFile,
			SegmentSize: af.rec.SegmentSize,
		})
	}
	return out, nil
}

// selectShards picks ceil(shards * rate) + 1 of an object's shards, never
// more than it has.
func (fb *FileBank) selectShards(ctx context.Context, now abi.ChainEpoch, shardCount uint64, miner address.Address, objectID string) ([]uint32, error) {
	k, err := sampleSize(shardCount, build.ShardSampleRate)
	if err != nil {
		return nil, err
	}
	k++
	if k > shardCount {
		k = shardCount
	}

	subject := append(miner.Bytes(), objectID...)
	idx, err := fb.selectIndices(ctx, rand.DomainSeparationTag_ShardSample, now, shardCount, k, subject)
	if err != nil {
		return nil, err
	}

	shards := make([]uint32, len(idx))
	for i, v := range idx {
		shards[i] = uint32(v)
	}
	return shards, nil
}

// selectIndices draws k distinct indices below l, returned ascending. Draw
// number c uses entropy be64(c) || subject; a zero draw is discarded.
func (fb *FileBank) selectIndices(ctx context.Context, pers crypto.DomainSeparationTag, now abi.ChainEpoch, l, k uint64, subject []byte) ([]uint64, error) {
	if k > l {
		k = l
	}
	if k == 0 {
		return nil, nil
	}

	maxDraws, err := mulU64(k, maxDrawsPerIndex)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint64]struct{}, k)
	entropy := make([]byte, 8+len(subject))
	copy(entropy[8:], subject)

	for counter := uint64(0); uint64(len(seen)) < k; counter++ {
		if counter >= maxDraws {
			return nil, aerrors.Fatalf("randomness source produced only %d distinct indices of %d after %d draws", len(seen), k, counter)
		}

		binary.BigEndian.PutUint64(entropy[:8], counter)
		r, err := fb.rand.GetRandomness(ctx, pers, now, entropy)
		if err != nil {
			return nil, collabErr(err, "drawing randomness")
		}
		if len(r) < 4 {
			return nil, aerrors.Fatalf("randomness too short: %d bytes", len(r))
		}

		v := binary.BigEndian.Uint32(r[:4])
		if v == 0 {
			continue
		}
		seen[uint64(v)%l] = struct{}{}
	}

	out := make([]uint64, 0, len(seen))
	for i := range seen {
		out = append(out, i)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// relativeKey strips prefix from a full key returned by a store listing.
func relativeKey(prefix, k datastore.Key) datastore.Key {
	return datastore.NewKey(k.String()[len(prefix.String()):])
}
