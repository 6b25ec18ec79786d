package rand

import (
	"context"
	"encoding/binary"

	logging "github.com/ipfs/go-log/v2"
	"go.opencensus.io/trace"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/xerrors"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/crypto"
)

var log = logging.Logger("rand")

// Personalisation tags of the audit sampler draws. They sit above the range
// used by go-state-types so the streams never collide.
const (
	DomainSeparationTag_FillerSample crypto.DomainSeparationTag = 101 + iota
	DomainSeparationTag_FileSample
	DomainSeparationTag_ShardSample
)

func DrawRandomnessFromBase(rbase []byte, pers crypto.DomainSeparationTag, round abi.ChainEpoch, entropy []byte) ([]byte, error) {
	return DrawRandomnessFromDigest(blake2b.Sum256(rbase), pers, round, entropy)
}

func DrawRandomnessFromDigest(digest [32]byte, pers crypto.DomainSeparationTag, round abi.ChainEpoch, entropy []byte) ([]byte, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return nil, xerrors.Errorf("creating hasher: %w", err)
	}
	if err := binary.Write(h, binary.BigEndian, int64(pers)); err != nil {
		return nil, xerrors.Errorf("deriving randomness: %w", err)
	}
	_, err = h.Write(digest[:])
	if err != nil {
		return nil, xerrors.Errorf("hashing VRFDigest: %w", err)
	}
	if err := binary.Write(h, binary.BigEndian, round); err != nil {
		return nil, xerrors.Errorf("deriving randomness: %w", err)
	}
	_, err = h.Write(entropy)
	if err != nil {
		return nil, xerrors.Errorf("hashing entropy: %w", err)
	}

	return h.Sum(nil), nil
}

// SeededRand derives all randomness from a fixed network seed. Anyone who
// knows the seed can reconstruct every draw ahead of time.
type SeededRand struct {
	digest [32]byte
}

func NewSeededRand(seed []byte) *SeededRand {
	return &SeededRand{digest: blake2b.Sum256(seed)}
}

func (sr *SeededRand) GetRandomness(ctx context.Context, pers crypto.DomainSeparationTag, round abi.ChainEpoch, entropy []byte) ([]byte, error) {
	_, span := trace.StartSpan(ctx, "rand.GetRandomness")
	defer span.End()
	span.AddAttributes(trace.Int64Attribute("round", int64(round)))

	if round < 0 {
		log.Warnw("drawing randomness for negative round", "round", round)
	}

	return DrawRandomnessFromDigest(sr.digest, pers, round, entropy)
}
