package types

import (
	"bytes"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/stretchr/testify/require"
)

func TestFileRecordCbor(t *testing.T) {
	miner, err := address.NewIDAddress(1000)
	require.NoError(t, err)
	alice, err := address.NewIDAddress(101)
	require.NoError(t, err)

	fr := &FileRecord{
		Size:          5 << 20,
		ShardCount:    12,
		ScanUnitSize:  1 << 20,
		SegmentSize:   8 << 20,
		Miner:         miner,
		MinerID:       7,
		MinerEndpoint: []byte("/ip4/127.0.0.1/tcp/15001"),
		Owners:        []Owner{{Account: alice, Name: "notes.txt"}},
		State:         FileActive,
	}

	buf := new(bytes.Buffer)
	require.NoError(t, fr.MarshalCBOR(buf))

	var out FileRecord
	require.NoError(t, out.UnmarshalCBOR(bytes.NewReader(buf.Bytes())))
	require.Equal(t, *fr, out)
}

func TestLedgerParamsCbor(t *testing.T) {
	lp := &LedgerParams{
		Epoch:       -3,
		UnitPrice:   big.NewInt(1_000_000_000_000_000),
		SweepActive: true,
		SweepCursor: "/quota/t0101",
	}

	buf := new(bytes.Buffer)
	require.NoError(t, lp.MarshalCBOR(buf))

	var out LedgerParams
	require.NoError(t, out.UnmarshalCBOR(buf))
	require.Equal(t, lp.Epoch, out.Epoch)
	require.True(t, lp.UnitPrice.Equals(out.UnitPrice))
	require.Equal(t, lp.SweepCursor, out.SweepCursor)
	require.True(t, out.SweepActive)
}

func TestUnmarshalRejectsWrongArity(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, (&HeldFile{Hash: "h", Size: 1}).MarshalCBOR(buf))

	var q QuotaRecord
	require.Error(t, q.UnmarshalCBOR(buf))
}
