package rand

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeededRandDeterministic(t *testing.T) {
	ctx := context.Background()

	a := NewSeededRand([]byte("filebank"))
	b := NewSeededRand([]byte("filebank"))

	ra, err := a.GetRandomness(ctx, DomainSeparationTag_FileSample, 100, []byte{1})
	require.NoError(t, err)
	rb, err := b.GetRandomness(ctx, DomainSeparationTag_FileSample, 100, []byte{1})
	require.NoError(t, err)
	require.Equal(t, ra, rb)
	require.Len(t, ra, 32)

	for _, other := range [][]byte{
		must(a.GetRandomness(ctx, DomainSeparationTag_FillerSample, 100, []byte{1})),
		must(a.GetRandomness(ctx, DomainSeparationTag_FileSample, 101, []byte{1})),
		must(a.GetRandomness(ctx, DomainSeparationTag_FileSample, 100, []byte{2})),
		must(NewSeededRand([]byte("other")).GetRandomness(ctx, DomainSeparationTag_FileSample, 100, []byte{1})),
	} {
		require.NotEqual(t, ra, other)
	}
}

func must(b []byte, err error) []byte {
	if err != nil {
		panic(err)
	}
	return b
}
