package repo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemBasic(t *testing.T) {
	repo := NewMemory(nil)
	defer repo.Cleanup()
	basicTest(t, repo)
}

func TestMemStaleHandle(t *testing.T) {
	r := NewMemory(nil)
	defer r.Cleanup()

	first, err := r.Lock()
	require.NoError(t, err)
	require.NoError(t, first.Close())
	require.ErrorIs(t, first.Close(), ErrClosedRepo)

	second, err := r.Lock()
	require.NoError(t, err)
	defer second.Close() //nolint:errcheck

	_, err = first.Config()
	require.ErrorIs(t, err, ErrClosedRepo, "a closed handle must not reach the relocked repo")
	_, err = second.Config()
	require.NoError(t, err)
}
