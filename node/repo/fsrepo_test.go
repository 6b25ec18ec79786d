package repo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func genFsRepo(t *testing.T) *FsRepo {
	repo, err := NewFS(t.TempDir())
	require.NoError(t, err)

	err = repo.Init()
	require.NoError(t, err)
	return repo
}

func TestFsBasic(t *testing.T) {
	repo := genFsRepo(t)
	basicTest(t, repo)
}

func TestFsInitTwice(t *testing.T) {
	repo := genFsRepo(t)
	require.Equal(t, ErrRepoExists, repo.Init())
}
