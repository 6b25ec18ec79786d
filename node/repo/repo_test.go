package repo

import (
	"context"
	"testing"

	"github.com/ipfs/go-datastore"
	"github.com/multiformats/go-multiaddr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filebank-network/filebank/node/config"
)

func basicTest(t *testing.T, repo Repo) {
	ctx := context.Background()

	apima, err := repo.APIEndpoint()
	if assert.Error(t, err) {
		assert.Equal(t, ErrNoAPIEndpoint, err)
	}
	assert.Nil(t, apima, "with no api endpoint, return should be nil")

	lrepo, err := repo.Lock()
	assert.NoError(t, err, "should be able to lock once")
	assert.NotNil(t, lrepo, "locked repo shouldn't be nil")

	{
		lrepo2, err := repo.Lock()
		if assert.Error(t, err) {
			assert.Equal(t, ErrRepoAlreadyLocked, err)
		}
		assert.Nil(t, lrepo2, "with locking error, should return nil")
	}

	err = lrepo.Close()
	assert.NoError(t, err, "should be able to unlock")

	lrepo, err = repo.Lock()
	assert.NoError(t, err, "should be able to relock")
	assert.NotNil(t, lrepo, "locked repo shouldn't be nil")

	ma, err := multiaddr.NewMultiaddr("/ip4/127.0.0.1/tcp/43244")
	assert.NoError(t, err, "creating multiaddr shouldn't error")

	err = lrepo.SetAPIEndpoint(ma)
	assert.NoError(t, err, "setting multiaddr shouldn't error")

	apima, err = repo.APIEndpoint()
	assert.NoError(t, err, "setting multiaddr shouldn't error")
	assert.Equal(t, ma, apima, "returned API multiaddr should be the same")

	c1, err := lrepo.Config()
	assert.Equal(t, config.DefaultRoot(), c1, "there should be a default config")
	assert.NoError(t, err, "config should not error")

	// mutate config and persist back to repo
	err = lrepo.SetConfig(func(c *config.Root) {
		c.Ledger.SweepBudget = 7
	})
	assert.NoError(t, err)

	// load config and verify changes
	c2, err := lrepo.Config()
	require.NoError(t, err)
	assert.Equal(t, 7, c2.Ledger.SweepBudget)

	ds, err := lrepo.Datastore(ctx, "/metadata")
	require.NoError(t, err)
	k := datastore.NewKey("/files/h1")
	require.NoError(t, ds.Put(ctx, k, []byte("v")))
	v, err := ds.Get(ctx, k)
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)

	sk1, err := lrepo.APISecret()
	require.NoError(t, err)
	assert.Len(t, sk1, 32)
	sk2, err := lrepo.APISecret()
	require.NoError(t, err)
	assert.Equal(t, sk1, sk2, "api secret should be generated once")

	_, err = repo.APIToken()
	assert.Error(t, err, "no token before it was set")
	require.NoError(t, lrepo.SetAPIToken([]byte("tok")))
	tok, err := repo.APIToken()
	require.NoError(t, err)
	assert.Equal(t, []byte("tok"), tok)

	err = lrepo.Close()
	assert.NoError(t, err, "should be able to close")

	apima, err = repo.APIEndpoint()

	if assert.Error(t, err) {
		assert.Equal(t, ErrNoAPIEndpoint, err, "after closing repo, api should be nil")
	}
	assert.Nil(t, apima, "with closed repo, apima should be set back to nil")
}
