package balances

import (
	"context"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/ipfs/go-datastore"
	dssync "github.com/ipfs/go-datastore/sync"
	"github.com/stretchr/testify/require"

	"github.com/filebank-network/filebank/chain/actors/aerrors"
	"github.com/filebank-network/filebank/chain/state"
)

func TestTransfer(t *testing.T) {
	ctx := context.Background()
	st := state.NewStateTree(dssync.MutexWrap(datastore.NewMapDatastore()))
	l := New(st)

	from, err := address.NewIDAddress(1001)
	require.NoError(t, err)
	to, err := address.NewIDAddress(90)
	require.NoError(t, err)

	bal, err := l.Balance(ctx, from)
	require.NoError(t, err)
	require.True(t, bal.IsZero())

	require.NoError(t, l.Deposit(ctx, from, big.NewInt(100)))
	require.NoError(t, l.Transfer(ctx, from, to, big.NewInt(60)))

	bal, err = l.Balance(ctx, from)
	require.NoError(t, err)
	require.True(t, bal.Equals(big.NewInt(40)))
	bal, err = l.Balance(ctx, to)
	require.NoError(t, err)
	require.True(t, bal.Equals(big.NewInt(60)))

	err = l.Transfer(ctx, from, to, big.NewInt(41))
	var aerr aerrors.ActorError
	require.ErrorAs(t, err, &aerr)
	require.Equal(t, exitcode.ErrInsufficientFunds, aerr.RetCode())

	require.Error(t, l.Deposit(ctx, from, big.NewInt(-1)))

	// draining an account removes its entry
	require.NoError(t, l.Transfer(ctx, from, to, big.NewInt(40)))
	has, err := st.Has(ctx, balanceKey(from))
	require.NoError(t, err)
	require.False(t, has)
}
