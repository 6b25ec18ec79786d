// Package balances is a plain account ledger used to settle package
// purchases on a standalone node.
package balances

import (
	"bytes"
	"context"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/ipfs/go-datastore"
	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/xerrors"

	"github.com/filebank-network/filebank/chain/actors/aerrors"
	"github.com/filebank-network/filebank/lib/statestore"
)

var log = logging.Logger("balances")

var BalancesPrefix = datastore.NewKey("/balances")

// Ledger stores one balance per account. Missing accounts hold zero.
type Ledger struct {
	kv statestore.KV
}

func New(kv statestore.KV) *Ledger {
	return &Ledger{kv: kv}
}

func balanceKey(acc address.Address) datastore.Key {
	return BalancesPrefix.ChildString(acc.String())
}

func (l *Ledger) Balance(ctx context.Context, acc address.Address) (abi.TokenAmount, error) {
	raw, err := l.kv.Get(ctx, balanceKey(acc))
	switch {
	case xerrors.Is(err, datastore.ErrNotFound):
		return big.Zero(), nil
	case err != nil:
		return big.Zero(), xerrors.Errorf("reading balance of %s: %w", acc, err)
	}

	var bal big.Int
	if err := bal.UnmarshalCBOR(bytes.NewReader(raw)); err != nil {
		return big.Zero(), xerrors.Errorf("decoding balance of %s: %w", acc, err)
	}
	return bal, nil
}

func (l *Ledger) setBalance(ctx context.Context, acc address.Address, bal abi.TokenAmount) error {
	if bal.IsZero() {
		return l.kv.Delete(ctx, balanceKey(acc))
	}

	buf := new(bytes.Buffer)
	if err := bal.MarshalCBOR(buf); err != nil {
		return xerrors.Errorf("encoding balance of %s: %w", acc, err)
	}
	return l.kv.Put(ctx, balanceKey(acc), buf.Bytes())
}

// Deposit mints amount into acc.
func (l *Ledger) Deposit(ctx context.Context, acc address.Address, amount abi.TokenAmount) error {
	if amount.Sign() < 0 {
		return aerrors.Newf(exitcode.ErrIllegalArgument, "negative deposit %s", amount)
	}

	bal, err := l.Balance(ctx, acc)
	if err != nil {
		return err
	}
	return l.setBalance(ctx, acc, big.Add(bal, amount))
}

func (l *Ledger) Transfer(ctx context.Context, from, to address.Address, amount abi.TokenAmount) error {
	if amount.Sign() < 0 {
		return aerrors.Newf(exitcode.ErrIllegalArgument, "negative transfer %s", amount)
	}
	if amount.IsZero() || from == to {
		return nil
	}

	fromBal, err := l.Balance(ctx, from)
	if err != nil {
		return err
	}
	if fromBal.LessThan(amount) {
		return aerrors.Newf(exitcode.ErrInsufficientFunds, "%s has %s, needs %s", from, fromBal, amount)
	}

	toBal, err := l.Balance(ctx, to)
	if err != nil {
		return err
	}

	if err := l.setBalance(ctx, from, big.Sub(fromBal, amount)); err != nil {
		return err
	}
	if err := l.setBalance(ctx, to, big.Add(toBal, amount)); err != nil {
		return err
	}

	log.Debugw("transfer", "from", from, "to", to, "amount", amount)
	return nil
}
