package impl

import (
	"context"
	"sync"

	"github.com/filecoin-project/go-state-types/abi"

	"github.com/filebank-network/filebank/chain/filebank"
)

// Ledger serialises access to the ledger engine. Requests and the epoch
// ticker take turns; each write is a single engine transaction.
type Ledger struct {
	sync.Mutex

	FB *filebank.FileBank
}

func NewLedger(fb *filebank.FileBank) *Ledger {
	return &Ledger{FB: fb}
}

// ApplyEpoch advances the ledger to now.
func (l *Ledger) ApplyEpoch(ctx context.Context, now abi.ChainEpoch) error {
	l.Lock()
	defer l.Unlock()

	return l.FB.OnEpoch(ctx, now)
}

func (l *Ledger) Epoch(ctx context.Context) (abi.ChainEpoch, error) {
	l.Lock()
	defer l.Unlock()

	return l.FB.Epoch(ctx)
}

// atomic runs cb as one engine transaction while holding the lock, so
// collaborator writes roll back together with the ledger's.
func (l *Ledger) atomic(ctx context.Context, op string, cb func(ctx context.Context) error) error {
	l.Lock()
	defer l.Unlock()

	return l.FB.Atomic(ctx, op, cb)
}
