package filebank

import (
	"context"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/ipfs/go-datastore"
	logging "github.com/ipfs/go-log/v2"
	"go.opencensus.io/stats"
	"go.opencensus.io/tag"
	"golang.org/x/xerrors"

	"github.com/filebank-network/filebank/build"
	"github.com/filebank-network/filebank/chain/actors/aerrors"
	"github.com/filebank-network/filebank/chain/state"
	"github.com/filebank-network/filebank/chain/types"
	"github.com/filebank-network/filebank/journal"
	"github.com/filebank-network/filebank/lib/statestore"
	"github.com/filebank-network/filebank/metrics"
)

var log = logging.Logger("filebank")

// Key spaces of the ledger.
var (
	FilesPrefix   = datastore.NewKey("/files")
	QuotaPrefix   = datastore.NewKey("/quota")
	FillersPrefix = datastore.NewKey("/fillers")
	InvalidPrefix = datastore.NewKey("/invalid")
	HeldPrefix    = datastore.NewKey("/held")
	ParamsPrefix  = datastore.NewKey("/params")
)

const (
	paramsLedgerKey  = "ledger"
	paramsMembersKey = "members"
)

// PotActorID is the id of the account receiving package payments unless
// configured otherwise.
const PotActorID = 90

type Config struct {
	// Pot receives package payments.
	Pot address.Address
	// SweepBudget caps the quota records the lease sweep visits per epoch.
	SweepBudget int
}

func DefaultConfig() Config {
	pot, err := address.NewIDAddress(PotActorID)
	if err != nil {
		panic(err)
	}
	return Config{
		Pot:         pot,
		SweepBudget: build.DefaultSweepBudget,
	}
}

// Deps are the collaborators the ledger consults. Writes made by
// collaborators sharing the ledger's StateTree are rolled back together with
// the ledger's own.
type Deps struct {
	Currency     Currency
	Coordinators Coordinators
	Miners       MinerControl
	Capacity     NetworkCapacity
	Rand         Randomness
	Journal      journal.Journal
}

// FileBank is the storage ledger. It is not safe for concurrent use;
// callers serialise operations.
type FileBank struct {
	cfg Config
	st  *state.StateTree

	files   *statestore.StateStore
	quotas  *statestore.StateStore
	fillers *statestore.StateStore
	invalid *statestore.StateStore
	held    *statestore.StateStore
	params  *statestore.StateStore

	currency     Currency
	coordinators Coordinators
	miners       MinerControl
	capacity     NetworkCapacity
	rand         Randomness

	journal  journal.Journal
	evtTypes [evtTypeLast]journal.EventType
	pending  []pendingEvent
}

func New(st *state.StateTree, cfg Config, deps Deps) (*FileBank, error) {
	if deps.Currency == nil || deps.Coordinators == nil || deps.Miners == nil || deps.Capacity == nil || deps.Rand == nil {
		return nil, xerrors.Errorf("filebank: missing collaborator")
	}
	if cfg.Pot == address.Undef {
		return nil, xerrors.Errorf("filebank: pot address not set")
	}
	if cfg.SweepBudget <= 0 {
		cfg.SweepBudget = build.DefaultSweepBudget
	}

	j := deps.Journal
	if j == nil {
		j = journal.NilJournal()
	}

	return &FileBank{
		cfg: cfg,
		st:  st,

		files:   statestore.New(st, FilesPrefix),
		quotas:  statestore.New(st, QuotaPrefix),
		fillers: statestore.New(st, FillersPrefix),
		invalid: statestore.New(st, InvalidPrefix),
		held:    statestore.New(st, HeldPrefix),
		params:  statestore.New(st, ParamsPrefix),

		currency:     deps.Currency,
		coordinators: deps.Coordinators,
		miners:       deps.Miners,
		capacity:     deps.Capacity,
		rand:         deps.Rand,

		journal:  j,
		evtTypes: registerEventTypes(j),
	}, nil
}

// transact runs cb over a fresh snapshot layer. A failing cb leaves no trace
// in state or in the journal; a successful one is flushed in a single batch
// and its journal events are published afterwards.
func (fb *FileBank) transact(ctx context.Context, op string, cb func(ctx context.Context) error) (err error) {
	ctx, _ = tag.New(ctx, tag.Upsert(metrics.Operation, op))
	stop := metrics.Timer(ctx, metrics.OperationDuration)
	defer stop()

	defer func() {
		res := metrics.ResultOk
		var code string
		if err != nil {
			res = metrics.ResultFailed
			var aerr aerrors.ActorError
			if xerrors.As(err, &aerr) {
				if aerr.IsFatal() {
					res = metrics.ResultFatal
				}
				code = aerr.RetCode().String()
			}
		}
		mctx, _ := tag.New(ctx, tag.Upsert(metrics.Result, res), tag.Upsert(metrics.ExitCode, code))
		stats.Record(mctx, metrics.OperationCount.M(1))
	}()

	if fb.st.Depth() != 0 {
		return aerrors.Fatalf("%s: nested ledger transaction", op)
	}

	if err := fb.st.Snapshot(ctx); err != nil {
		return aerrors.Escalate(err, "taking state snapshot")
	}
	fb.pending = nil

	if err := cb(ctx); err != nil {
		if rerr := fb.st.Revert(); rerr != nil {
			log.Errorw("reverting state", "op", op, "error", rerr)
		}
		fb.st.ClearSnapshot()
		fb.pending = nil
		log.Debugw("operation rolled back", "op", op, "error", err)
		return err
	}

	fb.st.ClearSnapshot()
	if err := fb.st.Flush(ctx); err != nil {
		fb.st.Discard()
		fb.pending = nil
		return aerrors.Escalate(err, "flushing ledger state")
	}

	events := fb.pending
	fb.pending = nil
	for _, evt := range events {
		journal.MaybeRecordEvent(fb.journal, fb.evtTypes[evt.typ], func() interface{} {
			return evt.data
		})
	}

	return nil
}

// Atomic runs cb as one ledger transaction. Collaborators sharing the
// ledger's StateTree use it to commit their own writes.
func (fb *FileBank) Atomic(ctx context.Context, op string, cb func(ctx context.Context) error) error {
	return fb.transact(ctx, op, cb)
}

// record buffers a journal entry until the current transaction commits.
func (fb *FileBank) record(typ int, data interface{}) {
	fb.pending = append(fb.pending, pendingEvent{typ: typ, data: data})
}

func (fb *FileBank) loadParams(ctx context.Context) (*types.LedgerParams, error) {
	var lp types.LedgerParams
	err := fb.params.Get(ctx, paramsLedgerKey, &lp)
	switch {
	case err == nil:
	case xerrors.Is(err, datastore.ErrNotFound):
		lp = types.LedgerParams{UnitPrice: big.Zero()}
	default:
		return nil, aerrors.Escalate(err, "loading ledger params")
	}
	return &lp, nil
}

func (fb *FileBank) saveParams(ctx context.Context, lp *types.LedgerParams) error {
	if err := fb.params.Put(ctx, paramsLedgerKey, lp); err != nil {
		return aerrors.Escalate(err, "saving ledger params")
	}
	return nil
}

// collabErr passes ledger errors raised by collaborators through and treats
// anything else as fatal.
func collabErr(err error, msg string) error {
	if err == nil {
		return nil
	}
	return aerrors.HandleExternalError(err, msg)
}

func storageErr(err error, msg string) error {
	if err == nil {
		return nil
	}
	return aerrors.Escalate(err, msg)
}

func isNotFound(err error) bool {
	return xerrors.Is(err, datastore.ErrNotFound)
}
