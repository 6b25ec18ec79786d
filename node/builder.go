package node

import (
	"context"
	"os"

	logging "github.com/ipfs/go-log/v2"
	"github.com/multiformats/go-multiaddr"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"golang.org/x/xerrors"

	"github.com/filebank-network/filebank/api"
	"github.com/filebank-network/filebank/build"
	"github.com/filebank-network/filebank/chain/balances"
	"github.com/filebank-network/filebank/chain/filebank"
	"github.com/filebank-network/filebank/chain/scheduler"
	"github.com/filebank-network/filebank/chain/sminer"
	"github.com/filebank-network/filebank/chain/state"
	"github.com/filebank-network/filebank/journal"
	"github.com/filebank-network/filebank/metrics"
	"github.com/filebank-network/filebank/node/config"
	"github.com/filebank-network/filebank/node/impl"
	"github.com/filebank-network/filebank/node/modules"
	"github.com/filebank-network/filebank/node/modules/dtypes"
	"github.com/filebank-network/filebank/node/modules/helpers"
	"github.com/filebank-network/filebank/node/repo"
)

//nolint:deadcode,varcheck
var log = logging.Logger("builder")

type invoke int

// Invokes are called in the order they are defined.
//
//nolint:golint
const (
	RunEpochTickerKey = invoke(iota)

	ExtractApiKey
	SetApiEndpointKey

	_nInvokes // keep this last
)

type Settings struct {
	// modules is a map of constructors for DI
	//
	// In most cases the index will be a reflect. Type of element returned by
	// the constructor
	modules map[interface{}]fx.Option

	// invokes are separate from modules as they can't be referenced by return
	// type, and must be applied in correct order
	invokes []fx.Option
}

// defaults are the process level services every node needs.
func defaults() []Option {
	return []Option{
		Override(new(helpers.MetricsCtx), func() context.Context {
			return metrics.AddNetworkTag(context.Background())
		}),
		Override(new(dtypes.ShutdownChan), make(chan struct{})),
		Override(new(build.NodeType), build.NodeLedger),

		Override(new(journal.DisabledEvents), modules.JournalDisabledEvents),
		Override(new(journal.Journal), modules.OpenFilesystemJournal),
	}
}

// ledgerModules wire the quota ledger on top of the shared state tree
// together with the reference collaborators it calls into.
func ledgerModules() []Option {
	return []Option{
		Override(new(*state.StateTree), modules.StateTree),
		Override(new(*sminer.Registry), modules.MinerRegistry),
		Override(new(*scheduler.Registry), modules.CoordinatorRegistry),
		Override(new(*balances.Ledger), modules.BalanceLedger),
		Override(new(filebank.Randomness), modules.Randomness),

		Override(new(filebank.Config), modules.LedgerConfig),
		Override(new(*filebank.FileBank), modules.FileBank),
		Override(new(*impl.Ledger), impl.NewLedger),

		Override(RunEpochTickerKey, modules.RunEpochTicker),
	}
}

// ConfigRoot sets up constructors based on the provided config
func ConfigRoot(cfg *config.Root) Option {
	return Options(
		Override(new(*config.Root), cfg),
		Override(new(dtypes.APIEndpoint), func() (dtypes.APIEndpoint, error) {
			ma, err := multiaddr.NewMultiaddr(cfg.API.ListenAddress)
			return dtypes.APIEndpoint(ma), err
		}),
		Override(SetApiEndpointKey, func(lr repo.LockedRepo, e dtypes.APIEndpoint) error {
			return lr.SetAPIEndpoint(multiaddr.Multiaddr(e))
		}),
	)
}

func Repo(r repo.Repo) Option {
	return func(settings *Settings) error {
		lr, err := r.Lock()
		if err != nil {
			return err
		}
		c, err := lr.Config()
		if err != nil {
			return err
		}

		return Options(
			Override(new(repo.LockedRepo), modules.LockedRepo(lr)), // module handles closing

			Override(new(dtypes.MetadataDS), modules.Datastore),
			Override(new(*dtypes.APIAlg), modules.APISecret),

			ConfigRoot(c),
		)(settings)
	}
}

func FileBankAPI(out *api.FileBank) Option {
	return func(s *Settings) error {
		resAPI := &impl.FileBankAPI{}
		s.invokes[ExtractApiKey] = fx.Populate(resAPI)
		*out = resAPI
		return nil
	}
}

type StopFunc func(context.Context) error

// New builds and starts new filebank node
func New(ctx context.Context, opts ...Option) (StopFunc, error) {
	settings := Settings{
		modules: map[interface{}]fx.Option{},
		invokes: make([]fx.Option, _nInvokes),
	}

	// apply module options in the right order
	if err := Options(Options(defaults()...), Options(ledgerModules()...), Options(opts...))(&settings); err != nil {
		return nil, xerrors.Errorf("applying node options failed: %w", err)
	}

	// gather constructors for fx.Options
	ctors := make([]fx.Option, 0, len(settings.modules))
	for _, opt := range settings.modules {
		ctors = append(ctors, opt)
	}

	// fill holes in invokes for use in fx.Options
	for i, opt := range settings.invokes {
		if opt == nil {
			settings.invokes[i] = fx.Options()
		}
	}

	app := fx.New(
		fx.Options(ctors...),
		fx.Options(settings.invokes...),

		fxLogger(),
	)

	if err := app.Start(ctx); err != nil {
		// set FILEBANK_FX_DEBUG to see which constructor failed
		return nil, xerrors.Errorf("starting node: %w", err)
	}

	return app.Stop, nil
}

func fxLogger() fx.Option {
	if os.Getenv("FILEBANK_FX_DEBUG") == "" {
		return fx.NopLogger
	}
	return fx.WithLogger(func() fxevent.Logger {
		return &fxevent.ZapLogger{Logger: logging.Logger("fx").Desugar()}
	})
}

// In-memory / testing

// Test keeps the journal in memory only.
func Test() Option {
	return Options(
		Override(new(journal.Journal), journal.NilJournal),
	)
}
