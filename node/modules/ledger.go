package modules

import (
	"context"
	"time"

	"go.uber.org/fx"
	"golang.org/x/xerrors"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"

	"github.com/filebank-network/filebank/build"
	"github.com/filebank-network/filebank/chain/balances"
	"github.com/filebank-network/filebank/chain/filebank"
	"github.com/filebank-network/filebank/chain/rand"
	"github.com/filebank-network/filebank/chain/scheduler"
	"github.com/filebank-network/filebank/chain/sminer"
	"github.com/filebank-network/filebank/chain/state"
	"github.com/filebank-network/filebank/journal"
	"github.com/filebank-network/filebank/node/config"
	"github.com/filebank-network/filebank/node/impl"
	"github.com/filebank-network/filebank/node/modules/dtypes"
	"github.com/filebank-network/filebank/node/modules/helpers"
)

func StateTree(ds dtypes.MetadataDS) *state.StateTree {
	return state.NewStateTree(ds)
}

func MinerRegistry(st *state.StateTree) *sminer.Registry {
	return sminer.New(st)
}

func CoordinatorRegistry(st *state.StateTree) *scheduler.Registry {
	return scheduler.New(st)
}

func BalanceLedger(st *state.StateTree) *balances.Ledger {
	return balances.New(st)
}

func Randomness(cfg *config.Root) (filebank.Randomness, error) {
	if cfg.Ledger.RandomnessSeed == "" {
		return nil, xerrors.Errorf("ledger randomness seed not set")
	}
	return rand.NewSeededRand([]byte(cfg.Ledger.RandomnessSeed)), nil
}

func LedgerConfig(cfg *config.Root) (filebank.Config, error) {
	fc := filebank.DefaultConfig()
	if cfg.Ledger.PotActorID != 0 {
		pot, err := address.NewIDAddress(cfg.Ledger.PotActorID)
		if err != nil {
			return filebank.Config{}, xerrors.Errorf("pot actor id: %w", err)
		}
		fc.Pot = pot
	}
	if cfg.Ledger.SweepBudget > 0 {
		fc.SweepBudget = cfg.Ledger.SweepBudget
	}
	return fc, nil
}

type FileBankParams struct {
	fx.In

	State        *state.StateTree
	Config       filebank.Config
	Miners       *sminer.Registry
	Coordinators *scheduler.Registry
	Balances     *balances.Ledger
	Rand         filebank.Randomness
	Journal      journal.Journal
}

func FileBank(p FileBankParams) (*filebank.FileBank, error) {
	return filebank.New(p.State, p.Config, filebank.Deps{
		Currency:     p.Balances,
		Coordinators: p.Coordinators,
		Miners:       p.Miners,
		Capacity:     p.Miners,
		Rand:         p.Rand,
		Journal:      p.Journal,
	})
}

func epochDuration(cfg *config.Root) time.Duration {
	if d := time.Duration(cfg.Ledger.EpochDuration); d > 0 {
		return d
	}
	return time.Duration(build.BlockDelaySecs) * time.Second
}

// RunEpochTicker advances the ledger one epoch per configured epoch
// duration, continuing after the last epoch the ledger applied. A failed
// epoch is retried on the next tick.
func RunEpochTicker(mctx helpers.MetricsCtx, lc fx.Lifecycle, l *impl.Ledger, cfg *config.Root) {
	ctx, cancel := context.WithCancel(mctx)
	done := make(chan struct{})
	period := epochDuration(cfg)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			start, err := l.Epoch(ctx)
			if err != nil {
				return xerrors.Errorf("loading ledger epoch: %w", err)
			}
			log.Infow("starting epoch ticker", "epoch", start, "period", period)
			go runEpochTicker(ctx, l, start, period, done)
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}

func runEpochTicker(ctx context.Context, l *impl.Ledger, epoch abi.ChainEpoch, period time.Duration, done chan struct{}) {
	defer close(done)

	tick := build.Clock.Ticker(period)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
		}

		next := epoch + 1
		if err := l.ApplyEpoch(ctx, next); err != nil {
			log.Errorw("applying epoch", "epoch", next, "error", err)
			continue
		}
		epoch = next
	}
}
