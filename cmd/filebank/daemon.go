package main

import (
	"fmt"
	"time"

	"github.com/multiformats/go-multiaddr"
	"github.com/urfave/cli/v2"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
	"golang.org/x/xerrors"

	"github.com/filebank-network/filebank/api"
	"github.com/filebank-network/filebank/build"
	lcli "github.com/filebank-network/filebank/cli"
	"github.com/filebank-network/filebank/lib/fblog"
	"github.com/filebank-network/filebank/metrics"
	"github.com/filebank-network/filebank/node"
	"github.com/filebank-network/filebank/node/config"
	"github.com/filebank-network/filebank/node/modules/dtypes"
	"github.com/filebank-network/filebank/node/repo"
)

// DaemonCmd is the `filebank daemon` command
var DaemonCmd = &cli.Command{
	Name:  "daemon",
	Usage: "Start a filebank ledger node",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "api",
			Usage: "override the api listen multiaddr from the config",
		},
	},
	Before: func(*cli.Context) error {
		build.RunningNodeType = build.NodeLedger
		return nil
	},
	Action: func(cctx *cli.Context) error {
		r, err := repo.NewFS(cctx.String(lcli.FlagRepo))
		if err != nil {
			return xerrors.Errorf("opening fs repo: %w", err)
		}

		ok, err := r.Exists()
		if err != nil {
			return err
		}
		if !ok {
			if err := r.Init(); err != nil {
				return xerrors.Errorf("repo init error: %w", err)
			}
		}

		cfg, err := loadConfig(r)
		if err != nil {
			return err
		}
		if v := cctx.String("api"); v != "" {
			cfg.API.ListenAddress = v
		}
		fblog.SetSubsystemLevels(cfg.Logging.SubsystemLevels)

		ctx, _ := tag.New(metrics.AddNetworkTag(cctx.Context),
			tag.Insert(metrics.Version, build.BuildVersion),
			tag.Insert(metrics.Commit, build.CurrentCommit),
			tag.Insert(metrics.NodeType, build.RunningNodeType.String()),
			tag.Insert(metrics.Nickname, cfg.Metrics.Nickname),
		)
		// Register all metric views
		if err = view.Register(
			metrics.LedgerNodeViews...,
		); err != nil {
			log.Fatalf("Cannot register the view: %v", err)
		}
		// Set the metric to one so it is published to the exporter
		stats.Record(ctx, metrics.FilebankInfo.M(1))

		shutdownChan := make(chan struct{})

		var fbapi api.FileBank
		stop, err := node.New(ctx,
			node.FileBankAPI(&fbapi),
			node.Repo(r),
			node.Override(new(dtypes.ShutdownChan), shutdownChan),
			node.ConfigRoot(cfg),
		)
		if err != nil {
			return xerrors.Errorf("initializing node: %w", err)
		}

		endpoint, err := multiaddr.NewMultiaddr(cfg.API.ListenAddress)
		if err != nil {
			return xerrors.Errorf("parsing api listen address: %w", err)
		}

		h, err := node.FileBankHandler(fbapi, true, cfg.Metrics.Enabled)
		if err != nil {
			return fmt.Errorf("failed to instantiate rpc handler: %s", err)
		}

		rpcStopper, err := node.ServeRPC(h, "filebank-daemon", endpoint, time.Duration(cfg.API.Timeout))
		if err != nil {
			return fmt.Errorf("failed to start json-rpc endpoint: %s", err)
		}
		log.Infow("ledger node started", "api", endpoint, "repo", r.Path())

		// Monitor for shutdown.
		finishCh := node.MonitorShutdown(shutdownChan,
			node.ShutdownHandler{Component: "rpc server", StopFunc: rpcStopper},
			node.ShutdownHandler{Component: "node", StopFunc: stop},
		)
		<-finishCh // fires when shutdown is complete.
		return nil
	},
}

// loadConfig reads the repo config without keeping the repo locked.
func loadConfig(r repo.Repo) (*config.Root, error) {
	lr, err := r.Lock()
	if err != nil {
		return nil, xerrors.Errorf("locking repo: %w", err)
	}
	defer lr.Close() //nolint:errcheck

	cfg, err := lr.Config()
	if err != nil {
		return nil, xerrors.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
