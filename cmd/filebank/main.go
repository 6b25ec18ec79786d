package main

import (
	logging "github.com/ipfs/go-log/v2"
	"github.com/urfave/cli/v2"

	"github.com/filebank-network/filebank/build"
	lcli "github.com/filebank-network/filebank/cli"
	"github.com/filebank-network/filebank/lib/fblog"
)

var log = logging.Logger("main")

func main() {
	fblog.SetupLogLevels()

	app := newApp()
	app.Setup()

	lcli.RunApp(app)
}

// newApp builds the filebank binary. Commands talk to a remote ledger node
// unless `daemon` switches the process to the ledger node type.
func newApp() *cli.App {
	build.RunningNodeType = build.NodeClient

	local := []*cli.Command{
		DaemonCmd,
		initCmd,
	}

	return &cli.App{
		Name:                 "filebank",
		Usage:                "Storage quota ledger node of the filebank network",
		Version:              build.UserVersion(),
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    lcli.FlagRepo,
				EnvVars: []string{"FILEBANK_PATH"},
				Hidden:  true,
				Value:   "~/.filebank", // TODO: Consider XDG_DATA_HOME
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "set the default log level of every subsystem",
			},
		},
		Before: func(cctx *cli.Context) error {
			if lvl := cctx.String("log-level"); lvl != "" {
				return logging.SetLogLevel("*", lvl)
			}
			return nil
		},

		Commands: append(local, lcli.Commands...),
	}
}
