package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	lcli "github.com/filebank-network/filebank/cli"
	"github.com/filebank-network/filebank/node/repo"
)

var initCmd = &cli.Command{
	Name:  "init",
	Usage: "Initialize a filebank repo with the default config",
	Action: func(cctx *cli.Context) error {
		r, err := repo.NewFS(cctx.String(lcli.FlagRepo))
		if err != nil {
			return xerrors.Errorf("opening fs repo: %w", err)
		}

		if err := r.Init(); err != nil {
			if xerrors.Is(err, repo.ErrRepoExists) {
				return xerrors.Errorf("repo at '%s' is already initialized", r.Path())
			}
			return err
		}

		fmt.Printf("Initialized repo at %s\n", r.Path())
		fmt.Println("Edit config.toml to set the network randomness seed before starting the daemon")
		return nil
	},
}
