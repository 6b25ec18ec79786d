package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/filebank-network/filebank/node/repo"
)

// PrintHelpErr makes RunApp print the usage of the failing command after
// the error itself.
type PrintHelpErr struct {
	Err error
	Ctx *cli.Context
}

func (e *PrintHelpErr) Error() string {
	return e.Err.Error()
}

func (e *PrintHelpErr) Unwrap() error {
	return e.Err
}

func (e *PrintHelpErr) Is(o error) bool {
	_, ok := o.(*PrintHelpErr)
	return ok
}

func ShowHelp(cctx *cli.Context, err error) error {
	return &PrintHelpErr{Err: err, Ctx: cctx}
}

// RunApp runs app with the process arguments and exits non-zero on error.
// Setting FILEBANK_DEV logs the full error chain instead.
func RunApp(app *cli.App) {
	err := app.Run(os.Args)
	if err == nil {
		return
	}

	if os.Getenv("FILEBANK_DEV") != "" {
		log.Warnf("%+v", err)
	} else {
		fmt.Fprintf(os.Stderr, "%s %s\n\n", color.RedString("ERROR:"), err) // nolint:errcheck
	}

	if xerrors.Is(err, repo.ErrNoAPIEndpoint) {
		fmt.Fprintln(os.Stderr, "Is the ledger daemon running? Start it with `filebank daemon` or set FILEBANK_API_INFO.") // nolint:errcheck
	}

	var phe *PrintHelpErr
	if xerrors.As(err, &phe) {
		_ = cli.ShowCommandHelp(phe.Ctx, phe.Ctx.Command.Name)
	}
	os.Exit(1)
}
