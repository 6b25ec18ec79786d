package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/docker/go-units"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/hako/durafmt"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"

	"github.com/filebank-network/filebank/build"
)

// Set the global default, to be overridden by individual cli flags in order
func init() {
	color.NoColor = os.Getenv("GOLOG_LOG_FMT") != "color" &&
		!isatty.IsTerminal(os.Stdout.Fd()) &&
		!isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func EpochTime(curr, e abi.ChainEpoch) string {
	switch {
	case curr > e:
		return fmt.Sprintf("%d (%s ago)", e, durafmt.Parse(time.Second*time.Duration(int64(build.BlockDelaySecs)*int64(curr-e))).LimitFirstN(2))
	case curr == e:
		return fmt.Sprintf("%d (now)", e)
	case curr < e:
		return fmt.Sprintf("%d (in %s)", e, durafmt.Parse(time.Second*time.Duration(int64(build.BlockDelaySecs)*int64(e-curr))).LimitFirstN(2))
	}

	panic("math broke")
}

// parseSize accepts human readable sizes such as 8MiB or 1GiB.
func parseSize(s string) (uint64, error) {
	v, err := units.RAMInBytes(s)
	if err != nil {
		return 0, xerrors.Errorf("parsing size %q: %w", s, err)
	}
	if v < 0 {
		return 0, xerrors.Errorf("negative size %q", s)
	}
	return uint64(v), nil
}

func sizeStr(b uint64) string {
	return humanize.IBytes(b)
}

func parseAddr(s string) (address.Address, error) {
	a, err := address.NewFromString(s)
	if err != nil {
		return address.Undef, xerrors.Errorf("parsing address %q: %w", s, err)
	}
	return a, nil
}

// argAddrs parses the first n positional arguments as addresses.
func argAddrs(cctx *cli.Context, n int) ([]address.Address, error) {
	if cctx.NArg() != n {
		return nil, ShowHelp(cctx, xerrors.Errorf("expected %d arguments", n))
	}
	out := make([]address.Address, n)
	for i := range out {
		a, err := parseAddr(cctx.Args().Get(i))
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}
