package cli

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/filecoin-project/go-state-types/abi"

	"github.com/filebank-network/filebank/chain/types"
)

var stateCmd = &cli.Command{
	Name:  "state",
	Usage: "Interact with and query ledger state",
	Subcommands: []*cli.Command{
		stateFileCmd,
		stateQuotaCmd,
		stateFillersCmd,
		stateInvalidCmd,
		stateHeldCmd,
		statePriceCmd,
		stateEpochCmd,
		stateRootCmd,
		stateSampleCmd,
	},
}

func fileStateStr(s types.FileState) string {
	switch s {
	case types.FileActive:
		return color.GreenString(s.String())
	case types.FileDeclared:
		return color.YellowString(s.String())
	}
	return s.String()
}

func packageStateStr(s types.PackageState) string {
	switch s {
	case types.PackageNormal:
		return color.GreenString(s.String())
	case types.PackageFrozen:
		return color.YellowString(s.String())
	case types.PackageExpired:
		return color.RedString(s.String())
	}
	return s.String()
}

var stateFileCmd = &cli.Command{
	Name:      "file",
	Usage:     "Print the registry entry of a file",
	ArgsUsage: "[hash]",
	Action: func(cctx *cli.Context) error {
		if cctx.NArg() != 1 {
			return ShowHelp(cctx, xerrors.New("expected a file hash"))
		}

		napi, closer, err := GetFileBankAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		fr, err := napi.StateFile(ReqContext(cctx), cctx.Args().First())
		if err != nil {
			return err
		}

		fmt.Printf("State:\t\t%s\n", fileStateStr(fr.State))
		fmt.Printf("Size:\t\t%s (%d)\n", sizeStr(fr.Size), fr.Size)
		if fr.State == types.FileActive {
			fmt.Printf("Shards:\t\t%d\n", fr.ShardCount)
			fmt.Printf("Scan unit:\t%s\n", sizeStr(fr.ScanUnitSize))
			fmt.Printf("Segment:\t%s\n", sizeStr(fr.SegmentSize))
			fmt.Printf("Miner:\t\t%s (id %d)\n", fr.Miner, fr.MinerID)
			if len(fr.MinerEndpoint) > 0 {
				fmt.Printf("Endpoint:\t%s\n", fr.MinerEndpoint)
			}
		}
		fmt.Printf("Owners:\n")
		for _, o := range fr.Owners {
			fmt.Printf("\t%s\t%s\n", o.Account, o.Name)
		}
		return nil
	},
}

var stateQuotaCmd = &cli.Command{
	Name:      "quota",
	Usage:     "Print the storage package of an account",
	ArgsUsage: "[account]",
	Action: func(cctx *cli.Context) error {
		addrs, err := argAddrs(cctx, 1)
		if err != nil {
			return err
		}

		napi, closer, err := GetFileBankAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		ctx := ReqContext(cctx)
		q, err := napi.StateQuota(ctx, addrs[0])
		if err != nil {
			return err
		}
		ep, err := napi.StateEpoch(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("Tier:\t\t%d\n", q.Tier)
		fmt.Printf("State:\t\t%s\n", packageStateStr(q.State))
		fmt.Printf("Space:\t\t%s used / %s total (%s remaining)\n",
			sizeStr(q.UsedSpace), sizeStr(q.TotalSpace), sizeStr(q.RemainingSpace))
		fmt.Printf("Tenancy:\t%d months\n", q.TenancyMonths)
		fmt.Printf("Start:\t\t%s\n", EpochTime(ep, q.Start))
		fmt.Printf("Deadline:\t%s\n", EpochTime(ep, q.Deadline))
		return nil
	},
}

var stateFillersCmd = &cli.Command{
	Name:      "fillers",
	Usage:     "List the fillers a miner holds",
	ArgsUsage: "[miner]",
	Action: func(cctx *cli.Context) error {
		addrs, err := argAddrs(cctx, 1)
		if err != nil {
			return err
		}

		napi, closer, err := GetFileBankAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		fillers, err := napi.StateFillers(ReqContext(cctx), addrs[0])
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		_, _ = fmt.Fprintf(tw, "ID\tShards\tSize\tSegment\n")
		for _, f := range fillers {
			_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", f.FillerID, f.ShardCount, sizeStr(f.Size), sizeStr(f.SegmentSize))
		}
		return tw.Flush()
	},
}

var stateInvalidCmd = &cli.Command{
	Name:      "invalid",
	Usage:     "List the files and fillers a miner must purge",
	ArgsUsage: "[miner]",
	Action: func(cctx *cli.Context) error {
		addrs, err := argAddrs(cctx, 1)
		if err != nil {
			return err
		}

		napi, closer, err := GetFileBankAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		entries, err := napi.StateInvalidFiles(ReqContext(cctx), addrs[0])
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Println(e)
		}
		return nil
	},
}

var stateHeldCmd = &cli.Command{
	Name:      "held",
	Usage:     "List the files an account owns",
	ArgsUsage: "[account]",
	Action: func(cctx *cli.Context) error {
		addrs, err := argAddrs(cctx, 1)
		if err != nil {
			return err
		}

		napi, closer, err := GetFileBankAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		held, err := napi.StateHeldFiles(ReqContext(cctx), addrs[0])
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		_, _ = fmt.Fprintf(tw, "Hash\tCredited\n")
		for _, h := range held {
			_, _ = fmt.Fprintf(tw, "%s\t%s\n", h.Hash, sizeStr(h.Size))
		}
		return tw.Flush()
	},
}

var statePriceCmd = &cli.Command{
	Name:      "price",
	Usage:     "Print the unit price, or quote a price for a size",
	ArgsUsage: "[size]",
	Action: func(cctx *cli.Context) error {
		napi, closer, err := GetFileBankAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		ctx := ReqContext(cctx)
		if !cctx.Args().Present() {
			p, err := napi.StateUnitPrice(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Unit price: %s\n", types.Token(p))
			return nil
		}

		space, err := parseSize(cctx.Args().First())
		if err != nil {
			return err
		}
		p, err := napi.StatePriceQuote(ctx, space)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s\n", sizeStr(space), types.Token(p))
		return nil
	},
}

var stateEpochCmd = &cli.Command{
	Name:  "epoch",
	Usage: "Print the last applied epoch",
	Action: func(cctx *cli.Context) error {
		napi, closer, err := GetFileBankAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		ep, err := napi.StateEpoch(ReqContext(cctx))
		if err != nil {
			return err
		}
		fmt.Println(ep)
		return nil
	},
}

var stateRootCmd = &cli.Command{
	Name:  "root",
	Usage: "Print the ledger state root",
	Action: func(cctx *cli.Context) error {
		napi, closer, err := GetFileBankAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		root, err := napi.StateRoot(ReqContext(cctx))
		if err != nil {
			return err
		}
		fmt.Println(root)
		return nil
	},
}

var stateSampleCmd = &cli.Command{
	Name:      "sample",
	Usage:     "Compute the audit challenge set for an epoch",
	ArgsUsage: "[epoch]",
	Action: func(cctx *cli.Context) error {
		napi, closer, err := GetFileBankAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		ctx := ReqContext(cctx)
		var now abi.ChainEpoch
		if cctx.Args().Present() {
			e, err := strconv.ParseInt(cctx.Args().First(), 10, 64)
			if err != nil {
				return ShowHelp(cctx, xerrors.Errorf("parsing epoch: %w", err))
			}
			now = abi.ChainEpoch(e)
		} else if now, err = napi.StateEpoch(ctx); err != nil {
			return err
		}

		targets, err := napi.StateSampleRound(ctx, now)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		_, _ = fmt.Fprintf(tw, "Kind\tObject\tMiner\tSize\tShards\n")
		for _, t := range targets {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%v\n", t.Kind, t.ObjectID, t.Miner, sizeStr(t.Size), t.Shards)
		}
		return tw.Flush()
	},
}
