package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/filebank-network/filebank/build"
	"github.com/filebank-network/filebank/chain/filebank"
	"github.com/filebank-network/filebank/chain/types"
)

var ledgerCmd = &cli.Command{
	Name:  "ledger",
	Usage: "Submit ledger operations",
	Subcommands: []*cli.Command{
		ledgerDeclareCmd,
		ledgerCommitCmd,
		ledgerDeleteCmd,
		ledgerBuyCmd,
		ledgerAckInvalidCmd,
		ledgerFillerCmd,
	},
}

var ledgerDeclareCmd = &cli.Command{
	Name:      "declare",
	Usage:     "Declare intent to upload a file",
	ArgsUsage: "[account] [hash] [name]",
	Action: func(cctx *cli.Context) error {
		if cctx.NArg() != 3 {
			return ShowHelp(cctx, xerrors.New("expected 3 arguments"))
		}
		acc, err := parseAddr(cctx.Args().Get(0))
		if err != nil {
			return err
		}

		napi, closer, err := GetFileBankAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		return napi.LedgerDeclare(ReqContext(cctx), acc, cctx.Args().Get(1), cctx.Args().Get(2))
	},
}

var ledgerCommitCmd = &cli.Command{
	Name:      "commit",
	Usage:     "Activate a declared file stored by a miner",
	ArgsUsage: "[coordinator] [account] [hash]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "size",
			Usage:    "file size, e.g. 64MiB",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:     "shards",
			Usage:    "number of shards the file was split into",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "scan-unit",
			Usage: "scan unit size",
			Value: "1MiB",
		},
		&cli.StringFlag{
			Name:  "segment",
			Usage: "segment size",
			Value: "1MiB",
		},
		&cli.StringFlag{
			Name:     "miner",
			Usage:    "address of the storing miner",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:     "miner-id",
			Usage:    "registry id of the storing miner",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "miner-endpoint",
			Usage: "endpoint the miner serves the file from",
		},
	},
	Action: func(cctx *cli.Context) error {
		if cctx.NArg() != 3 {
			return ShowHelp(cctx, xerrors.New("expected 3 arguments"))
		}
		coord, err := parseAddr(cctx.Args().Get(0))
		if err != nil {
			return err
		}
		acc, err := parseAddr(cctx.Args().Get(1))
		if err != nil {
			return err
		}
		miner, err := parseAddr(cctx.String("miner"))
		if err != nil {
			return err
		}

		p := filebank.UploadParams{
			Coordinator:   coord,
			Account:       acc,
			Hash:          cctx.Args().Get(2),
			ShardCount:    cctx.Uint64("shards"),
			Miner:         miner,
			MinerID:       cctx.Uint64("miner-id"),
			MinerEndpoint: []byte(cctx.String("miner-endpoint")),
		}
		if p.Size, err = parseSize(cctx.String("size")); err != nil {
			return err
		}
		if p.ScanUnitSize, err = parseSize(cctx.String("scan-unit")); err != nil {
			return err
		}
		if p.SegmentSize, err = parseSize(cctx.String("segment")); err != nil {
			return err
		}

		napi, closer, err := GetFileBankAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		return napi.LedgerCommitUpload(ReqContext(cctx), p)
	},
}

var ledgerDeleteCmd = &cli.Command{
	Name:      "delete",
	Usage:     "Release an account's ownership of a file",
	ArgsUsage: "[account] [hash]",
	Action: func(cctx *cli.Context) error {
		if cctx.NArg() != 2 {
			return ShowHelp(cctx, xerrors.New("expected 2 arguments"))
		}
		acc, err := parseAddr(cctx.Args().Get(0))
		if err != nil {
			return err
		}

		napi, closer, err := GetFileBankAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		return napi.LedgerDelete(ReqContext(cctx), acc, cctx.Args().Get(1))
	},
}

var ledgerBuyCmd = &cli.Command{
	Name:      "buy",
	Aliases:   []string{"purchase"},
	Usage:     "Purchase a storage package",
	ArgsUsage: "[account] [tier]",
	Flags: []cli.Flag{
		&cli.Uint64Flag{
			Name:  "count",
			Usage: "space in GiB, only used by the custom tier",
		},
	},
	Action: func(cctx *cli.Context) error {
		if cctx.NArg() != 2 {
			return ShowHelp(cctx, xerrors.New("expected 2 arguments"))
		}
		acc, err := parseAddr(cctx.Args().Get(0))
		if err != nil {
			return err
		}
		tier, err := strconv.ParseUint(cctx.Args().Get(1), 10, 64)
		if err != nil {
			return ShowHelp(cctx, xerrors.Errorf("parsing tier: %w", err))
		}

		napi, closer, err := GetFileBankAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		ctx := ReqContext(cctx)
		if err := napi.LedgerPurchaseQuota(ctx, acc, tier, cctx.Uint64("count")); err != nil {
			return err
		}

		q, err := napi.StateQuota(ctx, acc)
		if err != nil {
			return err
		}
		ep, err := napi.StateEpoch(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Purchased %s, expires at epoch %s\n", sizeStr(q.TotalSpace), EpochTime(ep, q.Deadline))
		return nil
	},
}

var ledgerAckInvalidCmd = &cli.Command{
	Name:      "ack-invalid",
	Usage:     "Acknowledge that a miner purged an invalid file or filler",
	ArgsUsage: "[miner] [hash]",
	Action: func(cctx *cli.Context) error {
		if cctx.NArg() != 2 {
			return ShowHelp(cctx, xerrors.New("expected 2 arguments"))
		}
		miner, err := parseAddr(cctx.Args().Get(0))
		if err != nil {
			return err
		}

		napi, closer, err := GetFileBankAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		return napi.LedgerAckInvalid(ReqContext(cctx), miner, cctx.Args().Get(1))
	},
}

var ledgerFillerCmd = &cli.Command{
	Name:      "upload-filler",
	Usage:     "Record a batch of fillers for a miner",
	ArgsUsage: "[coordinator] [miner] [batch.json|-]",
	Description: fmt.Sprintf(`The batch is a JSON array of filler records, at most %d long:

   [{"FillerID": "f-0001", "ShardCount": 8, "Size": %d, "SegmentSize": %d}]`,
		build.MaxFillerBatch, build.FillerPowerUnit, build.MiB),
	Action: func(cctx *cli.Context) error {
		if cctx.NArg() != 3 {
			return ShowHelp(cctx, xerrors.New("expected 3 arguments"))
		}
		addrs := cctx.Args().Slice()[:2]
		coord, err := parseAddr(addrs[0])
		if err != nil {
			return err
		}
		miner, err := parseAddr(addrs[1])
		if err != nil {
			return err
		}

		batch, err := readFillerBatch(cctx.Args().Get(2))
		if err != nil {
			return err
		}

		napi, closer, err := GetFileBankAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		if err := napi.LedgerUploadFiller(ReqContext(cctx), coord, miner, batch); err != nil {
			return err
		}
		fmt.Printf("Recorded %d fillers for %s\n", len(batch), miner)
		return nil
	},
}

func readFillerBatch(path string) ([]types.FillerRecord, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, xerrors.Errorf("opening filler batch: %w", err)
		}
		defer f.Close() //nolint:errcheck
		r = f
	}

	var batch []types.FillerRecord
	if err := json.NewDecoder(r).Decode(&batch); err != nil {
		return nil, xerrors.Errorf("decoding filler batch: %w", err)
	}
	return batch, nil
}
