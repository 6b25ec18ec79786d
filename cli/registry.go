package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/filecoin-project/go-state-types/abi"

	"github.com/filebank-network/filebank/chain/types"
)

var registryCmd = &cli.Command{
	Name:  "registry",
	Usage: "Invoke miner and coordinator registry hooks",
	Subcommands: []*cli.Command{
		registryMembersCmd,
		registryClearFillersCmd,
		registryDeleteFillerCmd,
		registryDeleteMinerFillersCmd,
		registryClearFileCmd,
		registryAddInvalidCmd,
	},
}

var registryMembersCmd = &cli.Command{
	Name:  "members",
	Usage: "Manage accounts allowed to invoke registry hooks",
	Subcommands: []*cli.Command{
		{
			Name:      "add",
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

				return napi.RegistryAddMember(ReqContext(cctx), addrs[0])
			},
		},
		{
			Name:      "rm",
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

				return napi.RegistryRemoveMember(ReqContext(cctx), addrs[0])
			},
		},
		{
			Name: "ls",
			Action: func(cctx *cli.Context) error {
				napi, closer, err := GetFileBankAPI(cctx)
				if err != nil {
					return err
				}
				defer closer()

				members, err := napi.RegistryMembers(ReqContext(cctx))
				if err != nil {
					return err
				}
				for _, m := range members {
					fmt.Println(m)
				}
				return nil
			},
		},
	},
}

var registryClearFillersCmd = &cli.Command{
	Name:      "clear-fillers",
	Usage:     "Drop every filler of a miner without touching its power",
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

		return napi.RegistryClearAllFillers(ReqContext(cctx), addrs[0])
	},
}

var registryDeleteFillerCmd = &cli.Command{
	Name:      "delete-filler",
	Usage:     "Drop one filler of a miner",
	ArgsUsage: "[miner] [filler id]",
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

		return napi.RegistryDeleteFiller(ReqContext(cctx), miner, cctx.Args().Get(1))
	},
}

var registryDeleteMinerFillersCmd = &cli.Command{
	Name:      "delete-miner-fillers",
	Usage:     "Drop every filler of an exiting miner",
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

		return napi.RegistryDeleteMinerFillers(ReqContext(cctx), addrs[0])
	},
}

var registryClearFileCmd = &cli.Command{
	Name:      "clear-file",
	Usage:     "Remove a file from the registry",
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

		return napi.RegistryClearFile(ReqContext(cctx), cctx.Args().First())
	},
}

var registryAddInvalidCmd = &cli.Command{
	Name:      "add-invalid",
	Usage:     "Queue a file or filler for a miner to purge",
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

		return napi.RegistryAddInvalidFile(ReqContext(cctx), miner, cctx.Args().Get(1))
	},
}

var minerCmd = &cli.Command{
	Name:  "miner",
	Usage: "Manage the reference miner registry",
	Subcommands: []*cli.Command{
		{
			Name:      "register",
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

				id, err := napi.MinerRegister(ReqContext(cctx), addrs[0])
				if err != nil {
					return err
				}
				fmt.Printf("Registered %s with id %d\n", addrs[0], id)
				return nil
			},
		},
		{
			Name:      "set-state",
			ArgsUsage: "[miner] [positive|frozen|exit]",
			Action: func(cctx *cli.Context) error {
				if cctx.NArg() != 2 {
					return ShowHelp(cctx, xerrors.New("expected 2 arguments"))
				}
				miner, err := parseAddr(cctx.Args().Get(0))
				if err != nil {
					return err
				}
				st := types.MinerState(cctx.Args().Get(1))
				switch st {
				case types.MinerPositive, types.MinerFrozen, types.MinerExit:
				default:
					return ShowHelp(cctx, xerrors.Errorf("unknown miner state %q", st))
				}

				napi, closer, err := GetFileBankAPI(cctx)
				if err != nil {
					return err
				}
				defer closer()

				return napi.MinerSetState(ReqContext(cctx), miner, st)
			},
		},
		{
			Name:      "info",
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

				mi, err := napi.MinerInfo(ReqContext(cctx), addrs[0])
				if err != nil {
					return err
				}
				fmt.Printf("ID:\t%d\n", mi.ID)
				fmt.Printf("State:\t%s\n", mi.State)
				fmt.Printf("Power:\t%s\n", sizeStr(mi.Power))
				fmt.Printf("Space:\t%s\n", sizeStr(mi.Space))
				return nil
			},
		},
		{
			Name:  "total-space",
			Usage: "Print the power of all miners that have not exited",
			Action: func(cctx *cli.Context) error {
				napi, closer, err := GetFileBankAPI(cctx)
				if err != nil {
					return err
				}
				defer closer()

				total, err := napi.MinerTotalSpace(ReqContext(cctx))
				if err != nil {
					return err
				}
				fmt.Printf("%s (%d)\n", sizeStr(total), total)
				return nil
			},
		},
	},
}

var coordinatorCmd = &cli.Command{
	Name:  "coordinator",
	Usage: "Manage the coordinator registry",
	Subcommands: []*cli.Command{
		{
			Name:      "register",
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

				return napi.CoordinatorRegister(ReqContext(cctx), addrs[0])
			},
		},
		{
			Name:      "unregister",
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

				return napi.CoordinatorUnregister(ReqContext(cctx), addrs[0])
			},
		},
		{
			Name: "list",
			Action: func(cctx *cli.Context) error {
				napi, closer, err := GetFileBankAPI(cctx)
				if err != nil {
					return err
				}
				defer closer()

				coords, err := napi.CoordinatorList(ReqContext(cctx))
				if err != nil {
					return err
				}
				for _, c := range coords {
					fmt.Println(c)
				}
				return nil
			},
		},
	},
}

var walletCmd = &cli.Command{
	Name:  "wallet",
	Usage: "Manage the reference balance ledger",
	Subcommands: []*cli.Command{
		{
			Name:      "deposit",
			ArgsUsage: "[account] [amount]",
			Action: func(cctx *cli.Context) error {
				if cctx.NArg() != 2 {
					return ShowHelp(cctx, xerrors.New("expected 2 arguments"))
				}
				acc, err := parseAddr(cctx.Args().Get(0))
				if err != nil {
					return err
				}
				amt, err := types.ParseToken(cctx.Args().Get(1))
				if err != nil {
					return ShowHelp(cctx, err)
				}

				napi, closer, err := GetFileBankAPI(cctx)
				if err != nil {
					return err
				}
				defer closer()

				return napi.WalletDeposit(ReqContext(cctx), acc, abi.TokenAmount(amt))
			},
		},
		{
			Name:      "transfer",
			ArgsUsage: "[from] [to] [amount]",
			Action: func(cctx *cli.Context) error {
				if cctx.NArg() != 3 {
					return ShowHelp(cctx, xerrors.New("expected 3 arguments"))
				}
				from, err := parseAddr(cctx.Args().Get(0))
				if err != nil {
					return err
				}
				to, err := parseAddr(cctx.Args().Get(1))
				if err != nil {
					return err
				}
				amt, err := types.ParseToken(cctx.Args().Get(2))
				if err != nil {
					return ShowHelp(cctx, err)
				}

				napi, closer, err := GetFileBankAPI(cctx)
				if err != nil {
					return err
				}
				defer closer()

				return napi.WalletTransfer(ReqContext(cctx), from, to, abi.TokenAmount(amt))
			},
		},
		{
			Name:      "balance",
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

				bal, err := napi.WalletBalance(ReqContext(cctx), addrs[0])
				if err != nil {
					return err
				}
				fmt.Println(types.Token(bal))
				return nil
			},
		},
	},
}
