package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/filebank-network/filebank/build"
)

var VersionCmd = &cli.Command{
	Name:  "version",
	Usage: "Print version",
	Action: func(cctx *cli.Context) error {
		napi, closer, err := GetFileBankAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		ctx := ReqContext(cctx)

		v, err := napi.Version(ctx)
		if err != nil {
			return err
		}
		fmt.Println("Daemon: ", v)
		fmt.Println("Network:", v.Network)

		fmt.Print("Local: ")
		cli.VersionPrinter(cctx)

		if !build.FileBankAPIVersion.Compatible(v.APIVersion) {
			fmt.Printf("WARNING: local api %s does not match daemon api %s\n", build.FileBankAPIVersion, v.APIVersion)
		}
		return nil
	},
}
