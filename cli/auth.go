package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/filecoin-project/go-jsonrpc/auth"

	"github.com/filebank-network/filebank/api"
)

var authCmd = &cli.Command{
	Name:  "auth",
	Usage: "Manage RPC permissions",
	Subcommands: []*cli.Command{
		authCreateAdminToken,
		authApiInfoToken,
	},
}

var permFlag = &cli.StringFlag{
	Name:     "perm",
	Usage:    "permission to assign to the token, one of: read, write, admin",
	Required: true,
}

// permsUpTo slices AllPermissions up to and including perm, so 'write' gives
// you [read, write].
func permsUpTo(perm string) ([]auth.Permission, error) {
	for i, p := range api.AllPermissions {
		if auth.Permission(perm) == p {
			return api.AllPermissions[:i+1], nil
		}
	}
	return nil, xerrors.Errorf("--perm flag has to be one of: %s", api.AllPermissions)
}

var authCreateAdminToken = &cli.Command{
	Name:  "create-token",
	Usage: "Create token",
	Flags: []cli.Flag{permFlag},
	Action: func(cctx *cli.Context) error {
		napi, closer, err := GetFileBankAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		ctx := ReqContext(cctx)

		perms, err := permsUpTo(cctx.String("perm"))
		if err != nil {
			return err
		}

		token, err := napi.AuthNew(ctx, perms)
		if err != nil {
			return err
		}

		fmt.Println(string(token))
		return nil
	},
}

var authApiInfoToken = &cli.Command{
	Name:  "api-info",
	Usage: "Get token with API info required to connect to this node",
	Flags: []cli.Flag{permFlag},
	Action: func(cctx *cli.Context) error {
		napi, closer, err := GetFileBankAPI(cctx)
		if err != nil {
			return err
		}
		defer closer()

		ctx := ReqContext(cctx)

		perms, err := permsUpTo(cctx.String("perm"))
		if err != nil {
			return err
		}

		token, err := napi.AuthNew(ctx, perms)
		if err != nil {
			return err
		}

		addr, _, err := GetAPIInfo(cctx)
		if err != nil {
			return xerrors.Errorf("could not get API info: %w", err)
		}

		fmt.Printf("FILEBANK_API_INFO=%s:%s\n", string(token), addr)
		return nil
	},
}
