package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	logging "github.com/ipfs/go-log/v2"
	"github.com/multiformats/go-multiaddr"
	manet "github.com/multiformats/go-multiaddr/net"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"

	"github.com/filecoin-project/go-jsonrpc"

	"github.com/filebank-network/filebank/api"
	"github.com/filebank-network/filebank/api/client"
	"github.com/filebank-network/filebank/node/repo"
)

var log = logging.Logger("cli")

const (
	FlagRepo = "repo"

	metadataContext = "context"
)

// GetAPIInfo returns the dial address of the node running on the repo and
// the auth headers of the repo's admin token, when there is one.
func GetAPIInfo(cctx *cli.Context) (string, http.Header, error) {
	r, err := repo.NewFS(cctx.String(FlagRepo))
	if err != nil {
		return "", nil, err
	}

	ma, err := r.APIEndpoint()
	if err != nil {
		return "", nil, xerrors.Errorf("failed to get api endpoint: (%s) %w", r.Path(), err)
	}
	addr, err := dialAddr(ma)
	if err != nil {
		return "", nil, err
	}

	var headers http.Header
	token, err := r.APIToken()
	if err != nil {
		log.Warnf("Couldn't load CLI token, capabilities may be limited: %v", err)
	} else {
		headers = http.Header{}
		headers.Add("Authorization", "Bearer "+string(token))
	}

	return addr, headers, nil
}

func dialAddr(ma multiaddr.Multiaddr) (string, error) {
	_, addr, err := manet.DialArgs(ma)
	if err != nil {
		return "", xerrors.Errorf("parsing api multiaddr %s: %w", ma, err)
	}
	return "ws://" + addr + "/rpc/v0", nil
}

func GetFileBankAPI(cctx *cli.Context) (api.FileBank, jsonrpc.ClientCloser, error) {
	addr, headers, err := GetAPIInfo(cctx)
	if err != nil {
		return nil, nil, err
	}

	return client.NewFileBankRPC(cctx.Context, addr, headers)
}

// ReqContext returns context for cli execution. Calling it for the first time
// installs SIGTERM handler that will close returned context.
// Not safe for concurrent execution.
func ReqContext(cctx *cli.Context) context.Context {
	if uctx, ok := cctx.App.Metadata[metadataContext]; ok {
		// unchecked cast as if something else is in there
		// it is crash worthy either way
		return uctx.(context.Context)
	}

	ctx, done := context.WithCancel(cctx.Context)
	sigChan := make(chan os.Signal, 2)
	go func() {
		<-sigChan
		done()
	}()
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	cctx.App.Metadata[metadataContext] = ctx
	return ctx
}

var Commands = []*cli.Command{
	WithCategory("basic", ledgerCmd),
	WithCategory("basic", stateCmd),
	WithCategory("registry", registryCmd),
	WithCategory("registry", minerCmd),
	WithCategory("registry", coordinatorCmd),
	WithCategory("registry", walletCmd),
	WithCategory("developer", authCmd),
	WithCategory("developer", VersionCmd),
}

func WithCategory(cat string, cmd *cli.Command) *cli.Command {
	cmd.Category = cat
	return cmd
}
