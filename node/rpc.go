package node

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/multiformats/go-multiaddr"
	manet "github.com/multiformats/go-multiaddr/net"
	"go.opencensus.io/tag"
	"golang.org/x/xerrors"

	"github.com/filecoin-project/go-jsonrpc"
	"github.com/filecoin-project/go-jsonrpc/auth"

	"github.com/filebank-network/filebank/api"
	"github.com/filebank-network/filebank/metrics"
	"github.com/filebank-network/filebank/metrics/proxy"
)

// ServeRPC serves an HTTP handler over the supplied listen multiaddr.
//
// This function spawns a goroutine to run the server, and returns immediately.
// It returns the stop function to be called to terminate the endpoint.
//
// The supplied ID is used in tracing, by inserting a tag in the context.
func ServeRPC(h http.Handler, id string, addr multiaddr.Multiaddr, timeout time.Duration) (StopFunc, error) {
	// Start listening to the addr; if invalid or occupied, we will fail early.
	lst, err := manet.Listen(addr)
	if err != nil {
		return nil, xerrors.Errorf("could not listen: %w", err)
	}

	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	// Instantiate the server and start listening.
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: timeout,
		BaseContext: func(listener net.Listener) context.Context {
			ctx, _ := tag.New(context.Background(), tag.Upsert(metrics.APIInterface, id))
			return ctx
		},
	}

	go func() {
		err := srv.Serve(manet.NetListener(lst))
		if err != http.ErrServerClosed {
			log.Warnf("rpc server failed: %s", err)
		}
	}()

	return srv.Shutdown, nil
}

// FileBankHandler returns a handler to be mounted as-is on the server.
func FileBankHandler(a api.FileBank, permissioned bool, withMetrics bool, opts ...jsonrpc.ServerOption) (http.Handler, error) {
	m := mux.NewRouter()

	fbapi := proxy.MetricedFileBankAPI(a)
	if permissioned {
		fbapi = api.PermissionedFileBankAPI(fbapi)
	}

	rpcServer := jsonrpc.NewServer(opts...)
	rpcServer.Register(api.RPCNamespace, fbapi)

	var handler http.Handler = rpcServer
	if permissioned {
		handler = &auth.Handler{
			Verify: a.AuthVerify,
			Next:   rpcServer.ServeHTTP,
		}
	}
	m.Handle("/rpc/v0", handler)

	if withMetrics {
		m.Handle("/debug/metrics", metrics.Exporter())
	}

	return m, nil
}
