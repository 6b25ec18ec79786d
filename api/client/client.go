package client

import (
	"context"
	"net/http"

	"github.com/filecoin-project/go-jsonrpc"

	"github.com/filebank-network/filebank/api"
)

// NewFileBankRPC dials a ledger node over http or websocket. The returned
// closer must be called once the client is no longer used.
func NewFileBankRPC(ctx context.Context, addr string, requestHeader http.Header, opts ...jsonrpc.Option) (api.FileBank, jsonrpc.ClientCloser, error) {
	var res api.FileBankStruct
	outs := []interface{}{
		&res.CommonStruct.Internal,
		&res.Internal,
	}

	closer, err := jsonrpc.NewMergeClient(ctx, addr, api.RPCNamespace, outs, requestHeader, opts...)
	if err != nil {
		return nil, nil, err
	}
	return &res, closer, nil
}
