package dtypes

import (
	"github.com/gbrlsnchs/jwt/v3"
	"github.com/multiformats/go-multiaddr"
)

// APIAlg signs and verifies the api tokens of the ledger node.
type APIAlg jwt.HMACSHA

// APIEndpoint is the address the json-rpc server listens on.
type APIEndpoint multiaddr.Multiaddr

// ShutdownChan stops the daemon when written to. Common.Shutdown feeds it
// and the daemon command watches it.
type ShutdownChan chan struct{}
