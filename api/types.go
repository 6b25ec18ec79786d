package api

import (
	"errors"
	"fmt"

	"github.com/filebank-network/filebank/build"
)

// RPCNamespace prefixes every json-rpc method served by a ledger node.
const RPCNamespace = "Filebank"

var ErrNotSupported = errors.New("method not supported")

type APIVersion struct {
	Version string

	// APIVersion is a binary encoded semver version of the remote implementing
	// this api
	//
	// See APIVersion in build/version.go
	APIVersion build.Version

	// Network the node ledger runs on
	Network string
}

func (v APIVersion) String() string {
	return fmt.Sprintf("%s+api%s", v.Version, v.APIVersion.String())
}
