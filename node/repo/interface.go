package repo

import (
	"context"

	"github.com/ipfs/go-datastore"
	"github.com/multiformats/go-multiaddr"
	"golang.org/x/xerrors"

	"github.com/filebank-network/filebank/node/config"
)

var (
	ErrNoAPIEndpoint     = xerrors.New("API not running (no endpoint)")
	ErrRepoAlreadyLocked = xerrors.New("repo is already locked (filebank daemon already running)")
	ErrClosedRepo        = xerrors.New("repo is no longer open")
	ErrNoAPIToken        = xerrors.New("API token not set")
)

type Repo interface {
	// APIEndpoint returns multiaddress for communication with the node API
	APIEndpoint() (multiaddr.Multiaddr, error)

	// APIToken returns JWT API Token for use in operations that require auth
	APIToken() ([]byte, error)

	// Lock locks the repo for exclusive use.
	Lock() (LockedRepo, error)
}

type LockedRepo interface {
	// Close closes repo and removes lock.
	Close() error

	// Returns datastore defined in this repo.
	// The supplied context must only be used to initialize the datastore.
	// The implementation should not retain the context for usage throughout
	// the lifecycle.
	Datastore(ctx context.Context, namespace string) (datastore.Batching, error)

	// Returns config in this repo
	Config() (*config.Root, error)
	SetConfig(func(*config.Root)) error

	// SetAPIEndpoint sets the endpoint of the current API
	// so it can be read by API clients
	SetAPIEndpoint(multiaddr.Multiaddr) error

	// SetAPIToken sets JWT API Token for CLI
	SetAPIToken([]byte) error

	// APISecret returns the key API tokens are signed with, generating it
	// on first use.
	APISecret() ([]byte, error)

	// Path returns absolute path of the repo
	Path() string

	// Readonly returns true if the repo is readonly
	Readonly() bool
}
