package repo

import (
	"bytes"
	"context"
	"crypto/rand"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/namespace"
	levelds "github.com/ipfs/go-ds-leveldb"
	measure "github.com/ipfs/go-ds-measure"
	fslock "github.com/ipfs/go-fs-lock"
	logging "github.com/ipfs/go-log/v2"
	"github.com/mitchellh/go-homedir"
	"github.com/multiformats/go-multiaddr"
	ldbopts "github.com/syndtr/goleveldb/leveldb/opt"
	"golang.org/x/xerrors"

	"github.com/filebank-network/filebank/node/config"
)

const (
	fsAPI       = "api"
	fsConfig    = "config.toml"
	fsDatastore = "datastore"
	fsJournal   = "journal"
	fsKeystore  = "keystore"
	fsLock      = "repo.lock"
	fsAPIToken  = "token"

	jwtSecretName = "auth-jwt-private"
)

var log = logging.Logger("repo")

var ErrRepoExists = xerrors.New("repo exists")

// FsRepo is struct for repo, use NewFS to create
type FsRepo struct {
	path       string
	configPath string
}

var _ Repo = &FsRepo{}

// NewFS creates a repo instance based on a path on file system
func NewFS(path string) (*FsRepo, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}

	return &FsRepo{
		path:       path,
		configPath: filepath.Join(path, fsConfig),
	}, nil
}

func (fsr *FsRepo) SetConfigPath(cfgPath string) {
	fsr.configPath = cfgPath
}

func (fsr *FsRepo) Path() string {
	return fsr.path
}

func (fsr *FsRepo) Exists() (bool, error) {
	_, err := os.Stat(filepath.Join(fsr.path, fsDatastore))
	notexist := os.IsNotExist(err)
	if notexist {
		err = nil
	}
	return !notexist, err
}

// Init creates the repo layout and writes a commented default config.
func (fsr *FsRepo) Init() error {
	exist, err := fsr.Exists()
	if err != nil {
		return err
	}
	if exist {
		return ErrRepoExists
	}

	log.Infof("Initializing repo at '%s'", fsr.path)
	err = os.MkdirAll(fsr.path, 0755) //nolint: gosec
	if err != nil && !os.IsExist(err) {
		return err
	}

	if err := fsr.initConfig(); err != nil {
		return xerrors.Errorf("init config: %w", err)
	}

	for _, dir := range []string{fsDatastore, fsJournal, fsKeystore} {
		if err := os.MkdirAll(filepath.Join(fsr.path, dir), 0700); err != nil {
			return xerrors.Errorf("creating %s dir: %w", dir, err)
		}
	}
	return nil
}

func (fsr *FsRepo) initConfig() error {
	_, err := os.Stat(fsr.configPath)
	if err == nil {
		// exists
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	comm, err := config.ConfigComment(config.DefaultRoot())
	if err != nil {
		return xerrors.Errorf("comment: %w", err)
	}
	if err := os.WriteFile(fsr.configPath, comm, 0644); err != nil {
		return xerrors.Errorf("write config: %w", err)
	}
	return nil
}

// readRepoFile returns the trimmed content of a small repo file, or
// missing when it does not exist.
func (fsr *FsRepo) readRepoFile(name string, missing error) ([]byte, error) {
	p := filepath.Join(fsr.path, name)
	data, err := os.ReadFile(p)
	switch {
	case os.IsNotExist(err):
		return nil, missing
	case err != nil:
		return nil, xerrors.Errorf("failed to read %q: %w", p, err)
	}
	return bytes.TrimSpace(data), nil
}

// APIEndpoint returns the multiaddr the running daemon listens on.
func (fsr *FsRepo) APIEndpoint() (multiaddr.Multiaddr, error) {
	data, err := fsr.readRepoFile(fsAPI, ErrNoAPIEndpoint)
	if err != nil {
		return nil, err
	}
	return multiaddr.NewMultiaddr(string(data))
}

// APIToken returns the admin token written by the daemon on startup.
func (fsr *FsRepo) APIToken() ([]byte, error) {
	return fsr.readRepoFile(fsAPIToken, ErrNoAPIToken)
}

// Lock acquires exclusive lock on this repo
func (fsr *FsRepo) Lock() (LockedRepo, error) {
	locked, err := fslock.Locked(fsr.path, fsLock)
	if err != nil {
		return nil, xerrors.Errorf("could not check lock status: %w", err)
	}
	if locked {
		return nil, ErrRepoAlreadyLocked
	}

	closer, err := fslock.Lock(fsr.path, fsLock)
	if err != nil {
		return nil, xerrors.Errorf("could not lock the repo: %w", err)
	}
	return &fsLockedRepo{
		path:       fsr.path,
		configPath: fsr.configPath,
		closer:     closer,
	}, nil
}

// Like Lock, except datastores will work in read-only mode
func (fsr *FsRepo) LockRO() (LockedRepo, error) {
	lr, err := fsr.Lock()
	if err != nil {
		return nil, err
	}

	lr.(*fsLockedRepo).readonly = true
	return lr, nil
}

type fsLockedRepo struct {
	path       string
	configPath string
	closer     io.Closer
	readonly   bool

	ds     datastore.Batching
	dsErr  error
	dsOnce sync.Once

	configLk sync.Mutex
}

func (fsr *fsLockedRepo) Readonly() bool {
	return fsr.readonly
}

func (fsr *fsLockedRepo) Path() string {
	return fsr.path
}

func (fsr *fsLockedRepo) Close() error {
	if err := fsr.stillValid(); err != nil {
		return err
	}

	err := os.Remove(fsr.join(fsAPI))

	if err != nil && !os.IsNotExist(err) {
		return xerrors.Errorf("could not remove API file: %w", err)
	}
	if fsr.ds != nil {
		if err := fsr.ds.Close(); err != nil {
			return xerrors.Errorf("could not close datastore: %w", err)
		}
	}

	err = fsr.closer.Close()
	fsr.closer = nil
	return err
}

// openDatastore opens the leveldb metadata store of the repo, wrapped to
// report its latency and sizes as metrics.
func (fsr *fsLockedRepo) openDatastore() (datastore.Batching, error) {
	dir := fsr.join(fsDatastore, "metadata")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, xerrors.Errorf("failed to create directory %s for datastore: %w", dir, err)
	}

	ds, err := levelds.NewDatastore(dir, &levelds.Options{
		Compression: ldbopts.NoCompression,
		NoSync:      false,
		Strict:      ldbopts.StrictAll,
		ReadOnly:    fsr.readonly,
	})
	if err != nil {
		return nil, xerrors.Errorf("opening datastore %s: %w", dir, err)
	}

	return measure.New("fsrepo.metadata", ds), nil
}

func (fsr *fsLockedRepo) Datastore(_ context.Context, ns string) (datastore.Batching, error) {
	fsr.dsOnce.Do(func() {
		fsr.ds, fsr.dsErr = fsr.openDatastore()
	})
	if fsr.dsErr != nil {
		return nil, fsr.dsErr
	}
	return namespace.Wrap(fsr.ds, datastore.NewKey(ns)), nil
}

// join joins path elements with fsr.path
func (fsr *fsLockedRepo) join(paths ...string) string {
	return filepath.Join(append([]string{fsr.path}, paths...)...)
}

func (fsr *fsLockedRepo) stillValid() error {
	if fsr.closer == nil {
		return ErrClosedRepo
	}
	return nil
}

func (fsr *fsLockedRepo) Config() (*config.Root, error) {
	if err := fsr.stillValid(); err != nil {
		return nil, err
	}

	fsr.configLk.Lock()
	defer fsr.configLk.Unlock()

	return fsr.loadConfigFromDisk()
}

func (fsr *fsLockedRepo) loadConfigFromDisk() (*config.Root, error) {
	return config.FromFile(fsr.configPath, config.DefaultRoot())
}

func (fsr *fsLockedRepo) SetConfig(c func(*config.Root)) error {
	if err := fsr.stillValid(); err != nil {
		return err
	}

	fsr.configLk.Lock()
	defer fsr.configLk.Unlock()

	cfg, err := fsr.loadConfigFromDisk()
	if err != nil {
		return err
	}

	// mutate in-memory representation of config
	c(cfg)

	b, err := config.Encode(cfg)
	if err != nil {
		return err
	}

	// write buffer of TOML bytes to config file
	return os.WriteFile(fsr.configPath, bytes.TrimSpace(b), 0644)
}

func (fsr *fsLockedRepo) SetAPIEndpoint(ma multiaddr.Multiaddr) error {
	if err := fsr.stillValid(); err != nil {
		return err
	}
	return os.WriteFile(fsr.join(fsAPI), []byte(ma.String()), 0644)
}

func (fsr *fsLockedRepo) SetAPIToken(token []byte) error {
	if err := fsr.stillValid(); err != nil {
		return err
	}
	return os.WriteFile(fsr.join(fsAPIToken), token, 0600)
}

func (fsr *fsLockedRepo) APISecret() ([]byte, error) {
	if err := fsr.stillValid(); err != nil {
		return nil, err
	}

	p := fsr.join(fsKeystore, jwtSecretName)
	sk, err := os.ReadFile(p)
	if err == nil {
		return sk, nil
	}
	if !os.IsNotExist(err) {
		return nil, xerrors.Errorf("reading api secret: %w", err)
	}
	if fsr.readonly {
		return nil, xerrors.Errorf("api secret missing in read-only repo")
	}

	log.Warn("Generating new API secret")
	sk, err = newSecret()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(fsr.join(fsKeystore), 0700); err != nil {
		return nil, xerrors.Errorf("creating keystore dir: %w", err)
	}
	if err := os.WriteFile(p, sk, 0600); err != nil {
		return nil, xerrors.Errorf("writing api secret: %w", err)
	}
	return sk, nil
}

func newSecret() ([]byte, error) {
	sk := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, sk); err != nil {
		return nil, xerrors.Errorf("generating api secret: %w", err)
	}
	return sk, nil
}
