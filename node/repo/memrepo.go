package repo

import (
	"context"
	"os"
	"sync"

	"github.com/ipfs/go-datastore"
	"github.com/ipfs/go-datastore/namespace"
	dssync "github.com/ipfs/go-datastore/sync"
	"github.com/multiformats/go-multiaddr"

	"github.com/filebank-network/filebank/node/config"
)

// MemRepo keeps the ledger datastore and node settings in memory. It backs
// the node tests and short lived devnet ledgers.
type MemRepo struct {
	lk sync.Mutex

	// gen is bumped on every Lock; a LockedRepo handle stays valid only
	// while its generation is current and locked is set.
	gen    uint64
	locked bool

	endpoint multiaddr.Multiaddr
	token    []byte
	secret   []byte
	cfg      *config.Root

	ds      datastore.Batching
	tempDir string
}

var _ Repo = &MemRepo{}

// MemRepoOptions contains options for memory repo
type MemRepoOptions struct {
	Ds     datastore.Batching
	Config *config.Root
}

// NewMemory creates a memory repo. A nil opts, or nil fields in it, fall
// back to an empty thread safe map datastore and the default config.
func NewMemory(opts *MemRepoOptions) *MemRepo {
	mr := &MemRepo{}
	if opts != nil {
		mr.ds = opts.Ds
		mr.cfg = opts.Config
	}
	if mr.ds == nil {
		mr.ds = dssync.MutexWrap(datastore.NewMapDatastore())
	}
	return mr
}

func (mem *MemRepo) APIEndpoint() (multiaddr.Multiaddr, error) {
	mem.lk.Lock()
	defer mem.lk.Unlock()
	if mem.endpoint == nil {
		return nil, ErrNoAPIEndpoint
	}
	return mem.endpoint, nil
}

func (mem *MemRepo) APIToken() ([]byte, error) {
	mem.lk.Lock()
	defer mem.lk.Unlock()
	if mem.token == nil {
		return nil, ErrNoAPIToken
	}
	return mem.token, nil
}

func (mem *MemRepo) Lock() (LockedRepo, error) {
	mem.lk.Lock()
	defer mem.lk.Unlock()
	if mem.locked {
		return nil, ErrRepoAlreadyLocked
	}
	mem.locked = true
	mem.gen++
	return &lockedMemRepo{mem: mem, gen: mem.gen}, nil
}

// Cleanup removes the scratch directory handed out by Path.
func (mem *MemRepo) Cleanup() {
	mem.lk.Lock()
	dir := mem.tempDir
	mem.tempDir = ""
	mem.lk.Unlock()

	if dir == "" {
		return
	}
	if err := os.RemoveAll(dir); err != nil {
		log.Errorw("cleanup test memrepo", "error", err)
	}
}

type lockedMemRepo struct {
	mem *MemRepo
	gen uint64
}

// with runs cb under the repo mutex if this handle still holds the lock.
func (l *lockedMemRepo) with(cb func(m *MemRepo) error) error {
	l.mem.lk.Lock()
	defer l.mem.lk.Unlock()
	if !l.mem.locked || l.mem.gen != l.gen {
		return ErrClosedRepo
	}
	return cb(l.mem)
}

func (l *lockedMemRepo) Readonly() bool {
	return false
}

func (l *lockedMemRepo) Path() string {
	var dir string
	err := l.with(func(m *MemRepo) error {
		if m.tempDir == "" {
			t, err := os.MkdirTemp("", "filebank-memrepo-")
			if err != nil {
				return err
			}
			m.tempDir = t
		}
		dir = m.tempDir
		return nil
	})
	if err != nil {
		log.Errorw("memrepo scratch dir", "error", err)
	}
	return dir
}

func (l *lockedMemRepo) Close() error {
	return l.with(func(m *MemRepo) error {
		m.locked = false
		m.endpoint = nil
		return nil
	})
}

func (l *lockedMemRepo) Datastore(_ context.Context, ns string) (datastore.Batching, error) {
	var ds datastore.Batching
	err := l.with(func(m *MemRepo) error {
		ds = namespace.Wrap(m.ds, datastore.NewKey(ns))
		return nil
	})
	return ds, err
}

func (l *lockedMemRepo) Config() (*config.Root, error) {
	var cfg *config.Root
	err := l.with(func(m *MemRepo) error {
		if m.cfg == nil {
			m.cfg = config.DefaultRoot()
		}
		cfg = m.cfg
		return nil
	})
	return cfg, err
}

func (l *lockedMemRepo) SetConfig(c func(*config.Root)) error {
	return l.with(func(m *MemRepo) error {
		if m.cfg == nil {
			m.cfg = config.DefaultRoot()
		}
		c(m.cfg)
		return nil
	})
}

func (l *lockedMemRepo) SetAPIEndpoint(ma multiaddr.Multiaddr) error {
	return l.with(func(m *MemRepo) error {
		m.endpoint = ma
		return nil
	})
}

func (l *lockedMemRepo) SetAPIToken(token []byte) error {
	return l.with(func(m *MemRepo) error {
		m.token = token
		return nil
	})
}

func (l *lockedMemRepo) APISecret() ([]byte, error) {
	var sk []byte
	err := l.with(func(m *MemRepo) error {
		if m.secret == nil {
			s, err := newSecret()
			if err != nil {
				return err
			}
			m.secret = s
		}
		sk = m.secret
		return nil
	})
	return sk, err
}
