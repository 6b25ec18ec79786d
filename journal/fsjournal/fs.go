package fsjournal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	logging "github.com/ipfs/go-log/v2"
	"github.com/mitchellh/go-homedir"
	"golang.org/x/xerrors"

	"github.com/filebank-network/filebank/build"
	"github.com/filebank-network/filebank/journal"
)

var log = logging.Logger("fsjournal")

const RFC3339nocolon = "2006-01-02T150405Z0700"

const (
	currentFile  = "filebank-journal.ndjson"
	rolledPrefix = "filebank-journal-"
)

// fsJournal is a rolling ndjson journal kept in a directory.
type fsJournal struct {
	journal.EventTypeRegistry

	dir       string
	sizeLimit int64
	keep      int

	fi    *os.File
	fSize int64

	incoming chan *journal.Event

	closing chan struct{}
	closed  chan struct{}
}

// OpenFSJournal opens the journal under <repo>/journal, rolling files at
// journal.EnvMaxSize and keeping up to keep rolled files. A non-positive
// keep falls back to journal.EnvMaxBackups.
func OpenFSJournal(repoPath string, disabled journal.DisabledEvents, keep int) (journal.Journal, error) {
	if keep <= 0 {
		keep = int(journal.EnvMaxBackups)
	}
	return openFSJournal(repoPath, disabled, journal.EnvMaxSize, keep)
}

func openFSJournal(path string, disabled journal.DisabledEvents, sizeLimit int64, keep int) (*fsJournal, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, xerrors.Errorf("failed to expand repo path: %w", err)
	}

	dir := filepath.Join(path, "journal")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to mk directory %s for file journal: %w", dir, err)
	}

	f := &fsJournal{
		EventTypeRegistry: journal.NewEventTypeRegistry(disabled),
		dir:               dir,
		sizeLimit:         sizeLimit,
		keep:              keep,
		incoming:          make(chan *journal.Event, 32),
		closing:           make(chan struct{}),
		closed:            make(chan struct{}),
	}

	if err := f.rollJournalFile(); err != nil {
		return nil, err
	}

	go f.runLoop()

	return f, nil
}

func (f *fsJournal) RecordEvent(evtType journal.EventType, supplier func() interface{}) {
	defer func() {
		if r := recover(); r != nil {
			log.Warnf("recovered from panic while recording journal event; type=%s, err=%v", evtType, r)
		}
	}()

	if !evtType.Enabled() {
		return
	}

	je := &journal.Event{
		EventType: evtType,
		Timestamp: build.Clock.Now(),
		Data:      supplier(),
	}
	select {
	case f.incoming <- je:
	case <-f.closing:
		log.Warnw("journal closed but tried to log event", "event", je)
	}
}

func (f *fsJournal) Close() error {
	close(f.closing)
	<-f.closed
	return nil
}

func (f *fsJournal) putEvent(evt *journal.Event) error {
	b, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	n, err := f.fi.Write(append(b, '\n'))
	if err != nil {
		return err
	}

	f.fSize += int64(n)

	if f.fSize >= f.sizeLimit {
		if err := f.rollJournalFile(); err != nil {
			log.Errorw("failed to roll journal", "err", err)
		}
	}

	return nil
}

func (f *fsJournal) rollJournalFile() error {
	if f.fi != nil {
		_ = f.fi.Close()
	}
	current := filepath.Join(f.dir, currentFile)
	rolled := filepath.Join(f.dir, fmt.Sprintf(
		"%s%s.ndjson",
		rolledPrefix,
		build.Clock.Now().Format(RFC3339nocolon),
	))

	if fi, err := os.Stat(current); err == nil && !fi.IsDir() && fi.Size() > 0 {
		err := os.Rename(current, rolled)
		if err != nil {
			return xerrors.Errorf("failed to roll journal file: %w", err)
		}
	}

	nfi, err := os.Create(current)
	if err != nil {
		return xerrors.Errorf("failed to create journal file: %w", err)
	}

	f.fi = nfi
	f.fSize = 0

	return f.pruneRolled()
}

// pruneRolled removes the oldest rolled files beyond the keep limit. Rolled
// names embed a sortable timestamp.
func (f *fsJournal) pruneRolled() error {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return xerrors.Errorf("listing journal dir: %w", err)
	}

	var rolled []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), rolledPrefix) {
			rolled = append(rolled, e.Name())
		}
	}
	if len(rolled) <= f.keep {
		return nil
	}

	sort.Strings(rolled)
	for _, name := range rolled[:len(rolled)-f.keep] {
		if err := os.Remove(filepath.Join(f.dir, name)); err != nil {
			return xerrors.Errorf("pruning %s: %w", name, err)
		}
	}
	return nil
}

func (f *fsJournal) runLoop() {
	defer close(f.closed)

	for {
		select {
		case je := <-f.incoming:
			if err := f.putEvent(je); err != nil {
				log.Errorw("failed to write out journal event", "event", je, "err", err)
			}
		case <-f.closing:
			f.drain()
			_ = f.fi.Close()
			return
		}
	}
}

func (f *fsJournal) drain() {
	for {
		select {
		case je := <-f.incoming:
			if err := f.putEvent(je); err != nil {
				log.Errorw("failed to write out journal event", "event", je, "err", err)
			}
		default:
			return
		}
	}
}
