package fsjournal

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/raulk/clock"
	"github.com/stretchr/testify/require"

	"github.com/filebank-network/filebank/build"
	"github.com/filebank-network/filebank/journal"
)

func withMockClock(t *testing.T) *clock.Mock {
	mc := clock.NewMock()
	mc.Set(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	prev := build.Clock
	build.Clock = mc
	t.Cleanup(func() { build.Clock = prev })
	return mc
}

func TestRecordsEnabledEvents(t *testing.T) {
	withMockClock(t)
	dir := t.TempDir()

	j, err := openFSJournal(dir, journal.DisabledEvents{{System: "filebank", Event: "noisy"}}, 1<<20, 3)
	require.NoError(t, err)

	on := j.RegisterEventType("filebank", "file_upload")
	off := j.RegisterEventType("filebank", "noisy")

	j.RecordEvent(on, func() interface{} { return map[string]string{"hash": "abc"} })
	j.RecordEvent(off, func() interface{} { return "dropped" })
	require.NoError(t, j.Close())

	fi, err := os.Open(filepath.Join(dir, "journal", currentFile))
	require.NoError(t, err)
	defer fi.Close() //nolint:errcheck

	var lines []map[string]interface{}
	sc := bufio.NewScanner(fi)
	for sc.Scan() {
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		lines = append(lines, m)
	}
	require.Len(t, lines, 1)
	require.Equal(t, "file_upload", lines[0]["Event"])
}

func TestRollingRemovesOldFiles(t *testing.T) {
	mc := withMockClock(t)
	req := require.New(t)
	dir := t.TempDir()

	j, err := openFSJournal(dir, nil, 1<<20, 2)
	req.NoError(err)
	defer j.Close() //nolint:errcheck

	jdir := filepath.Join(dir, "journal")
	for i := 0; i < 4; i++ {
		_, err := j.fi.Write([]byte("{}\n"))
		req.NoError(err)
		mc.Add(time.Second)
		req.NoError(j.rollJournalFile())
	}

	files, err := os.ReadDir(jdir)
	req.NoError(err)
	// two rolled files plus the current one
	req.Len(files, 3)
}
