package journal

import (
	"os"
	"strconv"

	"github.com/docker/go-units"
)

const (
	envDisabledEvents = "FILEBANK_JOURNAL_DISABLED_EVENTS"
	envMaxBackups     = "FILEBANK_JOURNAL_MAX_BACKUPS"
	envMaxSize        = "FILEBANK_JOURNAL_MAX_SIZE"
)

var (
	// EnvMaxBackups is the number of rolled journal files kept on disk.
	EnvMaxBackups = lookupEnv(envMaxBackups, 3, func(s string) (int64, error) {
		n, err := strconv.ParseUint(s, 10, 16)
		return int64(n), err
	})
	// EnvMaxSize is the size at which the journal file is rolled. It
	// accepts human sizes such as "512MiB".
	EnvMaxSize = lookupEnv(envMaxSize, 1<<30, units.RAMInBytes)
)

// EnvDisabledEvents returns the events disabled through the environment,
// falling back to DefaultDisabledEvents when unset or malformed.
func EnvDisabledEvents() DisabledEvents {
	env, ok := os.LookupEnv(envDisabledEvents)
	if !ok {
		return DefaultDisabledEvents
	}
	ret, err := ParseDisabledEvents(env)
	if err != nil {
		log.Warnw("ignoring malformed journal env", "var", envDisabledEvents, "error", err)
		return DefaultDisabledEvents
	}
	return ret
}

func lookupEnv(name string, def int64, parse func(string) (int64, error)) int64 {
	v, ok := os.LookupEnv(name)
	if !ok {
		return def
	}
	n, err := parse(v)
	if err != nil || n <= 0 {
		log.Warnw("ignoring malformed journal env", "var", name, "value", v)
		return def
	}
	return n
}
