package fblog

import (
	"os"

	logging "github.com/ipfs/go-log/v2"
)

func SetupLogLevels() {
	if _, set := os.LookupEnv("GOLOG_LOG_LEVEL"); !set {
		_ = logging.SetLogLevel("*", "INFO")
		_ = logging.SetLogLevel("rpc", "ERROR")
		_ = logging.SetLogLevel("fsjournal", "WARN")
	}
}

// SetSubsystemLevels applies per-subsystem levels from the node config.
// Unknown subsystems are reported and skipped.
func SetSubsystemLevels(levels map[string]string) {
	for sys, lvl := range levels {
		if err := logging.SetLogLevel(sys, lvl); err != nil {
			logging.Logger("fblog").Warnw("setting log level", "subsystem", sys, "level", lvl, "error", err)
		}
	}
}
