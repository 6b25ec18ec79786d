package config

// // NOTE: ONLY PUT STRUCT DEFINITIONS IN THIS FILE

// Root is the node config kept in the repo as config.toml. Every field can
// be overridden from the environment, e.g. FILEBANK_API_LISTENADDRESS.
type Root struct {
	API     API
	Ledger  Ledger
	Journal Journal
	Logging Logging
	Metrics Metrics
}

// API contains configs for API endpoint
type API struct {
	// Binding address for the JSON-RPC API, as a multiaddr
	ListenAddress string
	Timeout       Duration
}

type Ledger struct {
	// Seed of the network randomness the audit sampler draws from. Every
	// node of a network must use the same seed.
	RandomnessSeed string

	// Actor id of the account receiving package payments
	PotActorID uint64

	// Quota records visited per epoch by the lease sweep
	SweepBudget int

	// Wall-clock length of an epoch. Zero uses the network block delay.
	EpochDuration Duration
}

type Journal struct {
	// Comma separated list of system:event types that are not journaled
	DisabledEvents string

	// Rolled journal files kept next to the live one
	MaxBackups int
}

// Logging is the logging system config
type Logging struct {
	// SubsystemLevels specify per-subsystem log levels
	SubsystemLevels map[string]string
}

type Metrics struct {
	// Nickname is reported in the info metric
	Nickname string

	// Serve Prometheus metrics on the API mux under /debug/metrics
	Enabled bool
}
