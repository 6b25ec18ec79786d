package config

import (
	"encoding"
	"time"

	"github.com/filebank-network/filebank/build"
	"github.com/filebank-network/filebank/chain/filebank"
)

const (
	DefaultListenAddress = "/ip4/127.0.0.1/tcp/2456/http"
	DefaultSeed          = "filebank-devnet"
)

// DefaultRoot returns the default config
func DefaultRoot() *Root {
	return &Root{
		API: API{
			ListenAddress: DefaultListenAddress,
			Timeout:       Duration(30 * time.Second),
		},
		Ledger: Ledger{
			RandomnessSeed: DefaultSeed,
			PotActorID:     filebank.PotActorID,
			SweepBudget:    build.DefaultSweepBudget,
			EpochDuration:  Duration(time.Duration(build.BlockDelaySecs) * time.Second),
		},
		Journal: Journal{
			DisabledEvents: "filebank:lease_expires_soon",
			MaxBackups:     8,
		},
		Logging: Logging{
			SubsystemLevels: map[string]string{},
		},
		Metrics: Metrics{
			Enabled: true,
		},
	}
}

var _ encoding.TextMarshaler = (*Duration)(nil)
var _ encoding.TextUnmarshaler = (*Duration)(nil)

// Duration is a wrapper type for time.Duration
// for decoding and encoding from/to TOML
type Duration time.Duration

// UnmarshalText implements interface for TOML decoding
func (dur *Duration) UnmarshalText(text []byte) error {
	d, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*dur = Duration(d)
	return err
}

func (dur Duration) MarshalText() ([]byte, error) {
	d := time.Duration(dur)
	return []byte(d.String()), nil
}
