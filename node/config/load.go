package config

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/xerrors"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "FILEBANK"

// FromFile loads config from a specified file overriding defaults specified in
// the def parameter. If file does not exist or is empty defaults are assumed.
func FromFile(path string, def *Root) (*Root, error) {
	file, err := os.Open(path)
	switch {
	case os.IsNotExist(err):
		return applyEnv(def)
	case err != nil:
		return nil, err
	}

	defer file.Close() //nolint:errcheck // The file is RO
	return FromReader(file, def)
}

// FromReader loads config from a reader instance.
func FromReader(reader io.Reader, def *Root) (*Root, error) {
	cfg := *def
	_, err := toml.NewDecoder(reader).Decode(&cfg)
	if err != nil {
		return nil, err
	}

	return applyEnv(&cfg)
}

func applyEnv(cfg *Root) (*Root, error) {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, xerrors.Errorf("processing env vars overrides: %s", err)
	}
	return cfg, nil
}

// ConfigComment renders cfg as TOML with every line commented out, which is
// how a fresh repo documents the defaults.
func ConfigComment(cfg *Root) ([]byte, error) {
	buf := new(bytes.Buffer)
	_, _ = buf.WriteString("# Default config:\n")
	e := toml.NewEncoder(buf)
	if err := e.Encode(cfg); err != nil {
		return nil, xerrors.Errorf("encoding config: %w", err)
	}
	b := buf.Bytes()
	b = bytes.ReplaceAll(b, []byte("\n"), []byte("\n#"))
	b = bytes.ReplaceAll(b, []byte("#["), []byte("["))
	return b, nil
}

// Encode writes cfg as plain TOML.
func Encode(cfg *Root) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := toml.NewEncoder(buf).Encode(cfg); err != nil {
		return nil, xerrors.Errorf("encoding config: %w", err)
	}
	return buf.Bytes(), nil
}

// SubsystemLevels parses "subsystem=level,..." as accepted by the CLI.
func SubsystemLevels(s string) (map[string]string, error) {
	out := map[string]string{}
	for _, kv := range strings.Split(s, ",") {
		kv = strings.TrimSpace(kv)
		if kv == "" {
			continue
		}
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, xerrors.Errorf("invalid subsystem level %q", kv)
		}
		out[parts[0]] = parts[1]
	}
	return out, nil
}
