// Package config loads optional tool defaults from an xmldoc.toml file.
//
// The file supplies defaults for the generate command and the log level;
// command-line flags always win over file values. A missing file is not an
// error - built-in defaults apply. A file that exists but cannot be parsed,
// or that names an unknown log level, is a setup failure and is reported
// with the INVALID_CONFIG error code.
//
// # File Format
//
//	[generate]
//	level = 3      # heading level for tag sections, 1..6
//	crlf = false   # use CRLF line endings
//
//	[log]
//	level = "info" # error, warn, info, debug
package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	charmlog "github.com/charmbracelet/log"

	"github.com/tagdoc/xmldoc/pkg/errors"
)

// DefaultPath is the config file looked up when no --config flag is given.
const DefaultPath = "xmldoc.toml"

// DefaultHeaderLevel is the heading level used when neither flag nor config
// file sets one.
const DefaultHeaderLevel = 3

// Config carries tool defaults read from an xmldoc.toml file.
type Config struct {
	Generate GenerateConfig `toml:"generate"`
	Log      LogConfig      `toml:"log"`
}

// GenerateConfig holds defaults for the generate command.
type GenerateConfig struct {
	Level int  `toml:"level"`
	CRLF  bool `toml:"crlf"`
}

// LogConfig holds the default log level.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration used when no file is present.
func Default() Config {
	return Config{
		Generate: GenerateConfig{Level: DefaultHeaderLevel},
		Log:      LogConfig{Level: "info"},
	}
}

// Load reads the config file at path, falling back to [Default] when the
// file does not exist. Parse failures and unknown keys return an
// INVALID_CONFIG error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to read config file %q", path)
	}

	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to parse config file %q", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q in %q", undecoded[0].String(), path)
	}

	if _, err := cfg.LogLevel(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// LogLevel maps the configured level name onto a charmbracelet/log level.
// Returns an INVALID_CONFIG error for unknown names.
func (c Config) LogLevel() (charmlog.Level, error) {
	switch strings.TrimSpace(strings.ToLower(c.Log.Level)) {
	case "", "info":
		return charmlog.InfoLevel, nil
	case "debug":
		return charmlog.DebugLevel, nil
	case "warn", "warning":
		return charmlog.WarnLevel, nil
	case "error":
		return charmlog.ErrorLevel, nil
	default:
		return charmlog.InfoLevel, errors.New(errors.ErrCodeInvalidConfig, "unknown log level %q", c.Log.Level)
	}
}
