// Package cfg loads uartlog settings from defaults, an optional YAML file,
// UARTLOG_* environment variables and command line flags, in increasing
// order of precedence.
package cfg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/GoogleCloudPlatform/galog"
	"github.com/allbin/uartlog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is prepended to every environment override.
	EnvPrefix  = "UARTLOG"
	// ConfigName is the base name of the config file searched for.
	ConfigName = "uartlog"
)

// SearchPaths are the directories searched for uartlog.yaml when no
// explicit config file is given.
var SearchPaths = []string{"/etc/uartlog", "$HOME/.config/uartlog"}

// Config is the full configuration: the pipeline settings plus the
// diagnostics logger options.
type Config struct {
	uartlog.Settings `mapstructure:",squash"`

	LogLevel      int    `mapstructure:"log_level"`
	Verbosity     int    `mapstructure:"verbosity"`
	DiagnosticLog string `mapstructure:"diagnostic_log"`
}

// Default log options. Errors only, so console output is not interleaved
// with diagnostics unless asked for.
const (
	DefaultLogLevel  = 1
	DefaultVerbosity = 0
)

// flagKeys maps command line flag names to config keys.
var flagKeys = map[string]string{
	"device":         "device",
	"log-file":       "log_file",
	"backend":        "backend",
	"baud":           "baud",
	"read-timeout":   "read_timeout",
	"sync-writes":    "sync_writes",
	"buffer-size":    "buffer_size",
	"min-length":     "min_length",
	"backoff":        "backoff",
	"max-attempts":   "max_attempts",
	"timeout":        "timeout",
	"drain":          "drain",
	"log-level":      "log_level",
	"verbosity":      "verbosity",
	"diagnostic-log": "diagnostic_log",
}

// New returns a viper instance with defaults and environment overrides set.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	d := uartlog.DefaultSettings()
	v.SetDefault("device", d.Device)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("backend", d.Backend)
	v.SetDefault("baud", d.BaudRate)
	v.SetDefault("read_timeout", d.ReadTimeout)
	v.SetDefault("sync_writes", d.SyncWrites)
	v.SetDefault("buffer_size", d.BufferSize)
	v.SetDefault("min_length", d.MinLength)
	v.SetDefault("backoff", d.Backoff)
	v.SetDefault("max_attempts", d.MaxAttempts)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("drain", d.Drain)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("verbosity", DefaultVerbosity)
	v.SetDefault("diagnostic_log", "")
}

// BindFlags binds every known flag present in flags to its config key.
// Flags that were not changed on the command line fall through to the
// environment, the config file and the defaults.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

// ReadFile reads the config file. An explicit path must exist; otherwise the
// search paths are tried and a missing file is not an error.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		for _, p := range SearchPaths {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("%w: reading config: %v", uartlog.ErrInvalidConfig, err)
	}
	galog.Debugf("Using config file %s", v.ConfigFileUsed())
	return nil
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("%w: %v", uartlog.ErrInvalidConfig, err)
	}
	if err := c.Settings.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
