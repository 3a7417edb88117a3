package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/enliven-dev/enliven/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "enliven.json"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"
)

// Config represents the complete enliven.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Host is the host the server binds to.
	Host string `json:"host,omitempty"`

	// Port is the port the server listens on.
	Port int `json:"port,omitempty"`

	// Log contains logging configuration.
	Log LogConfig `json:"log,omitempty"`

	// Live contains live-channel tunables.
	Live LiveConfig `json:"live,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is the minimum log level: debug, info, warn or error.
	Level string `json:"level,omitempty"`
}

// LiveConfig contains live-channel settings. Durations are strings in Go
// duration syntax (e.g. "30s").
type LiveConfig struct {
	// ReadTimeout bounds how long a connection may stay silent.
	ReadTimeout string `json:"readTimeout,omitempty"`

	// WriteTimeout bounds each outgoing write.
	WriteTimeout string `json:"writeTimeout,omitempty"`

	// HeartbeatInterval is the server ping cadence.
	HeartbeatInterval string `json:"heartbeatInterval,omitempty"`

	// MaxDispatchQueue is the mutation queue depth per session.
	MaxDispatchQueue int `json:"maxDispatchQueue,omitempty"`
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		Host: DefaultHost,
		Port: DefaultPort,
		Log:  LogConfig{Level: "info"},
		Live: LiveConfig{
			ReadTimeout:       "60s",
			WriteTimeout:      "10s",
			HeartbeatInterval: "25s",
			MaxDispatchQueue:  64,
		},
	}
}

// Load reads enliven.json from dir, applying defaults for absent fields.
// A missing file yields the defaults without error.
func Load(dir string) (*Config, error) {
	c := New()
	path := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, errors.Wrap(err, errors.CategoryConfig, "E_CONFIG_READ", "read "+path)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, "E_CONFIG_PARSE", "parse "+path)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Save writes the configuration to enliven.json in dir.
func (c *Config) Save(dir string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.CategoryConfig, "E_CONFIG_ENCODE", "encode config")
	}
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errors.Wrap(err, errors.CategoryConfig, "E_CONFIG_WRITE", "write "+path)
	}
	return nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return errors.Newf(errors.CategoryConfig, "E_CONFIG_PORT", "invalid port %d", c.Port)
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.Newf(errors.CategoryConfig, "E_CONFIG_LOG_LEVEL",
			"invalid log level %q", c.Log.Level)
	}
	for name, v := range map[string]string{
		"readTimeout":       c.Live.ReadTimeout,
		"writeTimeout":      c.Live.WriteTimeout,
		"heartbeatInterval": c.Live.HeartbeatInterval,
	} {
		if v == "" {
			continue
		}
		if _, err := time.ParseDuration(v); err != nil {
			return errors.Newf(errors.CategoryConfig, "E_CONFIG_DURATION",
				"invalid %s %q", name, v)
		}
	}
	if c.Live.MaxDispatchQueue < 0 {
		return errors.Newf(errors.CategoryConfig, "E_CONFIG_QUEUE",
			"invalid maxDispatchQueue %d", c.Live.MaxDispatchQueue)
	}
	return nil
}

// Duration parses one of the live duration fields, falling back to def
// when the field is empty.
func Duration(v string, def time.Duration) time.Duration {
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// LogLevel maps the configured level to slog's scale.
func (c *Config) LogLevel() string {
	if c.Log.Level == "" {
		return "info"
	}
	return c.Log.Level
}
