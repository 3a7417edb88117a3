package live

import "time"

// Config tunes session behavior.
type Config struct {
	// ReadTimeout bounds how long a connection may stay silent. The
	// heartbeat keeps healthy connections inside this window.
	ReadTimeout time.Duration

	// WriteTimeout bounds each outgoing write.
	WriteTimeout time.Duration

	// HeartbeatInterval is the server ping cadence.
	HeartbeatInterval time.Duration

	// MaxDispatchQueue is the mutation queue depth per session.
	MaxDispatchQueue int
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() *Config {
	return &Config{
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		HeartbeatInterval: 25 * time.Second,
		MaxDispatchQueue:  64,
	}
}
