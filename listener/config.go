// Package listener runs named HTTP listeners inside the Fx container. Every
// listener wraps its handler in the standard middleware stack from
// listener/middleware.
package listener

import (
	"errors"
	"time"

	"github.com/0xalexb/pokedex/listener/middleware"
)

// Defaults for Config.
const (
	DefaultAddress        = ":8080"
	DefaultReadTimeout    = 15 * time.Second
	DefaultHandlerTimeout = 50 * time.Second
	DefaultIdleTimeout    = 60 * time.Second

	// writeTimeoutSlack keeps the connection writable after the handler
	// deadline so the timeout response can still be sent.
	writeTimeoutSlack = 5 * time.Second
)

// ErrEmptyAddress is returned when the address is empty.
var ErrEmptyAddress = errors.New("address must not be empty")

// ErrNegativeTimeout is returned when a timeout is negative.
var ErrNegativeTimeout = errors.New("timeouts must not be negative")

// ErrWriteTimeout is returned when the write timeout would cut off the
// handler timeout response.
var ErrWriteTimeout = errors.New("write_timeout must exceed handler_timeout")

// ErrListenFailed is returned when the server fails to listen on the configured address.
var ErrListenFailed = errors.New("failed to listen")

// ErrShutdownFailed is returned when the server fails to shut down gracefully.
var ErrShutdownFailed = errors.New("shutdown failed")

// ErrEmptyName is returned when the listener name is empty.
var ErrEmptyName = errors.New("listener name must not be empty")

// ErrNilHandler is returned when a nil http.Handler is provided.
var ErrNilHandler = errors.New("handler must not be nil")

// Config holds the configuration for an HTTP listener.
type Config struct {
	Address        string        `yaml:"address"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	HandlerTimeout time.Duration `yaml:"handler_timeout"`
	// CompressMinSize is the smallest response body that is gzipped. Zero
	// selects middleware.DefaultCompressMinSize; a negative value disables
	// compression.
	CompressMinSize int `yaml:"compress_min_size"`
}

// SetDefaults fills zero fields. WriteTimeout defaults to a few seconds past
// HandlerTimeout.
func (c *Config) SetDefaults() bool {
	changed := false

	if c.Address == "" {
		c.Address = DefaultAddress
		changed = true
	}

	if c.ReadTimeout == 0 {
		c.ReadTimeout = DefaultReadTimeout
		changed = true
	}

	if c.HandlerTimeout == 0 {
		c.HandlerTimeout = DefaultHandlerTimeout
		changed = true
	}

	if c.WriteTimeout == 0 {
		c.WriteTimeout = c.HandlerTimeout + writeTimeoutSlack
		changed = true
	}

	if c.IdleTimeout == 0 {
		c.IdleTimeout = DefaultIdleTimeout
		changed = true
	}

	if c.CompressMinSize == 0 {
		c.CompressMinSize = middleware.DefaultCompressMinSize
		changed = true
	}

	return changed
}

// Validate validates the Config.
func (c *Config) Validate() error {
	if c.Address == "" {
		return ErrEmptyAddress
	}

	if c.ReadTimeout < 0 || c.WriteTimeout < 0 || c.IdleTimeout < 0 || c.HandlerTimeout < 0 {
		return ErrNegativeTimeout
	}

	if c.WriteTimeout <= c.HandlerTimeout {
		return ErrWriteTimeout
	}

	return nil
}
