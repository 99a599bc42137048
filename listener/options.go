package listener

import "time"

// Option defines a function type for configuring an HTTP listener.
type Option func(*Config)

// WithAddress sets the address for the HTTP listener.
func WithAddress(addr string) Option {
	return func(cfg *Config) {
		cfg.Address = addr
	}
}

// WithHandlerTimeout bounds how long a single request may be processed.
func WithHandlerTimeout(timeout time.Duration) Option {
	return func(cfg *Config) {
		cfg.HandlerTimeout = timeout
	}
}
