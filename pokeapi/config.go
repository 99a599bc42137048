package pokeapi

import (
	"errors"
	"time"
)

// Defaults for Config.
const (
	DefaultTTL             = 24 * time.Hour
	DefaultIndexTTL        = 24 * time.Hour
	DefaultPageSize        = 20
	DefaultMaxPageSize     = 100
	DefaultIndexLimit      = 20000
	DefaultHandlerCacheAge = time.Minute
)

// ErrPageSize is returned when the page size bounds are inconsistent.
var ErrPageSize = errors.New("default_page_size must be between 1 and max_page_size")

// Config is the "pokeapi" config section.
type Config struct {
	// TTL is how long fetched PokeAPI documents stay fresh in the cache.
	TTL time.Duration `yaml:"ttl"`
	// IndexTTL is how long the name index stays fresh.
	IndexTTL time.Duration `yaml:"index_ttl"`
	// IndexLimit is the number of names requested for the index.
	IndexLimit int `yaml:"index_limit"`

	DefaultPageSize int `yaml:"default_page_size"`
	MaxPageSize     int `yaml:"max_page_size"`

	// CacheAge is sent as Cache-Control max-age on successful responses.
	CacheAge time.Duration `yaml:"cache_age"`
}

// SetDefaults fills zero fields.
func (c *Config) SetDefaults() bool {
	changed := false

	if c.TTL == 0 {
		c.TTL = DefaultTTL
		changed = true
	}

	if c.IndexTTL == 0 {
		c.IndexTTL = DefaultIndexTTL
		changed = true
	}

	if c.IndexLimit == 0 {
		c.IndexLimit = DefaultIndexLimit
		changed = true
	}

	if c.MaxPageSize == 0 {
		c.MaxPageSize = DefaultMaxPageSize
		changed = true
	}

	if c.DefaultPageSize == 0 {
		c.DefaultPageSize = min(DefaultPageSize, c.MaxPageSize)
		changed = true
	}

	if c.CacheAge == 0 {
		c.CacheAge = DefaultHandlerCacheAge
		changed = true
	}

	return changed
}

// Validate checks the section.
func (c *Config) Validate() error {
	if c.TTL < 0 || c.IndexTTL < 0 || c.CacheAge < 0 {
		return errors.New("ttl, index_ttl and cache_age must not be negative")
	}

	if c.IndexLimit < 1 {
		return errors.New("index_limit must be positive")
	}

	if c.DefaultPageSize < 1 || c.DefaultPageSize > c.MaxPageSize {
		return ErrPageSize
	}

	return nil
}
