package cache

import (
	"fmt"
	"time"
)

// Supported drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// DefaultPurgeInterval is how often the SQLite store deletes evicted rows.
const DefaultPurgeInterval = 10 * time.Minute

// Config selects and tunes the Store.
type Config struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	// StaleFor keeps expired entries readable for stale fallback. Zero
	// selects DefaultStaleFor; a negative value turns fallback off.
	StaleFor      time.Duration `yaml:"stale_for"`
	PurgeInterval time.Duration `yaml:"purge_interval"`
	Capacity      uint64        `yaml:"capacity"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() bool {
	changed := false

	if c.Driver == "" {
		c.Driver = DriverMemory
		changed = true
	}

	if c.StaleFor == 0 {
		c.StaleFor = DefaultStaleFor
		changed = true
	}

	if c.PurgeInterval <= 0 {
		c.PurgeInterval = DefaultPurgeInterval
		changed = true
	}

	if c.Driver == DriverSQLite && c.DSN == "" {
		c.DSN = "pokedex-cache.db"
		changed = true
	}

	return changed
}

// Validate checks the driver.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverMemory, DriverSQLite:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Driver)
	}
}

func (c *Config) staleWindow() time.Duration {
	return max(c.StaleFor, 0)
}
