package fetch

import (
	"errors"
	"strings"
	"time"
)

// Defaults applied by Config.SetDefaults.
const (
	DefaultBaseURL      = "https://pokeapi.co/api/v2"
	DefaultKeyPrefix    = "pokeapi:"
	DefaultTimeout      = 5 * time.Second
	DefaultRetries      = 2
	DefaultRetryBackoff = 100 * time.Millisecond
	DefaultUserAgent    = "pokedex/1.0"
)

// ErrEmptyBaseURL is returned when no upstream base URL is configured.
var ErrEmptyBaseURL = errors.New("base_url must not be empty")

var errNonPositiveTimeout = errors.New("timeout must be positive")

// Config tunes upstream requests and cache keys.
type Config struct {
	// BaseURL is stripped from URLs when deriving cache keys.
	BaseURL   string `yaml:"base_url"`
	KeyPrefix string `yaml:"key_prefix"`
	// Timeout bounds each attempt separately.
	Timeout time.Duration `yaml:"timeout"`
	// Retries is the number of extra attempts after a retryable failure.
	// Zero selects DefaultRetries; a negative value disables retrying.
	Retries      int           `yaml:"retries"`
	RetryBackoff time.Duration `yaml:"retry_backoff"`
	// MaxConcurrency caps in-flight requests per batch. Zero means no cap.
	// Any cap makes a batch larger than it wait for several rounds of
	// requests, so FetchMany is no longer bounded by WorstCase.
	MaxConcurrency int    `yaml:"max_concurrency"`
	UserAgent      string `yaml:"user_agent"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() bool {
	changed := false

	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
		changed = true
	}

	if trimmed := strings.TrimRight(c.BaseURL, "/"); trimmed != c.BaseURL {
		c.BaseURL = trimmed
		changed = true
	}

	if c.KeyPrefix == "" {
		c.KeyPrefix = DefaultKeyPrefix
		changed = true
	}

	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
		changed = true
	}

	if c.Retries == 0 {
		c.Retries = DefaultRetries
		changed = true
	}

	if c.RetryBackoff == 0 {
		c.RetryBackoff = DefaultRetryBackoff
		changed = true
	}

	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
		changed = true
	}

	return changed
}

// Validate checks the base URL and timeout.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrEmptyBaseURL
	}

	if c.Timeout <= 0 {
		return errNonPositiveTimeout
	}

	return nil
}

func (c *Config) attempts() int {
	return 1 + max(c.Retries, 0)
}

// WorstCase is the longest one uncapped FetchMany call can take: every
// attempt timing out plus the backoff between attempts.
func (c *Config) WorstCase() time.Duration {
	attempts := c.attempts()

	return time.Duration(attempts)*c.Timeout + time.Duration(attempts-1)*c.RetryBackoff
}
