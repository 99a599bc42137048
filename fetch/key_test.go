package fetch_test

import (
	"testing"
	"time"

	"github.com/0xalexb/pokedex/fetch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Key(t *testing.T) {
	t.Parallel()

	cfg := fetch.Config{BaseURL: "https://pokeapi.co/api/v2/"}
	cfg.SetDefaults()

	tests := []struct {
		url  string
		want string
	}{
		{url: "https://pokeapi.co/api/v2/pokemon/1", want: "pokeapi:/pokemon/1"},
		{url: "https://pokeapi.co/api/v2/pokemon?limit=20000&offset=0", want: "pokeapi:/pokemon?limit=20000&offset=0"},
		{url: "https://pokeapi.co/api/v2", want: "pokeapi:https://pokeapi.co/api/v2"},
		{url: "https://example.com/other", want: "pokeapi:https://example.com/other"},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.url, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testInfo.want, cfg.Key(testInfo.url))
			assert.Equal(t, cfg.Key(testInfo.url), cfg.Key(testInfo.url), "keys are deterministic")
		})
	}
}

func TestConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := fetch.Config{}
	assert.True(t, cfg.SetDefaults())
	assert.Equal(t, fetch.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, fetch.DefaultTimeout, cfg.Timeout)
	assert.Equal(t, fetch.DefaultRetries, cfg.Retries)
	assert.Equal(t, fetch.DefaultRetryBackoff, cfg.RetryBackoff)
	require.NoError(t, cfg.Validate())

	assert.False(t, cfg.SetDefaults())

	invalid := fetch.Config{BaseURL: "https://pokeapi.co/api/v2", Timeout: -1}
	require.Error(t, invalid.Validate())
	require.ErrorIs(t, (&fetch.Config{Timeout: 1}).Validate(), fetch.ErrEmptyBaseURL)
}

func TestConfig_WorstCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		config fetch.Config
		want   time.Duration
	}{
		{
			name:   "retries with backoff",
			config: fetch.Config{Timeout: 5 * time.Second, Retries: 2, RetryBackoff: 100 * time.Millisecond},
			want:   15*time.Second + 200*time.Millisecond,
		},
		{
			name:   "retries disabled",
			config: fetch.Config{Timeout: time.Second, Retries: -1, RetryBackoff: time.Second},
			want:   time.Second,
		},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testInfo.want, testInfo.config.WorstCase())
		})
	}
}
