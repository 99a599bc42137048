package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	out, _, err := runCmd(t, "version")
	require.NoError(t, err)

	assert.Equal(t, "pokedex dev (commit none, built unknown)\n", out)
}

func TestResolveCmd(t *testing.T) { //nolint:paralleltest // the app replaces the default slog logger
	var upstream *httptest.Server

	upstream = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/v2/pokemon/bulbasaur":
			_, _ = w.Write([]byte(`{"name": "bulbasaur", "species": {"name": "bulbasaur", "url": "` +
				upstream.URL + `/api/v2/pokemon-species/1/"}}`))
		case "/api/v2/pokemon-species/1/":
			_, _ = w.Write([]byte(`{"color": {"name": "green"}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(upstream.Close)

	configPath := filepath.Join(t.TempDir(), "pokedex.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(
		"cache:\n  driver: memory\nupstream:\n  base_url: "+upstream.URL+"/api/v2\n  retries: -1\npokeapi: {}\n"), 0o600))

	out, _, err := runCmd(t, "resolve", upstream.URL+"/api/v2/pokemon/bulbasaur",
		"--config", configPath, "--path", "species.url", "--field", "details", "--log-level", "error")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, map[string]any{
		"name": "bulbasaur",
		"url":  upstream.URL + "/api/v2/pokemon-species/1/",
		"details": map[string]any{
			"color": map[string]any{"name": "green"},
		},
	}, doc["species"])

	_, _, err = runCmd(t, "resolve", upstream.URL+"/api/v2/pokemon/missingno",
		"--config", configPath, "--log-level", "error")
	require.ErrorContains(t, err, "could not fetch")
}

func TestResolveCmd_RequiresURL(t *testing.T) {
	t.Parallel()

	_, _, err := runCmd(t, "resolve")
	require.Error(t, err)
}

func TestServeCmd_InvalidConfig(t *testing.T) { //nolint:paralleltest // the app replaces the default slog logger
	configPath := filepath.Join(t.TempDir(), "pokedex.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(
		"cache:\n  driver: redis\nupstream: {}\npokeapi: {}\nlistener:\n  api: {}\n"), 0o600))

	_, _, err := runCmd(t, "serve", "--config", configPath, "--log-level", "error")
	require.ErrorContains(t, err, "redis")
}
