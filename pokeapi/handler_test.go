package pokeapi_test

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/0xalexb/pokedex"
	"github.com/0xalexb/pokedex/pokeapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(t *testing.T) (*pokeapi.Handler, *upstream) {
	t.Helper()

	up := newUpstream(t)
	service, _ := newService(t, up)

	return pokeapi.NewHandler(service, pokedex.BuildInfo{Version: "1.2.3", Commit: "abc", CompiledAt: "now"}), up
}

func get(handler http.Handler, target string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Routes(t *testing.T) {
	t.Parallel()

	handler, _ := newHandler(t)

	tests := []struct {
		target string
		check  func(t *testing.T, body []byte)
	}{
		{
			target: "/api/pokemon/bulbasaur",
			check: func(t *testing.T, body []byte) {
				t.Helper()

				var record pokeapi.Pokemon
				require.NoError(t, json.Unmarshal(body, &record))
				assert.Equal(t, 1, record.ID)
				assert.Equal(t, "Seed Pokémon", *record.Species.Genus)
			},
		},
		{
			target: "/api/pokemon/bulbasaur/overview",
			check: func(t *testing.T, body []byte) {
				t.Helper()

				assert.JSONEq(t, `{"id":1,"name":"bulbasaur","height":7,"weight":69,
					"base_experience":64,"types":["grass","poison"]}`, string(body))
			},
		},
		{
			target: "/api/pokemon/bulbasaur/abilities",
			check: func(t *testing.T, body []byte) {
				t.Helper()

				assert.JSONEq(t, `[
					{"name":"overgrow","is_hidden":false,"effect":"Powers up Grass-type moves."},
					{"name":"chlorophyll","is_hidden":true}
				]`, string(body))
			},
		},
		{
			target: "/api/pokemon/bulbasaur/moves",
			check: func(t *testing.T, body []byte) {
				t.Helper()

				var moves []pokeapi.Move
				require.NoError(t, json.Unmarshal(body, &moves))
				require.Len(t, moves, 2)
				assert.Equal(t, "cut", moves[0].Name)
			},
		},
		{
			target: "/api/pokemon/bulbasaur/forms",
			check: func(t *testing.T, body []byte) {
				t.Helper()

				assert.JSONEq(t, `[{"name":"bulbasaur","is_default":true,"is_mega":false,
					"is_battle_only":false,"sprites":{"front_default":"form.png"}}]`, string(body))
			},
		},
		{
			target: "/api/pokemon?name=saur&page=abc&pageSize=1",
			check: func(t *testing.T, body []byte) {
				t.Helper()

				var page pokeapi.Page
				require.NoError(t, json.Unmarshal(body, &page))
				assert.Equal(t, 1, page.Page)
				assert.Equal(t, 1, page.PageSize)
				assert.Equal(t, 3, page.Total)
				require.Len(t, page.Items, 1)
				assert.Equal(t, "bulbasaur", page.Items[0].Name)
			},
		},
		{
			target: "/api/pokemon?page=9223372036854775807&pageSize=100",
			check: func(t *testing.T, body []byte) {
				t.Helper()

				var page pokeapi.Page
				require.NoError(t, json.Unmarshal(body, &page))
				assert.Equal(t, math.MaxInt, page.Page)
				assert.Equal(t, 100, page.PageSize)
				assert.Equal(t, 6, page.Total)
				assert.Empty(t, page.Items)
			},
		},
		{
			target: "/api/version",
			check: func(t *testing.T, body []byte) {
				t.Helper()

				assert.JSONEq(t, `{"version":"1.2.3","commit":"abc","compiled_at":"now"}`, string(body))
			},
		},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.target, func(t *testing.T) {
			t.Parallel()

			rec := get(handler, testInfo.target)

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, "public, max-age=60", rec.Header().Get("Cache-Control"))
			assert.NotEmpty(t, rec.Header().Get("ETag"))
			testInfo.check(t, rec.Body.Bytes())
		})
	}
}

func TestHandler_ConditionalGet(t *testing.T) {
	t.Parallel()

	handler, _ := newHandler(t)

	first := get(handler, "/api/pokemon/bulbasaur/overview")
	require.Equal(t, http.StatusOK, first.Code)

	etag := first.Header().Get("ETag")
	require.NotEmpty(t, etag)

	tests := []struct {
		name        string
		ifNoneMatch string
		want        int
	}{
		{name: "exact", ifNoneMatch: etag, want: http.StatusNotModified},
		{name: "weak", ifNoneMatch: "W/" + etag, want: http.StatusNotModified},
		{name: "list", ifNoneMatch: `"other", ` + etag, want: http.StatusNotModified},
		{name: "wildcard", ifNoneMatch: "*", want: http.StatusNotModified},
		{name: "stale", ifNoneMatch: `"0"`, want: http.StatusOK},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.name, func(t *testing.T) {
			t.Parallel()

			rec := get(handler, "/api/pokemon/bulbasaur/overview", "If-None-Match", testInfo.ifNoneMatch)

			assert.Equal(t, testInfo.want, rec.Code)
			assert.Equal(t, etag, rec.Header().Get("ETag"))

			if testInfo.want == http.StatusNotModified {
				assert.Empty(t, rec.Body.String())
			}
		})
	}
}

func TestHandler_Errors(t *testing.T) {
	t.Parallel()

	t.Run("unknown pokemon", func(t *testing.T) {
		t.Parallel()

		handler, _ := newHandler(t)

		rec := get(handler, "/api/pokemon/missingno/moves")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"message":"Pokemon not found"}`, rec.Body.String())
	})

	t.Run("index unavailable", func(t *testing.T) {
		t.Parallel()

		handler, up := newHandler(t)
		up.breakPath("/pokemon")

		rec := get(handler, "/api/pokemon?name=saur")

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.JSONEq(t, `{"message":"Upstream unavailable"}`, rec.Body.String())
	})

	t.Run("method not allowed", func(t *testing.T) {
		t.Parallel()

		handler, _ := newHandler(t)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/pokemon/bulbasaur", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
