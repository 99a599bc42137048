package pokeapi_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/0xalexb/pokedex/cache"
	"github.com/0xalexb/pokedex/fetch"
	"github.com/0xalexb/pokedex/pokeapi"
	"github.com/0xalexb/pokedex/resolver"
)

const bulbasaurDoc = `{
	"id": 1, "name": "bulbasaur", "height": 7, "weight": 69, "base_experience": 64,
	"types": [
		{"slot": 1, "type": {"name": "grass", "url": "BASE/type/12/"}},
		{"slot": 2, "type": {"name": "poison", "url": "BASE/type/4/"}},
		{"slot": 3, "type": {"name": "grass", "url": "BASE/type/12/"}}
	],
	"stats": [
		{"base_stat": 45, "stat": {"name": "hp"}},
		{"base_stat": 49, "stat": {"name": "attack"}}
	],
	"sprites": {"front_default": "front.png", "other": {"official-artwork": {"front_default": "art.png"}}},
	"species": {"name": "bulbasaur", "url": "BASE/pokemon-species/1/"},
	"abilities": [
		{"is_hidden": false, "slot": 1, "ability": {"name": "overgrow", "url": "BASE/ability/65/"}},
		{"is_hidden": true, "slot": 3, "ability": {"name": "chlorophyll", "url": "BASE/ability/34/"}}
	],
	"moves": [
		{"move": {"name": "Vine-whip", "url": "BASE/move/22/"}, "version_group_details": [
			{"level_learned_at": 0, "move_learn_method": {"name": "machine"}},
			{"level_learned_at": 9, "move_learn_method": {"name": "level-up"}}
		]},
		{"move": {"name": "cut", "url": "BASE/move/15/"}, "version_group_details": [
			{"level_learned_at": 0, "move_learn_method": {"name": "machine"}}
		]}
	],
	"forms": [{"name": "bulbasaur", "url": "BASE/pokemon-form/1/"}]
}`

const bulbasaurSpeciesDoc = `{
	"flavor_text_entries": [
		{"flavor_text": "Une graine", "language": {"name": "fr"}},
		{"flavor_text": "A strange seed was\nplanted on its\fback at birth.", "language": {"name": "en"}}
	],
	"genera": [{"genus": "Seed Pokémon", "language": {"name": "en"}}]
}`

// upstream is a fake PokeAPI under /api/v2 serving fixed documents.
type upstream struct {
	server *httptest.Server
	base   string

	mu     sync.Mutex
	docs   map[string]string
	hits   map[string]int
	broken map[string]bool
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()

	up := &upstream{docs: make(map[string]string), hits: make(map[string]int), broken: make(map[string]bool)}
	up.server = httptest.NewServer(http.HandlerFunc(up.serve))
	up.base = up.server.URL + "/api/v2"

	t.Cleanup(up.server.Close)

	up.add("/pokemon/bulbasaur", bulbasaurDoc)
	up.add("/pokemon-species/1/", bulbasaurSpeciesDoc)
	up.add("/ability/65/", `{"effect_entries": [
		{"effect": "Stärkt Pflanzen", "language": {"name": "de"}},
		{"effect": "Powers up Grass-type moves.", "language": {"name": "en"}}
	]}`)
	up.add("/move/22/", `{"power": 45, "accuracy": 100, "pp": 25,
		"type": {"name": "grass"}, "damage_class": {"name": "physical"},
		"flavor_text_entries": [{"flavor_text": "Strikes with\nvines.", "language": {"name": "en"}}]}`)
	up.add("/move/15/", `{"power": 50, "accuracy": 95, "pp": 30, "type": {"name": "normal"},
		"damage_class": {"name": "physical"}, "flavor_text_entries": []}`)
	up.add("/pokemon-form/1/", `{"is_default": true, "is_mega": false, "is_battle_only": false,
		"sprites": {"front_default": "form.png"}}`)

	names := []string{"venusaur", "bulbasaur", "ivysaur", "charmander", "pikachu", "missingno"}

	results := make([]string, 0, len(names))
	for i, name := range names {
		id := i + 100

		results = append(results, fmt.Sprintf(`{"name": %q, "url": "BASE/pokemon/%d/"}`, name, id))

		if name == "bulbasaur" || name == "missingno" {
			continue
		}

		up.add("/pokemon/"+name, fmt.Sprintf(`{"id": %d, "name": %q, "height": 1, "weight": 1,
			"base_experience": null, "types": [], "stats": [], "sprites": {"front_default": null},
			"species": {"name": %q, "url": "BASE/pokemon-species/%d/"}}`, id, name, name, id))
		up.add(fmt.Sprintf("/pokemon-species/%d/", id), fmt.Sprintf(`{"flavor_text_entries": [
			{"flavor_text": "About %s.", "language": {"name": "en"}}], "genera": []}`, name))
	}

	up.add("/pokemon", fmt.Sprintf(`{"count": %d, "results": [%s]}`, len(names), strings.Join(results, ",")))

	return up
}

func (u *upstream) add(path, doc string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.docs["/api/v2"+path] = strings.ReplaceAll(doc, "BASE", u.base)
}

func (u *upstream) breakPath(path string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.broken["/api/v2"+path] = true
}

func (u *upstream) serve(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	u.hits[r.URL.Path]++
	broken := u.broken[r.URL.Path]
	doc, ok := u.docs[r.URL.Path]
	u.mu.Unlock()

	if broken {
		w.WriteHeader(http.StatusInternalServerError)

		return
	}

	if !ok {
		http.NotFound(w, r)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(doc))
}

func (u *upstream) hitsFor(path string) int {
	u.mu.Lock()
	defer u.mu.Unlock()

	return u.hits["/api/v2"+path]
}

func newFetcher(t *testing.T, up *upstream) *fetch.Fetcher {
	t.Helper()

	transport := &http.Transport{}
	t.Cleanup(transport.CloseIdleConnections)

	return fetch.New(cache.NewMemory(time.Hour, 0), &http.Client{Transport: transport}, fetch.Config{
		BaseURL: up.base,
		Timeout: 2 * time.Second,
		Retries: -1,
	})
}

func newService(t *testing.T, up *upstream) (*pokeapi.Service, *fetch.Fetcher) {
	t.Helper()

	fetcher := newFetcher(t, up)

	return pokeapi.NewService(fetcher, resolver.New(fetcher, time.Hour), up.base, pokeapi.Config{}), fetcher
}

func ptr[T any](v T) *T {
	return &v
}
