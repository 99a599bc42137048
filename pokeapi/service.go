package pokeapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/0xalexb/pokedex/resolver"
	"github.com/0xalexb/pokedex/tree"

	mapset "github.com/deckarep/golang-set/v2"
)

// MaxFetchStages is the most sequential upstream batches one request waits
// on: a search fetches the name index, then the page of Pokémon, then their
// species.
const MaxFetchStages = 3

// ErrNotFound is returned when a Pokémon document could not be fetched.
var ErrNotFound = errors.New("pokemon not found")

// ErrUnexpectedDocument is returned when an upstream document does not have
// the expected shape.
var ErrUnexpectedDocument = errors.New("unexpected upstream document")

// ErrIndexUnavailable is returned when the name index could not be fetched.
var ErrIndexUnavailable = errors.New("pokemon index unavailable")

// Fetcher is the part of *fetch.Fetcher the service uses.
type Fetcher interface {
	resolver.BatchFetcher
	FetchOne(ctx context.Context, url string, ttl time.Duration) (any, bool)
}

// Service reshapes PokeAPI documents, enriched with the documents their
// nested URLs point to, into the records the API serves.
type Service struct {
	fetcher  Fetcher
	resolver *resolver.Resolver
	baseURL  string
	config   Config
}

// NewService creates a Service reading PokeAPI at baseURL through fetcher.
func NewService(fetcher Fetcher, resolver *resolver.Resolver, baseURL string, cfg Config) *Service {
	cfg.SetDefaults()

	return &Service{
		fetcher:  fetcher,
		resolver: resolver,
		baseURL:  strings.TrimRight(baseURL, "/"),
		config:   cfg,
	}
}

// Config returns the effective configuration.
func (s *Service) Config() Config {
	return s.config
}

// pokemonURL returns the document URL for a name or numeric id.
func (s *Service) pokemonURL(identifier string) string {
	return s.baseURL + "/pokemon/" + url.PathEscape(identifier)
}

func (s *Service) indexURL() string {
	return s.baseURL + "/pokemon?limit=" + strconv.Itoa(s.config.IndexLimit) + "&offset=0"
}

// resolved fetches the Pokémon document for identifier and resolves specs in
// a private copy of it.
func (s *Service) resolved(ctx context.Context, identifier string, specs ...string) (*rawPokemon, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	if identifier == "" {
		return nil, ErrNotFound
	}

	doc, ok := s.fetcher.FetchOne(ctx, s.pokemonURL(identifier), s.config.TTL)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, identifier)
	}

	doc = s.resolver.ResolveAndMerge(ctx, tree.Clone(doc), specs, tree.DefaultField)

	return decode[rawPokemon](doc)
}

// Pokemon returns the basic record for a name or id, with the species
// resolved.
func (s *Service) Pokemon(ctx context.Context, identifier string) (Pokemon, error) {
	raw, err := s.resolved(ctx, identifier, "species.url")
	if err != nil {
		return Pokemon{}, err
	}

	return raw.basic(), nil
}

// Overview returns the short record for a name or id.
func (s *Service) Overview(ctx context.Context, identifier string) (Overview, error) {
	record, err := s.Pokemon(ctx, identifier)
	if err != nil {
		return Overview{}, err
	}

	return record.overview(), nil
}

// Abilities returns the abilities with their English effect text.
func (s *Service) Abilities(ctx context.Context, identifier string) ([]Ability, error) {
	raw, err := s.resolved(ctx, identifier, "abilities.*.ability.url")
	if err != nil {
		return nil, err
	}

	return raw.abilities(), nil
}

// Moves returns the learnable moves sorted by name.
func (s *Service) Moves(ctx context.Context, identifier string) ([]Move, error) {
	raw, err := s.resolved(ctx, identifier, "moves.*.move.url")
	if err != nil {
		return nil, err
	}

	return raw.moves(), nil
}

// Forms returns the forms with their details.
func (s *Service) Forms(ctx context.Context, identifier string) ([]Form, error) {
	raw, err := s.resolved(ctx, identifier, "forms.*.url")
	if err != nil {
		return nil, err
	}

	return raw.forms(), nil
}

// Names returns every Pokémon name in the index, sorted.
func (s *Service) Names(ctx context.Context) ([]string, error) {
	doc, ok := s.fetcher.FetchOne(ctx, s.indexURL(), s.config.IndexTTL)
	if !ok {
		return nil, ErrIndexUnavailable
	}

	index, err := decode[rawIndex](doc)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(index.Results))
	for _, entry := range index.Results {
		names = append(names, entry.Name)
	}

	slices.Sort(names)

	return slices.Compact(names), nil
}

// NormalizePage clamps page to at least 1 and pageSize to [1, max page size].
// A non-positive pageSize selects the default page size.
func (s *Service) NormalizePage(page, pageSize int) (int, int) {
	if pageSize <= 0 {
		pageSize = s.config.DefaultPageSize
	}

	return max(page, 1), min(pageSize, s.config.MaxPageSize)
}

// Search returns one page of Pokémon whose name contains query, ignoring
// case. An empty query lists every Pokémon. Details for the page are fetched
// as one batch and their species resolved together; Pokémon that cannot be
// fetched are left out of Items but still counted in Total.
func (s *Service) Search(ctx context.Context, query string, page, pageSize int) (Page, error) {
	page, pageSize = s.NormalizePage(page, pageSize)

	names, err := s.Names(ctx)
	if err != nil {
		return Page{}, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle != "" {
		names = slices.DeleteFunc(names, func(name string) bool {
			return !strings.Contains(strings.ToLower(name), needle)
		})
	}

	result := Page{Items: []Pokemon{}, Page: page, PageSize: pageSize, Total: len(names)}

	// Compare page numbers first: (page-1)*pageSize overflows for huge pages.
	pages := (len(names) + pageSize - 1) / pageSize
	if page-1 >= pages {
		return result, nil
	}

	start := (page - 1) * pageSize

	names = names[start:min(start+pageSize, len(names))]

	urls := mapset.NewSetWithSize[string](len(names))
	for _, name := range names {
		urls.Add(s.pokemonURL(name))
	}

	fetched := s.fetcher.FetchMany(ctx, urls, s.config.TTL)

	docs := make([]any, 0, len(names))

	for _, name := range names {
		doc, ok := fetched[s.pokemonURL(name)]
		if !ok {
			continue
		}

		docs = append(docs, tree.Clone(doc))
	}

	resolved, _ := s.resolver.ResolveAndMerge(ctx, docs, []string{"*.species.url"}, tree.DefaultField).([]any)

	for _, doc := range resolved {
		raw, err := decode[rawPokemon](doc)
		if err != nil {
			slog.Warn("skipping malformed pokemon document", slog.Any("error", err))

			continue
		}

		result.Items = append(result.Items, raw.basic())
	}

	return result, nil
}
