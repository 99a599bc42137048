// Package resolver enriches a document with the upstream documents its URLs point to.
package resolver

import (
	"context"
	"log/slog"
	"time"

	"github.com/0xalexb/pokedex/tree"

	mapset "github.com/deckarep/golang-set/v2"
)

// BatchFetcher fetches many URLs at once. Missing keys in the result mean the
// URL could not be fetched. *fetch.Fetcher satisfies it.
type BatchFetcher interface {
	FetchMany(ctx context.Context, urls mapset.Set[string], ttl time.Duration) map[string]any
}

// Resolver finds URLs in a document, fetches them in one batch and merges the
// fetched documents back next to the URLs they came from.
type Resolver struct {
	fetcher BatchFetcher
	ttl     time.Duration
}

// New creates a Resolver that caches fetched documents for ttl.
func New(fetcher BatchFetcher, ttl time.Duration) *Resolver {
	return &Resolver{fetcher: fetcher, ttl: ttl}
}

// ResolveAndMerge extracts every URL matched by specs, fetches each distinct
// URL once, and writes the result under field (tree.DefaultField when empty)
// in every container the URL was found in. Containers whose URL could not be
// fetched are left untouched. The document is returned unchanged when nothing
// matches; otherwise it is modified in place and returned, so documents
// shared with other readers should be passed through tree.Clone first.
func (r *Resolver) ResolveAndMerge(ctx context.Context, root any, specs []string, field string) any {
	locations := tree.Locate(root, specs...)
	if len(locations) == 0 {
		return root
	}

	urls := mapset.NewSetWithSize[string](len(locations))
	for _, location := range locations {
		urls.Add(location.URL)
	}

	fetched := r.fetcher.FetchMany(ctx, urls, r.ttl)

	values := make(map[string]any, len(locations))

	for _, location := range locations {
		value, ok := fetched[location.URL]
		if !ok {
			continue
		}

		values[location.ContainerPath] = value
	}

	if len(values) == 0 {
		return root
	}

	merged, err := tree.Merge(root, values, field)
	if err != nil {
		slog.Warn("some fetched documents could not be merged", slog.Any("error", err))
	}

	return merged
}
