package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/0xalexb/pokedex/cache"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidBody is returned when an upstream response is not valid JSON.
var ErrInvalidBody = errors.New("invalid upstream body")

// StatusError is returned for a non-2xx upstream response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream %s responded %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher fetches upstream documents through a cache.Store.
type Fetcher struct {
	store  cache.Store
	client Doer
	config Config
	now    func() time.Time
}

// New creates a Fetcher. Defaults are applied to a copy of cfg.
func New(store cache.Store, client Doer, cfg Config) *Fetcher {
	cfg.SetDefaults()

	if client == nil {
		client = &http.Client{} //nolint:exhaustruct // attempts carry their own deadline
	}

	return &Fetcher{
		store:  store,
		client: client,
		config: cfg,
		now:    time.Now,
	}
}

// NewFromConfig creates a Fetcher using a plain http.Client. It is the
// constructor the fx module provides.
func NewFromConfig(store cache.Store, cfg *Config) *Fetcher {
	return New(store, nil, *cfg)
}

// Config returns the effective configuration.
func (f *Fetcher) Config() Config {
	return f.config
}

// FetchMany returns the decoded document for every URL in urls that is cached
// fresh, could be fetched, or has a stale cache entry to fall back on. URLs
// with none of these are missing from the result. Successful fetches are
// cached for ttl. All network requests of one call run concurrently and the
// call returns once each of them has finished.
func (f *Fetcher) FetchMany(ctx context.Context, urls mapset.Set[string], ttl time.Duration) map[string]any {
	if urls == nil || urls.Cardinality() == 0 {
		return map[string]any{}
	}

	ordered := urls.ToSlice()
	sort.Strings(ordered)

	results := make(map[string]any, len(ordered))
	pending := make([]string, 0, len(ordered))

	for _, url := range ordered {
		entry, ok := f.store.Get(ctx, f.config.Key(url))
		if ok && !entry.Expired(f.now()) {
			results[url] = entry.Value

			continue
		}

		pending = append(pending, url)
	}

	if len(pending) == 0 {
		return results
	}

	slog.Info("fetching upstream documents",
		slog.Int("count", len(pending)), slog.Int("cached", len(results)))

	var (
		mu    sync.Mutex
		group errgroup.Group
	)

	if f.config.MaxConcurrency > 0 {
		group.SetLimit(f.config.MaxConcurrency)
	}

	for _, url := range pending {
		group.Go(func() error {
			value, ok := f.resolve(ctx, url, ttl)
			if ok {
				mu.Lock()
				results[url] = value
				mu.Unlock()
			}

			return nil
		})
	}

	_ = group.Wait()

	return results
}

// FetchOne fetches a single URL with the same policy as FetchMany.
func (f *Fetcher) FetchOne(ctx context.Context, url string, ttl time.Duration) (any, bool) {
	value, ok := f.FetchMany(ctx, mapset.NewSet(url), ttl)[url]

	return value, ok
}

// resolve fetches url and caches it, or falls back to the stored entry.
func (f *Fetcher) resolve(ctx context.Context, url string, ttl time.Duration) (any, bool) {
	key := f.config.Key(url)

	doc, err := f.fetch(ctx, url)
	if err == nil {
		putErr := f.store.Put(ctx, key, doc, ttl)
		if putErr != nil {
			slog.Warn("caching upstream document failed",
				slog.String("url", url), slog.String("key", key), slog.Any("error", putErr))
		}

		return doc, true
	}

	entry, ok := f.store.Get(ctx, key)
	if ok {
		slog.Debug("serving stale cache entry",
			slog.String("url", url), slog.Time("expired_at", entry.ExpiresAt), slog.Any("error", err))

		return entry.Value, true
	}

	attrs := []any{slog.String("url", url), slog.Any("error", err)}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		attrs = append(attrs, slog.Int("status", statusErr.Code))
	}

	slog.Warn("upstream fetch failed", attrs...)

	return nil, false
}

// fetch performs up to 1+Retries attempts, backing off between them.
func (f *Fetcher) fetch(ctx context.Context, url string) (any, error) {
	var lastErr error

	for attempt := range f.config.attempts() {
		if attempt > 0 {
			err := sleep(ctx, f.config.RetryBackoff)
			if err != nil {
				return nil, fmt.Errorf("%w (after %w)", err, lastErr)
			}
		}

		doc, err := f.attempt(ctx, url)
		if err == nil {
			return doc, nil
		}

		lastErr = err

		if ctx.Err() != nil || !retryable(err) {
			break
		}
	}

	return nil, lastErr
}

func (f *Fetcher) attempt(ctx context.Context, url string) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", f.config.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", url, err)
	}

	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)

		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}

	var doc any

	err = json.NewDecoder(resp.Body).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("%w from %s: %w", ErrInvalidBody, url, err)
	}

	return doc, nil
}

func retryable(err error) bool {
	if errors.Is(err, ErrInvalidBody) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code == http.StatusTooManyRequests || statusErr.Code >= http.StatusInternalServerError
	}

	return true
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("waiting to retry: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
