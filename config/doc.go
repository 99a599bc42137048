// Package config loads configuration sections from a single document.
//
// Each component owns a section type and loads it with Provider, which runs
// the same pipeline for every section:
//   - DataFetcher returns the raw document (see config/fetcher/file)
//   - Parser decodes the section at a colon-separated path (see config/parser/yaml)
//   - Defaulter fills unset fields
//   - Validator rejects invalid values
//
// For example, the cache section of
//
//	cache:
//	  driver: sqlite
//	  dsn: ${POKEDEX_CACHE_DSN}
//	upstream:
//	  timeout: 10s
//
// is loaded with
//
//	fx.Provide(config.Provider(&cache.Config{}, "cache"))
//
// given a Parser and a DataFetcher in the Fx graph.
package config
