package config

import (
	"fmt"
	"log/slog"
)

// Parser decodes the section of data found at path into target.
//
// Paths use colon (:) to separate nested keys, so "cache" selects the cache
// section and "upstream:retry" would select a block inside upstream. An empty
// path decodes the whole document.
type Parser interface {
	Parse(data []byte, target any, path string) error
}

// DataFetcher returns the raw configuration document.
type DataFetcher interface {
	Fetch() ([]byte, error)
}

// Validator is implemented by configuration sections that can check themselves.
type Validator interface {
	Validate() error
}

// Defaulter is implemented by configuration sections with default values.
// SetDefaults reports whether anything was filled in.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Provider returns an Fx-friendly constructor that loads the section at path
// into target: fetch, parse, apply defaults, validate. Errors name the section.
func Provider[T any](target *T, path string) func(Parser, DataFetcher) (*T, error) {
	return func(parser Parser, fetcher DataFetcher) (*T, error) {
		data, err := fetcher.Fetch()
		if err != nil {
			return nil, fmt.Errorf("reading config for %q: %w", path, err)
		}

		err = parser.Parse(data, target, path)
		if err != nil {
			return nil, fmt.Errorf("parsing config section %q: %w", path, err)
		}

		if defaulter, ok := any(target).(Defaulter); ok && defaulter.SetDefaults() {
			slog.Debug("config defaults applied", slog.String("section", path))
		}

		if validator, ok := any(target).(Validator); ok {
			err = validator.Validate()
			if err != nil {
				return nil, fmt.Errorf("invalid config section %q: %w", path, err)
			}
		}

		return target, nil
	}
}

// Static is a DataFetcher over an in-memory document, such as the built-in
// default configuration.
type Static []byte

// Fetch returns a copy of the document.
func (s Static) Fetch() ([]byte, error) {
	return append([]byte(nil), s...), nil
}
