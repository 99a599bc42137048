package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrPathIsDirectory is returned when the path points to a directory.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// Fetcher implements config.DataFetcher for a file read at construction time.
type Fetcher struct {
	filepath string
	data     []byte
}

// NewFetcher returns a constructor for a Fetcher reading fpath, so Fx decides
// when the file is read. Environment references in the file are expanded.
func NewFetcher(fpath string) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		return newFetcher(fpath, os.Getenv)
	}
}

func newFetcher(fpath string, lookup func(string) string) (*Fetcher, error) {
	cleanPath := filepath.Clean(fpath)

	stat, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("stat file %q: %w", cleanPath, err)
	}

	if stat.IsDir() {
		return nil, fmt.Errorf("path %q: %w", cleanPath, ErrPathIsDirectory)
	}

	raw, err := os.ReadFile(cleanPath) // #nosec G304 -- path is cleaned and validated
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", cleanPath, err)
	}

	return &Fetcher{
		filepath: cleanPath,
		data:     []byte(os.Expand(string(raw), lookup)),
	}, nil
}

// Path returns the cleaned path the Fetcher read.
func (f *Fetcher) Path() string {
	return f.filepath
}

// Fetch returns a copy of the expanded file contents.
func (f *Fetcher) Fetch() ([]byte, error) {
	result := make([]byte, len(f.data))
	copy(result, f.data)

	return result, nil
}
