package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// ErrPathNotFound is returned when the requested section is missing.
var ErrPathNotFound = errors.New("path not found")

// Parser implements config.Parser for YAML data.
type Parser struct {
	options []yaml.DecodeOption
}

// Option configures a Parser.
type Option func(*Parser)

// Strict rejects keys that have no matching struct field.
func Strict() Option {
	return func(p *Parser) {
		p.options = append(p.options, yaml.DisallowUnknownField())
	}
}

// NewParser creates a YAML parser.
func NewParser(opts ...Option) *Parser {
	parser := &Parser{}

	for _, apply := range opts {
		apply(parser)
	}

	return parser
}

// Parse decodes the section at path into target. An empty path decodes the
// whole document.
func (p *Parser) Parse(data []byte, target any, path string) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyData
	}

	if path == "" {
		err := yaml.UnmarshalWithOptions(data, target, p.options...)
		if err != nil {
			return fmt.Errorf("unmarshal error: %w", err)
		}

		return nil
	}

	yamlPath, err := yaml.PathString(toYAMLPath(path))
	if err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}

	node, err := yamlPath.ReadNode(bytes.NewReader(data))
	if err != nil {
		if yaml.IsNotFoundNodeError(err) {
			return fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}

		return fmt.Errorf("reading path %q: %w", path, err)
	}

	err = yaml.NodeToValue(node, target, p.options...)
	if err != nil {
		return fmt.Errorf("decoding path %q: %w", path, err)
	}

	return nil
}

// toYAMLPath turns "a:b" into "$.a.b".
func toYAMLPath(path string) string {
	return "$." + strings.ReplaceAll(path, ":", ".")
}
