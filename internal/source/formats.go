package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Option configures a file-backed source.
type Option func(*File)

// Optional makes a missing file load as an empty tree.
func Optional() Option {
	return func(f *File) {
		f.Optional = true
	}
}

var (
	jsonParser = parser{format: "JSON", parse: parseJSON}
	tomlParser = parser{format: "TOML", parse: parseTOML}
	yamlParser = parser{format: "YAML", parse: parseYAML}
)

// extensions maps lower-case file extensions to their parser.
var extensions = map[string]parser{
	".json":  jsonParser,
	".jsonc": jsonParser,
	".toml":  tomlParser,
	".yaml":  yamlParser,
	".yml":   yamlParser,
}

// JSON returns a Source reading the JSON file at path. Comments and trailing
// commas are accepted.
func JSON(path string, opts ...Option) Source {
	return newFileSource(path, jsonParser, opts)
}

// TOML returns a Source reading the TOML file at path.
func TOML(path string, opts ...Option) Source {
	return newFileSource(path, tomlParser, opts)
}

// YAML returns a Source reading the YAML file at path.
func YAML(path string, opts ...Option) Source {
	return newFileSource(path, yamlParser, opts)
}

// ForPath returns a Source for path, choosing the parser from the file
// extension.
func ForPath(path string, opts ...Option) (Source, error) {
	p, ok := extensions[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return newFileSource(path, p, opts), nil
}

func newFileSource(path string, p parser, opts []Option) *fileSource {
	s := &fileSource{File: File{Path: path}, parser: p}
	for _, opt := range opts {
		opt(&s.File)
	}
	return s
}

func parseJSON(data []byte) (map[string]any, error) {
	stripped := jsonc.ToJSON(data)
	if len(bytes.TrimSpace(stripped)) == 0 {
		return nil, nil
	}

	var settings map[string]any
	if err := json.Unmarshal(stripped, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func parseTOML(data []byte) (map[string]any, error) {
	var settings map[string]any
	if err := toml.Unmarshal(data, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func parseYAML(data []byte) (map[string]any, error) {
	var settings map[string]any
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Bytes returns a Source parsing data in the format implied by the extension
// of name, for example defaults embedded with go:embed.
func Bytes(name string, data []byte) (Source, error) {
	p, ok := extensions[strings.ToLower(filepath.Ext(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}

	return Func(func(ctx context.Context) (map[string]any, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return p.decode(name, data)
	}), nil
}
