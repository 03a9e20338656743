package source

import (
	"context"
	"fmt"
	"os"
)

// File is the file-backed part shared by the parsing sources.
type File struct {
	// Path is the file to read.
	Path string

	// Optional makes a missing file load as an empty tree instead of
	// failing.
	Optional bool
}

// ReadFile returns the contents of the file. For an optional file that does
// not exist it returns nil, nil.
func (f File) ReadFile(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		if f.Optional && os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", f.Path, err)
	}

	return data, nil
}

// parser turns raw file contents into a settings tree.
type parser struct {
	format string
	parse  func(data []byte) (map[string]any, error)
}

// decode parses data read from name into a normalised settings tree.
func (p parser) decode(name string, data []byte) (map[string]any, error) {
	settings, err := p.parse(data)
	if err != nil {
		return nil, &ParseError{Path: name, Format: p.format, Err: err}
	}
	if settings == nil {
		settings = map[string]any{}
	}
	return normalizeMap(settings), nil
}

// fileSource pairs a File with a parser.
type fileSource struct {
	File
	parser parser
}

func (s *fileSource) Load(ctx context.Context) (map[string]any, error) {
	data, err := s.ReadFile(ctx)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return map[string]any{}, nil
	}

	return s.parser.decode(s.Path, data)
}

func (s *fileSource) String() string {
	return s.parser.format + ":" + s.Path
}
