package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format identifies the encoding of a catalog document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	ErrMissingName       = errors.New("author name is required")
	ErrMissingSurname    = errors.New("author surname is required")
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
	ErrNotAList          = errors.New("catalog document is not a list of authors")
)

// FormatFromPath guesses the document format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// Load decodes a catalog document: a top-level array of authors.
func Load(r io.Reader, format Format) ([]Author, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	switch format {
	case FormatJSON:
	case FormatYAML:
		data, err = yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("convert yaml catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	var authors []Author
	if err := json.Unmarshal(data, &authors); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if authors == nil {
		// null or an empty YAML document
		return nil, ErrNotAList
	}

	for i, author := range authors {
		if strings.TrimSpace(author.Name) == "" {
			return nil, fmt.Errorf("author #%d: %w", i, ErrMissingName)
		}
		if strings.TrimSpace(author.Surname) == "" {
			return nil, fmt.Errorf("author #%d (%s): %w", i, author.Name, ErrMissingSurname)
		}
	}

	return authors, nil
}

// LoadFile reads a catalog document from disk.
func LoadFile(path string) ([]Author, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	return Load(f, format)
}

// LoadFS reads a catalog document from fsys, typically the embedded assets.
func LoadFS(fsys fs.FS, name string) ([]Author, error) {
	format, err := FormatFromPath(name)
	if err != nil {
		return nil, err
	}

	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	return Load(f, format)
}
