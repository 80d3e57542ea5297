package catalog

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/Aashaypariskar/Premade-Assignment-sub001/internal/errors"
)

// ParseYAML decodes a YAML catalog file. Unknown fields are rejected so a
// typo cannot silently drop a question.
func ParseYAML(filename string, data []byte) (Document, error) {
	var doc Document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return Document{}, apperrors.Wrap(apperrors.CodeValidation, "invalid catalog file",
			&LoadError{File: filename, Message: err.Error()})
	}
	return doc, nil
}

// FindFiles returns the catalog files (*.cue, *.yaml, *.yml) directly inside
// dir, sorted by name so that declaration order is stable.
func FindFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read catalog dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".cue", ".yaml", ".yml":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// LoadFile parses one catalog file, choosing the format by extension.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read catalog file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		return ParseCUE(path, data)
	case ".yaml", ".yml":
		return ParseYAML(path, data)
	}
	return Document{}, apperrors.Newf(apperrors.CodeValidation, "unsupported catalog file %s", path)
}

// LoadDir loads every catalog file in dir, or a single file when dir names
// one, and builds the catalog. Files are merged in name order.
func LoadDir(dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("catalog path: %w", err)
	}

	files := []string{dir}
	if info.IsDir() {
		files, err = FindFiles(dir)
		if err != nil {
			return nil, err
		}
		if len(files) == 0 {
			return nil, apperrors.Newf(apperrors.CodeValidation, "no catalog files found in %s", dir)
		}
	}

	docs := make([]Document, 0, len(files))
	for _, f := range files {
		doc, err := LoadFile(f)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return FromDocuments(docs...)
}
