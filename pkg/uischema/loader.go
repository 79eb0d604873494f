package uischema

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// LoadFile parses a single overlay document from disk.
func LoadFile(path string) (*Store, error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	return load(os.DirFS(dir), []string{name})
}

// LoadFS walks fsys and parses every JSON or YAML overlay document. When fsys
// is nil or holds no overlay files, the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	if fsys == nil {
		return &Store{forms: map[string]FormOverlay{}}, nil
	}

	var paths []string
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !entry.IsDir() && isOverlayFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("uischema: walk: %w", err)
	}
	return load(fsys, paths)
}

func load(fsys fs.FS, paths []string) (*Store, error) {
	store := &Store{forms: make(map[string]FormOverlay)}
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("uischema: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return nil, err
		}

		for formID, raw := range doc.Forms {
			id := strings.TrimSpace(formID)
			if id == "" {
				return nil, fmt.Errorf("uischema: file %s defines an empty form id", path)
			}
			if _, exists := store.forms[id]; exists {
				return nil, fmt.Errorf("uischema: duplicate form %q (file %s)", id, path)
			}
			overlay, err := normaliseForm(raw, id, path)
			if err != nil {
				return nil, err
			}
			store.forms[id] = overlay
		}
	}
	return store, nil
}

type documentFile struct {
	Forms map[string]formFile `json:"forms" yaml:"forms"`
}

type formFile struct {
	Title    string                    `json:"title" yaml:"title"`
	Sections map[string]SectionOverlay `json:"sections" yaml:"sections"`
	Fields   map[string]FieldOverlay   `json:"fields" yaml:"fields"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if strings.TrimSpace(string(data)) == "" {
		return documentFile{}, fmt.Errorf("uischema: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	return documentFile{}, fmt.Errorf("uischema: parse %s: invalid JSON or YAML", source)
}

func normaliseForm(raw formFile, id, source string) (FormOverlay, error) {
	overlay := FormOverlay{
		ID:       id,
		Source:   source,
		Title:    plainText(raw.Title),
		Sections: make(map[string]SectionOverlay, len(raw.Sections)),
		Fields:   make(map[string]FieldOverlay, len(raw.Fields)),
	}

	for key, cfg := range raw.Sections {
		sectionKey := strings.TrimSpace(key)
		if sectionKey == "" {
			return FormOverlay{}, fmt.Errorf("uischema: form %q (file %s) has an empty section key", id, source)
		}
		overlay.Sections[sectionKey] = SectionOverlay{
			Title:       plainText(cfg.Title),
			Description: strings.TrimSpace(cfg.Description),
		}
	}

	for key, cfg := range raw.Fields {
		fieldID := strings.TrimSpace(key)
		if fieldID == "" {
			return FormOverlay{}, fmt.Errorf("uischema: form %q (file %s) has an empty field key", id, source)
		}
		if _, exists := overlay.Fields[fieldID]; exists {
			return FormOverlay{}, fmt.Errorf("uischema: form %q (file %s) defines field %q twice", id, source, fieldID)
		}
		field := FieldOverlay{
			Label:       plainText(cfg.Label),
			Placeholder: plainText(cfg.Placeholder),
		}
		if len(cfg.Options) > 0 {
			field.Options = make(map[string]string, len(cfg.Options))
			for value, label := range cfg.Options {
				field.Options[value] = plainText(label)
			}
		}
		overlay.Fields[fieldID] = field
	}

	return overlay, nil
}

func isOverlayFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
