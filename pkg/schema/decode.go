package schema

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format selects the encoding of a schema document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath infers the encoding from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses a form document with Parse and validates the result.
func Decode(data []byte, format Format) (Form, error) {
	form, err := Parse(data, format)
	if err != nil {
		return Form{}, err
	}
	if err := form.Validate(); err != nil {
		return Form{}, err
	}
	return form, nil
}

// Parse decodes a form document without structural validation. Both the bare
// form object and the {"form": {...}} envelope served by the form API are
// accepted. Field type casing is normalised.
func Parse(data []byte, format Format) (Form, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Form{}, ErrEmptyDocument
	}

	var probe map[string]any
	if err := unmarshal(trimmed, format, &probe); err != nil {
		return Form{}, fmt.Errorf("schema: decode %s: %w", format, err)
	}

	var form Form
	if _, wrapped := probe["form"]; wrapped {
		var envelope Envelope
		if err := unmarshal(trimmed, format, &envelope); err != nil {
			return Form{}, fmt.Errorf("schema: decode %s envelope: %w", format, err)
		}
		form = envelope.Form
	} else if err := unmarshal(trimmed, format, &form); err != nil {
		return Form{}, fmt.Errorf("schema: decode %s: %w", format, err)
	}

	normalize(&form)
	return form, nil
}

// DecodeEnvelope parses the form API response body.
func DecodeEnvelope(data []byte) (Form, error) {
	return Decode(data, FormatJSON)
}

func unmarshal(data []byte, format Format, dest any) error {
	switch format {
	case FormatYAML:
		return yaml.Unmarshal(data, dest)
	case FormatJSON, "":
		return json.Unmarshal(data, dest)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// normalize canonicalises field type casing so "Email" and "email" decode to
// the same variant. Unknown types are left untouched for Validate to reject.
func normalize(form *Form) {
	for si := range form.Sections {
		fields := form.Sections[si].Fields
		for fi := range fields {
			if parsed, ok := ParseFieldType(string(fields[fi].Type)); ok {
				fields[fi].Type = parsed
			}
		}
	}
}
