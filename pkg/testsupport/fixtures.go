// Package testsupport holds fixtures and golden-file helpers shared by the
// package tests.
package testsupport

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

//go:embed testdata/student_form.json
var studentFormJSON []byte

// StudentFormJSON returns the form API response used across tests: two
// sections covering every field type.
func StudentFormJSON() []byte {
	return bytes.Clone(studentFormJSON)
}

// StudentForm decodes StudentFormJSON.
func StudentForm(t *testing.T) schema.Form {
	t.Helper()

	form, err := schema.DecodeEnvelope(studentFormJSON)
	if err != nil {
		t.Fatalf("decode student form: %v", err)
	}
	return form
}

// LoadForm reads a JSON or YAML form fixture from disk.
func LoadForm(t *testing.T, path string) schema.Form {
	t.Helper()

	form, err := LoadFormFromPath(path)
	if err != nil {
		t.Fatalf("load form: %v", err)
	}
	return form
}

// LoadFormFromPath returns a decoded form without requiring testing.T, so
// callers can wire fixtures in setup functions.
func LoadFormFromPath(path string) (schema.Form, error) {
	if path == "" {
		return schema.Form{}, errors.New("testsupport: form path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.Form{}, fmt.Errorf("testsupport: read form: %w", err)
	}
	form, err := schema.Decode(data, schema.FormatFromPath(path))
	if err != nil {
		return schema.Form{}, fmt.Errorf("testsupport: decode form: %w", err)
	}
	return form, nil
}

// ReadyState returns a state that has loaded form on behalf of rollNumber.
func ReadyState(form schema.Form, rollNumber string) wizard.State {
	state := wizard.NewState()
	state.Begin(rollNumber)
	state.Loaded(form)
	return state
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureOutput executes fn against a buffer and returns both the returned
// string and what was written.
func CaptureOutput(t *testing.T, fn func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := fn(&buf)
	if err != nil {
		t.Fatalf("capture output: %v", err)
	}
	return out, buf.String()
}
