package validation

import (
	"testing"

	"github.com/goliatone/go-formwizard/pkg/schema"
)

func TestLintDocument_Valid(t *testing.T) {
	raw := []byte(`{"form":{"sections":[{"title":"One","fields":[{"fieldId":"name","type":"text","label":"Name"}]}]}}`)
	result := LintDocument(schema.SourceFromFile("form.json"), raw)
	if !result.Valid {
		t.Fatalf("expected form to be valid: %#v", result.Issues)
	}
}

func TestLintDocument_CollectsFieldIssues(t *testing.T) {
	raw := []byte(`
sections:
  - title: One
    fields:
      - fieldId: name
        type: slider
      - fieldId: pick
        type: radio
`)
	result := LintDocument(schema.SourceFromFile("form.yaml"), raw)
	if result.Valid {
		t.Fatalf("expected form to be invalid")
	}
	if len(result.Issues) != 2 {
		t.Fatalf("expected 2 issues, got %#v", result.Issues)
	}
	if got := result.Issues[0].Field; got != "name" {
		t.Fatalf("expected first issue on name, got %q", got)
	}
	if got := result.Issues[1].Path; got != "sections[0].fields[1]" {
		t.Fatalf("expected path of second field, got %q", got)
	}
}

func TestLintDocument_SyntaxError(t *testing.T) {
	result := LintDocument(schema.SourceFromFile("form.json"), []byte(`{"sections": [`))
	if result.Valid || len(result.Issues) != 1 {
		t.Fatalf("expected single syntax issue, got %#v", result)
	}
	if result.Issues[0].Path != "" {
		t.Fatalf("syntax issues carry no path, got %q", result.Issues[0].Path)
	}
}
