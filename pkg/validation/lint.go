package validation

import (
	"errors"
	"strings"

	"github.com/goliatone/go-formwizard/pkg/schema"
)

// SchemaIssue represents a schema problem with optional location metadata.
type SchemaIssue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// SchemaValidationResult captures lint outcomes for a form document.
type SchemaValidationResult struct {
	Valid  bool          `json:"valid"`
	Issues []SchemaIssue `json:"issues,omitempty"`
}

// LintDocument decodes raw using the encoding implied by src and reports every
// structural problem instead of stopping at the first one.
func LintDocument(src schema.Source, raw []byte) SchemaValidationResult {
	result := SchemaValidationResult{Valid: true}

	format := schema.FormatJSON
	if src != nil && src.Kind() == schema.SourceKindFile {
		format = schema.FormatFromPath(src.Location())
	}

	form, err := schema.Parse(raw, format)
	if err != nil {
		result.Valid = false
		result.Issues = []SchemaIssue{issueFromError(err)}
		return result
	}

	return LintForm(form)
}

// LintForm reports the structural problems of an already decoded form.
func LintForm(form schema.Form) SchemaValidationResult {
	result := SchemaValidationResult{Valid: true}
	for _, problem := range form.Check() {
		result.Valid = false
		issue := issueFromError(problem.Err)
		issue.Path = problem.Path()
		issue.Field = problem.FieldID
		result.Issues = append(result.Issues, issue)
	}
	return result
}

func issueFromError(err error) SchemaIssue {
	if err == nil {
		return SchemaIssue{Message: "unknown error"}
	}
	var problem schema.Problem
	if errors.As(err, &problem) {
		issue := issueFromError(problem.Err)
		issue.Path = problem.Path()
		issue.Field = problem.FieldID
		return issue
	}

	msg := strings.TrimSpace(err.Error())
	msg = strings.TrimPrefix(msg, "schema: ")
	return SchemaIssue{Message: strings.TrimSpace(msg)}
}
