package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/uischema"
	"github.com/goliatone/go-formwizard/pkg/validation"
)

// errLintFailed reports that at least one document has problems.
var errLintFailed = errors.New("lint: schema problems found")

type lintReport struct {
	File string `json:"file"`
	validation.SchemaValidationResult
}

func newLintCmd() *cobra.Command {
	var (
		asJSON      bool
		overlayPath string
	)
	cmd := &cobra.Command{
		Use:   "lint <file>...",
		Short: "Check schema files for structural problems",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var decorator *uischema.Decorator
			if overlayPath != "" {
				store, err := uischema.LoadFile(overlayPath)
				if err != nil {
					return err
				}
				decorator = uischema.NewDecorator(store)
			}

			reports := make([]lintReport, 0, len(args))
			for _, path := range args {
				raw, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("lint %s: %w", path, err)
				}
				src := schema.SourceFromFile(path)
				result := validation.LintDocument(src, raw)
				if result.Valid && decorator != nil {
					result = lintOverlay(decorator, src, raw, result)
				}
				reports = append(reports, lintReport{File: path, SchemaValidationResult: result})
			}

			if asJSON {
				data, err := json.MarshalIndent(reports, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			} else {
				printLint(cmd, reports)
			}

			for _, report := range reports {
				if !report.Valid {
					return errLintFailed
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	cmd.Flags().StringVar(&overlayPath, "overlay", "", "Also check a UI overlay against each schema")
	return cmd
}

// lintOverlay flags overlay entries that point at fields or sections the
// schema does not define.
func lintOverlay(decorator *uischema.Decorator, src schema.Source, raw []byte, result validation.SchemaValidationResult) validation.SchemaValidationResult {
	form, err := schema.Parse(raw, schema.FormatFromPath(src.Location()))
	if err != nil {
		return result
	}
	for _, problem := range decorator.Check(form) {
		result.Valid = false
		result.Issues = append(result.Issues, validation.SchemaIssue{Path: "overlay", Message: problem})
	}
	return result
}

func printLint(cmd *cobra.Command, reports []lintReport) {
	for _, report := range reports {
		if report.Valid {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", report.File)
			continue
		}
		for _, issue := range report.Issues {
			location := issue.Path
			if location == "" {
				location = "document"
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s -> %s\n", report.File, location, issue.Message)
		}
	}
}
