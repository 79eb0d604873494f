package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	formwizard "github.com/goliatone/go-formwizard"
	"github.com/goliatone/go-formwizard/pkg/client"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/schema"
)

type renderOptions struct {
	schemaPath string
	section    int
	renderer   string
	fragment   bool
	styles     bool
}

func newRenderCmd(root *rootOptions) *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one section of a schema file without a server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, root, opts)
		},
	}
	cmd.Flags().StringVar(&opts.schemaPath, "schema", "", "Schema file or URL (defaults to schema.file)")
	cmd.Flags().IntVar(&opts.section, "section", 1, "One-based section to render")
	cmd.Flags().StringVar(&opts.renderer, "renderer", "vanilla", "Output renderer: vanilla or tui")
	cmd.Flags().BoolVar(&opts.fragment, "fragment", false, "Emit only the section form (vanilla)")
	cmd.Flags().BoolVar(&opts.styles, "styles", true, "Inline the default stylesheet (vanilla)")
	return cmd
}

func runRender(cmd *cobra.Command, root *rootOptions, opts *renderOptions) error {
	location := strings.TrimSpace(opts.schemaPath)
	if location == "" {
		cfg, err := loadConfig(root)
		if err != nil {
			return err
		}
		location = cfg.Schema.File
	}
	if location == "" {
		return fmt.Errorf("render: --schema is required")
	}

	src, err := schema.ParseSource(location)
	if err != nil {
		return err
	}
	fetcher, err := client.FetcherForSource(src)
	if err != nil {
		return err
	}

	out, err := formwizard.Preview(cmd.Context(), fetcher, opts.section, opts.renderer,
		formwizard.WithDefaultStyles(opts.styles),
		formwizard.WithRenderOptions(render.RenderOptions{Fragment: opts.fragment}),
	)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
