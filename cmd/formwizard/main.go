// Command formwizard serves the multi-step student form over HTTP, walks it in
// a terminal, previews sections and lints schema files.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "formwizard",
		Short: "Multi-step dynamic form wizard",
		Long: `formwizard renders a server supplied form schema one section at a time,
gated by a roll number login.

Examples:
  formwizard serve --config formwizard.yaml
  formwizard fill --roll 21CS042 --name "Jane Doe"
  formwizard render --schema form.json --section 2
  formwizard lint form.json form.yaml`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file (FORMWIZARD_* env vars override it)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Override logger.level")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newFillCmd(opts))
	cmd.AddCommand(newRenderCmd(opts))
	cmd.AddCommand(newLintCmd())
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
