package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard/pkg/controller"
	"github.com/goliatone/go-formwizard/pkg/renderers/tui"
	"github.com/goliatone/go-formwizard/pkg/sink"
)

// errNoTerminal is returned when fill runs without an interactive stdin.
var errNoTerminal = errors.New("fill needs an interactive terminal")

type fillOptions struct {
	roll    string
	name    string
	confirm bool
}

func newFillCmd(root *rootOptions) *cobra.Command {
	opts := &fillOptions{}
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill the form interactively in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdin.Fd()) {
				return errNoTerminal
			}
			return runFill(cmd.Context(), cmd, root, opts)
		},
	}
	cmd.Flags().StringVar(&opts.roll, "roll", "", "Roll number to log in with (required)")
	cmd.Flags().StringVar(&opts.name, "name", "", "Student name sent with the login")
	cmd.Flags().BoolVar(&opts.confirm, "confirm", true, "Ask before submitting")
	_ = cmd.MarkFlagRequired("roll")
	return cmd
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func runFill(ctx context.Context, cmd *cobra.Command, root *rootOptions, opts *fillOptions) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	// Terminal output belongs to the prompts; logs go to stderr unless a file
	// is configured.
	if cfg.Logger.OutputPath == "" || cfg.Logger.OutputPath == "stdout" {
		cfg.Logger.OutputPath = "stderr"
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	fetcher, auth, err := backends(cfg)
	if err != nil {
		return err
	}
	if err := auth.Login(ctx, opts.roll, opts.name); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	out := cmd.OutOrStdout()
	submissions, closer, err := submissionSink(cfg, logger, sink.NewWriterSink(out))
	if err != nil {
		return err
	}
	defer closer.Close()

	ctrl := controller.New(fetcher,
		controller.WithLogger(logger),
		controller.WithSink(submissions),
		controller.WithSubmitPolicy(submitPolicy(cfg)),
	)
	if err := ctrl.Load(ctx, opts.roll); err != nil {
		return err
	}
	fmt.Fprintln(out, "Loading...")
	if err := ctrl.Wait(ctx); err != nil && !errors.Is(err, controller.ErrFetchFailed) {
		return err
	}

	renderer, err := tui.New(
		tui.WithOutput(out),
		tui.WithColor(isTerminal(os.Stdout.Fd())),
		tui.WithConfirmSubmit(opts.confirm),
	)
	if err != nil {
		return err
	}
	return renderer.Run(ctx, ctrl)
}
