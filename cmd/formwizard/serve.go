package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	formwizard "github.com/goliatone/go-formwizard"
	"github.com/goliatone/go-formwizard/internal/server"
	"github.com/goliatone/go-formwizard/pkg/controller"
	"github.com/goliatone/go-formwizard/pkg/renderers/vanilla"
)

type serveOptions struct {
	host string
	port int
}

func newServeCmd(root *rootOptions) *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the form wizard over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, root, opts)
		},
	}
	cmd.Flags().StringVar(&opts.host, "host", "", "Override server.host")
	cmd.Flags().IntVar(&opts.port, "port", 0, "Override server.port")
	return cmd
}

func runServe(ctx context.Context, root *rootOptions, opts *serveOptions) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if opts.host != "" {
		cfg.Server.Host = opts.host
	}
	if opts.port != 0 {
		cfg.Server.Port = opts.port
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
	submissions, closer, err := submissionSink(cfg, logger)
	if err != nil {
		return err
	}
	defer closer.Close()

	renderer, err := vanilla.New()
	if err != nil {
		return err
	}

	policy := submitPolicy(cfg)
	factory := func() *controller.Controller {
		return formwizard.NewController(fetcher,
			controller.WithLogger(logger),
			controller.WithSink(submissions),
			controller.WithSubmitPolicy(policy),
		)
	}

	serverCfg := server.DefaultConfig()
	serverCfg.Host = cfg.Server.Host
	serverCfg.Port = cfg.Server.Port
	serverCfg.ReadTimeout = cfg.Server.ReadTimeout
	serverCfg.WriteTimeout = cfg.Server.WriteTimeout

	srv, err := server.New(serverCfg, factory, renderer,
		server.WithLogger(logger),
		server.WithAuthenticator(auth),
		server.WithTheme(themeConfig(cfg)),
		server.WithAssets(formwizard.EmbeddedAssets()),
	)
	if err != nil {
		return err
	}

	logger.Info("Starting form wizard",
		zap.String("address", srv.Address()),
		zap.String("schema_file", cfg.Schema.File),
		zap.String("api_base_url", cfg.API.BaseURL),
	)
	return srv.Start(ctx)
}
