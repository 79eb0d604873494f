package main

import (
	"fmt"
	"io"
	"os"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/internal/config"
	"github.com/goliatone/go-formwizard/internal/logging"
	"github.com/goliatone/go-formwizard/pkg/client"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/renderers/vanilla"
	"github.com/goliatone/go-formwizard/pkg/schema"
	"github.com/goliatone/go-formwizard/pkg/sink"
	"github.com/goliatone/go-formwizard/pkg/uischema"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// loadConfig reads the config file named by --config and applies flag
// overrides.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Logger.Level = opts.logLevel
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := logging.New(logging.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}
	return logger, nil
}

// backends picks the schema fetcher and the login authenticator. A configured
// schema file serves the same form to every roll number and admits any roll
// number; otherwise both go to the remote API. A configured overlay decorates
// whichever fetcher is chosen.
func backends(cfg *config.Config) (client.Fetcher, client.Authenticator, error) {
	fetcher, auth, err := baseBackends(cfg)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Schema.Overlay == "" {
		return fetcher, auth, nil
	}
	store, err := uischema.LoadFile(cfg.Schema.Overlay)
	if err != nil {
		return nil, nil, err
	}
	return uischema.NewDecorator(store).Fetcher(fetcher), auth, nil
}

func baseBackends(cfg *config.Config) (client.Fetcher, client.Authenticator, error) {
	timeout := client.WithTimeout(cfg.API.Timeout)

	if cfg.Schema.File != "" {
		src, err := schema.ParseSource(cfg.Schema.File)
		if err != nil {
			return nil, nil, err
		}
		fetcher, err := client.FetcherForSource(src, timeout)
		if err != nil {
			return nil, nil, err
		}
		return fetcher, client.AllowAll{}, nil
	}

	api, err := client.NewHTTPClient(cfg.API.BaseURL, timeout)
	if err != nil {
		return nil, nil, err
	}
	return api, api, nil
}

// submissionSink logs every submission and, when sink.output_path is set,
// appends it as a JSON line to that file. The returned closer releases the
// file.
func submissionSink(cfg *config.Config, logger *zap.Logger, extra ...sink.Sink) (sink.Sink, io.Closer, error) {
	sinks := sink.Multi{sink.NewLogSink(logger)}
	var closer io.Closer = nopCloser{}

	if path := cfg.Sink.OutputPath; path != "" {
		file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open submission file: %w", err)
		}
		sinks = append(sinks, sink.NewWriterSink(file))
		closer = file
	}
	sinks = append(sinks, extra...)
	return sinks, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func submitPolicy(cfg *config.Config) wizard.SubmitPolicy {
	if cfg.Form.ValidateAllOnSubmit {
		return wizard.SubmitValidateAll
	}
	return wizard.SubmitValidateCurrent
}

// themeManifest describes the built-in stylesheet as a go-theme manifest so
// configured tokens reach the pages as CSS variables.
func themeManifest(cfg *config.Config) *theme.Manifest {
	return &theme.Manifest{
		Name:    cfg.Theme.Name,
		Version: "1.0.0",
		Tokens:  cfg.Theme.Tokens,
		Assets: theme.Assets{
			Prefix: "/assets",
			Files: map[string]string{
				"stylesheet": vanilla.StylesheetName,
			},
		},
	}
}

func themeConfig(cfg *config.Config) *theme.RendererConfig {
	return render.ThemeConfig(themeManifest(cfg), cfg.Theme.Variant)
}
