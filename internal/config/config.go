package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. FORMWIZARD_SERVER_PORT.
const EnvPrefix = "FORMWIZARD"

// Config holds all application configuration
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	API    APIConfig    `mapstructure:"api"`
	Schema SchemaConfig `mapstructure:"schema"`
	Form   FormConfig   `mapstructure:"form"`
	Logger LoggerConfig `mapstructure:"logger"`
	Theme  ThemeConfig  `mapstructure:"theme"`
	Sink   SinkConfig   `mapstructure:"sink"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// APIConfig points at the remote user and form API.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SchemaConfig names a local schema file served for every roll number. When
// set it takes precedence over the remote API. Overlay names a UI overlay
// document applied to every fetched form.
type SchemaConfig struct {
	File    string `mapstructure:"file"`
	Overlay string `mapstructure:"overlay"`
}

// FormConfig tunes wizard behaviour.
type FormConfig struct {
	ValidateAllOnSubmit bool `mapstructure:"validate_all_on_submit"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// ThemeConfig selects the page theme.
type ThemeConfig struct {
	Name    string            `mapstructure:"name"`
	Variant string            `mapstructure:"variant"`
	Tokens  map[string]string `mapstructure:"tokens"`
}

// SinkConfig controls where submissions go besides the log.
type SinkConfig struct {
	OutputPath string `mapstructure:"output_path"`
}

// Load reads configuration from the optional YAML file at configPath, then
// applies FORMWIZARD_* environment overrides on top of the defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", configPath, err)
		}
	}

	if err := bindEnvVars(v); err != nil {
		return nil, fmt.Errorf("config: bind env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: invalid: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration Load produces with no file and no
// environment overrides.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	// API defaults
	v.SetDefault("api.base_url", "http://localhost:3000")
	v.SetDefault("api.timeout", 10*time.Second)

	v.SetDefault("schema.file", "")
	v.SetDefault("schema.overlay", "")
	v.SetDefault("form.validate_all_on_submit", false)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.format", "json")

	v.SetDefault("theme.name", "default")
	v.SetDefault("theme.variant", "")

	v.SetDefault("sink.output_path", "")
}

// bindEnvVars registers keys that AutomaticEnv cannot discover because they
// have no default or live under a map.
func bindEnvVars(v *viper.Viper) error {
	return errors.Join(
		v.BindEnv("api.base_url"),
		v.BindEnv("schema.file"),
		v.BindEnv("schema.overlay"),
		v.BindEnv("sink.output_path"),
		v.BindEnv("theme.variant"),
	)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Schema.File == "" {
		if c.API.BaseURL == "" {
			return errors.New("api.base_url or schema.file is required")
		}
		u, err := url.Parse(c.API.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("api.base_url %q is not an absolute URL", c.API.BaseURL)
		}
	}
	if c.API.Timeout < 0 {
		return errors.New("api.timeout must not be negative")
	}
	switch strings.ToLower(c.Logger.Format) {
	case "json", "console", "text":
	default:
		return fmt.Errorf("logger.format %q must be json or console", c.Logger.Format)
	}
	return nil
}
