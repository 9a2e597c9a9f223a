// Package config loads the Mini App configuration from YAML. The embedded
// example config provides every default, a config file and environment
// variables override it in that order.
package config

import (
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/fitsiz/miniapp/pkg/fitsizgo"
	"github.com/fitsiz/miniapp/pkg/fitsizgo/debug"
)

//go:embed example-config.yaml
var ExampleConfig string

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const (
	EnvVarAPIURL = "FITSIZ_API_URL"
	EnvVarEnv    = "FITSIZ_ENV"
	EnvVarProxy  = "FITSIZ_PROXY"
)

type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
	Proxy   string        `yaml:"proxy"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`

	level zerolog.Level `yaml:"-"`
}

type WebAppConfig struct {
	HeaderColor       string `yaml:"header_color"`
	FullscreenVersion string `yaml:"fullscreen_version"`
}

type BootstrapConfig struct {
	AllowFallback bool `yaml:"allow_fallback"`
}

type Config struct {
	Env       string          `yaml:"env"`
	API       APIConfig       `yaml:"api"`
	Logging   LoggingConfig   `yaml:"logging"`
	WebApp    WebAppConfig    `yaml:"webapp"`
	Bootstrap BootstrapConfig `yaml:"bootstrap"`
}

type umConfig Config

func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	err := node.Decode((*umConfig)(c))
	if err != nil {
		return err
	}
	return c.validate()
}

// Default returns the embedded example config.
func Default() (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(ExampleConfig), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse example config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config file at path on top of the defaults and applies
// the environment overrides. An empty path only uses the defaults.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	if err = cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if apiURL, ok := os.LookupEnv(EnvVarAPIURL); ok {
		c.API.BaseURL = apiURL
	}
	if env, ok := os.LookupEnv(EnvVarEnv); ok {
		c.Env = env
	}
	if proxyAddr, ok := os.LookupEnv(EnvVarProxy); ok {
		c.API.Proxy = proxyAddr
	}
	if err := c.validate(); err != nil {
		return fmt.Errorf("invalid environment override: %w", err)
	}
	return nil
}

func (c *Config) validate() error {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		return fmt.Errorf("invalid env %q: must be %s or %s", c.Env, EnvDevelopment, EnvProduction)
	}
	if err := validateBaseURL(c.API.BaseURL); err != nil {
		return fmt.Errorf("invalid api.base_url: %w", err)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("invalid api.timeout %s: must not be negative", c.API.Timeout)
	}
	if c.API.Proxy != "" {
		if _, err := url.Parse(c.API.Proxy); err != nil {
			return fmt.Errorf("invalid api.proxy: %w", err)
		}
	}
	level, err := zerolog.ParseLevel(strings.ToLower(c.Logging.Level))
	if err != nil {
		return fmt.Errorf("invalid logging.level: %w", err)
	}
	c.Logging.level = level
	return nil
}

func validateBaseURL(baseURL string) error {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("malformed URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("URL must use http or https scheme, got %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("URL must include a host")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// Logger builds the root logger: a colored console in development and
// JSON on stderr in production.
func (c *Config) Logger() zerolog.Logger {
	if c.IsDevelopment() {
		return debug.NewLoggerWithLevel(c.Logging.level)
	}
	return zerolog.New(os.Stderr).Level(c.Logging.level).With().Timestamp().Logger()
}

func (c *Config) ClientOpts() *fitsizgo.ClientOpts {
	return &fitsizgo.ClientOpts{
		BaseURL: c.API.BaseURL,
		Timeout: c.API.Timeout,
	}
}
