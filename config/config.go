// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the YAML configuration of saw and builds the model dispatcher from it.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mthnguyener/simple-agentic-workflow/internal/xmaps"
	"github.com/mthnguyener/simple-agentic-workflow/model"
	"github.com/mthnguyener/simple-agentic-workflow/pkg/logging"
)

// DefaultEnvFile is loaded by [LoadEnv] when no file is named.
const DefaultEnvFile = ".env"

// Config is the top level configuration file.
type Config struct {
	// Timeout bounds every model call. Zero disables the bound.
	Timeout time.Duration `yaml:"timeout"`

	Log Log `yaml:"log"`

	// SecretsDir is searched for provider secret files. Empty means [model.DefaultSecretsDir].
	SecretsDir string `yaml:"secrets_dir,omitempty"`

	// Providers configures the registered backends. A provider missing here is not registered.
	Providers map[model.Provider]Provider `yaml:"providers"`
}

// Log configures the process logger.
type Log struct {
	Level  string         `yaml:"level"`
	Format logging.Format `yaml:"format"`
}

// Provider configures one backend.
type Provider struct {
	APIKey    string `yaml:"api_key,omitempty"`
	APIKeyEnv string `yaml:"api_key_env,omitempty"`
	Secret    string `yaml:"secret,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
}

// Default returns the configuration used without a file: every provider registered with
// its default credentials and endpoint.
func Default() *Config {
	return &Config{
		Timeout: model.DefaultTimeout,
		Log: Log{
			Level:  slog.LevelInfo.String(),
			Format: logging.FormatJSON,
		},
		Providers: map[model.Provider]Provider{
			model.ProviderGoogle:    {APIKeyEnv: model.EnvGoogleAPIKey},
			model.ProviderGroq:      {APIKeyEnv: model.EnvGroqAPIKey, BaseURL: model.GroqBaseURL},
			model.ProviderOllama:    {},
			model.ProviderOpenAI:    {APIKeyEnv: model.EnvOpenAIAPIKey},
			model.ProviderAnthropic: {APIKeyEnv: model.EnvAnthropicAPIKey},
		},
	}
}

// Load reads the configuration file at path. An empty path returns [Default].
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes a configuration document. Fields it leaves out keep their [Default] value.
func Parse(b []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting of c.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("invalid timeout %s", c.Timeout)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case logging.FormatJSON, logging.FormatText, "":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	for p := range c.Providers {
		if _, err := model.ParseProvider(string(p)); err != nil {
			return err
		}
	}
	return nil
}

// Logger returns a logger writing to w as configured by c.Log.
func (c *Config) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	return logging.New(w, c.Log.Format, level)
}

// Backends builds one backend per configured provider, in provider name order.
func (c *Config) Backends() []model.Backend {
	backends := make([]model.Backend, 0, len(c.Providers))
	for _, p := range xmaps.SortedKeys(c.Providers) {
		pc := c.Providers[p]
		bc := model.BackendConfig{
			Credentials: model.Credentials{
				APIKey:     pc.APIKey,
				Env:        pc.APIKeyEnv,
				Secret:     pc.Secret,
				SecretsDir: c.SecretsDir,
			},
			BaseURL: pc.BaseURL,
		}

		switch p {
		case model.ProviderGoogle:
			backends = append(backends, model.NewGemini(bc))
		case model.ProviderGroq:
			backends = append(backends, model.NewGroq(bc))
		case model.ProviderOllama:
			backends = append(backends, model.NewOllama(bc))
		case model.ProviderOpenAI:
			backends = append(backends, model.NewOpenAI(bc))
		case model.ProviderAnthropic:
			backends = append(backends, model.NewClaude(bc))
		}
	}
	return backends
}

// Dispatcher builds the registry of c and returns a dispatcher over it.
func (c *Config) Dispatcher(opts ...model.Option) (*model.Dispatcher, error) {
	registry, err := model.NewRegistry(c.Backends()...)
	if err != nil {
		return nil, err
	}
	opts = append([]model.Option{model.WithTimeout(c.Timeout)}, opts...)
	return model.NewDispatcher(registry, opts...), nil
}

// LoadEnv loads environment variables from the dotenv files. Variables already set win.
//
// With no files it loads [DefaultEnvFile] if present.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		err := godotenv.Load(DefaultEnvFile)
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}
