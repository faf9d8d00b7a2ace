// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSecretsDir is where docker and compose mount secrets.
const DefaultSecretsDir = "/run/secrets"

// Environment variables read for provider API keys.
const (
	EnvGoogleAPIKey    = "GOOGLE_API_KEY"
	EnvGroqAPIKey      = "GROQ_API_KEY"
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
)

// ErrMissingCredentials is returned when no source yields an API key.
var ErrMissingCredentials = errors.New("missing credentials")

// Credentials locate the API key of a provider.
//
// Sources are tried in order: APIKey, the Env variable, then the Secret file under SecretsDir.
type Credentials struct {
	APIKey     string
	Env        string
	Secret     string
	SecretsDir string
}

// Resolve returns the first non-empty API key.
func (c Credentials) Resolve() (string, error) {
	if c.APIKey != "" {
		return c.APIKey, nil
	}
	if c.Env != "" {
		if v := os.Getenv(c.Env); v != "" {
			return v, nil
		}
	}
	if c.Secret != "" {
		v, err := ReadSecret(c.SecretsDir, c.Secret)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		if v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: set the API key, the %q environment variable or the %q secret", ErrMissingCredentials, c.Env, c.Secret)
}

func (c Credentials) withDefaults(env, secret string) Credentials {
	if c.Env == "" {
		c.Env = env
	}
	if c.Secret == "" {
		c.Secret = secret
	}
	return c
}

// ReadSecret reads the secret file name under dir, trimming trailing newlines.
//
// An empty dir means [DefaultSecretsDir].
func ReadSecret(dir, name string) (string, error) {
	if dir == "" {
		dir = DefaultSecretsDir
	}
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid secret name %q", name)
	}
	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("read secret %q: %w", name, err)
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}
