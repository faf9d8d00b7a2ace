// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"

	"github.com/mthnguyener/simple-agentic-workflow/pkg/logging"
)

// Ollama is the [Backend] for an Ollama server.
//
// Missing models are pulled before the first generation that needs them.
type Ollama struct {
	cfg    BackendConfig
	client lazy[*api.Client]
}

var _ Backend = (*Ollama)(nil)

var ollamaParams = newSupportSet(
	ParamTemperature,
	ParamTopP,
	ParamTopK,
	ParamMaxTokens,
	ParamStop,
	ParamSeed,
	ParamRaw,
)

// NewOllama returns an Ollama backend.
//
// An empty BaseURL uses the OLLAMA_HOST environment variable, then the local default.
// Ollama needs no credentials.
func NewOllama(cfg BackendConfig) *Ollama {
	return &Ollama{cfg: cfg}
}

// Provider implements [Backend].
func (m *Ollama) Provider() Provider { return ProviderOllama }

// Supports implements [Backend].
func (m *Ollama) Supports(p Param) bool { return ollamaParams.Supports(p) }

func (m *Ollama) apiClient() (*api.Client, error) {
	return m.client.get(func() (*api.Client, error) {
		if m.cfg.BaseURL == "" {
			return api.ClientFromEnvironment()
		}

		base, err := url.Parse(m.cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("parse ollama base URL: %w", err)
		}
		hc := m.cfg.HTTPClient
		if hc == nil {
			hc = http.DefaultClient
		}
		return api.NewClient(base, hc), nil
	})
}

// Generate implements [Backend].
func (m *Ollama) Generate(ctx context.Context, req *Request) (*Response, error) {
	client, err := m.apiClient()
	if err != nil {
		return nil, err
	}

	if err := m.ensureModel(ctx, client, req.Model); err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "unable to pull model from ollama",
			slog.String("model", req.Model),
			slog.Any("error", err),
		)
	}

	stream := false
	greq := &api.GenerateRequest{
		Model:   req.Model,
		Prompt:  req.Prompt,
		System:  req.SystemPrompt,
		Stream:  &stream,
		Options: ollamaOptions(req.Params),
	}

	var out *Response
	err = client.Generate(ctx, greq, func(r api.GenerateResponse) error {
		if out == nil {
			out = &Response{Model: r.Model}
		}
		out.Text += r.Response
		if r.Done {
			out.Usage = Usage{
				InputTokens:  r.PromptEvalCount,
				OutputTokens: r.EvalCount,
				TotalTokens:  r.PromptEvalCount + r.EvalCount,
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ollama API error: %w", err)
	}
	if out == nil {
		return nil, ErrEmptyResponse
	}
	if out.Model == "" {
		out.Model = req.Model
	}

	return out, nil
}

// ensureModel pulls name when the server does not list it.
//
// Each distinct progress status is logged once.
func (m *Ollama) ensureModel(ctx context.Context, client *api.Client, name string) error {
	list, err := client.List(ctx)
	if err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	for _, lm := range list.Models {
		if ollamaModelMatches(lm.Model, name) || ollamaModelMatches(lm.Name, name) {
			return nil
		}
	}

	logger := logging.FromContext(ctx)
	logger.InfoContext(ctx, "model not found, pulling", slog.String("model", name))

	seen := make(map[string]struct{})
	err = client.Pull(ctx, &api.PullRequest{Model: name}, func(p api.ProgressResponse) error {
		if _, ok := seen[p.Status]; ok {
			return nil
		}
		seen[p.Status] = struct{}{}
		logger.InfoContext(ctx, "pull progress", slog.String("model", name), slog.String("status", p.Status))
		return nil
	})
	if err != nil {
		return fmt.Errorf("pull %s: %w", name, err)
	}

	return nil
}

// ollamaModelMatches reports whether listed names the requested model, treating a missing tag as "latest".
func ollamaModelMatches(listed, requested string) bool {
	if listed == requested {
		return true
	}
	if !strings.Contains(requested, ":") {
		return listed == requested+":latest"
	}
	return false
}

func ollamaOptions(p Params) map[string]any {
	opts := make(map[string]any, len(p.Raw)+6)
	maps.Copy(opts, p.Raw)

	if p.Temperature != nil {
		opts["temperature"] = *p.Temperature
	}
	if p.TopP != nil {
		opts["top_p"] = *p.TopP
	}
	if p.TopK != nil {
		opts["top_k"] = *p.TopK
	}
	if p.MaxTokens > 0 {
		opts["num_predict"] = p.MaxTokens
	}
	if len(p.Stop) > 0 {
		opts["stop"] = p.Stop
	}
	if p.Seed != nil {
		opts["seed"] = *p.Seed
	}

	if len(opts) == 0 {
		return nil
	}
	return opts
}
