// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Gemini is the [Backend] for Google Gemini models through the Gemini API.
type Gemini struct {
	cfg    BackendConfig
	client lazy[*genai.Client]
}

var _ Backend = (*Gemini)(nil)

var geminiParams = newSupportSet(
	ParamTemperature,
	ParamTopP,
	ParamTopK,
	ParamMaxTokens,
	ParamStop,
	ParamSeed,
)

// NewGemini returns a Gemini backend. The API key defaults to [EnvGoogleAPIKey].
func NewGemini(cfg BackendConfig) *Gemini {
	cfg.Credentials = cfg.Credentials.withDefaults(EnvGoogleAPIKey, "google_api_key")
	return &Gemini{cfg: cfg}
}

// Provider implements [Backend].
func (m *Gemini) Provider() Provider { return ProviderGoogle }

// Supports implements [Backend].
func (m *Gemini) Supports(p Param) bool { return geminiParams.Supports(p) }

func (m *Gemini) genAIClient(ctx context.Context) (*genai.Client, error) {
	return m.client.get(func() (*genai.Client, error) {
		apiKey, err := m.cfg.Credentials.Resolve()
		if err != nil {
			return nil, err
		}

		cc := &genai.ClientConfig{
			APIKey:     apiKey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: m.cfg.HTTPClient,
		}
		if m.cfg.BaseURL != "" {
			cc.HTTPOptions.BaseURL = m.cfg.BaseURL
		}

		client, err := genai.NewClient(ctx, cc)
		if err != nil {
			return nil, fmt.Errorf("failed to create genai client: %w", err)
		}
		return client, nil
	})
}

// Generate implements [Backend].
func (m *Gemini) Generate(ctx context.Context, req *Request) (*Response, error) {
	client, err := m.genAIClient(ctx)
	if err != nil {
		return nil, err
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemPrompt}},
		},
	}
	applyGeminiParams(config, req.Params)

	resp, err := client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), config)
	if err != nil {
		return nil, fmt.Errorf("gemini API error: %w", err)
	}

	out := &Response{
		Text:  resp.Text(),
		Model: resp.ModelVersion,
	}
	if out.Model == "" {
		out.Model = req.Model
	}
	if u := resp.UsageMetadata; u != nil {
		out.Usage = Usage{
			InputTokens:  int(u.PromptTokenCount),
			OutputTokens: int(u.CandidatesTokenCount),
			TotalTokens:  int(u.TotalTokenCount),
		}
	}
	return out, nil
}

func applyGeminiParams(config *genai.GenerateContentConfig, p Params) {
	if p.Temperature != nil {
		config.Temperature = genai.Ptr(float32(*p.Temperature))
	}
	if p.TopP != nil {
		config.TopP = genai.Ptr(float32(*p.TopP))
	}
	if p.TopK != nil {
		config.TopK = genai.Ptr(float32(*p.TopK))
	}
	if p.MaxTokens > 0 {
		config.MaxOutputTokens = int32(p.MaxTokens)
	}
	if len(p.Stop) > 0 {
		config.StopSequences = p.Stop
	}
	if p.Seed != nil {
		config.Seed = genai.Ptr(int32(*p.Seed))
	}
}
