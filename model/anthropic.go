// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// ClaudeDefaultMaxTokens is the completion budget sent when a request sets none.
// The messages API requires one.
const ClaudeDefaultMaxTokens = 1024

// Claude is the [Backend] for Anthropic Claude models.
type Claude struct {
	cfg    BackendConfig
	client lazy[*anthropic.Client]
}

var _ Backend = (*Claude)(nil)

var claudeParams = newSupportSet(
	ParamTemperature,
	ParamTopP,
	ParamTopK,
	ParamMaxTokens,
	ParamStop,
)

// NewClaude returns a Claude backend. The API key defaults to [EnvAnthropicAPIKey].
func NewClaude(cfg BackendConfig) *Claude {
	cfg.Credentials = cfg.Credentials.withDefaults(EnvAnthropicAPIKey, "anthropic_api_key")
	return &Claude{cfg: cfg}
}

// Provider implements [Backend].
func (m *Claude) Provider() Provider { return ProviderAnthropic }

// Supports implements [Backend].
func (m *Claude) Supports(p Param) bool { return claudeParams.Supports(p) }

func (m *Claude) anthropicClient() (*anthropic.Client, error) {
	return m.client.get(func() (*anthropic.Client, error) {
		apiKey, err := m.cfg.Credentials.Resolve()
		if err != nil {
			return nil, err
		}

		opts := []option.RequestOption{
			option.WithAPIKey(apiKey),
		}
		if m.cfg.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(m.cfg.BaseURL))
		}
		if m.cfg.HTTPClient != nil {
			opts = append(opts, option.WithHTTPClient(m.cfg.HTTPClient))
		}

		client := anthropic.NewClient(opts...)
		return &client, nil
	})
}

// Generate implements [Backend].
func (m *Claude) Generate(ctx context.Context, req *Request) (*Response, error) {
	client, err := m.anthropicClient()
	if err != nil {
		return nil, err
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: ClaudeDefaultMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: req.SystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}

	p := req.Params
	if p.MaxTokens > 0 {
		params.MaxTokens = int64(p.MaxTokens)
	}
	if p.Temperature != nil {
		params.Temperature = anthropic.Float(*p.Temperature)
	}
	if p.TopP != nil {
		params.TopP = anthropic.Float(*p.TopP)
	}
	if p.TopK != nil {
		params.TopK = anthropic.Int(int64(*p.TopK))
	}
	if len(p.Stop) > 0 {
		params.StopSequences = p.Stop
	}

	message, err := client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("claude API error: %w", err)
	}

	var text strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	return &Response{
		Text:  text.String(),
		Model: string(message.Model),
		Usage: Usage{
			InputTokens:  int(message.Usage.InputTokens),
			OutputTokens: int(message.Usage.OutputTokens),
			TotalTokens:  int(message.Usage.InputTokens + message.Usage.OutputTokens),
		},
	}, nil
}
