// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// GroqBaseURL is the OpenAI compatible endpoint of Groq.
const GroqBaseURL = "https://api.groq.com/openai/v1"

// OpenAI is the [Backend] for the OpenAI chat completions API and for
// OpenAI compatible providers such as Groq.
type OpenAI struct {
	provider Provider
	cfg      BackendConfig
	client   lazy[*openai.LLM]
}

var _ Backend = (*OpenAI)(nil)

var openAIParams = newSupportSet(
	ParamTemperature,
	ParamTopP,
	ParamMaxTokens,
	ParamStop,
	ParamSeed,
)

// NewOpenAI returns an OpenAI backend. The API key defaults to [EnvOpenAIAPIKey].
func NewOpenAI(cfg BackendConfig) *OpenAI {
	cfg.Credentials = cfg.Credentials.withDefaults(EnvOpenAIAPIKey, "openai_api_key")
	return &OpenAI{provider: ProviderOpenAI, cfg: cfg}
}

// NewGroq returns a Groq backend. The API key defaults to [EnvGroqAPIKey] and
// the endpoint to [GroqBaseURL].
func NewGroq(cfg BackendConfig) *OpenAI {
	cfg.Credentials = cfg.Credentials.withDefaults(EnvGroqAPIKey, "groq_api_key")
	if cfg.BaseURL == "" {
		cfg.BaseURL = GroqBaseURL
	}
	return &OpenAI{provider: ProviderGroq, cfg: cfg}
}

// Provider implements [Backend].
func (m *OpenAI) Provider() Provider { return m.provider }

// Supports implements [Backend].
func (m *OpenAI) Supports(p Param) bool { return openAIParams.Supports(p) }

func (m *OpenAI) llm() (*openai.LLM, error) {
	return m.client.get(func() (*openai.LLM, error) {
		token, err := m.cfg.Credentials.Resolve()
		if err != nil {
			return nil, err
		}

		opts := []openai.Option{
			openai.WithToken(token),
		}
		if m.cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(m.cfg.BaseURL))
		}
		if m.cfg.HTTPClient != nil {
			opts = append(opts, openai.WithHTTPClient(m.cfg.HTTPClient))
		}

		client, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s client: %w", m.provider, err)
		}
		return client, nil
	})
}

// Generate implements [Backend].
func (m *OpenAI) Generate(ctx context.Context, req *Request) (*Response, error) {
	client, err := m.llm()
	if err != nil {
		return nil, err
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, req.SystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, req.Prompt),
	}

	resp, err := client.GenerateContent(ctx, messages, openAICallOptions(req)...)
	if err != nil {
		return nil, fmt.Errorf("%s API error: %w", m.provider, err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	choice := resp.Choices[0]
	return &Response{
		Text:  choice.Content,
		Model: req.Model,
		Usage: Usage{
			InputTokens:  intInfo(choice.GenerationInfo, "PromptTokens"),
			OutputTokens: intInfo(choice.GenerationInfo, "CompletionTokens"),
			TotalTokens:  intInfo(choice.GenerationInfo, "TotalTokens"),
		},
	}, nil
}

func openAICallOptions(req *Request) []llms.CallOption {
	opts := []llms.CallOption{
		llms.WithModel(req.Model),
	}

	p := req.Params
	if p.Temperature != nil {
		opts = append(opts, llms.WithTemperature(*p.Temperature))
	}
	if p.TopP != nil {
		opts = append(opts, llms.WithTopP(*p.TopP))
	}
	if p.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(p.MaxTokens))
	}
	if len(p.Stop) > 0 {
		opts = append(opts, llms.WithStopWords(p.Stop))
	}
	if p.Seed != nil {
		opts = append(opts, llms.WithSeed(*p.Seed))
	}

	return opts
}

func intInfo(info map[string]any, key string) int {
	switch v := info[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
