// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Provider identifies an LLM provider backend.
type Provider string

const (
	// ProviderGoogle is Google Gemini through the Gemini API.
	ProviderGoogle Provider = "google"

	// ProviderGroq is Groq through its OpenAI compatible API.
	ProviderGroq Provider = "groq"

	// ProviderOllama is a local or remote Ollama server.
	ProviderOllama Provider = "ollama"

	// ProviderOpenAI is the OpenAI chat completions API.
	ProviderOpenAI Provider = "openai"

	// ProviderAnthropic is the Anthropic messages API.
	ProviderAnthropic Provider = "anthropic"
)

// Providers lists every known provider.
var Providers = []Provider{
	ProviderGoogle,
	ProviderGroq,
	ProviderOllama,
	ProviderOpenAI,
	ProviderAnthropic,
}

// String implements [fmt.Stringer].
func (p Provider) String() string { return string(p) }

// ParseProvider parses s case-insensitively into a known [Provider].
func ParseProvider(s string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Providers {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProvider, s)
}

// DefaultSystemPrompt is sent when a request carries no system prompt.
const DefaultSystemPrompt = "You are a helpful assistant."

var (
	// ErrUnknownProvider is returned when parsing an unknown provider name.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrProviderNotRegistered is returned when no backend is registered for a provider.
	ErrProviderNotRegistered = errors.New("provider not registered")

	// ErrDuplicateProvider is returned when two backends serve the same provider.
	ErrDuplicateProvider = errors.New("duplicate provider")

	// ErrUnsupportedParam is returned when a request sets a parameter its backend does not accept.
	ErrUnsupportedParam = errors.New("unsupported parameter")

	// ErrInvalidParam is returned for parameter values outside their domain.
	ErrInvalidParam = errors.New("invalid parameter")

	// ErrEmptyResponse is returned by a backend whose provider answered without text.
	ErrEmptyResponse = errors.New("empty response")
)

// Request is a single prompt sent to one provider.
type Request struct {
	Provider     Provider
	Model        string
	Prompt       string
	SystemPrompt string
	Params       Params
}

// Usage reports the token accounting of a response, when the provider returns it.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Response is the text answer of a provider.
//
// A nil *Response means the call failed; see [Dispatcher.Call].
type Response struct {
	Text  string `json:"text"`
	Model string `json:"model,omitempty"`
	Usage Usage  `json:"usage"`
}

// GetText returns the response text, or "" for a nil response.
func (r *Response) GetText() string {
	if r == nil {
		return ""
	}
	return r.Text
}

// Backend generates text for one provider.
//
// Implementations must be safe for concurrent use.
type Backend interface {
	// Provider returns the provider served by the backend.
	Provider() Provider

	// Generate sends req and returns the provider answer.
	Generate(ctx context.Context, req *Request) (*Response, error)

	// Supports reports whether the backend forwards p.
	Supports(p Param) bool
}
