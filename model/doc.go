// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package model provides a provider-agnostic call adapter over several LLM providers.
//
// A [Registry] maps each [Provider] to the [Backend] that serves it. The
// [Dispatcher] resolves the backend of a [Request], validates its [Params],
// bounds the call with a timeout and traces it with OpenTelemetry.
//
// # Supported Providers
//
//   - Google Gemini via google.golang.org/genai ([NewGemini])
//   - OpenAI and Groq via langchaingo's OpenAI client ([NewOpenAI], [NewGroq])
//   - Ollama via the Ollama API client, pulling missing models first ([NewOllama])
//   - Anthropic Claude via anthropic-sdk-go ([NewClaude])
//
// Each backend builds its SDK client lazily on first use. API keys come from
// the configured value, then the provider environment variable, then a docker
// secret under /run/secrets.
//
// # Basic Usage
//
//	registry, err := model.NewRegistry(
//		model.NewGemini(model.BackendConfig{}),
//		model.NewOllama(model.BackendConfig{BaseURL: "http://localhost:11434"}),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	d := model.NewDispatcher(registry, model.WithTimeout(time.Minute))
//	resp := d.Call(ctx, &model.Request{
//		Provider:     model.ProviderGoogle,
//		Model:        "gemini-2.0-flash",
//		Prompt:       "What's 2+2?",
//		SystemPrompt: "You are a mathematician.",
//		Params:       model.Params{Temperature: model.Float(0.7), Seed: model.Int(42)},
//	})
//	if resp == nil {
//		// the failure was logged
//	}
//	fmt.Println(resp.GetText())
//
// # Error Handling
//
// [Dispatcher.Call] never returns an error: provider failures, rejected
// parameters and timeouts are logged and reported as a nil [*Response].
// [Dispatcher.Generate] returns the same failures as errors for callers that
// need them.
package model
