// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package prompt prepares prompt text before it is dispatched to a model.
//
// A [Details] value names the provider, model, system prompt and prompt text
// of one call, together with an ordered list of [Transform] functions. [Apply]
// runs those functions over the prompt text; [ApplyAsync] does the same through
// the asynchronous [AsyncTransform] form.
//
//	d := prompt.Details{
//		Prompt:   "Summarize:",
//		Model:    "gemini-2.0-flash",
//		Provider: model.ProviderGoogle,
//		Functions: []prompt.Transform{
//			prompt.TransformFunc(strings.TrimSpace),
//		},
//	}
//	d, err := prompt.Apply(ctx, d)
//
// The package also carries the templates used by the workflow patterns and
// [Format], which fills their {name} placeholders.
package prompt
