// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"context"
	"fmt"

	"github.com/mthnguyener/simple-agentic-workflow/model"
	"github.com/mthnguyener/simple-agentic-workflow/pkg/async"
)

// Details describes one model call before dispatch.
//
// Details values are treated as immutable: [Apply] and [ApplyAsync] return a new value.
type Details struct {
	// Prompt is the user prompt text.
	Prompt string `json:"prompt" yaml:"prompt"`

	// Model is the provider-specific model identifier.
	Model string `json:"model" yaml:"model"`

	// Provider selects the backend that serves Model.
	Provider model.Provider `json:"provider" yaml:"provider"`

	// SystemPrompt is sent as system instruction. Empty means the dispatcher default.
	SystemPrompt string `json:"system_prompt,omitempty" yaml:"system_prompt,omitempty"`

	// Functions are applied to Prompt in order before dispatch.
	Functions []Transform `json:"-" yaml:"-"`
}

// WithPrompt returns a copy of d with Prompt replaced by text.
func (d Details) WithPrompt(text string) Details {
	d.Prompt = text
	return d
}

// Request builds the [model.Request] that dispatches d with params.
func (d Details) Request(params model.Params) *model.Request {
	return &model.Request{
		Provider:     d.Provider,
		Model:        d.Model,
		Prompt:       d.Prompt,
		SystemPrompt: d.SystemPrompt,
		Params:       params,
	}
}

// Transform rewrites prompt text.
type Transform interface {
	Apply(ctx context.Context, text string) (string, error)
}

// TransformFunc adapts a plain string function to a [Transform].
type TransformFunc func(string) string

var _ Transform = TransformFunc(nil)

// Apply implements [Transform].
func (f TransformFunc) Apply(_ context.Context, text string) (string, error) {
	return f(text), nil
}

// AsyncTransform rewrites prompt text without blocking the caller.
type AsyncTransform interface {
	ApplyAsync(ctx context.Context, text string) *async.Task[string]
}

type asyncTransform struct{ Transform }

var _ AsyncTransform = asyncTransform{}

// ApplyAsync implements [AsyncTransform].
func (t asyncTransform) ApplyAsync(ctx context.Context, text string) *async.Task[string] {
	return async.CreateTask(ctx, func(ctx context.Context) (string, error) {
		return t.Transform.Apply(ctx, text)
	})
}

// Async lifts t into an [AsyncTransform]. A t that already implements
// AsyncTransform is returned as is.
func Async(t Transform) AsyncTransform {
	if at, ok := t.(AsyncTransform); ok {
		return at
	}
	return asyncTransform{t}
}

// Apply reduces d.Functions over d.Prompt in order and returns the updated details.
//
// All other fields are carried over unchanged.
func Apply(ctx context.Context, d Details) (Details, error) {
	text := d.Prompt
	for i, fn := range d.Functions {
		if err := ctx.Err(); err != nil {
			return d, err
		}
		out, err := fn.Apply(ctx, text)
		if err != nil {
			return d, fmt.Errorf("apply prompt function %d: %w", i, err)
		}
		text = out
	}
	return d.WithPrompt(text), nil
}

// ApplyAsync is like [Apply] but awaits each transform through its asynchronous form.
//
// Transforms still run one after another; each receives the output of the previous one.
func ApplyAsync(ctx context.Context, d Details) *async.Task[Details] {
	return async.CreateNamedTask(ctx, "prompt.apply", func(ctx context.Context) (Details, error) {
		text := d.Prompt
		for i, fn := range d.Functions {
			out, err := Async(fn).ApplyAsync(ctx, text).Wait(ctx)
			if err != nil {
				return d, fmt.Errorf("apply prompt function %d: %w", i, err)
			}
			text = out
		}
		return d.WithPrompt(text), nil
	})
}
