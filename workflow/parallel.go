// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/mthnguyener/simple-agentic-workflow/model"
	"github.com/mthnguyener/simple-agentic-workflow/pkg/async"
	"github.com/mthnguyener/simple-agentic-workflow/prompt"
)

// Output pairs the prompt of one parallel branch with its result.
type Output struct {
	// Prompt is the branch prompt after its transforms ran.
	Prompt string `json:"prompt"`

	// Text is the model answer, empty when the call failed.
	Text string `json:"text"`

	// OK reports whether the model answered.
	OK bool `json:"ok"`
}

// Parallel sends query to every prompt concurrently, with at most workers calls in flight.
//
// Each branch receives "{prompt}\nInput: {query}". The outputs keep the order of prompts and
// are returned only once every branch finished. A failed branch never cancels its siblings.
// A workers value of zero or less means [DefaultParallelWorkers].
func (e *Engine) Parallel(ctx context.Context, query string, prompts []prompt.Details, workers int, params model.Params) ([]Output, error) {
	ctx, _ = e.begin(ctx, OperationParallelization)
	if workers <= 0 {
		workers = DefaultParallelWorkers
	}
	return e.parallel(ctx, e.syncRunner(), query, prompts, workers, params)
}

// ParallelAsync is like [Engine.Parallel] but does not block, and schedules every branch at once.
func (e *Engine) ParallelAsync(ctx context.Context, query string, prompts []prompt.Details, params model.Params) *async.Task[[]Output] {
	ctx, _ = e.begin(ctx, OperationParallelization)
	return async.CreateNamedTask(ctx, string(OperationParallelization), func(ctx context.Context) ([]Output, error) {
		return e.parallel(ctx, e.asyncRunner(), query, prompts, 0, params)
	})
}

func (e *Engine) parallel(ctx context.Context, r runner, query string, prompts []prompt.Details, workers int, params model.Params) ([]Output, error) {
	outputs := make([]Output, len(prompts))

	err := r.fanOut(ctx, len(prompts), workers, "parallel", func(ctx context.Context, i int) error {
		d, err := r.apply(ctx, prompts[i])
		if err != nil {
			return fmt.Errorf("parallel branch %d: %w", i+1, err)
		}
		outputs[i].Prompt = d.Prompt

		text, ok, err := r.call(ctx, d, withInput(d.Prompt, "Input", query), params, fmt.Sprintf("parallel branch %d", i+1))
		outputs[i].Text = text
		outputs[i].OK = ok
		return err
	})
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		if errors.Is(err, ErrNoResponse) {
			return outputs, err
		}
		return nil, err
	}

	return outputs, nil
}
