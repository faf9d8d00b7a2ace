// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mthnguyener/simple-agentic-workflow/internal/pool"
	"github.com/mthnguyener/simple-agentic-workflow/model"
	"github.com/mthnguyener/simple-agentic-workflow/pkg/async"
	"github.com/mthnguyener/simple-agentic-workflow/pkg/logging"
	"github.com/mthnguyener/simple-agentic-workflow/prompt"
)

// Chain feeds input through steps in order and returns the output of the last step.
//
// Each step receives "{step prompt}\nInput: {previous output}". With no steps the input
// is returned unchanged.
func (e *Engine) Chain(ctx context.Context, input string, steps []prompt.Details, params model.Params) (string, error) {
	ctx, _ = e.begin(ctx, OperationChaining)
	return e.chain(ctx, e.syncRunner(), input, steps, params)
}

// ChainAsync is like [Engine.Chain] but does not block.
func (e *Engine) ChainAsync(ctx context.Context, input string, steps []prompt.Details, params model.Params) *async.Task[string] {
	ctx, _ = e.begin(ctx, OperationChaining)
	return async.CreateNamedTask(ctx, string(OperationChaining), func(ctx context.Context) (string, error) {
		return e.chain(ctx, e.asyncRunner(), input, steps, params)
	})
}

func (e *Engine) chain(ctx context.Context, r runner, input string, steps []prompt.Details, params model.Params) (string, error) {
	result := input
	for i, step := range steps {
		d, err := r.apply(ctx, step)
		if err != nil {
			return "", fmt.Errorf("chain step %d: %w", i+1, err)
		}

		name := fmt.Sprintf("chain step %d", i+1)
		logging.FromContext(ctx).DebugContext(ctx, "chain step",
			slog.Int("step", i+1),
			slog.String("provider", d.Provider.String()),
			slog.String("model", d.Model),
		)

		result, _, err = r.call(ctx, d, withInput(d.Prompt, "Input", result), params, name)
		if err != nil {
			return "", err
		}
	}
	return result, nil
}

// withInput appends a "{label}: {value}" line to text.
func withInput(text, label, value string) string {
	return pool.Sprint(text, "\n", label, ": ", value)
}
