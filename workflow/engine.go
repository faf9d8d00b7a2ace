// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mthnguyener/simple-agentic-workflow/model"
	"github.com/mthnguyener/simple-agentic-workflow/pkg/async"
	"github.com/mthnguyener/simple-agentic-workflow/pkg/logging"
	"github.com/mthnguyener/simple-agentic-workflow/prompt"
)

// Caller sends a single request to a model.
//
// A nil response means the call failed; the failure has already been reported by the Caller.
// [*model.Dispatcher] implements Caller.
type Caller interface {
	Call(ctx context.Context, req *model.Request) *model.Response
	CallAsync(ctx context.Context, req *model.Request) *async.Task[*model.Response]
}

var _ Caller = (*model.Dispatcher)(nil)

// Engine runs the orchestration patterns over a [Caller].
//
// An Engine holds no per-invocation state and is safe for concurrent use.
type Engine struct {
	caller Caller
	cfg    Config
}

// New returns an [Engine] dispatching model calls through caller.
func New(caller Caller, opts ...Option) *Engine {
	var cfg Config
	for _, opt := range opts {
		cfg = opt.apply(cfg)
	}
	return &Engine{
		caller: caller,
		cfg:    cfg,
	}
}

// begin tags ctx with a logger carrying a fresh invocation id and the operation name.
func (e *Engine) begin(ctx context.Context, op Operation) (context.Context, *slog.Logger) {
	logger := e.cfg.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}
	logger = logger.With(
		slog.String("invocation_id", uuid.NewString()),
		slog.String("operation", string(op)),
	)
	return logging.NewContext(ctx, logger), logger
}

// runner carries the blocking or the asynchronous form of the pipeline steps.
type runner struct {
	e     *Engine
	async bool
}

func (e *Engine) syncRunner() runner  { return runner{e: e} }
func (e *Engine) asyncRunner() runner { return runner{e: e, async: true} }

// apply runs the prompt transforms of d.
func (r runner) apply(ctx context.Context, d prompt.Details) (prompt.Details, error) {
	if r.async {
		return prompt.ApplyAsync(ctx, d).Wait(ctx)
	}
	return prompt.Apply(ctx, d)
}

// call dispatches d with text as its prompt.
//
// An absent response yields "" and ok=false. It is an error only with fail-fast.
func (r runner) call(ctx context.Context, d prompt.Details, text string, params model.Params, step string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	req := d.WithPrompt(text).Request(params)

	var resp *model.Response
	if r.async {
		var err error
		resp, err = r.e.caller.CallAsync(ctx, req).Wait(ctx)
		if err != nil {
			return "", false, err
		}
	} else {
		resp = r.e.caller.Call(ctx, req)
	}

	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if resp == nil {
		if r.e.cfg.failFast {
			return "", false, fmt.Errorf("%w: %s", ErrNoResponse, step)
		}
		logging.FromContext(ctx).WarnContext(ctx, "model returned no response, continuing with empty text",
			slog.String("step", step),
			slog.String("provider", d.Provider.String()),
			slog.String("model", d.Model),
		)
		return "", false, nil
	}

	return resp.Text, true, nil
}

// fanOut runs fn for every index in [0, n) with at most limit running at once.
//
// Every fn runs to completion even when another one fails; the returned error
// joins all failures. A limit of zero or less means no bound.
func (r runner) fanOut(ctx context.Context, n, limit int, name string, fn func(ctx context.Context, i int) error) error {
	if r.async {
		var sem chan struct{}
		if limit > 0 {
			sem = make(chan struct{}, limit)
		}
		tasks := make([]*async.Task[struct{}], n)
		for i := range n {
			tasks[i] = async.CreateNamedTask(ctx, fmt.Sprintf("%s[%d]", name, i), func(ctx context.Context) (struct{}, error) {
				if sem != nil {
					select {
					case sem <- struct{}{}:
						defer func() { <-sem }()
					case <-ctx.Done():
						return struct{}{}, ctx.Err()
					}
				}
				return struct{}{}, fn(ctx, i)
			})
		}
		_, err := async.Gather(ctx, tasks...)
		return err
	}

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	errs := make([]error, n)
	for i := range n {
		g.Go(func() error {
			errs[i] = fn(ctx, i)
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}
