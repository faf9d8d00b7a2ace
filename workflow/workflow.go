// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package workflow

import (
	"context"
	"fmt"

	"github.com/mthnguyener/simple-agentic-workflow/model"
	"github.com/mthnguyener/simple-agentic-workflow/pkg/async"
	"github.com/mthnguyener/simple-agentic-workflow/prompt"
)

// Operation names an orchestration pattern.
type Operation string

// list of operations.
const (
	OperationChaining        Operation = "chaining"
	OperationParallelization Operation = "parallelization"
	OperationRouting         Operation = "routing"
	OperationAdaptive        Operation = "adaptive"
	OperationSymphonic       Operation = "symphonic"
	OperationCustom          Operation = "custom"
)

// Operations lists every [Operation] a [Workflow] accepts.
var Operations = []Operation{
	OperationChaining,
	OperationParallelization,
	OperationRouting,
	OperationAdaptive,
	OperationSymphonic,
	OperationCustom,
}

// Args carries the input of every operation. Each operation reads only the fields it needs.
type Args struct {
	// Input is the chain input or the parallel query.
	Input string `json:"input,omitempty" yaml:"input,omitempty"`

	// Steps are the chain steps or the parallel prompts.
	Steps []prompt.Details `json:"steps,omitempty" yaml:"steps,omitempty"`

	// Workers bounds the synchronous parallel pool.
	Workers int `json:"workers,omitempty" yaml:"workers,omitempty"`

	Params model.Params `json:"params" yaml:"params"`

	Route     RouteRequest     `json:"route" yaml:"route"`
	Adaptive  AdaptiveRequest  `json:"adaptive" yaml:"adaptive"`
	Symphonic SymphonicRequest `json:"symphonic" yaml:"symphonic"`
}

// CustomFunc runs a caller-defined pattern on top of an [Engine].
type CustomFunc func(ctx context.Context, e *Engine, args Args) (any, error)

// Result is the outcome of [Workflow.Execute]. Only the fields of the executed operation are set.
type Result struct {
	Operation Operation `json:"operation"`

	// Text is the final text of chaining, routing and adaptive runs.
	Text string `json:"text,omitempty"`

	Outputs   []Output         `json:"outputs,omitempty"`
	Route     *RouteResult     `json:"route,omitempty"`
	Adaptive  *AdaptiveResult  `json:"adaptive,omitempty"`
	Symphonic *SymphonicResult `json:"symphonic,omitempty"`
	Custom    any              `json:"custom,omitempty"`
}

// Workflow binds an [Operation] to an [Engine].
type Workflow struct {
	engine    *Engine
	operation Operation
	custom    CustomFunc
}

// NewWorkflow returns a [Workflow] running op on engine. custom is used by [OperationCustom] only.
func NewWorkflow(engine *Engine, op Operation, custom CustomFunc) *Workflow {
	return &Workflow{
		engine:    engine,
		operation: op,
		custom:    custom,
	}
}

// Operation returns the operation of w.
func (w *Workflow) Operation() Operation { return w.operation }

// Execute runs the operation of w to completion.
func (w *Workflow) Execute(ctx context.Context, args Args) (*Result, error) {
	if err := w.validate(); err != nil {
		return nil, err
	}

	e := w.engine
	res := &Result{Operation: w.operation}
	var err error
	switch w.operation {
	case OperationChaining:
		res.Text, err = e.Chain(ctx, args.Input, args.Steps, args.Params)
	case OperationParallelization:
		res.Outputs, err = e.Parallel(ctx, args.Input, args.Steps, args.Workers, args.Params)
	case OperationRouting:
		res.Route, err = e.Route(ctx, args.route())
		if res.Route != nil {
			res.Text = res.Route.Text
		}
	case OperationAdaptive:
		res.Adaptive, err = e.Adaptive(ctx, args.adaptive())
		if res.Adaptive != nil {
			res.Text = res.Adaptive.Result
		}
	case OperationSymphonic:
		res.Symphonic, err = e.Symphonic(ctx, args.symphonic())
	case OperationCustom:
		ctx, _ = e.begin(ctx, OperationCustom)
		res.Custom, err = w.custom(ctx, e, args)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ExecuteAsync runs the operation of w with the asynchronous form of each pattern.
func (w *Workflow) ExecuteAsync(ctx context.Context, args Args) *async.Task[*Result] {
	if err := w.validate(); err != nil {
		return async.CreateTask(ctx, func(context.Context) (*Result, error) { return nil, err })
	}

	e := w.engine
	return async.CreateNamedTask(ctx, "workflow."+string(w.operation), func(ctx context.Context) (*Result, error) {
		res := &Result{Operation: w.operation}
		var err error
		switch w.operation {
		case OperationChaining:
			res.Text, err = e.ChainAsync(ctx, args.Input, args.Steps, args.Params).Wait(ctx)
		case OperationParallelization:
			res.Outputs, err = e.ParallelAsync(ctx, args.Input, args.Steps, args.Params).Wait(ctx)
		case OperationRouting:
			res.Route, err = e.RouteAsync(ctx, args.route()).Wait(ctx)
			if res.Route != nil {
				res.Text = res.Route.Text
			}
		case OperationAdaptive:
			res.Adaptive, err = e.AdaptiveAsync(ctx, args.adaptive()).Wait(ctx)
			if res.Adaptive != nil {
				res.Text = res.Adaptive.Result
			}
		case OperationSymphonic:
			res.Symphonic, err = e.SymphonicAsync(ctx, args.symphonic()).Wait(ctx)
		case OperationCustom:
			ctx, _ = e.begin(ctx, OperationCustom)
			res.Custom, err = w.custom(ctx, e, args)
		}
		if err != nil {
			return nil, err
		}
		return res, nil
	})
}

func (w *Workflow) validate() error {
	if w.engine == nil {
		return fmt.Errorf("%w: nil engine", ErrInvalidWorkflow)
	}
	switch w.operation {
	case OperationChaining, OperationParallelization, OperationRouting, OperationAdaptive, OperationSymphonic:
		return nil
	case OperationCustom:
		if w.custom == nil {
			return fmt.Errorf("%w: custom operation without a function", ErrInvalidWorkflow)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOperation, w.operation)
	}
}

// withParams returns own, or shared when own sets nothing.
func withParams(own, shared model.Params) model.Params {
	if len(own.Set()) > 0 {
		return own
	}
	return shared
}

func (a Args) route() RouteRequest {
	r := a.Route
	r.Params = withParams(r.Params, a.Params)
	return r
}

func (a Args) adaptive() AdaptiveRequest {
	r := a.Adaptive
	r.Params = withParams(r.Params, a.Params)
	return r
}

func (a Args) symphonic() SymphonicRequest {
	r := a.Symphonic
	r.Params = withParams(r.Params, a.Params)
	return r
}
