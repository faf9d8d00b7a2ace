// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package workflow_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mthnguyener/simple-agentic-workflow/model"
	"github.com/mthnguyener/simple-agentic-workflow/prompt"
	"github.com/mthnguyener/simple-agentic-workflow/workflow"
)

func TestWorkflowExecute(t *testing.T) {
	t.Parallel()

	replies := map[string][]*model.Response{
		"summarizer": {text("A greeting.")},
		"translator": {text("Une salutation.")},
		"selector":   {text("<selection>billing</selection>")},
		"billing":    {text("Refund issued.")},
		"generator":  {generation("a", "answer 1")},
		"evaluator":  {evaluation("PASS", "")},
		"composer":   {text("<analysis>none</analysis>")},
	}

	tests := []struct {
		name string
		op   workflow.Operation
		args workflow.Args
		want *workflow.Result
	}{
		{
			name: "chaining",
			op:   workflow.OperationChaining,
			args: workflow.Args{Input: "Hello world", Steps: chainSteps},
			want: &workflow.Result{Operation: workflow.OperationChaining, Text: "Une salutation."},
		},
		{
			name: "parallelization",
			op:   workflow.OperationParallelization,
			args: workflow.Args{Input: "q", Steps: chainSteps[:1]},
			want: &workflow.Result{
				Operation: workflow.OperationParallelization,
				Outputs:   []workflow.Output{{Prompt: "Summarize: ", Text: "A greeting.", OK: true}},
			},
		},
		{
			name: "routing",
			op:   workflow.OperationRouting,
			args: workflow.Args{Route: workflow.RouteRequest{
				Query:  prompt.Details{Prompt: "charged twice", Model: "selector"},
				Routes: map[string]prompt.Details{"billing": {Prompt: "Billing.", Model: "billing"}},
			}},
			want: &workflow.Result{
				Operation: workflow.OperationRouting,
				Text:      "Refund issued.",
				Route:     &workflow.RouteResult{Selection: "billing", Text: "Refund issued."},
			},
		},
		{
			name: "adaptive",
			op:   workflow.OperationAdaptive,
			args: workflow.Args{Adaptive: adaptiveRequest(nil)},
			want: &workflow.Result{
				Operation: workflow.OperationAdaptive,
				Text:      "answer 1",
				Adaptive: &workflow.AdaptiveResult{
					Result:         "answer 1",
					ChainOfThought: []workflow.Thought{{Thoughts: "a", Result: "answer 1"}},
					Accepted:       true,
				},
			},
		},
		{
			name: "symphonic",
			op:   workflow.OperationSymphonic,
			args: workflow.Args{Symphonic: workflow.SymphonicRequest{
				Task:     "t",
				Composer: prompt.Details{Model: "composer"},
			}},
			want: &workflow.Result{
				Operation: workflow.OperationSymphonic,
				Symphonic: &workflow.SymphonicResult{Analysis: "none"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for _, mode := range []string{"sync", "async"} {
				e := workflow.New(&fakeCaller{reply: newSequence(replies).reply})
				wf := workflow.NewWorkflow(e, tt.op, nil)

				var (
					got *workflow.Result
					err error
				)
				if mode == "sync" {
					got, err = wf.Execute(t.Context(), tt.args)
				} else {
					got, err = wf.ExecuteAsync(t.Context(), tt.args).Wait(t.Context())
				}
				if err != nil {
					t.Fatalf("%s: Execute() error = %v", mode, err)
				}
				if diff := cmp.Diff(tt.want, got); diff != "" {
					t.Errorf("%s: Execute() mismatch (-want +got):\n%s", mode, diff)
				}
			}
		})
	}
}

func TestWorkflowSharedParams(t *testing.T) {
	t.Parallel()

	fake := &fakeCaller{reply: newSequence(map[string][]*model.Response{
		"selector": {text("<selection>billing</selection>")},
		"billing":  {text("ok")},
	}).reply}
	wf := workflow.NewWorkflow(workflow.New(fake), workflow.OperationRouting, nil)

	_, err := wf.Execute(t.Context(), workflow.Args{
		Params: model.Params{Temperature: model.Float(0.2)},
		Route: workflow.RouteRequest{
			Query:  prompt.Details{Prompt: "q", Model: "selector"},
			Routes: map[string]prompt.Details{"billing": {Model: "billing"}},
		},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, c := range fake.Calls() {
		if c.Params.Temperature == nil || *c.Params.Temperature != 0.2 {
			t.Errorf("request to %s has params %+v, want the shared temperature", c.Model, c.Params)
		}
	}
}

func TestWorkflowCustom(t *testing.T) {
	t.Parallel()

	fake := &fakeCaller{reply: func(*model.Request) *model.Response { return text("echo") }}
	custom := func(ctx context.Context, e *workflow.Engine, args workflow.Args) (any, error) {
		first, err := e.Chain(ctx, args.Input, args.Steps, args.Params)
		if err != nil {
			return nil, err
		}
		return []string{args.Input, first}, nil
	}
	wf := workflow.NewWorkflow(workflow.New(fake), workflow.OperationCustom, custom)

	got, err := wf.Execute(t.Context(), workflow.Args{Input: "in", Steps: chainSteps[:1]})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if diff := cmp.Diff([]string{"in", "echo"}, got.Custom); diff != "" {
		t.Errorf("Execute() custom mismatch (-want +got):\n%s", diff)
	}
}

func TestWorkflowInvalid(t *testing.T) {
	t.Parallel()

	e := workflow.New(&fakeCaller{reply: func(*model.Request) *model.Response { return text("") }})
	tests := []struct {
		name    string
		wf      *workflow.Workflow
		wantErr error
	}{
		{
			name:    "unknown operation",
			wf:      workflow.NewWorkflow(e, workflow.Operation("orchestral"), nil),
			wantErr: workflow.ErrUnknownOperation,
		},
		{
			name:    "custom without function",
			wf:      workflow.NewWorkflow(e, workflow.OperationCustom, nil),
			wantErr: workflow.ErrInvalidWorkflow,
		},
		{
			name:    "nil engine",
			wf:      workflow.NewWorkflow(nil, workflow.OperationChaining, nil),
			wantErr: workflow.ErrInvalidWorkflow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := tt.wf.Execute(t.Context(), workflow.Args{}); !errors.Is(err, tt.wantErr) {
				t.Errorf("Execute() error = %v, want %v", err, tt.wantErr)
			}
			if _, err := tt.wf.ExecuteAsync(t.Context(), workflow.Args{}).Wait(t.Context()); !errors.Is(err, tt.wantErr) {
				t.Errorf("ExecuteAsync() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
