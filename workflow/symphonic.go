// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"maps"

	"github.com/mthnguyener/simple-agentic-workflow/model"
	"github.com/mthnguyener/simple-agentic-workflow/parser"
	"github.com/mthnguyener/simple-agentic-workflow/pkg/async"
	"github.com/mthnguyener/simple-agentic-workflow/pkg/logging"
	"github.com/mthnguyener/simple-agentic-workflow/prompt"
)

// Subtask declares a kind of work the composer may hand out.
type Subtask struct {
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`

	// Functions transform the worker prompt of tasks of this type.
	Functions []prompt.Transform `json:"-" yaml:"-"`
}

// SymphonicRequest configures one [Engine.Symphonic] call.
type SymphonicRequest struct {
	// Task is the main task.
	Task string `json:"task" yaml:"task"`

	// Composer analyzes the task and splits it into subtasks.
	// Its Prompt is the composer role prompt and may reference the task variables.
	Composer prompt.Details `json:"composer" yaml:"composer"`

	// Worker completes one subtask. Its Functions are ignored; per-type
	// functions come from Subtasks.
	Worker prompt.Details `json:"worker" yaml:"worker"`

	// Subtasks are the declared subtask types, shown to the composer in order.
	Subtasks []Subtask `json:"subtasks" yaml:"subtasks"`

	Params model.Params `json:"params" yaml:"params"`
}

// WorkerResult is the answer of one worker.
type WorkerResult struct {
	Type        string `json:"type"`
	Description string `json:"description"`

	// Prompt is the worker prompt before its transforms ran.
	Prompt string `json:"prompt"`
	Result string `json:"result"`
}

// SymphonicResult is the outcome of [Engine.Symphonic].
type SymphonicResult struct {
	Analysis string         `json:"analysis"`
	Results  []WorkerResult `json:"worker_results"`
}

// Symphonic lets a composer model split req.Task into typed subtasks and hands each
// one to a worker model.
//
// Workers run in task order unless the engine was built with [WithWorkerConcurrency].
// A composer answer without tasks yields no worker results.
func (e *Engine) Symphonic(ctx context.Context, req SymphonicRequest) (*SymphonicResult, error) {
	ctx, _ = e.begin(ctx, OperationSymphonic)
	return e.symphonic(ctx, e.syncRunner(), req)
}

// SymphonicAsync is like [Engine.Symphonic] but does not block.
func (e *Engine) SymphonicAsync(ctx context.Context, req SymphonicRequest) *async.Task[*SymphonicResult] {
	ctx, _ = e.begin(ctx, OperationSymphonic)
	return async.CreateNamedTask(ctx, string(OperationSymphonic), func(ctx context.Context) (*SymphonicResult, error) {
		return e.symphonic(ctx, e.asyncRunner(), req)
	})
}

func (e *Engine) symphonic(ctx context.Context, r runner, req SymphonicRequest) (*SymphonicResult, error) {
	declared := make([]parser.Task, len(req.Subtasks))
	functions := make(map[string][]prompt.Transform, len(req.Subtasks))
	for i, s := range req.Subtasks {
		declared[i] = parser.Task{Type: s.Type, Description: s.Description}
		functions[s.Type] = s.Functions
	}
	vars := map[string]string{
		prompt.VarTask:     req.Task,
		prompt.VarSubtasks: parser.FormatTasks(declared),
	}

	// COMPOSE
	composerRole, err := prompt.Format(req.Composer.Prompt, vars)
	if err != nil {
		return nil, fmt.Errorf("symphonic composer: %w", err)
	}
	vars[prompt.VarComposerPrompt] = composerRole

	composerText, err := prompt.Format(prompt.Composer, vars)
	if err != nil {
		return nil, fmt.Errorf("symphonic composer: %w", err)
	}
	cd, err := r.apply(ctx, req.Composer.WithPrompt(composerText))
	if err != nil {
		return nil, fmt.Errorf("symphonic composer: %w", err)
	}
	resp, _, err := r.call(ctx, cd, cd.Prompt, req.Params, "symphonic composer")
	if err != nil {
		return nil, err
	}

	res := &SymphonicResult{
		Analysis: parser.ExtractTag(resp, "analysis"),
	}
	tasks := parser.ParseTasks(parser.ExtractTag(resp, "tasks"))
	logger := logging.FromContext(ctx)
	logger.DebugContext(ctx, "symphonic composition", slog.Int("tasks", len(tasks)))
	if len(tasks) == 0 {
		return res, nil
	}

	// PERFORM
	res.Results = make([]WorkerResult, len(tasks))
	work := func(ctx context.Context, i int) error {
		t := tasks[i]
		wv := maps.Clone(vars)
		wv[prompt.VarOriginalTask] = req.Task
		wv[prompt.VarTaskType] = t.Type
		wv[prompt.VarTaskDescription] = t.Description

		role, err := prompt.Format(req.Worker.Prompt, wv)
		if err != nil {
			return fmt.Errorf("symphonic worker %d: %w", i+1, err)
		}
		wv[prompt.VarWorkerPrompt] = role
		text, err := prompt.Format(prompt.Worker, wv)
		if err != nil {
			return fmt.Errorf("symphonic worker %d: %w", i+1, err)
		}

		wd := req.Worker.WithPrompt(text)
		wd.Functions = functions[t.Type]
		wd, err = r.apply(ctx, wd)
		if err != nil {
			return fmt.Errorf("symphonic worker %d: %w", i+1, err)
		}

		logger.DebugContext(ctx, "symphonic worker", slog.Int("task", i+1), slog.String("type", t.Type))
		out, _, err := r.call(ctx, wd, wd.Prompt, req.Params, fmt.Sprintf("symphonic worker %d (%s)", i+1, t.Type))
		if err != nil {
			return err
		}
		result := parser.ExtractTag(out, "response")
		if result == "" {
			result = out
		}

		res.Results[i] = WorkerResult{
			Type:        t.Type,
			Description: t.Description,
			Prompt:      text,
			Result:      result,
		}
		return nil
	}

	if limit := e.cfg.workerConcurrency; limit > 1 {
		if err := r.fanOut(ctx, len(tasks), limit, "symphonic worker", work); err != nil {
			return nil, err
		}
		return res, nil
	}
	for i := range tasks {
		if err := work(ctx, i); err != nil {
			return nil, err
		}
	}

	// DONE
	return res, nil
}
