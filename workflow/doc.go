// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package workflow provides the prompt orchestration patterns built on top of a model [Caller].
//
// An [Engine] implements five patterns, each in a blocking and an asynchronous form:
//
//   - Chain: runs prompts in order, feeding each output into the next prompt as "Input:"
//   - Parallel: sends one query to several prompts concurrently and keeps their order
//   - Route: lets a selector model pick one route from a table, then answers with it
//   - Adaptive: generates, evaluates and regenerates until the evaluator accepts
//   - Symphonic: lets a composer split a task into typed subtasks handled by workers
//
// [Workflow] binds one [Operation] to an Engine and runs it from a single [Args] value.
//
// A model call that fails yields no response. By default the pattern continues with an
// empty text and logs a warning; an Engine built with [WithFailFast] stops with [ErrNoResponse].
//
// # Basic Usage
//
// Chaining two prompts:
//
//	engine := workflow.New(dispatcher)
//	text, err := engine.Chain(ctx, "Hello world", []prompt.Details{
//		{Prompt: "Summarize: ", Provider: model.ProviderOllama, Model: "llama3.2"},
//		{Prompt: "Translate to French: ", Provider: model.ProviderOllama, Model: "llama3.2"},
//	}, model.Params{})
//
// Running a workflow asynchronously:
//
//	wf := workflow.NewWorkflow(engine, workflow.OperationParallelization, nil)
//	res, err := wf.ExecuteAsync(ctx, args).Wait(ctx)
//
// Every invocation logs through the logger carried by its context, tagged with an
// invocation id and the operation name.
package workflow
