// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package async provides awaitable tasks, the non-blocking counterpart of the blocking workflow API.
//
// A [Task] runs a function on its own goroutine and can be awaited any number of times:
//
//	task := async.CreateTask(ctx, func(ctx context.Context) (string, error) {
//		return callModel(ctx, prompt)
//	})
//	// ... do other work
//	text, err := task.Wait(ctx)
//
// [Gather] joins several tasks with a full barrier and keeps results in argument order:
//
//	results, err := async.Gather(ctx, t1, t2, t3)
//
// [WaitFor] bounds a function call with a timeout:
//
//	text, err := async.WaitFor(ctx, 30*time.Second, call)
package async
