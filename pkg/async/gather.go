// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package async

import (
	"context"
	"errors"
	"time"
)

// TimeoutError is returned by [WaitFor] when the deadline elapses first.
type TimeoutError struct {
	Timeout time.Duration
}

// Error implements the error interface for TimeoutError.
func (e *TimeoutError) Error() string {
	return "operation timed out after " + e.Timeout.String()
}

// Is reports whether target is [context.DeadlineExceeded], so callers can test timeouts uniformly.
func (e *TimeoutError) Is(target error) bool {
	return target == context.DeadlineExceeded
}

// Gather waits for every task and returns their results in argument order.
//
// Gather is a full barrier: it never returns before all tasks finished, even when
// some of them fail. The returned error joins the errors of all failed tasks.
// If ctx is done first, Gather returns ctx.Err() without cancelling the tasks.
func Gather[T any](ctx context.Context, tasks ...*Task[T]) ([]T, error) {
	results := make([]T, len(tasks))
	var errs []error
	for i, t := range tasks {
		v, err := t.Wait(ctx)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		results[i] = v
	}

	return results, errors.Join(errs...)
}

// WaitFor runs fn with a context bounded by timeout and waits for its result.
//
// When the timeout elapses first the function's context is cancelled and a [*TimeoutError] is returned.
func WaitFor[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if timeout <= 0 {
		return fn(ctx)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	v, err := CreateTask(timeoutCtx, fn).Wait(timeoutCtx)
	if err != nil {
		if errors.Is(timeoutCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return zero, &TimeoutError{Timeout: timeout}
		}
		return zero, err
	}

	return v, nil
}
