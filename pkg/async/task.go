// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package async

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// State represents the current state of a [Task].
type State int32

const (
	// StatePending indicates the task has been created but its function has not started yet.
	StatePending State = iota
	// StateRunning indicates the task function is executing.
	StateRunning
	// StateDone indicates the task function returned, successfully or with an error.
	StateDone
	// StateCancelled indicates the task context was cancelled before the function returned.
	StateCancelled
)

// String returns a string representation of the State.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateDone:
		return "done"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// CancelledError is returned by [Task.Wait] when the task was cancelled.
type CancelledError struct {
	Name  string
	Cause error
}

// Error implements the error interface for CancelledError.
func (e *CancelledError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("task %q was cancelled: %v", e.Name, e.Cause)
	}
	return fmt.Sprintf("task was cancelled: %v", e.Cause)
}

// Unwrap returns the context error that cancelled the task.
func (e *CancelledError) Unwrap() error {
	return e.Cause
}

// Task is a unit of work scheduled on its own goroutine whose result can be awaited.
//
// A Task is started by [CreateTask] and moves through pending -> running -> done/cancelled.
// The result is computed exactly once; every call to [Task.Wait] observes the same value.
type Task[T any] struct {
	state atomic.Int32

	ctx    context.Context
	cancel context.CancelFunc
	fn     func(context.Context) (T, error)
	name   string

	mu     sync.RWMutex
	result T
	err    error

	done chan struct{}
}

// CreateTask creates and immediately starts a new task running fn.
func CreateTask[T any](ctx context.Context, fn func(context.Context) (T, error)) *Task[T] {
	return CreateNamedTask(ctx, "", fn)
}

// CreateNamedTask is like [CreateTask] but names the task for logs and errors.
func CreateNamedTask[T any](ctx context.Context, name string, fn func(context.Context) (T, error)) *Task[T] {
	if fn == nil {
		panic("async: task function cannot be nil")
	}

	taskCtx, cancel := context.WithCancel(ctx)
	t := &Task[T]{
		ctx:    taskCtx,
		cancel: cancel,
		fn:     fn,
		name:   name,
		done:   make(chan struct{}),
	}
	t.state.Store(int32(StatePending))

	go t.run()

	return t
}

// Resolved returns a task that is already done with the given value.
func Resolved[T any](v T) *Task[T] {
	t := &Task[T]{
		ctx:    context.Background(),
		cancel: func() {},
		result: v,
		done:   make(chan struct{}),
	}
	t.state.Store(int32(StateDone))
	close(t.done)
	return t
}

func (t *Task[T]) run() {
	defer close(t.done)
	defer t.cancel()

	t.state.Store(int32(StateRunning))

	result, err := t.fn(t.ctx)

	t.mu.Lock()
	defer t.mu.Unlock()

	if ctxErr := t.ctx.Err(); ctxErr != nil && err != nil {
		t.state.Store(int32(StateCancelled))
		t.err = &CancelledError{Name: t.name, Cause: ctxErr}
		return
	}

	t.state.Store(int32(StateDone))
	t.result = result
	t.err = err
}

// Cancel requests cancellation of the task.
//
// It reports whether the request was accepted; a finished task cannot be cancelled.
func (t *Task[T]) Cancel() bool {
	if t.Done() {
		return false
	}
	t.cancel()
	return true
}

// Done reports whether the task has finished, including by cancellation.
func (t *Task[T]) Done() bool {
	s := State(t.state.Load())
	return s == StateDone || s == StateCancelled
}

// State returns the current state of the task.
func (t *Task[T]) State() State {
	return State(t.state.Load())
}

// Name returns the name given at creation.
func (t *Task[T]) Name() string {
	return t.name
}

// Wait blocks until the task finishes or ctx is done.
//
// Cancelling ctx stops the wait only; the task keeps running. Use [Task.Cancel] to stop it.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		t.mu.RLock()
		defer t.mu.RUnlock()
		return t.result, t.err

	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result returns the result without blocking. It is an error to call Result before the task is done.
func (t *Task[T]) Result() (T, error) {
	if !t.Done() {
		var zero T
		return zero, fmt.Errorf("async: task %q is not yet done", t.name)
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.result, t.err
}

// String returns a string representation of the task.
func (t *Task[T]) String() string {
	name := t.name
	if name == "" {
		name = "unnamed"
	}
	return fmt.Sprintf("Task[%s](%s)", name, t.State())
}
