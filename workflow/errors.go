// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package workflow

import "errors"

var (
	// ErrNoResponse reports a model call that produced no response while the engine runs with [WithFailFast].
	ErrNoResponse = errors.New("no response from model")

	// ErrNoSuchRoute is returned when the selector picks a route that is not in the route table.
	ErrNoSuchRoute = errors.New("no such route")

	// ErrDuplicateRoute is returned when two route names normalize to the same key.
	ErrDuplicateRoute = errors.New("duplicate route")

	// ErrUnknownOperation is returned by [Workflow.Execute] for an operation it does not know.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrInvalidWorkflow is returned for a workflow that cannot run as configured.
	ErrInvalidWorkflow = errors.New("invalid workflow")
)
