// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package workflow

import (
	"log/slog"
)

// DefaultParallelWorkers is the worker pool size of [Engine.Parallel] when the caller passes none.
const DefaultParallelWorkers = 3

// Config holds the settings of an [Engine].
type Config struct {
	// failFast turns an absent model response into ErrNoResponse.
	failFast bool

	// logger is the logger used for logging. Nil means the logger carried by the call context.
	logger *slog.Logger

	// workerConcurrency bounds concurrent symphonic workers. Zero or one runs them in order.
	workerConcurrency int
}

// Option is a function that modifies the [Config] of an [Engine].
type Option interface {
	apply(base Config) Config
}

type failFastOption bool

func (o failFastOption) apply(base Config) Config {
	base.failFast = bool(o)
	return base
}

// WithFailFast stops a pattern with [ErrNoResponse] as soon as a model call fails.
//
// Without it a failed call contributes an empty text and the pattern continues.
func WithFailFast() Option {
	return failFastOption(true)
}

type loggerOption struct{ *slog.Logger }

func (o loggerOption) apply(base Config) Config {
	base.logger = o.Logger
	return base
}

// WithLogger sets the logger for the Engine.
func WithLogger(logger *slog.Logger) Option {
	return loggerOption{logger}
}

type workerConcurrencyOption int

func (o workerConcurrencyOption) apply(base Config) Config {
	base.workerConcurrency = int(o)
	return base
}

// WithWorkerConcurrency lets up to n symphonic workers run at the same time.
// Results keep the order of the composer's tasks.
func WithWorkerConcurrency(n int) Option {
	return workerConcurrencyOption(n)
}
