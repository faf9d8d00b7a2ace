// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// DefaultTimeout bounds every provider call unless [WithTimeout] says otherwise.
const DefaultTimeout = 2 * time.Minute

// Config holds the settings of a [Dispatcher].
type Config struct {
	// timeout bounds each provider call. Zero or negative disables it.
	timeout time.Duration

	// logger is the logger used for logging. Nil means the logger carried by the call context.
	logger *slog.Logger

	// tracerProvider creates the tracer used around provider calls.
	tracerProvider trace.TracerProvider
}

func newConfig() Config {
	return Config{
		timeout: DefaultTimeout,
	}
}

// Option is a function that modifies the [Config] of a [Dispatcher].
type Option interface {
	apply(base Config) Config
}

type timeoutOption time.Duration

func (o timeoutOption) apply(base Config) Config {
	base.timeout = time.Duration(o)
	return base
}

// WithTimeout sets the per call timeout of the Dispatcher.
func WithTimeout(d time.Duration) Option {
	return timeoutOption(d)
}

type loggerOption struct{ *slog.Logger }

func (o loggerOption) apply(base Config) Config {
	base.logger = o.Logger
	return base
}

// WithLogger sets the logger for the Dispatcher.
func WithLogger(logger *slog.Logger) Option {
	return loggerOption{logger}
}

type tracerProviderOption struct{ trace.TracerProvider }

func (o tracerProviderOption) apply(base Config) Config {
	base.tracerProvider = o.TracerProvider
	return base
}

// WithTracerProvider sets the OpenTelemetry tracer provider. The global provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return tracerProviderOption{tp}
}
