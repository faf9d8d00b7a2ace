// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bytedance/sonic"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mthnguyener/simple-agentic-workflow/pkg/async"
	"github.com/mthnguyener/simple-agentic-workflow/pkg/logging"
)

const tracerName = "github.com/mthnguyener/simple-agentic-workflow/model"

// Dispatcher sends requests to the backend registered for their provider.
//
// Dispatcher absorbs every failure: a failed call is logged and reported as a nil [*Response].
type Dispatcher struct {
	registry *Registry
	cfg      Config
	tracer   trace.Tracer
}

// NewDispatcher returns a [Dispatcher] over registry.
func NewDispatcher(registry *Registry, opts ...Option) *Dispatcher {
	cfg := newConfig()
	for _, opt := range opts {
		cfg = opt.apply(cfg)
	}

	tp := cfg.tracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	return &Dispatcher{
		registry: registry,
		cfg:      cfg,
		tracer:   tp.Tracer(tracerName),
	}
}

// Registry returns the registry the dispatcher resolves providers from.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

func (d *Dispatcher) logger(ctx context.Context) *slog.Logger {
	if d.cfg.logger != nil {
		return d.cfg.logger
	}
	return logging.FromContext(ctx)
}

// Call sends req to its provider and returns the answer.
//
// An empty system prompt is replaced by [DefaultSystemPrompt]. Any failure, including
// unknown providers, rejected parameters, provider errors and timeouts, is logged and
// yields nil.
func (d *Dispatcher) Call(ctx context.Context, req *Request) *Response {
	resp, err := d.Generate(ctx, req)
	if err != nil {
		provider := Provider("")
		if req != nil {
			provider = req.Provider
		}
		d.logger(ctx).ErrorContext(ctx, "model call failed",
			slog.String("provider", provider.String()),
			slog.Any("error", err),
		)
		return nil
	}
	return resp
}

// CallAsync is like [Dispatcher.Call] but does not block.
//
// The returned task never fails; a failed call resolves to nil.
func (d *Dispatcher) CallAsync(ctx context.Context, req *Request) *async.Task[*Response] {
	return async.CreateNamedTask(ctx, "model.call", func(ctx context.Context) (*Response, error) {
		return d.Call(ctx, req), nil
	})
}

// Generate is like [Dispatcher.Call] but returns the failure instead of logging it.
func (d *Dispatcher) Generate(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}

	backend, err := d.registry.Lookup(req.Provider)
	if err != nil {
		return nil, err
	}
	if err := req.Params.Validate(backend); err != nil {
		return nil, err
	}

	params, err := req.Params.Clone()
	if err != nil {
		return nil, err
	}
	call := &Request{
		Provider:     req.Provider,
		Model:        req.Model,
		Prompt:       req.Prompt,
		SystemPrompt: req.SystemPrompt,
		Params:       params,
	}
	if call.SystemPrompt == "" {
		call.SystemPrompt = DefaultSystemPrompt
	}

	if d.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.timeout)
		defer cancel()
	}

	ctx, span := d.tracer.Start(ctx, "model.generate",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("saw.provider", call.Provider.String()),
			attribute.String("saw.model", call.Model),
		),
	)
	defer span.End()

	resp, err := backend.Generate(ctx, call)
	if err == nil && resp == nil {
		err = ErrEmptyResponse
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			err = fmt.Errorf("%w: %w", ctxErr, err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%s: %w", call.Provider, err)
	}

	span.SetAttributes(
		attribute.String("saw.response.model", resp.Model),
		attribute.Int("saw.usage.input_tokens", resp.Usage.InputTokens),
		attribute.Int("saw.usage.output_tokens", resp.Usage.OutputTokens),
	)

	logger := d.logger(ctx)
	if logger.Enabled(ctx, slog.LevelDebug) {
		usage, _ := sonic.ConfigFastest.MarshalToString(resp.Usage)
		logger.DebugContext(ctx, "model response",
			slog.String("provider", call.Provider.String()),
			slog.String("model", resp.Model),
			slog.String("usage", usage),
		)
	}

	return resp, nil
}
