// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mthnguyener/simple-agentic-workflow/internal/pool"
	"github.com/mthnguyener/simple-agentic-workflow/internal/xmaps"
	"github.com/mthnguyener/simple-agentic-workflow/model"
	"github.com/mthnguyener/simple-agentic-workflow/parser"
	"github.com/mthnguyener/simple-agentic-workflow/pkg/async"
	"github.com/mthnguyener/simple-agentic-workflow/pkg/logging"
	"github.com/mthnguyener/simple-agentic-workflow/prompt"
)

// RouteRequest configures one [Engine.Route] call.
type RouteRequest struct {
	// Query is the user query. Its Prompt is the query text; its provider, model,
	// system prompt and transforms drive the selector call.
	Query prompt.Details `json:"query" yaml:"query"`

	// RoutePrompt introduces the selection task to the selector.
	RoutePrompt string `json:"route_prompt" yaml:"route_prompt"`

	// ReasoningPrompt tells the selector what to explain in its reasoning.
	ReasoningPrompt string `json:"reasoning_prompt" yaml:"reasoning_prompt"`

	// Routes maps route names to the prompt configuration that serves them.
	// Names are matched after trimming and lower-casing.
	Routes map[string]prompt.Details `json:"routes" yaml:"routes"`

	Params model.Params `json:"params" yaml:"params"`
}

// RouteResult is the outcome of [Engine.Route].
type RouteResult struct {
	Selection string `json:"selection"`
	Reasoning string `json:"reasoning"`
	Text      string `json:"text"`
}

// Route lets a selector model pick one of req.Routes for the query, then answers the
// query with the selected route.
//
// A selection that matches no route is [ErrNoSuchRoute]; no default route is used.
func (e *Engine) Route(ctx context.Context, req RouteRequest) (*RouteResult, error) {
	ctx, _ = e.begin(ctx, OperationRouting)
	return e.route(ctx, e.syncRunner(), req)
}

// RouteAsync is like [Engine.Route] but does not block.
func (e *Engine) RouteAsync(ctx context.Context, req RouteRequest) *async.Task[*RouteResult] {
	ctx, _ = e.begin(ctx, OperationRouting)
	return async.CreateNamedTask(ctx, string(OperationRouting), func(ctx context.Context) (*RouteResult, error) {
		return e.route(ctx, e.asyncRunner(), req)
	})
}

func (e *Engine) route(ctx context.Context, r runner, req RouteRequest) (*RouteResult, error) {
	routes, err := normalizeRoutes(req.Routes)
	if err != nil {
		return nil, err
	}
	if len(routes) == 0 {
		return nil, fmt.Errorf("%w: no routes", ErrInvalidWorkflow)
	}

	names := xmaps.SortedKeys(routes)
	selector, err := prompt.Format(prompt.Selector, map[string]string{
		prompt.VarRoutePrompt:     req.RoutePrompt,
		prompt.VarRoutes:          formatRouteNames(names),
		prompt.VarReasoningPrompt: req.ReasoningPrompt,
		prompt.VarPrompt:          req.Query.Prompt,
	})
	if err != nil {
		return nil, err
	}

	// SELECT
	sd, err := r.apply(ctx, req.Query.WithPrompt(selector))
	if err != nil {
		return nil, fmt.Errorf("route selector: %w", err)
	}
	resp, _, err := r.call(ctx, sd, sd.Prompt, req.Params, "route selector")
	if err != nil {
		return nil, err
	}

	res := &RouteResult{
		Reasoning: strings.TrimSpace(parser.ExtractTag(resp, "reasoning")),
		Selection: normalizeRoute(parser.ExtractTag(resp, "selection")),
	}
	logger := logging.FromContext(ctx)
	logger.DebugContext(ctx, "routing analysis",
		slog.Any("routes", names),
		slog.String("reasoning", res.Reasoning),
		slog.String("selection", res.Selection),
	)

	// DISPATCH
	selected, ok := routes[res.Selection]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrNoSuchRoute, res.Selection, strings.Join(names, ", "))
	}
	d, err := r.apply(ctx, selected)
	if err != nil {
		return nil, fmt.Errorf("route %q: %w", res.Selection, err)
	}
	logger.DebugContext(ctx, "route selected",
		slog.String("route", res.Selection),
		slog.String("provider", d.Provider.String()),
		slog.String("model", d.Model),
	)

	res.Text, _, err = r.call(ctx, d, withInput(d.Prompt, "Query", req.Query.Prompt), req.Params, "route "+res.Selection)
	if err != nil {
		return nil, err
	}

	// DONE
	return res, nil
}

func normalizeRoute(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// normalizeRoutes returns a copy of routes keyed by normalized name.
func normalizeRoutes(routes map[string]prompt.Details) (map[string]prompt.Details, error) {
	out := make(map[string]prompt.Details, len(routes))
	for name, d := range routes {
		key := normalizeRoute(name)
		if xmaps.Contains(out, key) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateRoute, key)
		}
		out[key] = d
	}
	return out, nil
}

// formatRouteNames renders names as a bracketed, quoted list.
func formatRouteNames(names []string) string {
	sb := pool.String.Get()
	defer pool.String.Put(sb)

	sb.WriteByte('[')
	for i, n := range names {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('\'')
		sb.WriteString(n)
		sb.WriteByte('\'')
	}
	sb.WriteByte(']')
	return sb.String()
}
