// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mthnguyener/simple-agentic-workflow/internal/pool"
	"github.com/mthnguyener/simple-agentic-workflow/model"
	"github.com/mthnguyener/simple-agentic-workflow/parser"
	"github.com/mthnguyener/simple-agentic-workflow/pkg/async"
	"github.com/mthnguyener/simple-agentic-workflow/pkg/logging"
	"github.com/mthnguyener/simple-agentic-workflow/prompt"
)

// Role prompts used when the adaptive request leaves them empty.
const (
	DefaultGeneratorPrompt = "You are an expert assistant with vast knowledge. You are given a task and a context to improve the solution. " +
		"Your goal is to complete the task based on the context."
	DefaultEvaluatorPrompt = "Evaluate the following implementation and solution based on criteria needed to complete the task."
)

// DefaultRatings are the evaluator ratings used when the adaptive request names none.
// The first rating accepts a solution.
var DefaultRatings = []string{"PASS", "NEEDS_IMPROVEMENT", "FAIL"}

// AdaptiveRequest configures one [Engine.Adaptive] call.
type AdaptiveRequest struct {
	// Task is the task to solve.
	Task string `json:"task" yaml:"task"`

	// Generator produces and revises solutions. An empty Prompt means [DefaultGeneratorPrompt].
	Generator prompt.Details `json:"generator" yaml:"generator"`

	// Evaluator rates solutions. An empty Prompt means [DefaultEvaluatorPrompt].
	Evaluator prompt.Details `json:"evaluator" yaml:"evaluator"`

	// Ratings are offered to the evaluator. Empty means [DefaultRatings].
	Ratings []string `json:"ratings,omitempty" yaml:"ratings,omitempty"`

	// Accept reports whether an evaluation accepts the solution.
	// Nil means an exact match against the first rating.
	Accept func(evaluation string) bool `json:"-" yaml:"-"`

	// MaxIterations caps the refinement rounds. Nil means no cap; zero means no refinement.
	MaxIterations *int `json:"max_iterations,omitempty" yaml:"max_iterations,omitempty"`

	Params model.Params `json:"params" yaml:"params"`
}

// Thought is one generation of an adaptive run.
type Thought struct {
	Thoughts string `json:"thoughts"`
	Result   string `json:"result"`
}

// AdaptiveResult is the outcome of [Engine.Adaptive].
type AdaptiveResult struct {
	// Result is the last generated solution.
	Result string `json:"result"`

	// ChainOfThought holds every generation in order.
	ChainOfThought []Thought `json:"chain_of_thought"`

	// Accepted reports whether the evaluator accepted Result.
	Accepted bool `json:"accepted"`

	// Iterations is the number of refinement rounds that ran.
	Iterations int `json:"iterations"`
}

// Adaptive generates a solution for req.Task and refines it with evaluator feedback
// until the evaluator accepts it or the iteration cap is reached.
//
// An empty evaluation never accepts. Without a cap and without an accepting
// evaluation the loop only ends with ctx.
func (e *Engine) Adaptive(ctx context.Context, req AdaptiveRequest) (*AdaptiveResult, error) {
	ctx, _ = e.begin(ctx, OperationAdaptive)
	return e.adaptive(ctx, e.syncRunner(), req)
}

// AdaptiveAsync is like [Engine.Adaptive] but does not block.
func (e *Engine) AdaptiveAsync(ctx context.Context, req AdaptiveRequest) *async.Task[*AdaptiveResult] {
	ctx, _ = e.begin(ctx, OperationAdaptive)
	return async.CreateNamedTask(ctx, string(OperationAdaptive), func(ctx context.Context) (*AdaptiveResult, error) {
		return e.adaptive(ctx, e.asyncRunner(), req)
	})
}

func (e *Engine) adaptive(ctx context.Context, r runner, req AdaptiveRequest) (*AdaptiveResult, error) {
	if req.MaxIterations != nil && *req.MaxIterations < 0 {
		return nil, fmt.Errorf("%w: negative max iterations %d", ErrInvalidWorkflow, *req.MaxIterations)
	}

	ratings := req.Ratings
	if len(ratings) == 0 {
		ratings = DefaultRatings
	}
	accept := req.Accept
	if accept == nil {
		want := ratings[0]
		accept = func(evaluation string) bool { return evaluation == want }
	}

	generator, err := rolePrompt(prompt.Generator, prompt.VarGeneratorPrompt, req.Generator, DefaultGeneratorPrompt, nil)
	if err != nil {
		return nil, fmt.Errorf("adaptive generator: %w", err)
	}
	evaluator, err := rolePrompt(prompt.Evaluator, prompt.VarEvaluatorPrompt, req.Evaluator, DefaultEvaluatorPrompt, map[string]string{
		prompt.VarRatings: strings.Join(ratings, ", "),
	})
	if err != nil {
		return nil, fmt.Errorf("adaptive evaluator: %w", err)
	}
	task, err := prompt.Format(prompt.Task, map[string]string{prompt.VarTask: req.Task})
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	res := &AdaptiveResult{}
	var memory []string

	generate := func(feedback string) error {
		d, err := r.apply(ctx, generator)
		if err != nil {
			return fmt.Errorf("adaptive generator: %w", err)
		}
		text, _, err := r.call(ctx, d, generatorPrompt(d.Prompt, task, memory, feedback), req.Params, "adaptive generator")
		if err != nil {
			return err
		}
		t := Thought{
			Thoughts: parser.ExtractTag(text, "thoughts"),
			Result:   generatorResponse(text),
		}
		logger.DebugContext(ctx, "adaptive generation",
			slog.Int("generation", len(res.ChainOfThought)+1),
			slog.String("thoughts", t.Thoughts),
		)
		memory = append(memory, t.Result)
		res.ChainOfThought = append(res.ChainOfThought, t)
		res.Result = t.Result
		return nil
	}

	if err := generate(""); err != nil {
		return nil, err
	}

	for req.MaxIterations == nil || res.Iterations < *req.MaxIterations {
		d, err := r.apply(ctx, evaluator)
		if err != nil {
			return nil, fmt.Errorf("adaptive evaluator: %w", err)
		}
		text, _, err := r.call(ctx, d, evaluatorPrompt(d.Prompt, task, res.Result), req.Params, "adaptive evaluator")
		if err != nil {
			return nil, err
		}
		evaluation := strings.TrimSpace(parser.ExtractTag(text, "evaluation"))
		feedback := strings.TrimSpace(parser.ExtractTag(text, "feedback"))
		logger.DebugContext(ctx, "adaptive evaluation",
			slog.Int("iteration", res.Iterations+1),
			slog.String("evaluation", evaluation),
			slog.String("feedback", feedback),
		)

		if evaluation != "" && accept(evaluation) {
			res.Accepted = true
			break
		}

		if err := generate(feedback); err != nil {
			return nil, err
		}
		res.Iterations++
	}

	return res, nil
}

// rolePrompt formats tmpl around the role prompt of d, or def when d has none.
func rolePrompt(tmpl, roleVar string, d prompt.Details, def string, vars map[string]string) (prompt.Details, error) {
	role := d.Prompt
	if role == "" {
		role = def
	}
	all := map[string]string{roleVar: role}
	for k, v := range vars {
		all[k] = v
	}
	text, err := prompt.Format(tmpl, all)
	if err != nil {
		return prompt.Details{}, err
	}
	return d.WithPrompt(text), nil
}

// generatorPrompt builds "{prompt}\n[{context}\n]Task: {task}" where the context lists
// the previous attempts and the last feedback.
func generatorPrompt(text, task string, memory []string, feedback string) string {
	sb := pool.String.Get()
	defer pool.String.Put(sb)

	sb.WriteString(text)
	sb.WriteByte('\n')
	if len(memory) > 0 {
		sb.WriteString("Previous attempts:\n")
		for _, m := range memory {
			sb.WriteString("- ")
			sb.WriteString(m)
			sb.WriteByte('\n')
		}
		sb.WriteString("\nFeedback: ")
		sb.WriteString(feedback)
		sb.WriteByte('\n')
	}
	sb.WriteString("Task: ")
	sb.WriteString(task)
	return sb.String()
}

func evaluatorPrompt(text, task, content string) string {
	return pool.Sprint(text,
		". Feedback is required so you must explain how the solution meets or does not meet the requirements\n",
		"Original task: ", task, "\n",
		"Content to evaluate: ", content,
	)
}

// generatorResponse returns the answer that follows the </thoughts> tag, without its response tags.
func generatorResponse(text string) string {
	s := strings.TrimSpace(parser.After(text, "thoughts"))
	s = strings.ReplaceAll(s, "<response>", "")
	s = strings.ReplaceAll(s, "</response>", "")
	return strings.TrimSpace(s)
}
