// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package prompt_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/mthnguyener/simple-agentic-workflow/prompt"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		vars     map[string]string
		want     string
		wantErr  error
	}{
		{
			name:     "substitutes identifiers",
			template: "Task: {task}\nType: {task_type}",
			vars:     map[string]string{"task": "write", "task_type": "formal"},
			want:     "Task: write\nType: formal",
		},
		{
			name:     "repeated placeholder",
			template: "{ratings} and again {ratings}",
			vars:     map[string]string{"ratings": "PASS, FAIL"},
			want:     "PASS, FAIL and again PASS, FAIL",
		},
		{
			name:     "non identifier braces kept",
			template: `{"key": 1} {not valid} {} {1abc}`,
			vars:     map[string]string{},
			want:     `{"key": 1} {not valid} {} {1abc}`,
		},
		{
			name:     "doubled braces kept",
			template: "{{task}}",
			vars:     map[string]string{"task": "x"},
			want:     "{{task}}",
		},
		{
			name:     "values not rescanned",
			template: "Input: {prompt}",
			vars:     map[string]string{"prompt": "{task}"},
			want:     "Input: {task}",
		},
		{
			name:     "missing variable",
			template: "Hello {name}",
			vars:     map[string]string{},
			wantErr:  prompt.ErrMissingVariable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := prompt.Format(tt.template, tt.vars)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Format() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTemplatesFormat(t *testing.T) {
	t.Parallel()

	vars := map[string]string{
		prompt.VarRoutePrompt:     "route it",
		prompt.VarRoutes:          "[a, b]",
		prompt.VarReasoningPrompt: "why",
		prompt.VarPrompt:          "query",
		prompt.VarEvaluatorPrompt: "evaluate",
		prompt.VarRatings:         "PASS, FAIL",
		prompt.VarGeneratorPrompt: "generate",
		prompt.VarTask:            "the task",
		prompt.VarSubtasks:        "<task></task>",
		prompt.VarComposerPrompt:  "compose",
		prompt.VarWorkerPrompt:    "work",
	}

	tests := []struct {
		name     string
		template string
		contains []string
	}{
		{name: "selector", template: prompt.Selector, contains: []string{"route it", "Available route options: [a, b]", "<reasoning>\nwhy\n</reasoning>", "Input: query"}},
		{name: "evaluator", template: prompt.Evaluator, contains: []string{"evaluate", "Here are the ratings: PASS, FAIL", "<evaluation>PASS, FAIL</evaluation>"}},
		{name: "generator", template: prompt.Generator, contains: []string{"generate", "<thoughts>", "<response>"}},
		{name: "task", template: prompt.Task, contains: []string{"<user input>\nthe task\n</user input>"}},
		{name: "composer", template: prompt.Composer, contains: []string{"compose", "Task: the task", "<tasks>\n<task></task>\n</tasks>"}},
		{name: "worker", template: prompt.Worker, contains: []string{"work", "<response>"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := prompt.Format(tt.template, vars)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("Format() = %q, want it to contain %q", got, s)
				}
			}
		})
	}
}
