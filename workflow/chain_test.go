// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package workflow_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mthnguyener/simple-agentic-workflow/model"
	"github.com/mthnguyener/simple-agentic-workflow/prompt"
	"github.com/mthnguyener/simple-agentic-workflow/workflow"
)

var chainSteps = []prompt.Details{
	{Prompt: "Summarize: ", Provider: model.ProviderOllama, Model: "summarizer"},
	{Prompt: "Translate to French: ", Provider: model.ProviderOllama, Model: "translator"},
}

func TestChain(t *testing.T) {
	t.Parallel()

	fake := &fakeCaller{reply: newSequence(map[string][]*model.Response{
		"summarizer": {text("A greeting.")},
		"translator": {text("Une salutation.")},
	}).reply}
	e := workflow.New(fake)

	got, err := e.Chain(t.Context(), "Hello world", chainSteps, model.Params{})
	if err != nil {
		t.Fatalf("Chain() error = %v", err)
	}
	if got != "Une salutation." {
		t.Errorf("Chain() = %q, want %q", got, "Une salutation.")
	}

	want := []string{
		"Summarize: \nInput: Hello world",
		"Translate to French: \nInput: A greeting.",
	}
	var prompts []string
	for _, c := range fake.Calls() {
		prompts = append(prompts, c.Prompt)
	}
	if diff := cmp.Diff(want, prompts); diff != "" {
		t.Errorf("prompts mismatch (-want +got):\n%s", diff)
	}
}

func TestChainNoSteps(t *testing.T) {
	t.Parallel()

	fake := &fakeCaller{reply: func(*model.Request) *model.Response { return text("unused") }}
	got, err := workflow.New(fake).Chain(t.Context(), "unchanged", nil, model.Params{})
	if err != nil {
		t.Fatalf("Chain() error = %v", err)
	}
	if got != "unchanged" {
		t.Errorf("Chain() = %q, want the input", got)
	}
	if n := len(fake.Calls()); n != 0 {
		t.Errorf("model called %d times, want 0", n)
	}
}

func TestChainTransforms(t *testing.T) {
	t.Parallel()

	fake := &fakeCaller{reply: func(*model.Request) *model.Response { return text("ok") }}
	steps := []prompt.Details{{
		Prompt:    "shout: ",
		Model:     "m",
		Functions: []prompt.Transform{prompt.TransformFunc(strings.ToUpper)},
	}}

	if _, err := workflow.New(fake).Chain(t.Context(), "quiet", steps, model.Params{}); err != nil {
		t.Fatalf("Chain() error = %v", err)
	}
	if got, want := fake.Calls()[0].Prompt, "SHOUT: \nInput: quiet"; got != want {
		t.Errorf("prompt = %q, want %q", got, want)
	}
}

func TestChainAbsentResponse(t *testing.T) {
	t.Parallel()

	reply := newSequence(map[string][]*model.Response{
		"translator": {text("Rien.")},
	}).reply

	t.Run("continue", func(t *testing.T) {
		t.Parallel()

		fake := &fakeCaller{reply: reply}
		got, err := workflow.New(fake).Chain(t.Context(), "Hello world", chainSteps, model.Params{})
		if err != nil {
			t.Fatalf("Chain() error = %v", err)
		}
		if got != "Rien." {
			t.Errorf("Chain() = %q, want %q", got, "Rien.")
		}
		if got, want := fake.Prompts("translator"), []string{"Translate to French: \nInput: "}; !cmp.Equal(got, want) {
			t.Errorf("translator prompts = %q, want %q", got, want)
		}
	})

	t.Run("fail fast", func(t *testing.T) {
		t.Parallel()

		fake := &fakeCaller{reply: reply}
		_, err := workflow.New(fake, workflow.WithFailFast()).Chain(t.Context(), "Hello world", chainSteps, model.Params{})
		if !errors.Is(err, workflow.ErrNoResponse) {
			t.Fatalf("Chain() error = %v, want %v", err, workflow.ErrNoResponse)
		}
		if !strings.Contains(err.Error(), "chain step 1") {
			t.Errorf("error %q does not name the failed step", err)
		}
		if n := len(fake.Prompts("translator")); n != 0 {
			t.Errorf("translator called %d times after the failure, want 0", n)
		}
	})
}

func TestChainAsync(t *testing.T) {
	t.Parallel()

	fake := &fakeCaller{reply: newSequence(map[string][]*model.Response{
		"summarizer": {text("A greeting.")},
		"translator": {text("Une salutation.")},
	}).reply}

	got, err := workflow.New(fake).ChainAsync(t.Context(), "Hello world", chainSteps, model.Params{}).Wait(t.Context())
	if err != nil {
		t.Fatalf("ChainAsync() error = %v", err)
	}
	if got != "Une salutation." {
		t.Errorf("ChainAsync() = %q, want %q", got, "Une salutation.")
	}
	if n := fake.AsyncCalls(); n != 2 {
		t.Errorf("CallAsync called %d times, want 2", n)
	}
}
