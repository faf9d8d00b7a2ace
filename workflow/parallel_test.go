// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package workflow_test

import (
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/mthnguyener/simple-agentic-workflow/model"
	"github.com/mthnguyener/simple-agentic-workflow/prompt"
	"github.com/mthnguyener/simple-agentic-workflow/workflow"
)

var parallelPrompts = []prompt.Details{
	{Prompt: "Sentiment:", Model: "slow"},
	{Prompt: "Topic:", Model: "medium"},
	{Prompt: "Language:", Model: "fast"},
}

// delayed answers with the model name after a delay that makes later prompts finish first.
func delayed(req *model.Request) *model.Response {
	switch req.Model {
	case "slow":
		time.Sleep(30 * time.Millisecond)
	case "medium":
		time.Sleep(15 * time.Millisecond)
	case "broken":
		return nil
	}
	return text(req.Model + " says " + strings.TrimPrefix(req.Prompt, "Sentiment:\nInput: "))
}

func TestParallel(t *testing.T) {
	t.Parallel()

	fake := &fakeCaller{reply: delayed}
	got, err := workflow.New(fake).Parallel(t.Context(), "I love Go", parallelPrompts, 2, model.Params{})
	if err != nil {
		t.Fatalf("Parallel() error = %v", err)
	}

	want := []workflow.Output{
		{Prompt: "Sentiment:", Text: "slow says I love Go", OK: true},
		{Prompt: "Topic:", Text: "medium says Topic:\nInput: I love Go", OK: true},
		{Prompt: "Language:", Text: "fast says Language:\nInput: I love Go", OK: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parallel() mismatch (-want +got):\n%s", diff)
	}
}

func TestParallelWorkerLimit(t *testing.T) {
	t.Parallel()

	var running, peak atomic.Int32
	fake := &fakeCaller{reply: func(req *model.Request) *model.Response {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		running.Add(-1)
		return text("ok")
	}}

	prompts := make([]prompt.Details, 8)
	for i := range prompts {
		prompts[i] = prompt.Details{Prompt: "p", Model: "m"}
	}
	if _, err := workflow.New(fake).Parallel(t.Context(), "q", prompts, 0, model.Params{}); err != nil {
		t.Fatalf("Parallel() error = %v", err)
	}
	if p := peak.Load(); p > workflow.DefaultParallelWorkers {
		t.Errorf("peak concurrency = %d, want at most %d", p, workflow.DefaultParallelWorkers)
	}
}

func TestParallelFailedBranch(t *testing.T) {
	t.Parallel()

	prompts := []prompt.Details{
		{Prompt: "Topic:", Model: "medium"},
		{Prompt: "Broken:", Model: "broken"},
		{Prompt: "Language:", Model: "fast"},
	}

	t.Run("continue", func(t *testing.T) {
		t.Parallel()

		got, err := workflow.New(&fakeCaller{reply: delayed}).Parallel(t.Context(), "q", prompts, 3, model.Params{})
		if err != nil {
			t.Fatalf("Parallel() error = %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("Parallel() returned %d outputs, want 3", len(got))
		}
		if got[1].OK || got[1].Text != "" {
			t.Errorf("failed branch = %+v, want empty and not OK", got[1])
		}
		if !got[0].OK || !got[2].OK {
			t.Errorf("siblings of the failed branch were not answered: %+v", got)
		}
	})

	t.Run("fail fast", func(t *testing.T) {
		t.Parallel()

		fake := &fakeCaller{reply: delayed}
		got, err := workflow.New(fake, workflow.WithFailFast()).Parallel(t.Context(), "q", prompts, 3, model.Params{})
		if !errors.Is(err, workflow.ErrNoResponse) {
			t.Fatalf("Parallel() error = %v, want %v", err, workflow.ErrNoResponse)
		}
		if n := len(fake.Calls()); n != 3 {
			t.Errorf("model called %d times, want every branch to run", n)
		}
		if len(got) != 3 || !got[0].OK || !got[2].OK {
			t.Errorf("Parallel() outputs = %+v, want the answered branches kept", got)
		}
	})
}

func TestParallelAsync(t *testing.T) {
	t.Parallel()

	fake := &fakeCaller{reply: delayed}
	got, err := workflow.New(fake).ParallelAsync(t.Context(), "I love Go", parallelPrompts, model.Params{}).Wait(t.Context())
	if err != nil {
		t.Fatalf("ParallelAsync() error = %v", err)
	}

	var texts []string
	for _, o := range got {
		texts = append(texts, strings.SplitN(o.Text, " ", 2)[0])
	}
	if diff := cmp.Diff([]string{"slow", "medium", "fast"}, texts); diff != "" {
		t.Errorf("ParallelAsync() order mismatch (-want +got):\n%s", diff)
	}
	if n := fake.AsyncCalls(); n != 3 {
		t.Errorf("CallAsync called %d times, want 3", n)
	}
}

func TestParallelEmpty(t *testing.T) {
	t.Parallel()

	got, err := workflow.New(&fakeCaller{reply: delayed}).Parallel(t.Context(), "q", nil, 3, model.Params{})
	if err != nil {
		t.Fatalf("Parallel() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Parallel() = %+v, want no outputs", got)
	}
}
