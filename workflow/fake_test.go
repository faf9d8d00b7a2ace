// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package workflow_test

import (
	"context"
	"sync"

	"github.com/mthnguyener/simple-agentic-workflow/model"
	"github.com/mthnguyener/simple-agentic-workflow/pkg/async"
	"github.com/mthnguyener/simple-agentic-workflow/workflow"
)

// fakeCaller answers every request with reply and records the requests it saw.
type fakeCaller struct {
	reply func(req *model.Request) *model.Response

	mu    sync.Mutex
	calls []model.Request
	async int
}

var _ workflow.Caller = (*fakeCaller)(nil)

func (f *fakeCaller) Call(_ context.Context, req *model.Request) *model.Response {
	f.mu.Lock()
	f.calls = append(f.calls, *req)
	f.mu.Unlock()
	return f.reply(req)
}

func (f *fakeCaller) CallAsync(ctx context.Context, req *model.Request) *async.Task[*model.Response] {
	f.mu.Lock()
	f.async++
	f.mu.Unlock()
	return async.CreateTask(ctx, func(ctx context.Context) (*model.Response, error) {
		return f.Call(ctx, req), nil
	})
}

// Calls returns a copy of the recorded requests.
func (f *fakeCaller) Calls() []model.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Request(nil), f.calls...)
}

// Prompts returns the prompts of the recorded requests sent to modelName, in call order.
func (f *fakeCaller) Prompts(modelName string) []string {
	var prompts []string
	for _, c := range f.Calls() {
		if c.Model == modelName {
			prompts = append(prompts, c.Prompt)
		}
	}
	return prompts
}

func (f *fakeCaller) AsyncCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.async
}

func text(s string) *model.Response {
	return &model.Response{Text: s}
}

// sequence answers the n-th request to modelName with replies[n], repeating the last reply.
type sequence struct {
	mu      sync.Mutex
	replies map[string][]*model.Response
	seen    map[string]int
}

func newSequence(replies map[string][]*model.Response) *sequence {
	return &sequence{replies: replies, seen: make(map[string]int)}
}

func (s *sequence) reply(req *model.Request) *model.Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs := s.replies[req.Model]
	if len(rs) == 0 {
		return nil
	}
	n := min(s.seen[req.Model], len(rs)-1)
	s.seen[req.Model]++
	return rs[n]
}
