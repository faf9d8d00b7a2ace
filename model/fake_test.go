// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model_test

import (
	"context"
	"sync"

	"github.com/mthnguyener/simple-agentic-workflow/model"
)

// fakeBackend records requests and answers with a fixed response.
type fakeBackend struct {
	provider model.Provider
	params   []model.Param
	resp     *model.Response
	err      error
	block    bool
	mutate   bool

	mu    sync.Mutex
	calls []*model.Request
}

var _ model.Backend = (*fakeBackend)(nil)

func (f *fakeBackend) Provider() model.Provider { return f.provider }

func (f *fakeBackend) Supports(p model.Param) bool {
	for _, s := range f.params {
		if s == p {
			return true
		}
	}
	return false
}

func (f *fakeBackend) Generate(ctx context.Context, req *model.Request) (*model.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	if f.mutate && len(req.Params.Stop) > 0 {
		req.Params.Stop[0] = "mutated"
	}
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.resp, f.err
}

func (f *fakeBackend) Calls() []*model.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*model.Request(nil), f.calls...)
}
