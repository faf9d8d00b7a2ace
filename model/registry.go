// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"fmt"

	"github.com/mthnguyener/simple-agentic-workflow/internal/xmaps"
)

// Registry maps each [Provider] to the [Backend] serving it.
//
// A Registry is immutable once built and safe for concurrent use.
type Registry struct {
	backends map[Provider]Backend
}

// NewRegistry builds a registry from backends.
//
// Two backends serving the same provider are an error.
func NewRegistry(backends ...Backend) (*Registry, error) {
	r := &Registry{
		backends: make(map[Provider]Backend, len(backends)),
	}
	for _, b := range backends {
		if b == nil {
			continue
		}
		p := b.Provider()
		if _, ok := r.backends[p]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateProvider, p)
		}
		r.backends[p] = b
	}
	return r, nil
}

// Lookup returns the backend registered for p.
func (r *Registry) Lookup(p Provider) (Backend, error) {
	if r != nil {
		if b, ok := r.backends[p]; ok {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: %q; register a %[2]s backend before calling the model", ErrProviderNotRegistered, p)
}

// Providers returns the registered providers in sorted order.
func (r *Registry) Providers() []Provider {
	if r == nil {
		return nil
	}
	return xmaps.SortedKeys(r.backends)
}
