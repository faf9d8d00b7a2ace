// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package pool provides generic type pooling, and a [*strings.Builder] pool used when assembling prompts.
package pool

import (
	"strings"
	"sync"
)

// Pool is a generics wrapper around [sync.Pool] to provide strongly-typed object pooling.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(T)
}

// New returns a new [Pool] for T, and will use fn to construct new T's when the pool is empty.
//
// reset, when non-nil, is applied to every value returned with [Pool.Put].
func New[T any](fn func() T, reset func(T)) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return fn()
			},
		},
		reset: reset,
	}
}

// Get gets a T from the pool, or creates a new one if the pool is empty.
func (p *Pool[T]) Get() T {
	return p.pool.Get().(T)
}

// Put returns x into the pool.
func (p *Pool[T]) Put(x T) {
	if p.reset != nil {
		p.reset(x)
	}
	p.pool.Put(x)
}

// String provides the [*strings.Builder] pooling objects. Builders are reset on Put.
var String = New(
	func() *strings.Builder { return &strings.Builder{} },
	func(b *strings.Builder) { b.Reset() },
)

// Sprint concatenates parts using a pooled builder.
func Sprint(parts ...string) string {
	b := String.Get()
	defer String.Put(b)

	for _, p := range parts {
		b.WriteString(p)
	}
	return b.String()
}
