// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"net/http"
	"sync"
)

// BackendConfig configures a provider backend.
type BackendConfig struct {
	// Credentials locate the API key. Unset Env and Secret fall back to provider defaults.
	Credentials Credentials

	// BaseURL overrides the provider endpoint.
	BaseURL string

	// HTTPClient overrides the HTTP client used by the provider SDK.
	HTTPClient *http.Client
}

// lazy builds a provider client once, on first use.
type lazy[T any] struct {
	once sync.Once
	v    T
	err  error
}

func (l *lazy[T]) get(fn func() (T, error)) (T, error) {
	l.once.Do(func() {
		l.v, l.err = fn()
	})
	return l.v, l.err
}
