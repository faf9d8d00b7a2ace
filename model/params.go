// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"
)

// Param names one generation parameter of [Params].
type Param string

const (
	ParamTemperature Param = "temperature"
	ParamTopP        Param = "top_p"
	ParamTopK        Param = "top_k"
	ParamMaxTokens   Param = "max_tokens"
	ParamStop        Param = "stop"
	ParamSeed        Param = "seed"

	// ParamRaw is the provider specific extension map. Only Ollama forwards it, as its options.
	ParamRaw Param = "raw"
)

// Params are the optional generation parameters of a [Request].
//
// A nil pointer or zero value leaves the provider default in place.
type Params struct {
	Temperature *float64       `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	TopP        *float64       `json:"top_p,omitempty" yaml:"top_p,omitempty"`
	TopK        *int           `json:"top_k,omitempty" yaml:"top_k,omitempty"`
	MaxTokens   int            `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
	Stop        []string       `json:"stop,omitempty" yaml:"stop,omitempty"`
	Seed        *int           `json:"seed,omitempty" yaml:"seed,omitempty"`
	Raw         map[string]any `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// Set returns the parameters that carry a value, in declaration order.
func (p Params) Set() []Param {
	var set []Param
	if p.Temperature != nil {
		set = append(set, ParamTemperature)
	}
	if p.TopP != nil {
		set = append(set, ParamTopP)
	}
	if p.TopK != nil {
		set = append(set, ParamTopK)
	}
	if p.MaxTokens != 0 {
		set = append(set, ParamMaxTokens)
	}
	if len(p.Stop) > 0 {
		set = append(set, ParamStop)
	}
	if p.Seed != nil {
		set = append(set, ParamSeed)
	}
	if len(p.Raw) > 0 {
		set = append(set, ParamRaw)
	}
	return set
}

// Validate checks every set parameter against the backend and its value domain.
func (p Params) Validate(b Backend) error {
	for _, param := range p.Set() {
		if !b.Supports(param) {
			return fmt.Errorf("%w: %s is not accepted by %s", ErrUnsupportedParam, param, b.Provider())
		}
	}

	switch {
	case p.Temperature != nil && *p.Temperature < 0:
		return fmt.Errorf("%w: temperature must be non-negative, got %v", ErrInvalidParam, *p.Temperature)
	case p.TopP != nil && (*p.TopP < 0 || *p.TopP > 1):
		return fmt.Errorf("%w: top_p must be within [0, 1], got %v", ErrInvalidParam, *p.TopP)
	case p.TopK != nil && *p.TopK < 0:
		return fmt.Errorf("%w: top_k must be non-negative, got %d", ErrInvalidParam, *p.TopK)
	case p.MaxTokens < 0:
		return fmt.Errorf("%w: max_tokens must be non-negative, got %d", ErrInvalidParam, p.MaxTokens)
	}

	return nil
}

// Clone returns a deep copy of p.
func (p Params) Clone() (Params, error) {
	var out Params
	if err := deepcopy.Copy(&out, p); err != nil {
		return Params{}, fmt.Errorf("copy params: %w", err)
	}
	return out, nil
}

// Float returns a pointer to v, for the optional float fields of [Params].
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v, for the optional integer fields of [Params].
func Int(v int) *int { return &v }

// supportSet is a fixed set of parameters accepted by a backend.
type supportSet map[Param]bool

func newSupportSet(params ...Param) supportSet {
	s := make(supportSet, len(params))
	for _, p := range params {
		s[p] = true
	}
	return s
}

func (s supportSet) Supports(p Param) bool { return s[p] }
