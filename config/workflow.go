// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/mthnguyener/simple-agentic-workflow/workflow"
)

// Workflow is a workflow file: the operation to run, the engine settings and the operation arguments.
//
//	operation: chaining
//	fail_fast: true
//	input: Hello world
//	steps:
//	  - prompt: "Summarize: "
//	    provider: ollama
//	    model: llama3.2
type Workflow struct {
	Operation workflow.Operation `yaml:"operation"`

	FailFast          bool `yaml:"fail_fast,omitempty"`
	WorkerConcurrency int  `yaml:"worker_concurrency,omitempty"`

	workflow.Args `yaml:",inline"`
}

// LoadWorkflow reads the workflow file at path.
func LoadWorkflow(path string) (*Workflow, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workflow: %w", err)
	}
	return ParseWorkflow(b)
}

// ParseWorkflow decodes a workflow document.
func ParseWorkflow(b []byte) (*Workflow, error) {
	var wf Workflow
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&wf); err != nil {
		return nil, fmt.Errorf("parse workflow: %w", err)
	}

	switch {
	case wf.Operation == workflow.OperationCustom:
		return nil, fmt.Errorf("%w: custom operations cannot be loaded from a file", workflow.ErrInvalidWorkflow)
	case !slices.Contains(workflow.Operations, wf.Operation):
		return nil, fmt.Errorf("%w: %q", workflow.ErrUnknownOperation, wf.Operation)
	}
	return &wf, nil
}

// EngineOptions returns the engine options the file asks for.
func (w *Workflow) EngineOptions() []workflow.Option {
	var opts []workflow.Option
	if w.FailFast {
		opts = append(opts, workflow.WithFailFast())
	}
	if w.WorkerConcurrency > 0 {
		opts = append(opts, workflow.WithWorkerConcurrency(w.WorkerConcurrency))
	}
	return opts
}
