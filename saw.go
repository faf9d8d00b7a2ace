// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package saw is a small toolkit for orchestrating prompts across LLM providers with chaining,
// parallel, routing, adaptive and composer/worker workflows.
package saw

// Version is the version of saw.
var Version = "v0.1.0"
