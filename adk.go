// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package adk is a Go toolkit for running trees of LLM agents over persistent sessions.
//
// Agents live in [github.com/zshehov/adk-python-sub001/agent], the model
// control loop in [github.com/zshehov/adk-python-sub001/flow/llmflow] and the
// entry point binding agents to sessions in
// [github.com/zshehov/adk-python-sub001/runner].
package adk

// Version is the version of the module.
var Version = "v0.0.0"
