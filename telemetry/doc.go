// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package telemetry records OpenTelemetry spans for model and tool calls.
//
// Spans are created from the global tracer provider: "call_llm" for every
// model call, "tool_call [name]" for every tool invocation and
// "tool_response [name]" for the function response event. Agent runs are
// wrapped in "agent_run [name]" spans by [types.BaseAgent].
package telemetry
