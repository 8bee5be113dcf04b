// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package model implements [types.Model] for the supported LLM providers.
//
// [Gemini] talks to the Gemini API through google.golang.org/genai and supports
// generation, streaming and bidirectional live connections. [Claude] talks to
// the Anthropic Messages API and supports generation and streaming.
//
// Models are resolved by name through a [Registry]. The built-in patterns are:
//
//	gemini-.*
//	projects/.+/locations/.+/endpoints/.+
//	projects/.+/locations/.+/publishers/google/models/gemini.+
//	claude-3-.*
//	claude-.*-4.*
//	claude-(sonnet|opus|haiku)-.*
//
// Create a model by name:
//
//	llm, err := model.NewLLM(ctx, "gemini-2.0-flash")
//	if err != nil {
//		return err
//	}
//	resp, err := llm.GenerateContent(ctx, types.NewLLMRequest(contents))
//
// Additional providers register themselves with [RegisterLLM].
package model
