// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"google.golang.org/genai"
)

// runCallbacks calls each callback in order and stops at the first result that done
// accepts, or at the first error.
func runCallbacks[C, R any](callbacks []C, call func(C) (R, error), done func(R) bool) (R, error) {
	var zero R
	for _, cb := range callbacks {
		result, err := call(cb)
		if err != nil {
			return zero, err
		}
		if done(result) {
			return result, nil
		}
	}
	return zero, nil
}

func notNil[T any](p *T) bool { return p != nil }

func notNilMap(m map[string]any) bool { return m != nil }

// RunAgentCallbacks runs before or after agent callbacks until one returns content.
func RunAgentCallbacks(cctx *CallbackContext, callbacks []AgentCallback) (*genai.Content, error) {
	return runCallbacks(callbacks, func(cb AgentCallback) (*genai.Content, error) {
		return cb(cctx)
	}, notNil[genai.Content])
}

// RunBeforeModelCallbacks runs before model callbacks until one returns a response.
//
// A non-nil response replaces the model call.
func RunBeforeModelCallbacks(cctx *CallbackContext, request *LLMRequest, callbacks []BeforeModelCallback) (*LLMResponse, error) {
	return runCallbacks(callbacks, func(cb BeforeModelCallback) (*LLMResponse, error) {
		return cb(cctx, request)
	}, notNil[LLMResponse])
}

// RunAfterModelCallbacks runs after model callbacks until one returns a response.
//
// A non-nil response replaces the model response.
func RunAfterModelCallbacks(cctx *CallbackContext, response *LLMResponse, callbacks []AfterModelCallback) (*LLMResponse, error) {
	return runCallbacks(callbacks, func(cb AfterModelCallback) (*LLMResponse, error) {
		return cb(cctx, response)
	}, notNil[LLMResponse])
}

// RunBeforeToolCallbacks runs before tool callbacks until one returns a result.
//
// A non-nil result is used as the tool response and the tool is not invoked.
func RunBeforeToolCallbacks(tool Tool, args map[string]any, toolCtx *ToolContext, callbacks []BeforeToolCallback) (map[string]any, error) {
	return runCallbacks(callbacks, func(cb BeforeToolCallback) (map[string]any, error) {
		return cb(tool, args, toolCtx)
	}, notNilMap)
}

// RunAfterToolCallbacks runs after tool callbacks until one returns a result.
//
// A non-nil result replaces the tool response.
func RunAfterToolCallbacks(tool Tool, args map[string]any, toolCtx *ToolContext, toolResponse map[string]any, callbacks []AfterToolCallback) (map[string]any, error) {
	return runCallbacks(callbacks, func(cb AfterToolCallback) (map[string]any, error) {
		return cb(tool, args, toolCtx, toolResponse)
	}, notNilMap)
}
