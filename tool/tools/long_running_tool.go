// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"

	"github.com/MakeNowJust/heredoc/v2"
	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/tool"
	"github.com/zshehov/adk-python-sub001/types"
)

var longRunningNote = "\n\n" + heredoc.Doc(`
	NOTE: This is a long-running operation. Do not call this tool again if it
	has already returned some intermediate or pending status.`)

// LongRunningFunctionTool represents a function tool that returns the result asynchronously.
//
// The framework calls the function once. Whatever it returns (a nil result is
// reported as pending) is the first response; the final result is sent later
// by the client as a function response with the same function call id.
type LongRunningFunctionTool struct {
	*FunctionTool
}

var _ types.Tool = (*LongRunningFunctionTool)(nil)

// NewLongRunningFunctionTool returns the new [LongRunningFunctionTool] with the given function.
func NewLongRunningFunctionTool(name, description string, fn Function, opts ...FunctionToolOption) *LongRunningFunctionTool {
	return &LongRunningFunctionTool{
		FunctionTool: NewFunctionTool(name, description, fn, append(opts, WithLongRunning())...),
	}
}

// GetDeclaration implements [types.Tool].
func (t *LongRunningFunctionTool) GetDeclaration() *genai.FunctionDeclaration {
	decl := t.FunctionTool.GetDeclaration()
	decl.Description += longRunningNote
	return decl
}

// ProcessLLMRequest implements [types.Tool].
func (t *LongRunningFunctionTool) ProcessLLMRequest(_ context.Context, _ *types.ToolContext, request *types.LLMRequest) error {
	tool.AppendToRequest(t, request)
	return nil
}
