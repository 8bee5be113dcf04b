// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"

	"github.com/zshehov/adk-python-sub001/example"
	"github.com/zshehov/adk-python-sub001/tool"
	"github.com/zshehov/adk-python-sub001/types"
)

// ExampleTool represents a tool that adds (few-shot) examples to the [types.LLMRequest].
//
// It is never called by the model: name and description are unused.
type ExampleTool struct {
	*tool.Tool

	examples example.Provider
}

var _ types.Tool = (*ExampleTool)(nil)

// NewExampleTool creates a new ExampleTool with the given examples.
//
// Pass an [example.List] for fixed examples.
func NewExampleTool(examples example.Provider) *ExampleTool {
	return &ExampleTool{
		Tool:     tool.NewTool("example_tool", "example tool", false),
		examples: examples,
	}
}

// ProcessLLMRequest implements [types.Tool].
func (t *ExampleTool) ProcessLLMRequest(ctx context.Context, toolCtx *types.ToolContext, request *types.LLMRequest) error {
	userContent := toolCtx.UserContent()
	if userContent == nil || len(userContent.Parts) == 0 || userContent.Parts[0].Text == "" {
		return nil
	}

	instructions, err := example.BuildExampleSI(ctx, t.examples, userContent.Parts[0].Text, request.Model)
	if err != nil {
		return err
	}
	request.AppendInstructions(instructions)

	return nil
}
