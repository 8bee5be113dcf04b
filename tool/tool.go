// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tool

import (
	"context"

	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/types"
)

// Tool holds the name, description and long-running flag shared by all tools.
//
// Concrete tools embed *Tool and override GetDeclaration, Run and ProcessLLMRequest.
type Tool struct {
	// The name of the tool.
	name string

	// The description of the tool.
	description string

	// Whether the tool is a long running operation, which typically returns a
	// resource id first and finishes the operation later.
	isLongRunning bool
}

var _ types.Tool = (*Tool)(nil)

// NewTool returns the tool with the given name, description and isLongRunning.
func NewTool(name, description string, isLongRunning bool) *Tool {
	return &Tool{
		name:          name,
		description:   description,
		isLongRunning: isLongRunning,
	}
}

// Name implements [types.Tool].
func (t *Tool) Name() string {
	return t.name
}

// Description implements [types.Tool].
func (t *Tool) Description() string {
	return t.description
}

// IsLongRunning implements [types.Tool].
func (t *Tool) IsLongRunning() bool {
	return t.isLongRunning
}

// SetLongRunning marks the tool as a long running operation.
func (t *Tool) SetLongRunning(isLongRunning bool) {
	t.isLongRunning = isLongRunning
}

// GetDeclaration implements [types.Tool].
//
// The base tool is not exposed to the model.
func (t *Tool) GetDeclaration() *genai.FunctionDeclaration {
	return nil
}

// Run implements [types.Tool].
func (t *Tool) Run(context.Context, map[string]any, *types.ToolContext) (any, error) {
	return nil, types.NotImplementedError("tool " + t.name + " does not implement Run")
}

// ProcessLLMRequest implements [types.Tool].
func (t *Tool) ProcessLLMRequest(context.Context, *types.ToolContext, *types.LLMRequest) error {
	return nil
}

// AppendToRequest registers the declaration of tool in request and maps its name to tool.
//
// Embedding tools call it from their ProcessLLMRequest, since the embedded [Tool]
// cannot see the declaration of the outer type.
func AppendToRequest(tool types.Tool, request *types.LLMRequest) {
	request.AppendFunctionDeclaration(tool, tool.GetDeclaration())
}
