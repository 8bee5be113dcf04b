// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/tool"
	"github.com/zshehov/adk-python-sub001/types"
)

const loadMemoryInstruction = `
You have memory. You can use it to answer questions. If any questions need
you to look up the memory, you should call load_memory function with a query.
`

// LoadMemory loads the memory for the current user.
func LoadMemory(ctx context.Context, args map[string]any, toolCtx *types.ToolContext) (any, error) {
	query, ok := args["query"].(string)
	if !ok {
		return nil, fmt.Errorf("load_memory: query must be a string, got %T", args["query"])
	}

	response, err := toolCtx.SearchMemory(ctx, query)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"memories": response.Memories,
	}, nil
}

// LoadMemoryTool represents a tool that loads the memory for the current user.
//
// Only the text parts of the memories are used.
type LoadMemoryTool struct {
	*FunctionTool
}

var _ types.Tool = (*LoadMemoryTool)(nil)

// NewLoadMemoryTool returns the new [LoadMemoryTool].
func NewLoadMemoryTool() *LoadMemoryTool {
	return &LoadMemoryTool{
		FunctionTool: NewFunctionTool(
			"load_memory",
			heredoc.Doc(`
				Loads the memory for the current user.

				Returns the memories matching the query.`),
			LoadMemory,
			WithParameters(&genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"query": {Type: genai.TypeString},
				},
				Required: []string{"query"},
			}),
		),
	}
}

// ProcessLLMRequest implements [types.Tool].
func (t *LoadMemoryTool) ProcessLLMRequest(_ context.Context, _ *types.ToolContext, request *types.LLMRequest) error {
	tool.AppendToRequest(t, request)
	request.AppendInstructions(loadMemoryInstruction)
	return nil
}
