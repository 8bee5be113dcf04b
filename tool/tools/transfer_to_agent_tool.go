// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/types"
)

// TransferToAgentToolName is the name of the tool returned by [NewTransferToAgentTool].
const TransferToAgentToolName = "transfer_to_agent"

// TransferToAgent transfers the question to another agent.
//
// The flow resolves the agent named by the "agent_name" argument and runs it
// once the function response is emitted.
func TransferToAgent(_ context.Context, args map[string]any, toolCtx *types.ToolContext) (any, error) {
	name, ok := args["agent_name"].(string)
	if !ok || name == "" {
		return nil, fmt.Errorf("%s: agent_name must be a non-empty string, got %T", TransferToAgentToolName, args["agent_name"])
	}
	toolCtx.Actions().TransferToAgent = name
	return nil, nil
}

// NewTransferToAgentTool returns the tool the model calls to hand control to another agent.
func NewTransferToAgentTool() *FunctionTool {
	return NewFunctionTool(
		TransferToAgentToolName,
		"Transfer the question to another agent.\n\n"+
			"This tool hands off control to another agent when it's more suitable to answer the user's question according to the agent's description.",
		TransferToAgent,
		WithParameters(&genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"agent_name": {
					Type:        genai.TypeString,
					Description: "the agent name to transfer to.",
				},
			},
			Required: []string{"agent_name"},
		}),
	)
}
