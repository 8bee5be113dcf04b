// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package tools provides ready-to-use tool implementations for agents.
//
// # Function Tools
//
//   - [FunctionTool] wraps a [Function] with an explicit parameter schema.
//   - [NewTypedFunctionTool] reflects the parameter schema from a Go struct.
//   - [LongRunningFunctionTool] answers asynchronously through later function responses.
//   - [AuthenticatedFunctionTool] obtains a credential before running.
//   - [RetryTool] retries any tool with exponential back-off.
//
// # Control Tools
//
//   - [NewTransferToAgentTool] hands control to another agent of the tree.
//   - [NewExitLoopTool] escalates out of a loop agent.
//   - [NewGetUserChoiceTool] waits for the user to pick an option.
//   - [AgentTool] calls an agent as a function.
//
// # Context Tools
//
//   - [LoadMemoryTool] and [PreloadMemoryTool] read the memory service.
//   - [LoadArtifactsTool] attaches session artifacts to the request.
//   - [ExampleTool] adds few-shot examples to the system instruction.
//   - [GoogleSearchTool] and [URLContextTool] enable Gemini built-in tools.
//
// A typed function tool:
//
//	type weatherArgs struct {
//		City string `json:"city" jsonschema:"description=the city to look up"`
//	}
//
//	weather, err := tools.NewTypedFunctionTool("get_weather", "Returns the weather of a city.",
//		func(ctx context.Context, args weatherArgs, toolCtx *types.ToolContext) (map[string]any, error) {
//			return map[string]any{"forecast": "sunny in " + args.City}, nil
//		})
package tools
