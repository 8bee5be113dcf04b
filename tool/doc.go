// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package tool provides the base infrastructure for tools that extend agent capabilities.
//
// A concrete tool embeds [*Tool] for its name, description and long-running
// flag, then overrides the methods it needs:
//
//	type WeatherTool struct {
//		*tool.Tool
//	}
//
//	func (t *WeatherTool) GetDeclaration() *genai.FunctionDeclaration {
//		return &genai.FunctionDeclaration{
//			Name:        t.Name(),
//			Description: t.Description(),
//			Parameters: &genai.Schema{
//				Type: genai.TypeObject,
//				Properties: map[string]*genai.Schema{
//					"location": {Type: genai.TypeString},
//				},
//				Required: []string{"location"},
//			},
//		}
//	}
//
//	func (t *WeatherTool) Run(ctx context.Context, args map[string]any, toolCtx *types.ToolContext) (any, error) {
//		return map[string]any{"forecast": "sunny"}, nil
//	}
//
//	func (t *WeatherTool) ProcessLLMRequest(ctx context.Context, toolCtx *types.ToolContext, request *types.LLMRequest) error {
//		tool.AppendToRequest(t, request)
//		return nil
//	}
//
// [Toolset] groups tools and selects them per invocation with a filter.
package tool
