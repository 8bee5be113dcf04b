// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"

	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/types"
)

// GetUserChoice provides the options to the user and asks them to choose one.
//
// The answer arrives later as the function response of the call.
func GetUserChoice(_ context.Context, _ map[string]any, toolCtx *types.ToolContext) (any, error) {
	toolCtx.Actions().SkipSummarization = true
	return nil, nil
}

// NewGetUserChoiceTool returns the long running tool wrapping [GetUserChoice].
func NewGetUserChoiceTool() *LongRunningFunctionTool {
	return NewLongRunningFunctionTool(
		"get_user_choice",
		"Provides the options to the user and asks them to choose one.",
		GetUserChoice,
		WithParameters(&genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"options": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
			},
			Required: []string{"options"},
		}),
	)
}
