// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/tool"
	"github.com/zshehov/adk-python-sub001/types"
)

// GoogleSearchTool represents a built-in tool that is automatically invoked by Gemini 2 models to retrieve search results from Google Search.
//
// This tool operates internally within the model and does not require or perform
// local code execution.
type GoogleSearchTool struct {
	*tool.Tool
}

var _ types.Tool = (*GoogleSearchTool)(nil)

// NewGoogleSearchTool returns the new [GoogleSearchTool].
func NewGoogleSearchTool() *GoogleSearchTool {
	return &GoogleSearchTool{
		Tool: tool.NewTool("google_search", "google_search", false),
	}
}

// ProcessLLMRequest implements [types.Tool].
func (t *GoogleSearchTool) ProcessLLMRequest(_ context.Context, _ *types.ToolContext, request *types.LLMRequest) error {
	if request.Config == nil {
		request.Config = new(genai.GenerateContentConfig)
	}

	switch {
	case strings.HasPrefix(request.Model, "gemini-1"):
		if len(request.Config.Tools) > 0 {
			return errors.New("google search tool can not be used with other tools in Gemini 1.x")
		}
		request.Config.Tools = append(request.Config.Tools, &genai.Tool{
			GoogleSearchRetrieval: &genai.GoogleSearchRetrieval{},
		})
	case strings.HasPrefix(request.Model, "gemini-2"):
		request.Config.Tools = append(request.Config.Tools, &genai.Tool{
			GoogleSearch: &genai.GoogleSearch{},
		})
	default:
		return fmt.Errorf("google search tool is not supported for model %q", request.Model)
	}

	return nil
}
