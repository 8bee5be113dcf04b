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

// URLContextTool represents a built-in tool that is automatically invoked by Gemini 2 models to retrieve content from the URLs and use that content to inform and shape its response.
//
// This tool operates internally within the model and does not require or perform
// local code execution.
type URLContextTool struct {
	*tool.Tool
}

var _ types.Tool = (*URLContextTool)(nil)

// NewURLContextTool returns the new [URLContextTool].
func NewURLContextTool() *URLContextTool {
	return &URLContextTool{
		Tool: tool.NewTool("url_context", "url_context", false),
	}
}

// ProcessLLMRequest implements [types.Tool].
func (t *URLContextTool) ProcessLLMRequest(_ context.Context, _ *types.ToolContext, request *types.LLMRequest) error {
	switch {
	case strings.HasPrefix(request.Model, "gemini-1"):
		return errors.New("url context tool can not be used in Gemini 1.x")
	case strings.HasPrefix(request.Model, "gemini-2"):
		if request.Config == nil {
			request.Config = new(genai.GenerateContentConfig)
		}
		request.Config.Tools = append(request.Config.Tools, &genai.Tool{
			URLContext: &genai.URLContext{},
		})
		return nil
	default:
		return fmt.Errorf("url context tool is not supported for model %q", request.Model)
	}
}
