// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"

	"github.com/zshehov/adk-python-sub001/types"
)

// ExitLoopToolName is the name of the tool returned by [NewExitLoopTool].
const ExitLoopToolName = "exit_loop"

// ExitLoop exits the loop.
//
// Call this function only when you are instructed to do so.
func ExitLoop(_ context.Context, _ map[string]any, toolCtx *types.ToolContext) (any, error) {
	toolCtx.Actions().Escalate = true
	return nil, nil
}

// NewExitLoopTool returns the tool a sub-agent of a loop agent calls to stop the loop.
func NewExitLoopTool() *FunctionTool {
	return NewFunctionTool(ExitLoopToolName, "Exits the loop.\n\nCall this function only when you are instructed to do so.", ExitLoop)
}
