// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zshehov/adk-python-sub001/tool"
	"github.com/zshehov/adk-python-sub001/types"
)

// PreloadMemoryTool represents a tool that preloads the memory for the current user.
//
// It is never called by the model. Each request gets the memories matching
// the user query added to its system instruction.
//
// Only the text parts of the memories are used.
type PreloadMemoryTool struct {
	*tool.Tool
}

var _ types.Tool = (*PreloadMemoryTool)(nil)

// NewPreloadMemoryTool returns the new [PreloadMemoryTool].
func NewPreloadMemoryTool() *PreloadMemoryTool {
	return &PreloadMemoryTool{
		Tool: tool.NewTool("preload_memory", "preload_memory", false),
	}
}

// ProcessLLMRequest implements [types.Tool].
func (t *PreloadMemoryTool) ProcessLLMRequest(ctx context.Context, toolCtx *types.ToolContext, request *types.LLMRequest) error {
	userContent := toolCtx.UserContent()
	if userContent == nil || len(userContent.Parts) == 0 || userContent.Parts[0].Text == "" {
		return nil
	}

	response, err := toolCtx.SearchMemory(ctx, userContent.Parts[0].Text)
	if err != nil {
		return err
	}

	var lines []string
	for _, memory := range response.Memories {
		if !memory.Timestamp.IsZero() {
			lines = append(lines, "Time: "+memory.Timestamp.Format(time.RFC3339))
		}

		text := extractText(memory, " ")
		switch {
		case text == "":
		case memory.Author != "":
			lines = append(lines, fmt.Sprintf("%s: %s", memory.Author, text))
		default:
			lines = append(lines, text)
		}
	}
	if len(lines) == 0 {
		return nil
	}

	request.AppendInstructions("The following content is from your previous conversations with the user.\n" +
		"They may be useful for answering the user's current query.\n" +
		"<PAST_CONVERSATIONS>\n" +
		strings.Join(lines, "\n") +
		"\n</PAST_CONVERSATIONS>\n")

	return nil
}

// extractText joins the text parts of the memory entry with splitter.
func extractText(memory *types.MemoryEntry, splitter string) string {
	if memory.Content == nil {
		return ""
	}

	texts := make([]string, 0, len(memory.Content.Parts))
	for _, part := range memory.Content.Parts {
		if part.Text != "" {
			texts = append(texts, part.Text)
		}
	}
	return strings.Join(texts, splitter)
}
