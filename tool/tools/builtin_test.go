// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools_test

import (
	"testing"

	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/example"
	"github.com/zshehov/adk-python-sub001/tool/tools"
	"github.com/zshehov/adk-python-sub001/types"
)

func TestGoogleSearchTool(t *testing.T) {
	tests := map[string]struct {
		model     string
		existing  []*genai.Tool
		wantErr   bool
		wantCheck func(*genai.Tool) bool
	}{
		"gemini 2 uses google search": {
			model:     "gemini-2.0-flash",
			wantCheck: func(tool *genai.Tool) bool { return tool.GoogleSearch != nil },
		},
		"gemini 1 uses retrieval": {
			model:     "gemini-1.5-pro",
			wantCheck: func(tool *genai.Tool) bool { return tool.GoogleSearchRetrieval != nil },
		},
		"gemini 1 with other tools": {
			model:    "gemini-1.5-pro",
			existing: []*genai.Tool{{FunctionDeclarations: []*genai.FunctionDeclaration{{Name: "other"}}}},
			wantErr:  true,
		},
		"unsupported model": {
			model:   "claude-3-5-sonnet",
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			req := &types.LLMRequest{Model: tt.model}
			if tt.existing != nil {
				req.Config = &genai.GenerateContentConfig{Tools: tt.existing}
			}

			err := tools.NewGoogleSearchTool().ProcessLLMRequest(t.Context(), newToolContext(t), req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ProcessLLMRequest() error = %v, wantErr %t", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(req.Config.Tools) != 1 || !tt.wantCheck(req.Config.Tools[0]) {
				t.Errorf("unexpected request tools: %+v", req.Config.Tools)
			}
		})
	}
}

func TestURLContextTool(t *testing.T) {
	tests := map[string]struct {
		model   string
		wantErr bool
	}{
		"gemini 2":          {model: "gemini-2.5-pro"},
		"gemini 1":          {model: "gemini-1.5-flash", wantErr: true},
		"unsupported model": {model: "gpt-4o", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			req := &types.LLMRequest{Model: tt.model}

			err := tools.NewURLContextTool().ProcessLLMRequest(t.Context(), newToolContext(t), req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ProcessLLMRequest() error = %v, wantErr %t", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(req.Config.Tools) != 1 || req.Config.Tools[0].URLContext == nil {
				t.Errorf("unexpected request tools: %+v", req.Config.Tools)
			}
		})
	}
}

func TestExampleTool(t *testing.T) {
	examples := example.List{{
		Input:  genai.NewContentFromText("hello", genai.RoleUser),
		Output: []*genai.Content{genai.NewContentFromText("hi there", genai.RoleModel)},
	}}
	tool := tools.NewExampleTool(examples)

	t.Run("adds examples for the user query", func(t *testing.T) {
		req := &types.LLMRequest{Model: "gemini-2.0-flash"}
		toolCtx := newToolContext(t, types.WithUserContent(genai.NewContentFromText("greet me", genai.RoleUser)))

		if err := tool.ProcessLLMRequest(t.Context(), toolCtx, req); err != nil {
			t.Fatal(err)
		}
		want, err := example.BuildExampleSI(t.Context(), examples, "greet me", "gemini-2.0-flash")
		if err != nil {
			t.Fatal(err)
		}
		if got := req.Config.SystemInstruction.Parts[0].Text; got != want {
			t.Errorf("system instruction = %q, want %q", got, want)
		}
	})

	t.Run("no user content", func(t *testing.T) {
		req := &types.LLMRequest{Model: "gemini-2.0-flash"}
		if err := tool.ProcessLLMRequest(t.Context(), newToolContext(t), req); err != nil {
			t.Fatal(err)
		}
		if req.Config != nil && req.Config.SystemInstruction != nil {
			t.Errorf("system instruction set without user content: %+v", req.Config.SystemInstruction)
		}
	})
}
