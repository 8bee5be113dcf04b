// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tools_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/agent"
	"github.com/zshehov/adk-python-sub001/internal/adktest"
	"github.com/zshehov/adk-python-sub001/tool/tools"
)

func TestAgentTool(t *testing.T) {
	model := adktest.NewModel(adktest.TextResponse("42"))
	helper, err := agent.NewLLMAgent(t.Context(), "helper",
		agent.WithModel(model),
		agent.WithDescription("Answers questions."),
		agent.WithOutputKey("answer"),
	)
	if err != nil {
		t.Fatal(err)
	}
	tool := tools.NewAgentTool(helper, tools.WithSkipSummarization(true))

	toolCtx := newToolContext(t)
	got, err := tool.Run(t.Context(), map[string]any{"request": "compute"}, toolCtx)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got != "42" {
		t.Errorf("Run() = %v, want %q", got, "42")
	}
	if v, _ := toolCtx.State().Get("answer"); v != "42" {
		t.Errorf("state answer = %v, want %q", v, "42")
	}
	if !toolCtx.Actions().SkipSummarization {
		t.Error("SkipSummarization = false, want true")
	}

	sent := adktest.SummarizeContent(model.Requests()[0].Contents[0])
	if diff := cmp.Diff([]string{"compute"}, sent); diff != "" {
		t.Errorf("agent input mismatch (-want +got):\n%s", diff)
	}
}

func TestAgentToolDeclaration(t *testing.T) {
	schema := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: map[string]*genai.Schema{"city": {Type: genai.TypeString}},
	}
	tests := map[string]struct {
		opts []agent.LLMAgentOption
		want *genai.Schema
	}{
		"default request parameter": {
			want: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{"request": {Type: genai.TypeString}},
				Required:   []string{"request"},
			},
		},
		"input schema": {
			opts: []agent.LLMAgentOption{agent.WithInputSchema(schema)},
			want: schema,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			helper, err := agent.NewLLMAgent(t.Context(), "helper", tt.opts...)
			if err != nil {
				t.Fatal(err)
			}

			decl := tools.NewAgentTool(helper).GetDeclaration()
			if decl.Name != "helper" {
				t.Errorf("declaration name = %q, want %q", decl.Name, "helper")
			}
			if diff := cmp.Diff(tt.want, decl.Parameters); diff != "" {
				t.Errorf("parameters mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
