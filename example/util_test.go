// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package example_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/example"
)

type queryProvider map[string][]*example.Example

func (p queryProvider) GetExamples(_ context.Context, query string) ([]*example.Example, error) {
	return p[query], nil
}

func TestBuildExampleSI(t *testing.T) {
	textExample := &example.Example{
		Input: genai.NewContentFromText("test1", genai.RoleUser),
		Output: []*genai.Content{
			genai.NewContentFromText("response1", genai.RoleModel),
		},
	}

	tests := map[string]struct {
		provider example.Provider
		query    string
		model    string
		want     string
	}{
		"List": {
			provider: example.List{textExample},
			query:    "anything",
			model:    "gemini-1.5-flash",
			want: "<EXAMPLES>\nBegin few-shot\nThe following are examples of user" +
				" queries and model responses using the available tools.\n\nEXAMPLE" +
				" 1:\nBegin example\n[user]\ntest1\n\n[model]\nresponse1\nEnd" +
				" example\n\nEnd few-shot\nNow, try to follow these examples and" +
				" complete the following conversation\n<EXAMPLES>",
		},
		"ProviderNoMatch": {
			provider: queryProvider{"test": {textExample}},
			query:    "other",
			model:    "gemini-1.5-flash",
			want:     example.ExamplesIntro + example.ExamplesEnd,
		},
		"FunctionCallGemini1": {
			provider: example.List{{
				Input: genai.NewContentFromText("weather?", genai.RoleUser),
				Output: []*genai.Content{
					genai.NewContentFromFunctionCall("get_weather", map[string]any{"unit": "c", "city": "Paris"}, genai.RoleModel),
					genai.NewContentFromFunctionResponse("get_weather", map[string]any{"temp": 21}, genai.RoleUser),
					genai.NewContentFromText("It is 21 degrees.", genai.RoleModel),
				},
			}},
			model: "gemini-1.5-pro",
			want: example.ExamplesIntro +
				"EXAMPLE 1:\nBegin example\n[user]\nweather?\n\n" +
				"[model]\n```tool_code\nget_weather(city='Paris', unit='c')\n```\n" +
				"[user]\n```tool_outputs\n{\"name\": \"get_weather\", \"response\": {\"temp\": 21}}\n```\n" +
				"[model]\nIt is 21 degrees.\n" +
				"End example\n\n" +
				example.ExamplesEnd,
		},
		"FunctionCallGemini2": {
			provider: example.List{{
				Input: genai.NewContentFromText("weather?", genai.RoleUser),
				Output: []*genai.Content{
					genai.NewContentFromFunctionCall("get_weather", map[string]any{"city": "Paris"}, genai.RoleModel),
				},
			}},
			model: "gemini-2.0-flash",
			want: example.ExamplesIntro +
				"EXAMPLE 1:\nBegin example\n[user]\nweather?\n\n" +
				"[model]\n```\nget_weather(city='Paris')\n```\n" +
				"End example\n\n" +
				example.ExamplesEnd,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := example.BuildExampleSI(t.Context(), tt.provider, tt.query, tt.model)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("BuildExampleSI() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
