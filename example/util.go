// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package example

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"google.golang.org/genai"
)

// Constant parts of the example string.
const (
	ExamplesIntro          = "<EXAMPLES>\nBegin few-shot\nThe following are examples of user queries and model responses using the available tools.\n\n"
	ExamplesEnd            = "End few-shot\nNow, try to follow these examples and complete the following conversation\n<EXAMPLES>"
	ExampleStart           = "EXAMPLE %d:\nBegin example\n"
	ExampleEnd             = "End example\n\n"
	UserPrefix             = "[user]\n"
	ModelPrefix            = "[model]\n"
	FunctionPrefix         = "```\n"
	FunctionCallPrefix     = "```tool_code\n"
	FunctionCallSuffix     = "\n```\n"
	FunctionResponsePrefix = "```tool_outputs\n"
	FunctionResponseSuffix = "\n```\n"
)

// ConvertExamplesToText converts a list of examples to a string that can be used in a system instruction.
//
// Gemini 2 models (and an unknown model) get plain code fences around tool
// calls and outputs; older models get tool_code/tool_outputs fences.
func ConvertExamplesToText(examples []*Example, model string) (string, error) {
	gemini2 := model == "" || strings.Contains(model, "gemini-2")

	var sb strings.Builder
	sb.WriteString(ExamplesIntro)
	for i, example := range examples {
		fmt.Fprintf(&sb, ExampleStart, i+1)
		sb.WriteString(UserPrefix)
		if example.Input != nil && len(example.Input.Parts) > 0 {
			texts := make([]string, 0, len(example.Input.Parts))
			for _, part := range example.Input.Parts {
				if part.Text != "" {
					texts = append(texts, part.Text)
				}
			}
			sb.WriteString(strings.Join(texts, "\n") + "\n\n")
		}

		previousRole := ""
		for _, content := range example.Output {
			role := UserPrefix
			if content.Role == genai.RoleModel {
				role = ModelPrefix
			}
			if role != previousRole {
				sb.WriteString(role)
			}
			previousRole = role

			for _, part := range content.Parts {
				switch {
				case part.FunctionCall != nil:
					prefix := FunctionCallPrefix
					if gemini2 {
						prefix = FunctionPrefix
					}
					fmt.Fprintf(&sb, "%s%s(%s)%s", prefix, part.FunctionCall.Name, formatArgs(part.FunctionCall.Args), FunctionCallSuffix)

				case part.FunctionResponse != nil:
					prefix := FunctionResponsePrefix
					if gemini2 {
						prefix = FunctionPrefix
					}
					data, err := json.Marshal(map[string]any{
						"name":     part.FunctionResponse.Name,
						"response": part.FunctionResponse.Response,
					}, json.Deterministic(true), jsontext.SpaceAfterComma(true), jsontext.SpaceAfterColon(true))
					if err != nil {
						return "", fmt.Errorf("formatting function response %s: %w", part.FunctionResponse.Name, err)
					}
					sb.WriteString(prefix + string(data) + FunctionResponseSuffix)

				case part.Text != "":
					sb.WriteString(part.Text + "\n")
				}
			}
		}

		sb.WriteString(ExampleEnd)
	}
	sb.WriteString(ExamplesEnd)

	return sb.String(), nil
}

// formatArgs renders function call arguments as sorted keyword arguments.
func formatArgs(args map[string]any) string {
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		switch v := args[k].(type) {
		case string:
			out = append(out, fmt.Sprintf("%s='%s'", k, v))
		default:
			out = append(out, fmt.Sprintf("%s=%v", k, v))
		}
	}
	return strings.Join(out, ", ")
}

// BuildExampleSI builds the system instruction listing the examples provider returns for query.
func BuildExampleSI(ctx context.Context, provider Provider, query, model string) (string, error) {
	examples, err := provider.GetExamples(ctx, query)
	if err != nil {
		return "", err
	}
	return ConvertExamplesToText(examples, model)
}
