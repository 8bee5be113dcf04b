// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/bytedance/sonic"
	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/types"
)

const (
	// ClaudeDefaultModel is the default model name for [Claude].
	ClaudeDefaultModel = anthropic.ModelClaudeSonnet4_5

	// EnvAnthropicAPIKey is the environment variable name for the Anthropic API key.
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"

	// ClaudeDefaultMaxTokens is the response token limit used when the request sets none.
	ClaudeDefaultMaxTokens = 8192
)

// Claude is the [types.Model] backed by the Anthropic Messages API.
//
// Live connections are not supported.
type Claude struct {
	*BaseLLM

	client anthropic.Client
}

var _ types.Model = (*Claude)(nil)

// NewClaude creates a new [Claude] model.
//
// The API key is read from [EnvAnthropicAPIKey] unless set with [WithAPIKey].
func NewClaude(_ context.Context, modelName string, opts ...Option) (*Claude, error) {
	if modelName == "" {
		modelName = string(ClaudeDefaultModel)
	}
	base := NewBaseLLM(modelName, opts...)
	if base.apiKey == "" {
		base.apiKey = os.Getenv(EnvAnthropicAPIKey)
	}
	if base.apiKey == "" {
		return nil, fmt.Errorf("either the api key option or the %q environment variable must be set", EnvAnthropicAPIKey)
	}

	return &Claude{
		BaseLLM: base,
		client:  anthropic.NewClient(option.WithAPIKey(base.apiKey)),
	}, nil
}

// GenerateContent implements [types.Model].
func (m *Claude) GenerateContent(ctx context.Context, request *types.LLMRequest) (*types.LLMResponse, error) {
	params, err := m.messageParams(request)
	if err != nil {
		return nil, err
	}
	m.logger.DebugContext(ctx, "sending request", slog.String("model", string(params.Model)), slog.Int("messages", len(params.Messages)))

	message, err := m.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("claude messages: %w", err)
	}
	return claudeMessageToLLMResponse(message)
}

// StreamGenerateContent implements [types.Model].
//
// Text deltas are yielded as partial responses, followed by the whole message.
func (m *Claude) StreamGenerateContent(ctx context.Context, request *types.LLMRequest) iter.Seq2[*types.LLMResponse, error] {
	return func(yield func(*types.LLMResponse, error) bool) {
		params, err := m.messageParams(request)
		if err != nil {
			yield(nil, err)
			return
		}
		m.logger.DebugContext(ctx, "sending streaming request", slog.String("model", string(params.Model)), slog.Int("messages", len(params.Messages)))

		stream := m.client.Messages.NewStreaming(ctx, params)
		defer stream.Close()

		var message anthropic.Message
		for stream.Next() {
			event := stream.Current()
			if err := message.Accumulate(event); err != nil {
				yield(nil, fmt.Errorf("accumulate claude stream: %w", err))
				return
			}
			if event.Type != "content_block_delta" || event.Delta.Type != "text_delta" || event.Delta.Text == "" {
				continue
			}
			partial := newTextResponse(event.Delta.Text, false)
			partial.Partial = true
			if !yield(partial, nil) {
				return
			}
		}
		if err := stream.Err(); err != nil {
			yield(nil, fmt.Errorf("claude stream: %w", err))
			return
		}

		resp, err := claudeMessageToLLMResponse(&message)
		if err != nil {
			yield(nil, err)
			return
		}
		resp.TurnComplete = true
		yield(resp, nil)
	}
}

func (m *Claude) messageParams(request *types.LLMRequest) (anthropic.MessageNewParams, error) {
	model := request.Model
	if model == "" {
		model = m.modelName
	}

	contents := ensureUserContent(request.Contents)
	messages := make([]anthropic.MessageParam, 0, len(contents))
	for _, content := range contents {
		msg, err := contentToClaudeMessage(content)
		if err != nil {
			return anthropic.MessageNewParams{}, err
		}
		messages = append(messages, msg)
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		Messages:  messages,
		MaxTokens: ClaudeDefaultMaxTokens,
	}
	if system := request.SystemInstruction(); system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	config := request.Config
	if config == nil {
		return params, nil
	}
	if config.MaxOutputTokens > 0 {
		params.MaxTokens = int64(config.MaxOutputTokens)
	}
	if config.Temperature != nil {
		params.Temperature = anthropic.Float(float64(*config.Temperature))
	}
	if config.TopP != nil {
		params.TopP = anthropic.Float(float64(*config.TopP))
	}
	if config.TopK != nil {
		params.TopK = anthropic.Int(int64(*config.TopK))
	}
	for _, tool := range config.Tools {
		for _, decl := range tool.FunctionDeclarations {
			toolParam, err := functionDeclarationToClaudeTool(decl)
			if err != nil {
				return anthropic.MessageNewParams{}, err
			}
			params.Tools = append(params.Tools, toolParam)
		}
	}

	return params, nil
}

func claudeRole(role string) anthropic.MessageParamRole {
	if role == genai.RoleModel || role == "assistant" {
		return anthropic.MessageParamRoleAssistant
	}
	return anthropic.MessageParamRoleUser
}

func contentToClaudeMessage(content *genai.Content) (anthropic.MessageParam, error) {
	blocks := make([]anthropic.ContentBlockParamUnion, 0, len(content.Parts))
	for _, part := range content.Parts {
		block, err := partToClaudeBlock(part)
		if err != nil {
			return anthropic.MessageParam{}, err
		}
		blocks = append(blocks, block)
	}

	return anthropic.MessageParam{
		Role:    claudeRole(content.Role),
		Content: blocks,
	}, nil
}

func partToClaudeBlock(part *genai.Part) (anthropic.ContentBlockParamUnion, error) {
	switch {
	case part.Text != "":
		return anthropic.NewTextBlock(part.Text), nil

	case part.FunctionCall != nil:
		call := part.FunctionCall
		if call.Name == "" {
			return anthropic.ContentBlockParamUnion{}, errors.New("function call name is empty")
		}
		return anthropic.NewToolUseBlock(call.ID, call.Args, call.Name), nil

	case part.FunctionResponse != nil:
		resp := part.FunctionResponse
		var content string
		if result, ok := resp.Response["result"]; ok {
			content = fmt.Sprint(result)
		} else {
			b, err := sonic.ConfigStd.Marshal(resp.Response)
			if err != nil {
				return anthropic.ContentBlockParamUnion{}, fmt.Errorf("marshal function response %s: %w", resp.Name, err)
			}
			content = string(b)
		}
		return anthropic.NewToolResultBlock(resp.ID, content, false), nil

	case part.InlineData != nil && strings.HasPrefix(part.InlineData.MIMEType, "image/"):
		data := base64.StdEncoding.EncodeToString(part.InlineData.Data)
		return anthropic.NewImageBlockBase64(part.InlineData.MIMEType, data), nil
	}

	return anthropic.ContentBlockParamUnion{}, types.NotImplementedError("unsupported part for claude")
}

func functionDeclarationToClaudeTool(decl *genai.FunctionDeclaration) (anthropic.ToolUnionParam, error) {
	if decl.Name == "" {
		return anthropic.ToolUnionParam{}, errors.New("function declaration name is empty")
	}

	inputSchema := anthropic.ToolInputSchemaParam{
		Properties: map[string]any{},
	}
	if params := decl.Parameters; params != nil {
		props := make(map[string]any, len(params.Properties))
		for name, prop := range params.Properties {
			props[name] = schemaToJSON(prop)
		}
		inputSchema.Properties = props
		inputSchema.Required = params.Required
	}

	tool := anthropic.ToolUnionParamOfTool(inputSchema, decl.Name)
	if decl.Description != "" {
		tool.OfTool.Description = anthropic.String(decl.Description)
	}
	return tool, nil
}

// schemaToJSON converts s into a JSON schema object with lower case type names.
func schemaToJSON(s *genai.Schema) map[string]any {
	if s == nil {
		return nil
	}

	out := make(map[string]any)
	if s.Type != "" {
		out["type"] = strings.ToLower(string(s.Type))
	}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		out["enum"] = s.Enum
	}
	if s.Items != nil {
		out["items"] = schemaToJSON(s.Items)
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = schemaToJSON(prop)
		}
		out["properties"] = props
	}
	if len(s.Required) > 0 {
		out["required"] = s.Required
	}
	return out
}

func claudeMessageToLLMResponse(message *anthropic.Message) (*types.LLMResponse, error) {
	parts := make([]*genai.Part, 0, len(message.Content))
	for _, block := range message.Content {
		switch block.Type {
		case "text":
			parts = append(parts, genai.NewPartFromText(block.Text))

		case "tool_use":
			var args map[string]any
			if len(block.Input) > 0 {
				if err := sonic.ConfigFastest.Unmarshal(block.Input, &args); err != nil {
					return nil, fmt.Errorf("unmarshal tool_use input of %s: %w", block.Name, err)
				}
			}
			part := genai.NewPartFromFunctionCall(block.Name, args)
			part.FunctionCall.ID = block.ID
			parts = append(parts, part)
		}
	}

	input, output := int32(message.Usage.InputTokens), int32(message.Usage.OutputTokens)
	return &types.LLMResponse{
		Content: genai.NewContentFromParts(parts, genai.RoleModel),
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     input,
			CandidatesTokenCount: output,
			TotalTokenCount:      input + output,
		},
	}, nil
}
