// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"strings"

	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/types"
)

const (
	// GeminiDefaultModel is the model used by [NewGemini] when no name is given.
	GeminiDefaultModel = "gemini-2.0-flash"

	// EnvGoogleAPIKey is the environment variable name for the Google AI API key.
	EnvGoogleAPIKey = "GOOGLE_API_KEY"

	// liveAPIVersion is the API version serving the bidirectional live endpoint.
	liveAPIVersion = "v1alpha"
)

// Gemini is the [types.Model] backed by the Gemini API.
type Gemini struct {
	*BaseLLM

	client *genai.Client
}

var _ types.Model = (*Gemini)(nil)

// NewGemini creates a new [Gemini] model.
//
// The API key is read from [EnvGoogleAPIKey] unless set with [WithAPIKey].
func NewGemini(ctx context.Context, modelName string, opts ...Option) (*Gemini, error) {
	if modelName == "" {
		modelName = GeminiDefaultModel
	}
	base := NewBaseLLM(modelName, opts...)
	if base.apiKey == "" {
		base.apiKey = os.Getenv(EnvGoogleAPIKey)
	}
	if base.apiKey == "" {
		return nil, fmt.Errorf("either the api key option or the %q environment variable must be set", EnvGoogleAPIKey)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  base.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Gemini{
		BaseLLM: base,
		client:  client,
	}, nil
}

func (m *Gemini) modelFor(request *types.LLMRequest) string {
	if request.Model != "" {
		return request.Model
	}
	return m.modelName
}

// GenerateContent implements [types.Model].
func (m *Gemini) GenerateContent(ctx context.Context, request *types.LLMRequest) (*types.LLMResponse, error) {
	model := m.modelFor(request)
	contents := ensureUserContent(request.Contents)
	m.logger.DebugContext(ctx, "sending request", slog.String("model", model), slog.Int("contents", len(contents)))

	resp, err := m.client.Models.GenerateContent(ctx, model, contents, request.Config)
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}
	m.logger.DebugContext(ctx, "response", buildResponseLog(resp))

	return types.CreateLLMResponse(resp), nil
}

// StreamGenerateContent implements [types.Model].
func (m *Gemini) StreamGenerateContent(ctx context.Context, request *types.LLMRequest) iter.Seq2[*types.LLMResponse, error] {
	model := m.modelFor(request)
	contents := ensureUserContent(request.Contents)
	m.logger.DebugContext(ctx, "sending streaming request", slog.String("model", model), slog.Int("contents", len(contents)))

	return aggregateStream(m.client.Models.GenerateContentStream(ctx, model, contents, request.Config))
}

// Connect implements [types.Model].
//
// The live connection gets the system instruction and tools of the request.
func (m *Gemini) Connect(ctx context.Context, request *types.LLMRequest) (types.ModelConnection, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      m.apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{APIVersion: liveAPIVersion},
	})
	if err != nil {
		return nil, fmt.Errorf("create live genai client: %w", err)
	}

	config := &genai.LiveConnectConfig{}
	if request.LiveConnectConfig != nil {
		*config = *request.LiveConnectConfig
	}
	if request.Config != nil {
		config.SystemInstruction = request.Config.SystemInstruction
		config.Tools = request.Config.Tools
	}

	session, err := client.Live.Connect(ctx, m.modelFor(request), config)
	if err != nil {
		return nil, fmt.Errorf("gemini live connect: %w", err)
	}
	return newGeminiConnection(session, m.logger), nil
}

// aggregateStream turns a stream of responses into [types.LLMResponse]s.
//
// Text chunks are yielded as partial responses. The accumulated text is
// yielded again as one complete response before the next non-text response,
// and at the end of a stream that finished normally, where it carries the
// turn completion.
func aggregateStream(stream iter.Seq2[*genai.GenerateContentResponse, error]) iter.Seq2[*types.LLMResponse, error] {
	return func(yield func(*types.LLMResponse, error) bool) {
		var (
			text strings.Builder
			last *genai.GenerateContentResponse
		)
		for resp, err := range stream {
			if err != nil {
				yield(nil, fmt.Errorf("gemini stream: %w", err))
				return
			}
			if resp == nil {
				continue
			}
			last = resp

			response := types.CreateLLMResponse(resp)
			switch {
			case hasText(response):
				text.WriteString(response.Content.Parts[0].Text)
				response.Partial = true

			case text.Len() > 0 && !hasInlineData(response):
				if !yield(newTextResponse(text.String(), false), nil) {
					return
				}
				text.Reset()
			}
			if !yield(response, nil) {
				return
			}
		}

		if text.Len() > 0 && finishedWithStop(last) {
			yield(newTextResponse(text.String(), true), nil)
		}
	}
}

func newTextResponse(text string, turnComplete bool) *types.LLMResponse {
	return &types.LLMResponse{
		Content:      genai.NewContentFromText(text, genai.RoleModel),
		TurnComplete: turnComplete,
	}
}

func hasText(r *types.LLMResponse) bool {
	return r.Content != nil && len(r.Content.Parts) > 0 && r.Content.Parts[0].Text != ""
}

func hasInlineData(r *types.LLMResponse) bool {
	return r.Content != nil && len(r.Content.Parts) > 0 && r.Content.Parts[0].InlineData != nil
}

func finishedWithStop(r *genai.GenerateContentResponse) bool {
	return r != nil && len(r.Candidates) > 0 && r.Candidates[0].FinishReason == genai.FinishReasonStop
}

func buildResponseLog(resp *genai.GenerateContentResponse) slog.Attr {
	calls := resp.FunctionCalls()
	callTexts := make([]string, len(calls))
	for i, call := range calls {
		callTexts[i] = fmt.Sprintf("name: %s, args: %v", call.Name, call.Args)
	}

	return slog.Group("response",
		slog.String("text", resp.Text()),
		slog.String("function_calls", strings.Join(callTexts, "\n")),
	)
}
