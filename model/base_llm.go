// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"iter"
	"log/slog"
	"slices"
	"strings"

	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/types"
)

// Option configures a model adapter.
type Option interface {
	apply(*BaseLLM)
}

type optionFunc func(*BaseLLM)

func (o optionFunc) apply(m *BaseLLM) { o(m) }

// WithLogger sets the logger of the model.
func WithLogger(logger *slog.Logger) Option {
	return optionFunc(func(m *BaseLLM) {
		m.logger = logger
	})
}

// WithAPIKey sets the API key instead of reading it from the environment.
func WithAPIKey(apiKey string) Option {
	return optionFunc(func(m *BaseLLM) {
		m.apiKey = apiKey
	})
}

// BaseLLM holds what every model adapter shares.
//
// Its methods report that the operation is not implemented; adapters embed
// it and override what the provider supports.
type BaseLLM struct {
	modelName string
	apiKey    string
	logger    *slog.Logger
}

var _ types.Model = (*BaseLLM)(nil)

// NewBaseLLM returns the new [BaseLLM] with the specified model name.
func NewBaseLLM(modelName string, opts ...Option) *BaseLLM {
	m := &BaseLLM{
		modelName: modelName,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt.apply(m)
	}
	return m
}

// Name implements [types.Model].
func (m *BaseLLM) Name() string {
	return m.modelName
}

// Connect implements [types.Model].
func (m *BaseLLM) Connect(context.Context, *types.LLMRequest) (types.ModelConnection, error) {
	return nil, types.NotImplementedError("live connection is not supported for " + m.modelName)
}

// GenerateContent implements [types.Model].
func (m *BaseLLM) GenerateContent(context.Context, *types.LLMRequest) (*types.LLMResponse, error) {
	return nil, types.NotImplementedError("content generation is not supported for " + m.modelName)
}

// StreamGenerateContent implements [types.Model].
func (m *BaseLLM) StreamGenerateContent(context.Context, *types.LLMRequest) iter.Seq2[*types.LLMResponse, error] {
	return func(yield func(*types.LLMResponse, error) bool) {
		yield(nil, types.NotImplementedError("streaming generation is not supported for "+m.modelName))
	}
}

// ensureUserContent makes sure the conversation ends with a user turn.
//
// Models answer only after a user turn, so an empty history or one ending with
// a model turn gets a synthetic user prompt.
func ensureUserContent(contents []*genai.Content) []*genai.Content {
	contents = slices.Clip(contents)
	switch {
	case len(contents) == 0:
		return append(contents, genai.NewContentFromText(
			"Handle the requests as specified in the System Instruction.", genai.RoleUser))

	case !strings.EqualFold(contents[len(contents)-1].Role, genai.RoleUser):
		return append(contents, genai.NewContentFromText(
			"Continue processing previous requests as instructed. Exit or provide a summary if no more outputs are needed.", genai.RoleUser))

	default:
		return contents
	}
}
