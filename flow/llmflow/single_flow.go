// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package llmflow

import (
	"github.com/zshehov/adk-python-sub001/types"
)

// SingleFlow is the flow of an LLM agent that never transfers control.
//
// It calls the model and the tools until the model gives a final response.
type SingleFlow struct {
	*LLMFlow
}

var _ types.Flow = (*SingleFlow)(nil)

// NewSingleFlow creates a new [SingleFlow].
func NewSingleFlow(opts ...Option) *SingleFlow {
	return &SingleFlow{
		LLMFlow: NewLLMFlow(SingleRequestProcessors(), opts...),
	}
}

// SingleRequestProcessors returns the request processors of [SingleFlow].
//
// Contents come last so that the history reflects the function responses
// yielded by the auth processor.
func SingleRequestProcessors() []types.LLMRequestProcessor {
	return []types.LLMRequestProcessor{
		&BasicLLMRequestProcessor{},
		&AuthLLMRequestProcessor{},
		&InstructionsLLMRequestProcessor{},
		&IdentityLLMRequestProcessor{},
		&ContentLLMRequestProcessor{},
	}
}
