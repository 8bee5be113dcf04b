// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package llmflow

import (
	"context"
	"fmt"
	"iter"

	deepcopy "github.com/tiendc/go-deepcopy"
	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/types"
)

// BasicLLMRequestProcessor sets the model, the generation config and the output schema of the request.
type BasicLLMRequestProcessor struct{}

var _ types.LLMRequestProcessor = (*BasicLLMRequestProcessor)(nil)

// Run implements [types.LLMRequestProcessor].
func (p *BasicLLMRequestProcessor) Run(ctx context.Context, ictx *types.InvocationContext, request *types.LLMRequest) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		llmAgent, ok := ictx.Agent.AsLLMAgent()
		if !ok {
			return
		}

		model, err := llmAgent.CanonicalModel(ctx)
		if err != nil {
			yield(nil, err)
			return
		}
		request.Model = model.Name()

		// The request is mutated by later processors and tools, the agent config is not.
		config := &genai.GenerateContentConfig{}
		if agentConfig := llmAgent.GenerateContentConfig(); agentConfig != nil {
			if err := deepcopy.Copy(config, agentConfig); err != nil {
				yield(nil, fmt.Errorf("copying generate content config of %s: %w", llmAgent.Name(), err))
				return
			}
		}
		request.Config = config

		if schema := llmAgent.OutputSchema(); schema != nil {
			request.SetOutputSchema(schema)
		}

		if request.LiveConnectConfig == nil {
			request.LiveConnectConfig = &genai.LiveConnectConfig{}
		}
		if runConfig := ictx.RunConfig; runConfig != nil {
			request.LiveConnectConfig.ResponseModalities = runConfig.ResponseModalities
			request.LiveConnectConfig.SpeechConfig = runConfig.SpeechConfig
		}
	}
}
