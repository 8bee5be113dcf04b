// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package llmflow

import (
	"github.com/zshehov/adk-python-sub001/types"
)

// AutoFlow is [SingleFlow] with agent transfer capability.
//
// Agent transfer is allowed in the following direction:
//
//  1. from parent to sub-agent;
//  2. from sub-agent to parent;
//  3. from sub-agent to its peer agents;
//
// Transfers to the parent and to the peers are offered only when the parent is
// an LLM agent, and each can be disabled on the agent.
//
// The transferee agent runs in the same invocation. Whether it stays the
// active agent for the next user message is decided by the runner from the
// transfer settings of the agents between it and the root.
type AutoFlow struct {
	*LLMFlow
}

var _ types.Flow = (*AutoFlow)(nil)

// NewAutoFlow creates a new [AutoFlow].
func NewAutoFlow(opts ...Option) *AutoFlow {
	return &AutoFlow{
		LLMFlow: NewLLMFlow(AutoRequestProcessors(), opts...),
	}
}

// AutoRequestProcessors returns the request processors of [AutoFlow].
func AutoRequestProcessors() []types.LLMRequestProcessor {
	return append(SingleRequestProcessors(), &AgentTransferLLMRequestProcessor{})
}
