// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"context"
	"iter"

	"google.golang.org/genai"
)

// AgentCallback represents a callback function that can be invoked before or after an agent runs.
//
// Returning non-nil content skips the rest of the callbacks and becomes an
// event authored by the agent.
type AgentCallback func(cctx *CallbackContext) (*genai.Content, error)

// Agent represents an all agents in Agent Development Kit.
//
// Implementations embed [*BaseAgent], which provides the agent tree and the
// callback handling around Execute.
type Agent interface {
	// Name returns the agent's name.
	//
	// Agent name must be an identifier and unique among its siblings.
	// Agent name cannot be "user", since it's reserved for end-user's input.
	Name() string

	// Description returns the description about the agent's capability.
	//
	// The model uses this to determine whether to delegate control to the agent.
	// One-line description is enough and preferred.
	Description() string

	// ParentAgent is the parent agent of this agent.
	//
	// Note that an agent can ONLY be added as sub-agent once.
	//
	// If you want to add one agent twice as sub-agent, consider to create two agent
	// instances with identical config, but with different name and add them to the
	// agent tree.
	ParentAgent() Agent

	// SubAgents returns the sub-agents of this agent.
	SubAgents() []Agent

	// BeforeAgentCallbacks returns the list of [AgentCallback] to be invoked before the agent run.
	//
	// The callbacks are called in order until one returns non-nil content.
	BeforeAgentCallbacks() []AgentCallback

	// AfterAgentCallbacks returns the list of [AgentCallback] to be invoked after the agent run.
	//
	// The callbacks are called in order until one returns non-nil content.
	AfterAgentCallbacks() []AgentCallback

	// Execute is the core logic to run this agent via text-based conversation.
	Execute(ctx context.Context, ictx *InvocationContext) iter.Seq2[*Event, error]

	// ExecuteLive is the core logic to run this agent via video/audio-based conversation.
	ExecuteLive(ctx context.Context, ictx *InvocationContext) iter.Seq2[*Event, error]

	// Run is the entry method to run an agent via text-based conversation.
	Run(ctx context.Context, parentContext *InvocationContext) iter.Seq2[*Event, error]

	// RunLive is the entry method to run an agent via video/audio-based conversation.
	RunLive(ctx context.Context, parentContext *InvocationContext) iter.Seq2[*Event, error]

	// RootAgent returns the root agent of the tree this agent belongs to.
	RootAgent() Agent

	// FindAgent finds the agent with the given name anywhere in the tree this agent belongs to.
	FindAgent(name string) Agent

	// FindSubAgent finds the agent with the given name among this agent's descendants.
	FindSubAgent(name string) Agent

	// AsLLMAgent reports whether this agent is an [LLMAgent].
	AsLLMAgent() (LLMAgent, bool)

	setParentAgent(parent Agent) error
}

// InstructionProvider is a function that provides instructions based on context.
//
// Instructions from a provider are used verbatim, without state injection.
type InstructionProvider func(rctx *ReadOnlyContext) string

// BeforeModelCallback is called before sending a request to the model.
type BeforeModelCallback func(cctx *CallbackContext, request *LLMRequest) (*LLMResponse, error)

// AfterModelCallback is called after receiving a response from the model.
type AfterModelCallback func(cctx *CallbackContext, response *LLMResponse) (*LLMResponse, error)

// BeforeToolCallback is called before executing a tool.
type BeforeToolCallback func(tool Tool, args map[string]any, toolCtx *ToolContext) (map[string]any, error)

// AfterToolCallback is called after executing a tool.
type AfterToolCallback func(tool Tool, args map[string]any, toolCtx *ToolContext, toolResponse map[string]any) (map[string]any, error)

// IncludeContents whether to include contents in the model request.
type IncludeContents string

const (
	// IncludeContentsDefault sends the relevant conversation history.
	IncludeContentsDefault IncludeContents = "default"

	// IncludeContentsNone sends no prior history.
	IncludeContentsNone IncludeContents = "none"
)

// LLMAgent is an agent driven by a model.
type LLMAgent interface {
	Agent

	// CanonicalModel returns the model of the agent, inherited from the nearest
	// ancestor LLMAgent when unset.
	CanonicalModel(ctx context.Context) (Model, error)

	// CanonicalInstruction returns the instruction of the agent.
	//
	// bypass reports that the instruction came from an [InstructionProvider] and
	// must not go through state injection.
	CanonicalInstruction(rctx *ReadOnlyContext) (instruction string, bypass bool, err error)

	// CanonicalGlobalInstruction returns the global instruction of the agent, see CanonicalInstruction.
	CanonicalGlobalInstruction(rctx *ReadOnlyContext) (instruction string, bypass bool, err error)

	// CanonicalTools returns the tools of the agent with toolsets expanded.
	CanonicalTools(ctx context.Context, rctx *ReadOnlyContext) ([]Tool, error)

	// GenerateContentConfig returns the [*genai.GenerateContentConfig] for [LLMAgent] agent.
	GenerateContentConfig() *genai.GenerateContentConfig

	// DisallowTransferToParent reports whether LLM-controlled transferring to the parent agent is disallowed.
	DisallowTransferToParent() bool

	// DisallowTransferToPeers reports whether LLM-controlled transferring to the peer agents is disallowed.
	DisallowTransferToPeers() bool

	// IncludeContents returns the mode of include contents in the model request.
	IncludeContents() IncludeContents

	// InputSchema returns the structured input.
	InputSchema() *genai.Schema

	// OutputSchema returns the structured output.
	OutputSchema() *genai.Schema

	// OutputKey returns the key in session state to store the output of the agent.
	OutputKey() string

	// BeforeModelCallbacks returns the callbacks invoked before each model call.
	BeforeModelCallbacks() []BeforeModelCallback

	// AfterModelCallbacks returns the callbacks invoked after each model call.
	AfterModelCallbacks() []AfterModelCallback

	// BeforeToolCallbacks returns the callbacks invoked before each tool call.
	BeforeToolCallbacks() []BeforeToolCallback

	// AfterToolCallbacks returns the callbacks invoked after each tool call.
	AfterToolCallbacks() []AfterToolCallback
}
