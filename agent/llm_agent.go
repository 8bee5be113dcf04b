// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-json-experiment/json"
	"google.golang.org/genai"

	"github.com/zshehov/adk-python-sub001/flow/llmflow"
	"github.com/zshehov/adk-python-sub001/model"
	"github.com/zshehov/adk-python-sub001/tool/tools"
	"github.com/zshehov/adk-python-sub001/types"
)

// LLMAgent is an agent driven by a model.
//
// It asks the model what to do next, runs the tools the model calls and may
// hand the conversation over to another agent of the tree.
type LLMAgent struct {
	*types.BaseAgent

	// model is either a model name resolved through the model registry or a [types.Model].
	model any

	modelOnce     sync.Once
	resolvedModel types.Model
	resolveErr    error

	// instruction and globalInstruction are a string or an [types.InstructionProvider].
	instruction       any
	globalInstruction any

	// tools holds [types.Tool] and [types.Toolset] values in registration order.
	tools []any

	generateContentConfig    *genai.GenerateContentConfig
	disallowTransferToParent bool
	disallowTransferToPeers  bool
	includeContents          types.IncludeContents

	inputSchema  *genai.Schema
	outputSchema *genai.Schema
	outputKey    string

	beforeModelCallbacks []types.BeforeModelCallback
	afterModelCallbacks  []types.AfterModelCallback
	beforeToolCallbacks  []types.BeforeToolCallback
	afterToolCallbacks   []types.AfterToolCallback

	baseOpts []types.Option
}

var _ types.LLMAgent = (*LLMAgent)(nil)

// LLMAgentOption configures an [LLMAgent].
type LLMAgentOption func(*LLMAgent)

// WithDescription sets the description of the agent.
func WithDescription(description string) LLMAgentOption {
	return func(a *LLMAgent) {
		a.baseOpts = append(a.baseOpts, types.WithDescription(description))
	}
}

// WithSubAgents adds sub-agents the agent can transfer to.
func WithSubAgents(agents ...types.Agent) LLMAgentOption {
	return func(a *LLMAgent) {
		a.baseOpts = append(a.baseOpts, types.WithSubAgents(agents...))
	}
}

// WithBeforeAgentCallbacks adds callbacks invoked before the agent runs.
func WithBeforeAgentCallbacks(callbacks ...types.AgentCallback) LLMAgentOption {
	return func(a *LLMAgent) {
		a.baseOpts = append(a.baseOpts, types.WithBeforeAgentCallbacks(callbacks...))
	}
}

// WithAfterAgentCallbacks adds callbacks invoked after the agent runs.
func WithAfterAgentCallbacks(callbacks ...types.AgentCallback) LLMAgentOption {
	return func(a *LLMAgent) {
		a.baseOpts = append(a.baseOpts, types.WithAfterAgentCallbacks(callbacks...))
	}
}

// WithLogger sets the logger of the agent and its flow.
func WithLogger(logger *slog.Logger) LLMAgentOption {
	return func(a *LLMAgent) {
		a.baseOpts = append(a.baseOpts, types.WithLogger(logger))
	}
}

// WithModelName sets the name of the model, resolved through the model registry on first use.
func WithModelName(name string) LLMAgentOption {
	return func(a *LLMAgent) {
		a.model = name
	}
}

// WithModel sets the model to use.
//
// Without a model the agent uses the model of its nearest LLM ancestor.
func WithModel(m types.Model) LLMAgentOption {
	return func(a *LLMAgent) {
		a.model = m
	}
}

// WithInstruction sets the instruction for the agent.
//
// A string instruction may reference session state with {key} placeholders.
// The result of an [types.InstructionProvider] is used verbatim.
func WithInstruction[T string | types.InstructionProvider](instruction T) LLMAgentOption {
	return func(a *LLMAgent) {
		a.instruction = instruction
	}
}

// WithGlobalInstruction sets the instruction prepended to every agent of the tree.
//
// Only the global instruction of the root agent takes effect.
func WithGlobalInstruction[T string | types.InstructionProvider](instruction T) LLMAgentOption {
	return func(a *LLMAgent) {
		a.globalInstruction = instruction
	}
}

// WithTools adds tools to the agent.
func WithTools(tools ...types.Tool) LLMAgentOption {
	return func(a *LLMAgent) {
		for _, t := range tools {
			a.tools = append(a.tools, t)
		}
	}
}

// WithToolsets adds toolsets whose tools are resolved on every model call.
func WithToolsets(toolsets ...types.Toolset) LLMAgentOption {
	return func(a *LLMAgent) {
		for _, ts := range toolsets {
			a.tools = append(a.tools, ts)
		}
	}
}

// WithFunction adds fn as a function tool.
func WithFunction(name, description string, fn tools.Function, opts ...tools.FunctionToolOption) LLMAgentOption {
	return func(a *LLMAgent) {
		a.tools = append(a.tools, tools.NewFunctionTool(name, description, fn, opts...))
	}
}

// WithGenerateContentConfig sets the [genai.GenerateContentConfig] for the agent.
//
// Tools, system instruction and response schema are managed by the agent and must not be set.
func WithGenerateContentConfig(config *genai.GenerateContentConfig) LLMAgentOption {
	return func(a *LLMAgent) {
		a.generateContentConfig = config
	}
}

// WithDisallowTransferToParent prevents the model from transferring control to the parent.
func WithDisallowTransferToParent(disallow bool) LLMAgentOption {
	return func(a *LLMAgent) {
		a.disallowTransferToParent = disallow
	}
}

// WithDisallowTransferToPeers prevents the model from transferring control to the peers.
func WithDisallowTransferToPeers(disallow bool) LLMAgentOption {
	return func(a *LLMAgent) {
		a.disallowTransferToPeers = disallow
	}
}

// WithIncludeContents sets the [types.IncludeContents] for the agent.
func WithIncludeContents(includeContents types.IncludeContents) LLMAgentOption {
	return func(a *LLMAgent) {
		a.includeContents = includeContents
	}
}

// WithInputSchema sets the input schema used when the agent is called as a tool.
func WithInputSchema(schema *genai.Schema) LLMAgentOption {
	return func(a *LLMAgent) {
		a.inputSchema = schema
	}
}

// WithOutputSchema sets the schema of the final reply.
//
// An agent with an output schema can only reply: it has no tools and never transfers.
func WithOutputSchema(schema *genai.Schema) LLMAgentOption {
	return func(a *LLMAgent) {
		a.outputSchema = schema
	}
}

// WithOutputKey sets the session state key receiving the final reply of the agent.
func WithOutputKey(key string) LLMAgentOption {
	return func(a *LLMAgent) {
		a.outputKey = key
	}
}

// WithBeforeModelCallbacks adds callbacks run before each model call.
func WithBeforeModelCallbacks(callbacks ...types.BeforeModelCallback) LLMAgentOption {
	return func(a *LLMAgent) {
		a.beforeModelCallbacks = append(a.beforeModelCallbacks, callbacks...)
	}
}

// WithAfterModelCallbacks adds callbacks run after each model response.
func WithAfterModelCallbacks(callbacks ...types.AfterModelCallback) LLMAgentOption {
	return func(a *LLMAgent) {
		a.afterModelCallbacks = append(a.afterModelCallbacks, callbacks...)
	}
}

// WithBeforeToolCallbacks adds callbacks run before each tool call.
func WithBeforeToolCallbacks(callbacks ...types.BeforeToolCallback) LLMAgentOption {
	return func(a *LLMAgent) {
		a.beforeToolCallbacks = append(a.beforeToolCallbacks, callbacks...)
	}
}

// WithAfterToolCallbacks adds callbacks run after each tool call.
func WithAfterToolCallbacks(callbacks ...types.AfterToolCallback) LLMAgentOption {
	return func(a *LLMAgent) {
		a.afterToolCallbacks = append(a.afterToolCallbacks, callbacks...)
	}
}

// NewLLMAgent creates a new [LLMAgent] with the given name and options.
//
// An output schema combined with tools or sub-agents is a configuration error.
// An output schema also disables transfers to the parent and the peers.
func NewLLMAgent(ctx context.Context, name string, opts ...LLMAgentOption) (*LLMAgent, error) {
	a := &LLMAgent{
		includeContents: types.IncludeContentsDefault,
	}
	for _, opt := range opts {
		opt(a)
	}

	base, err := types.NewBaseAgent(a, name, a.baseOpts...)
	if err != nil {
		return nil, err
	}
	a.BaseAgent = base
	a.baseOpts = nil

	if err := a.validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid config of agent %s: %w", name, err)
	}
	return a, nil
}

func (a *LLMAgent) validate(ctx context.Context) error {
	if a.generateContentConfig != nil {
		switch {
		case len(a.generateContentConfig.Tools) > 0:
			return errors.New("all tools must be set via the agent tools")
		case a.generateContentConfig.SystemInstruction != nil:
			return errors.New("system instruction must be set via the agent instruction")
		case a.generateContentConfig.ResponseSchema != nil:
			return errors.New("response schema must be set via the agent output schema")
		}
	}

	if a.outputSchema == nil {
		return nil
	}
	if !a.disallowTransferToParent || !a.disallowTransferToPeers {
		a.Logger().WarnContext(ctx, "output schema cannot co-exist with agent transfer, disabling transfers",
			slog.String("agent", a.Name()),
			slog.Bool("disallow_transfer_to_parent", a.disallowTransferToParent),
			slog.Bool("disallow_transfer_to_peers", a.disallowTransferToPeers),
		)
		a.disallowTransferToParent = true
		a.disallowTransferToPeers = true
	}
	if len(a.SubAgents()) > 0 {
		return errors.New("sub-agents must be empty when an output schema is set")
	}
	if len(a.tools) > 0 {
		return errors.New("tools must be empty when an output schema is set")
	}
	return nil
}

// AsLLMAgent implements [types.Agent].
func (a *LLMAgent) AsLLMAgent() (types.LLMAgent, bool) {
	return a, true
}

// CanonicalModel implements [types.LLMAgent].
func (a *LLMAgent) CanonicalModel(ctx context.Context) (types.Model, error) {
	switch m := a.model.(type) {
	case types.Model:
		return m, nil
	case string:
		a.modelOnce.Do(func() {
			a.resolvedModel, a.resolveErr = model.NewLLM(ctx, m, model.WithLogger(a.Logger()))
		})
		return a.resolvedModel, a.resolveErr
	}

	for ancestor := a.ParentAgent(); ancestor != nil; ancestor = ancestor.ParentAgent() {
		if llmAgent, ok := ancestor.AsLLMAgent(); ok {
			return llmAgent.CanonicalModel(ctx)
		}
	}
	return nil, fmt.Errorf("%w for agent %s", types.ErrModelNotFound, a.Name())
}

// CanonicalInstruction implements [types.LLMAgent].
func (a *LLMAgent) CanonicalInstruction(rctx *types.ReadOnlyContext) (string, bool, error) {
	return canonicalInstruction(a.instruction, rctx)
}

// CanonicalGlobalInstruction implements [types.LLMAgent].
func (a *LLMAgent) CanonicalGlobalInstruction(rctx *types.ReadOnlyContext) (string, bool, error) {
	return canonicalInstruction(a.globalInstruction, rctx)
}

func canonicalInstruction(instruction any, rctx *types.ReadOnlyContext) (string, bool, error) {
	switch inst := instruction.(type) {
	case nil:
		return "", false, nil
	case string:
		return inst, false, nil
	case types.InstructionProvider:
		return inst(rctx), true, nil
	default:
		return "", false, fmt.Errorf("unsupported instruction type %T", instruction)
	}
}

// CanonicalTools implements [types.LLMAgent].
//
// Toolsets are expanded in place, keeping the registration order.
func (a *LLMAgent) CanonicalTools(ctx context.Context, rctx *types.ReadOnlyContext) ([]types.Tool, error) {
	resolved := make([]types.Tool, 0, len(a.tools))
	for _, t := range a.tools {
		switch t := t.(type) {
		case types.Tool:
			resolved = append(resolved, t)
		case types.Toolset:
			ts, err := t.GetTools(ctx, rctx)
			if err != nil {
				return nil, fmt.Errorf("listing toolset tools of agent %s: %w", a.Name(), err)
			}
			resolved = append(resolved, ts...)
		}
	}
	return resolved, nil
}

// GenerateContentConfig implements [types.LLMAgent].
func (a *LLMAgent) GenerateContentConfig() *genai.GenerateContentConfig {
	return a.generateContentConfig
}

// DisallowTransferToParent implements [types.LLMAgent].
func (a *LLMAgent) DisallowTransferToParent() bool {
	return a.disallowTransferToParent
}

// DisallowTransferToPeers implements [types.LLMAgent].
func (a *LLMAgent) DisallowTransferToPeers() bool {
	return a.disallowTransferToPeers
}

// IncludeContents implements [types.LLMAgent].
func (a *LLMAgent) IncludeContents() types.IncludeContents {
	return a.includeContents
}

// InputSchema implements [types.LLMAgent].
func (a *LLMAgent) InputSchema() *genai.Schema {
	return a.inputSchema
}

// OutputSchema implements [types.LLMAgent].
func (a *LLMAgent) OutputSchema() *genai.Schema {
	return a.outputSchema
}

// OutputKey implements [types.LLMAgent].
func (a *LLMAgent) OutputKey() string {
	return a.outputKey
}

// BeforeModelCallbacks implements [types.LLMAgent].
func (a *LLMAgent) BeforeModelCallbacks() []types.BeforeModelCallback {
	return a.beforeModelCallbacks
}

// AfterModelCallbacks implements [types.LLMAgent].
func (a *LLMAgent) AfterModelCallbacks() []types.AfterModelCallback {
	return a.afterModelCallbacks
}

// BeforeToolCallbacks implements [types.LLMAgent].
func (a *LLMAgent) BeforeToolCallbacks() []types.BeforeToolCallback {
	return a.beforeToolCallbacks
}

// AfterToolCallbacks implements [types.LLMAgent].
func (a *LLMAgent) AfterToolCallbacks() []types.AfterToolCallback {
	return a.afterToolCallbacks
}

// llmFlow picks the flow of the agent: an agent that can neither transfer nor
// be transferred out of runs the single flow.
func (a *LLMAgent) llmFlow() types.Flow {
	if a.disallowTransferToParent && a.disallowTransferToPeers && len(a.SubAgents()) == 0 {
		return llmflow.NewSingleFlow(llmflow.WithLogger(a.Logger()))
	}
	return llmflow.NewAutoFlow(llmflow.WithLogger(a.Logger()))
}

// Execute implements [types.Agent].
func (a *LLMAgent) Execute(ctx context.Context, ictx *types.InvocationContext) iter.Seq2[*types.Event, error] {
	return a.execute(a.llmFlow().Run(ctx, ictx))
}

// ExecuteLive implements [types.Agent].
func (a *LLMAgent) ExecuteLive(ctx context.Context, ictx *types.InvocationContext) iter.Seq2[*types.Event, error] {
	return a.execute(a.llmFlow().RunLive(ctx, ictx))
}

func (a *LLMAgent) execute(events iter.Seq2[*types.Event, error]) iter.Seq2[*types.Event, error] {
	return func(yield func(*types.Event, error) bool) {
		for event, err := range events {
			if err != nil {
				yield(nil, err)
				return
			}
			if err := a.saveOutputToState(event); err != nil {
				yield(nil, err)
				return
			}
			if !yield(event, nil) {
				return
			}
		}
	}
}

// saveOutputToState records the final reply of the agent under its output key.
//
// With an output schema the reply is decoded as a JSON object.
func (a *LLMAgent) saveOutputToState(event *types.Event) error {
	if a.outputKey == "" || event.Author != a.Name() || !event.IsFinalResponse() {
		return nil
	}
	content := event.GetContent()
	if content == nil || len(content.Parts) == 0 {
		return nil
	}

	var sb strings.Builder
	for _, part := range content.Parts {
		if part != nil && part.Text != "" && !part.Thought {
			sb.WriteString(part.Text)
		}
	}

	var result any = sb.String()
	if a.outputSchema != nil {
		if strings.TrimSpace(sb.String()) == "" {
			return nil
		}
		var decoded map[string]any
		if err := json.Unmarshal([]byte(sb.String()), &decoded); err != nil {
			return fmt.Errorf("decoding structured output of agent %s: %w", a.Name(), err)
		}
		result = decoded
	}

	if event.Actions == nil {
		event.Actions = types.NewEventActions()
	}
	if event.Actions.StateDelta == nil {
		event.Actions.StateDelta = make(map[string]any)
	}
	event.Actions.StateDelta[a.outputKey] = result
	return nil
}

// addTools appends tools after construction, used by workflow agents in live mode.
func (a *LLMAgent) addTools(tools ...types.Tool) {
	for _, t := range tools {
		a.tools = append(a.tools, t)
	}
}

// appendInstruction adds text to the instruction of the agent.
func (a *LLMAgent) appendInstruction(text string) {
	switch inst := a.instruction.(type) {
	case nil:
		a.instruction = text
	case string:
		a.instruction = inst + "\n\n" + text
	case types.InstructionProvider:
		a.instruction = types.InstructionProvider(func(rctx *types.ReadOnlyContext) string {
			return inst(rctx) + "\n\n" + text
		})
	}
}

func (a *LLMAgent) hasTool(name string) bool {
	for _, t := range a.tools {
		if t, ok := t.(types.Tool); ok && t.Name() == name {
			return true
		}
	}
	return false
}
